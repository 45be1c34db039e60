package library

import (
	"math/rand/v2"
	"strconv"
	"time"
)

// maxIDSuffix is the inclusive upper bound of the random part of an id.
const maxIDSuffix = 1000

// IDGenerator builds ids of the form "<unix millis>-<0..1000>".
//
// Two ids generated in the same millisecond collide when they draw the same
// suffix. Nothing else is consulted, so uniqueness is only probabilistic.
type IDGenerator struct {
	Now  func() time.Time
	IntN func(n int) int
}

// NewIDGenerator returns a generator using the wall clock and math/rand.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{Now: time.Now, IntN: rand.IntN}
}

// NewID returns a fresh id.
func (g *IDGenerator) NewID() string {
	now, intN := time.Now, rand.IntN
	if g != nil && g.Now != nil {
		now = g.Now
	}
	if g != nil && g.IntN != nil {
		intN = g.IntN
	}
	ms := now().UnixMilli()
	return strconv.FormatInt(ms, 10) + "-" + strconv.Itoa(intN(maxIDSuffix+1))
}
