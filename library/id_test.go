package library

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert"
)

func TestNewIDFormat(t *testing.T) {
	g := &IDGenerator{
		Now:  func() time.Time { return time.UnixMilli(1712345678901) },
		IntN: func(n int) int { assert.Equal(t, 1001, n); return 42 },
	}
	assert.Equal(t, "1712345678901-42", g.NewID())
}

func TestNewIDDefaults(t *testing.T) {
	for _, g := range []*IDGenerator{nil, {}, NewIDGenerator()} {
		id := g.NewID()
		ts, suffix, ok := strings.Cut(id, "-")
		assert.True(t, ok)
		ms, err := strconv.ParseInt(ts, 10, 64)
		assert.NoError(t, err)
		assert.True(t, ms > 0)
		n, err := strconv.Atoi(suffix)
		assert.NoError(t, err)
		assert.True(t, n >= 0 && n <= maxIDSuffix)
	}
}
