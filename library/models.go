package library

import (
	"encoding/json"
	"strings"
)

// Status is the availability state of a book.
type Status string

const (
	StatusAvailable  Status = "available"
	StatusCheckedOut Status = "checked_out"
)

// Older data files carry the localized values.
var legacyStatuses = map[string]Status{
	"в наличии": StatusAvailable,
	"выдана":    StatusCheckedOut,
}

// Valid reports whether s is one of the two known states.
func (s Status) Valid() bool {
	return s == StatusAvailable || s == StatusCheckedOut
}

// ParseStatus maps user input (canonical or legacy spelling) to a Status.
func ParseStatus(s string) (Status, bool) {
	v := strings.TrimSpace(s)
	if st := Status(strings.ToLower(v)); st.Valid() {
		return st, true
	}
	if st, ok := legacyStatuses[strings.ToLower(v)]; ok {
		return st, true
	}
	return "", false
}

// UnmarshalJSON normalizes legacy values. Unknown values are kept verbatim so
// a single odd record doesn't make the whole file unreadable.
func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if st, ok := ParseStatus(raw); ok {
		*s = st
		return nil
	}
	*s = Status(raw)
	return nil
}

// Book is a single catalog record.
type Book struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
	Status Status `json:"status"`
}

func (b *Book) clone() *Book {
	c := *b
	return &c
}

func cloneBooks(books []*Book) []*Book {
	out := make([]*Book, len(books))
	for i, b := range books {
		out[i] = b.clone()
	}
	return out
}
