package library

import (
	"fmt"
	"strings"
)

// AddResult is returned by Add.
type AddResult struct {
	Book *Book
	// Warning is set when the requested status was replaced by the default.
	Warning string
}

func (r *AddResult) Report() string {
	msg := fmt.Sprintf("Book added successfully with ID %s.", r.Book.ID)
	if r.Warning != "" {
		msg = "Warning: " + r.Warning + "\n" + msg
	}
	return msg
}

// DeleteResult is returned by Delete. Removed is zero when no book matched.
type DeleteResult struct {
	ID      string
	Removed int
}

func (r *DeleteResult) Found() bool { return r.Removed > 0 }

func (r *DeleteResult) Report() string {
	if !r.Found() {
		return fmt.Sprintf("Book with ID %s not found.", r.ID)
	}
	return fmt.Sprintf("Book with ID %s deleted successfully.", r.ID)
}

// ChangeStatusResult is returned by ChangeStatus. Book is nil when no book
// matched.
type ChangeStatusResult struct {
	ID     string
	Status Status
	Book   *Book
}

func (r *ChangeStatusResult) Found() bool { return r.Book != nil }

func (r *ChangeStatusResult) Report() string {
	if !r.Found() {
		return fmt.Sprintf("Book with ID %s not found.", r.ID)
	}
	return fmt.Sprintf("Status of book with ID %s changed to %s.", r.ID, r.Status)
}

// SearchResult is returned by Search.
type SearchResult struct {
	Query string
	Books []*Book
}

func (r *SearchResult) Found() bool { return len(r.Books) > 0 }

func (r *SearchResult) Report() string {
	if !r.Found() {
		return "No books match the query."
	}
	return "Books found:\n" + formatBooks(r.Books)
}

// ListResult is returned by ListAll.
type ListResult struct {
	Books []*Book
}

func (r *ListResult) Empty() bool { return len(r.Books) == 0 }

func (r *ListResult) Report() string {
	if r.Empty() {
		return "No books to display."
	}
	return "All books:\n" + formatBooks(r.Books)
}

// FormatBook renders one record on a single line.
func FormatBook(b *Book) string {
	return fmt.Sprintf("ID: %s, Title: %s, Author: %s, Year: %d, Status: %s", b.ID, b.Title, b.Author, b.Year, b.Status)
}

func formatBooks(books []*Book) string {
	lines := make([]string, len(books))
	for i, b := range books {
		lines[i] = FormatBook(b)
	}
	return strings.Join(lines, "\n")
}
