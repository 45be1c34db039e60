package library

import (
	"log/slog"
	"strconv"
	"strings"
)

// maxIDAttempts bounds how often Add redraws an id that is already taken.
const maxIDAttempts = 16

// BookStore runs every operation as load, operate, save against its Storage.
// Nothing is cached between calls.
type BookStore struct {
	storage Storage
	ids     *IDGenerator
	maxYear int
}

// NewBookStore returns a store over storage. maxYear <= 0 means
// DefaultMaxYear.
func NewBookStore(storage Storage, maxYear int) *BookStore {
	if maxYear <= 0 {
		maxYear = DefaultMaxYear
	}
	return &BookStore{storage: storage, ids: NewIDGenerator(), maxYear: maxYear}
}

// Open builds the store described by cfg.
func Open(cfg *Config) (*BookStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	storage, err := OpenStorage(cfg)
	if err != nil {
		return nil, err
	}
	return NewBookStore(storage, cfg.MaxYear), nil
}

// SetIDGenerator replaces the id source, mostly for tests.
func (bs *BookStore) SetIDGenerator(g *IDGenerator) { bs.ids = g }

// MaxYear is the latest accepted publication year.
func (bs *BookStore) MaxYear() int { return bs.maxYear }

// Begin loads the collection into a Session. Operations on the session work
// in memory until Commit.
func (bs *BookStore) Begin() (*Session, error) {
	books, err := bs.storage.Load()
	if err != nil {
		return nil, err
	}
	return &Session{store: bs, books: books}, nil
}

// ------------------ Single-call operations ------------------

// Add validates the input, then appends a new book and saves.
func (bs *BookStore) Add(title, author, year, status string) (*AddResult, error) {
	y, err := ParseYear(year, bs.maxYear)
	if err != nil {
		return nil, err
	}
	s, err := bs.Begin()
	if err != nil {
		return nil, err
	}
	res := s.add(title, author, y, status)
	if err := s.Commit(); err != nil {
		return nil, err
	}
	return res, nil
}

// Delete removes every book with the given id. A missing id is reported in
// the result, not as an error.
func (bs *BookStore) Delete(bookID string) (*DeleteResult, error) {
	s, err := bs.Begin()
	if err != nil {
		return nil, err
	}
	res := s.Delete(bookID)
	if err := s.Commit(); err != nil {
		return nil, err
	}
	return res, nil
}

// ChangeStatus sets the status of the first book with the given id. An
// invalid status is rejected before storage is read.
func (bs *BookStore) ChangeStatus(bookID, newStatus string) (*ChangeStatusResult, error) {
	st, err := parseNewStatus(newStatus)
	if err != nil {
		return nil, err
	}
	s, err := bs.Begin()
	if err != nil {
		return nil, err
	}
	res := s.changeStatus(bookID, st)
	if err := s.Commit(); err != nil {
		return nil, err
	}
	return res, nil
}

func (bs *BookStore) Search(query string) (*SearchResult, error) {
	s, err := bs.Begin()
	if err != nil {
		return nil, err
	}
	return s.Search(query), nil
}

func (bs *BookStore) ListAll() (*ListResult, error) {
	s, err := bs.Begin()
	if err != nil {
		return nil, err
	}
	return s.ListAll(), nil
}

// ------------------ Session ------------------

// Session is one loaded collection. It is not safe for concurrent use.
type Session struct {
	store *BookStore
	books []*Book
	dirty bool
}

// Add behaves like BookStore.Add without saving.
func (s *Session) Add(title, author, year, status string) (*AddResult, error) {
	y, err := ParseYear(year, s.store.maxYear)
	if err != nil {
		return nil, err
	}
	return s.add(title, author, y, status), nil
}

func (s *Session) add(title, author string, year int, status string) *AddResult {
	res := &AddResult{}
	st := StatusAvailable
	if status != "" {
		if parsed, ok := ParseStatus(status); ok {
			st = parsed
		} else {
			res.Warning = "unknown status " + strconv.Quote(status) + ", using " + string(StatusAvailable)
			slog.Warn("unknown status on add, using default", "status", status, "default", StatusAvailable)
		}
	}
	b := &Book{
		ID:     s.newID(),
		Title:  title,
		Author: author,
		Year:   year,
		Status: st,
	}
	s.books = append(s.books, b)
	s.dirty = true
	res.Book = b.clone()
	return res
}

// newID draws ids until one is not already in the collection.
func (s *Session) newID() string {
	id := s.store.ids.NewID()
	for i := 1; i < maxIDAttempts && s.has(id); i++ {
		id = s.store.ids.NewID()
	}
	return id
}

func (s *Session) has(id string) bool {
	for _, b := range s.books {
		if b.ID == id {
			return true
		}
	}
	return false
}

func (s *Session) Delete(bookID string) *DeleteResult {
	kept := make([]*Book, 0, len(s.books))
	for _, b := range s.books {
		if b.ID != bookID {
			kept = append(kept, b)
		}
	}
	res := &DeleteResult{ID: bookID, Removed: len(s.books) - len(kept)}
	if res.Found() {
		s.books = kept
		s.dirty = true
	}
	return res
}

// ChangeStatus behaves like BookStore.ChangeStatus without saving.
func (s *Session) ChangeStatus(bookID, newStatus string) (*ChangeStatusResult, error) {
	st, err := parseNewStatus(newStatus)
	if err != nil {
		return nil, err
	}
	return s.changeStatus(bookID, st), nil
}

func (s *Session) changeStatus(bookID string, st Status) *ChangeStatusResult {
	res := &ChangeStatusResult{ID: bookID, Status: st}
	for _, b := range s.books {
		if b.ID == bookID {
			b.Status = st
			s.dirty = true
			res.Book = b.clone()
			break
		}
	}
	return res
}

// Search matches query case-insensitively against title and author, or
// exactly against the decimal year.
func (s *Session) Search(query string) *SearchResult {
	q := strings.ToLower(query)
	res := &SearchResult{Query: query, Books: []*Book{}}
	for _, b := range s.books {
		if strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Author), q) ||
			query == strconv.Itoa(b.Year) {
			res.Books = append(res.Books, b.clone())
		}
	}
	return res
}

func (s *Session) ListAll() *ListResult {
	return &ListResult{Books: cloneBooks(s.books)}
}

// Commit saves the collection if anything changed since Begin or the last
// Commit.
func (s *Session) Commit() error {
	if !s.dirty {
		return nil
	}
	if err := s.store.storage.Save(s.books); err != nil {
		return err
	}
	s.dirty = false
	return nil
}
