package library

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"
)

// SQLite stores the collection in a single-table SQLite database. Every Load
// and Save opens the database and closes it before returning.
type SQLite struct {
	Path string
}

// NewSQLite returns a SQLite store at path.
func NewSQLite(path string) *SQLite {
	return &SQLite{Path: path}
}

// ---------------------------------------------------------------------------
// Schema
// ---------------------------------------------------------------------------

const schemaVersion = 1

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS books (
            position INTEGER PRIMARY KEY,
            id TEXT NOT NULL,
            title TEXT NOT NULL,
            author TEXT NOT NULL,
            year INTEGER NOT NULL,
            status TEXT NOT NULL
        );`,
		`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt, schemaVersion); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return tx.Commit()
}

// open opens the database and applies the schema. A file that SQLite refuses
// as a database is removed and recreated empty.
func (s *SQLite) open() (*sql.DB, error) {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &StorageError{Op: "mkdir", Path: dir, Err: err}
		}
	}
	db, err := s.openOnce()
	if err == nil {
		return db, nil
	}
	if !isCorrupt(err) {
		return nil, &StorageError{Op: "open", Path: s.Path, Err: err}
	}
	slog.Warn("reinitializing books database", "path", s.Path, "err", err)
	for _, p := range []string{s.Path, s.Path + "-wal", s.Path + "-shm", s.Path + "-journal"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, &StorageError{Op: "remove", Path: p, Err: err}
		}
	}
	db, err = s.openOnce()
	if err != nil {
		return nil, &StorageError{Op: "open", Path: s.Path, Err: err}
	}
	return db, nil
}

func (s *SQLite) openOnce() (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", s.Path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func isCorrupt(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.Code == sqlite3.ErrNotADB || se.Code == sqlite3.ErrCorrupt
	}
	return false
}

// ---------------------------------------------------------------------------
// Storage
// ---------------------------------------------------------------------------

func (s *SQLite) Load() ([]*Book, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(`SELECT id,title,author,year,status FROM books ORDER BY position`)
	if err != nil {
		return nil, &StorageError{Op: "query", Path: s.Path, Err: err}
	}
	defer rows.Close()

	books := []*Book{}
	for rows.Next() {
		var b Book
		var status string
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Year, &status); err != nil {
			return nil, &StorageError{Op: "scan", Path: s.Path, Err: err}
		}
		b.Status = Status(status)
		if st, ok := ParseStatus(status); ok {
			b.Status = st
		}
		books = append(books, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "query", Path: s.Path, Err: err}
	}
	slog.Debug("loaded books", "path", s.Path, "count", len(books))
	return books, nil
}

// Save replaces every row in one transaction.
func (s *SQLite) Save(books []*Book) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := s.replaceAll(db, books); err != nil {
		return &StorageError{Op: "write", Path: s.Path, Err: err}
	}
	slog.Debug("saved books", "path", s.Path, "count", len(books))
	return nil
}

func (s *SQLite) replaceAll(db *sql.DB, books []*Book) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM books`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO books(position,id,title,author,year,status) VALUES(?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, b := range books {
		if _, err := stmt.Exec(i, b.ID, b.Title, b.Author, b.Year, string(b.Status)); err != nil {
			return err
		}
	}
	return tx.Commit()
}
