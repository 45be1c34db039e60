package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"book-catalog/library"

	"github.com/alecthomas/assert"
)

func run(t *testing.T, data string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--data", data}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func listJSON(t *testing.T, data string) []*library.Book {
	t.Helper()
	out, err := run(t, data, "list", "--json")
	assert.NoError(t, err)
	var books []*library.Book
	assert.NoError(t, json.Unmarshal([]byte(out), &books))
	return books
}

func TestCLIFlow(t *testing.T) {
	data := filepath.Join(t.TempDir(), "books.json")

	out, err := run(t, data, "list")
	assert.NoError(t, err)
	assert.Equal(t, "No books to display.\n", out)

	out, err = run(t, data, "add", "War and Peace", "Tolstoy", "1869")
	assert.NoError(t, err)
	assert.Contains(t, out, "Book added successfully")

	_, err = run(t, data, "add", "Future", "Nobody", "2025")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "later than 2024")

	_, err = run(t, data, "--max-year", "2030", "add", "Future", "Nobody", "2025", "--status", "checked_out")
	assert.NoError(t, err)

	books := listJSON(t, data)
	assert.Equal(t, 2, len(books))
	assert.Equal(t, library.StatusCheckedOut, books[1].Status)

	out, err = run(t, data, "search", "TOLSTOY")
	assert.NoError(t, err)
	assert.Contains(t, out, "War and Peace")
	assert.False(t, strings.Contains(out, "Future"))

	out, err = run(t, data, "display")
	assert.NoError(t, err)
	assert.Contains(t, out, "All books:")

	out, err = run(t, data, "change-status", books[0].ID, "checked_out")
	assert.NoError(t, err)
	assert.Contains(t, out, "changed to checked_out")

	_, err = run(t, data, "status", books[0].ID, "maybe")
	assert.Error(t, err)

	out, err = run(t, data, "delete", "nope")
	assert.NoError(t, err)
	assert.Contains(t, out, "not found")

	out, err = run(t, data, "delete", books[0].ID)
	assert.NoError(t, err)
	assert.Contains(t, out, "deleted successfully")
	assert.Equal(t, 1, len(listJSON(t, data)))
}

func TestCLIConfigFile(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "books.db")
	cfg := filepath.Join(dir, "config.yaml")
	assert.NoError(t, os.WriteFile(cfg, []byte("backend: sqlite\nlog_level: error\n"), 0o644))

	_, err := run(t, db, "--config", cfg, "add", "Dune", "Frank Herbert", "1965")
	assert.NoError(t, err)
	out, err := run(t, db, "--config", cfg, "search", "1965")
	assert.NoError(t, err)
	assert.Contains(t, out, "Dune")

	_, err = run(t, db, "--backend", "csv", "list")
	assert.Error(t, err)
	_, err = run(t, db, "--log-level", "loud", "list")
	assert.Error(t, err)
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "Война и...", truncateString("Война и мир, том 1", 10))
	assert.Equal(t, "ab", truncateString("abcdef", 2))
}
