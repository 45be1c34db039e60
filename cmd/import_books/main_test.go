package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"book-catalog/library"

	"github.com/alecthomas/assert"
)

const manifest = `
- title: "1984"
  author: George Orwell
  year: 1949
- title: Animal Farm
  author: George Orwell
  year: 1945
  status: выдана
- title: Tomorrow
  author: Nobody
  year: 2099
- title: No Year
  author: Nobody
- title: The Art of War
  author: Sun Tzu
  year: 500
  status: lent
`

func TestImportBooks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "books.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(manifest), 0o644))

	entries, err := readManifest(path)
	assert.NoError(t, err)
	assert.Equal(t, 5, len(entries))

	cfg := library.DefaultConfig()
	cfg.DataPath = filepath.Join(dir, "books.json")
	var out bytes.Buffer
	ok, failed, err := importBooks(&out, cfg, entries)
	assert.NoError(t, err)
	assert.Equal(t, 3, ok)
	assert.Equal(t, 2, failed)
	assert.Contains(t, out.String(), "warning:")

	books, err := library.NewJSONFile(cfg.DataPath).Load()
	assert.NoError(t, err)
	assert.Equal(t, 3, len(books))
	assert.Equal(t, "1984", books[0].Title)
	assert.Equal(t, library.StatusCheckedOut, books[1].Status)
	assert.Equal(t, library.StatusAvailable, books[2].Status)
}
