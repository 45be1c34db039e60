package library

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tidwall/pretty"
)

// JSONFile stores the collection as an indented JSON array in one file.
type JSONFile struct {
	Path string
}

// NewJSONFile returns a JSON file store at path. The file is created on the
// first Load or Save.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{Path: path}
}

func (f *JSONFile) Load() ([]*Book, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return f.reset("missing")
	}
	if err != nil {
		return nil, &StorageError{Op: "read", Path: f.Path, Err: err}
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return f.reset("empty")
	}
	var books []*Book
	if err := json.Unmarshal(data, &books); err != nil {
		slog.Warn("books file is not valid JSON", "path", f.Path, "err", err)
		return f.reset("corrupt")
	}
	out := books[:0]
	for _, b := range books {
		if b != nil {
			out = append(out, b)
		}
	}
	slog.Debug("loaded books", "path", f.Path, "count", len(out))
	return out, nil
}

// reset writes an empty collection so the store is valid after Load.
func (f *JSONFile) reset(why string) ([]*Book, error) {
	slog.Warn("reinitializing books file", "path", f.Path, "reason", why)
	if err := f.Save(nil); err != nil {
		return nil, err
	}
	return []*Book{}, nil
}

func (f *JSONFile) Save(books []*Book) error {
	if books == nil {
		books = []*Book{}
	}
	data, err := json.Marshal(books)
	if err != nil {
		return &StorageError{Op: "encode", Path: f.Path, Err: err}
	}
	data = pretty.PrettyOptions(data, &pretty.Options{Width: 80, Indent: "    "})
	if err := writeFileAtomic(f.Path, data); err != nil {
		return &StorageError{Op: "write", Path: f.Path, Err: err}
	}
	slog.Debug("saved books", "path", f.Path, "count", len(books))
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it over
// path, so readers see either the old or the new content.
func writeFileAtomic(path string, data []byte) error {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, name+".tmp*")
	if err != nil {
		return err
	}
	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	// https://www.joeshaw.org/dont-defer-close-on-writable-files/
	errSync := tmp.Sync()
	errClose := tmp.Close()
	if errSync != nil {
		return errSync
	}
	if errClose != nil {
		return errClose
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return err
	}
	renamed = true
	// best effort, the rename already happened
	if d, _ := os.Open(dir); d != nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}
