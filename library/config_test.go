package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("", false)
	assert.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), true)
	assert.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), false)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "book-catalog.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("backend: sqlite\ndata_path: books.db\nmax_year: 2030\n"), 0o644))
	cfg, err = LoadConfig(path, false)
	assert.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "books.db", cfg.DataPath)
	assert.Equal(t, 2030, cfg.MaxYear)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = "csv"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MaxYear = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.DataPath = ""
	assert.Error(t, cfg.Validate())

	_, err := Open(cfg)
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataPath = filepath.Join(t.TempDir(), "books.db")
	cfg.Backend = BackendSQLite
	cfg.MaxYear = 2030
	bs, err := Open(cfg)
	assert.NoError(t, err)
	_, ok := bs.storage.(*SQLite)
	assert.True(t, ok)

	_, err = bs.Add("Future", "Someone", "2030", "")
	assert.NoError(t, err)
}
