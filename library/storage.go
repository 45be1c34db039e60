package library

import "fmt"

// Storage persists the whole collection at once.
//
// Load never fails because the store is missing or malformed: it returns an
// empty collection and leaves a valid empty store behind. Only genuine I/O
// failures are returned, as *StorageError.
type Storage interface {
	Load() ([]*Book, error)
	Save(books []*Book) error
}

// OpenStorage returns the backend selected by cfg.
func OpenStorage(cfg *Config) (Storage, error) {
	switch cfg.Backend {
	case "", BackendJSON:
		return NewJSONFile(cfg.DataPath), nil
	case BackendSQLite:
		return NewSQLite(cfg.DataPath), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
