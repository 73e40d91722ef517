package knowledge

import (
	"errors"
	"fmt"
	"strings"
)

// Store defines the interface for persistent knowledge storage.
// Backends differ only in their medium; all of them persist the whole
// table on every Save.
type Store interface {
	// Load reads the knowledge base. A missing medium yields an empty Base.
	Load() (Base, error)

	// Save atomically replaces the stored table with b.
	Save(b Base) error

	// Location describes where the data lives (file path or DSN).
	Location() string

	Close() error
}

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("knowledge: unknown backend")

// Backends lists the supported backend names.
var Backends = []string{"json", "yaml", "sqlite"}

// PersistenceError reports a failure to read or write the knowledge base.
type PersistenceError struct {
	Op   string // "open", "load" or "save"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("knowledge: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsPersistenceError reports whether err carries a *PersistenceError.
func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

// Open returns the store for backend at path.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(backend) {
	case "", "json":
		return NewJSONStore(path), nil
	case "yaml", "yml":
		return NewYAMLStore(path), nil
	case "sqlite":
		s, err := NewSQLiteStore(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w %q (must be one of %s)", ErrUnknownBackend, backend, strings.Join(Backends, ", "))
	}
}
