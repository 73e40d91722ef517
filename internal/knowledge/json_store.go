package knowledge

import (
	"bytes"
	"encoding/json"
)

// Ensure JSONStore implements Store
var _ Store = (*JSONStore)(nil)

// JSONStore keeps the knowledge base in a single indented JSON file.
type JSONStore struct {
	path string
}

// NewJSONStore returns a store backed by the JSON file at path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Location() string { return s.path }

func (s *JSONStore) Close() error { return nil }

// Load reads the table from disk. A missing file is an empty base.
func (s *JSONStore) Load() (Base, error) {
	data, found, err := readIfExists(s.path)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Path: s.path, Err: err}
	}
	if !found {
		return NewBase(), nil
	}

	if err := validateTable(data); err != nil {
		return nil, &PersistenceError{Op: "load", Path: s.path, Err: err}
	}

	var raw map[string]map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &PersistenceError{Op: "load", Path: s.path, Err: err}
	}
	return normalize(raw), nil
}

// Save writes the whole table, replacing the file atomically.
func (s *JSONStore) Save(b Base) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(b.raw()); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}

	if err := writeFileAtomic(s.path, buf.Bytes()); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}
