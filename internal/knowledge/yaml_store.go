package knowledge

import (
	"gopkg.in/yaml.v3"
)

var _ Store = (*YAMLStore)(nil)

// YAMLStore keeps the knowledge base in a YAML document, one mapping per entity.
type YAMLStore struct {
	path string
}

func NewYAMLStore(path string) *YAMLStore {
	return &YAMLStore{path: path}
}

func (s *YAMLStore) Location() string { return s.path }

func (s *YAMLStore) Close() error { return nil }

func (s *YAMLStore) Load() (Base, error) {
	data, found, err := readIfExists(s.path)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Path: s.path, Err: err}
	}
	if !found {
		return NewBase(), nil
	}

	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &PersistenceError{Op: "load", Path: s.path, Err: err}
	}
	return normalize(raw), nil
}

func (s *YAMLStore) Save(b Base) error {
	data, err := yaml.Marshal(b.raw())
	if err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}
