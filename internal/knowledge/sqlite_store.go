package knowledge

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS entities (
	name TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS attributes (
	entity    TEXT NOT NULL REFERENCES entities(name) ON DELETE CASCADE,
	attribute TEXT NOT NULL,
	value     TEXT NOT NULL,
	PRIMARY KEY (entity, attribute)
);
`

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore keeps the knowledge base in a SQLite database. Save replaces
// both tables inside one transaction. The file is not touched until the
// first Load or Save, so a broken database surfaces as a load error.
type SQLiteStore struct {
	db    *sql.DB
	path  string
	ready bool
}

// NewSQLiteStore returns a store for the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &PersistenceError{Op: "open", Path: path, Err: err}
	}

	// One writer, one session: a single connection keeps :memory: databases alive too.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) Location() string { return s.path }

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) inMemory() bool {
	return s.path == ":memory:"
}

// prepare creates the parent directory, applies the pragmas and the schema.
// It runs until it succeeds once.
func (s *SQLiteStore) prepare() error {
	if s.ready {
		return nil
	}
	if !s.inMemory() {
		if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
			return err
		}
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := s.db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to set pragma: %w", err)
		}
	}
	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	s.ready = true
	return nil
}

// Load reads every entity with its attributes.
func (s *SQLiteStore) Load() (Base, error) {
	fail := func(err error) (Base, error) {
		return nil, &PersistenceError{Op: "load", Path: s.path, Err: err}
	}

	if !s.inMemory() && !s.ready {
		if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
			return NewBase(), nil
		}
	}
	if err := s.prepare(); err != nil {
		return fail(err)
	}

	raw := make(map[string]map[string]string)

	names, err := s.db.Query(`SELECT name FROM entities`)
	if err != nil {
		return fail(err)
	}
	for names.Next() {
		var name string
		if err := names.Scan(&name); err != nil {
			names.Close()
			return fail(err)
		}
		raw[name] = map[string]string{}
	}
	if err := names.Err(); err != nil {
		names.Close()
		return fail(err)
	}
	names.Close()

	rows, err := s.db.Query(`SELECT entity, attribute, value FROM attributes`)
	if err != nil {
		return fail(err)
	}
	defer rows.Close()
	for rows.Next() {
		var entity, attr, value string
		if err := rows.Scan(&entity, &attr, &value); err != nil {
			return fail(err)
		}
		if raw[entity] == nil {
			raw[entity] = map[string]string{}
		}
		raw[entity][attr] = value
	}
	if err := rows.Err(); err != nil {
		return fail(err)
	}

	return normalize(raw), nil
}

// Save replaces the stored table with b. On error the transaction is rolled
// back and the previous rows survive.
func (s *SQLiteStore) Save(b Base) (err error) {
	if err := s.prepare(); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	defer func() {
		if err != nil {
			tx.Rollback()
			err = &PersistenceError{Op: "save", Path: s.path, Err: err}
		}
	}()

	if _, err = tx.Exec(`DELETE FROM attributes`); err != nil {
		return err
	}
	if _, err = tx.Exec(`DELETE FROM entities`); err != nil {
		return err
	}

	insEntity, err := tx.Prepare(`INSERT INTO entities (name) VALUES (?)`)
	if err != nil {
		return err
	}
	defer insEntity.Close()

	insAttr, err := tx.Prepare(`INSERT INTO attributes (entity, attribute, value) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insAttr.Close()

	for _, name := range b.Names() {
		if _, err = insEntity.Exec(name); err != nil {
			return err
		}
		rec := b[name]
		for _, attr := range rec.Attributes() {
			if _, err = insAttr.Exec(name, attr, rec[attr]); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}
