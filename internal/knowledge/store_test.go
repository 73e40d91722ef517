package knowledge

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStores returns one store of every backend rooted in a temp dir.
func newStores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	sq, err := NewSQLiteStore(filepath.Join(dir, "kb.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })

	return map[string]Store{
		"json":   NewJSONStore(filepath.Join(dir, "kb.json")),
		"yaml":   NewYAMLStore(filepath.Join(dir, "kb.yaml")),
		"sqlite": sq,
	}
}

func TestLoadMissingIsEmpty(t *testing.T) {
	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			b, err := s.Load()
			require.NoError(t, err)
			assert.Empty(t, b)
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	base := Base{
		"excalibur": {"rol": "daño", "genero": "masculino"},
		"rhino":     {"rol": "supervivencia", "genero": "masculino", "elemento": "tierra"},
		"vacío":     {},
	}
	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save(base))

			got, err := s.Load()
			require.NoError(t, err)
			assert.Equal(t, base, got)
		})
	}
}

func TestSaveOverwritesPreviousTable(t *testing.T) {
	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save(Base{"loki": {"rol": "sigilo"}, "ash": {"tema": "ninja"}}))
			require.NoError(t, s.Save(Base{"loki": {"genero": "masculino"}}))

			got, err := s.Load()
			require.NoError(t, err)
			assert.Equal(t, Base{"loki": {"genero": "masculino"}}, got)
		})
	}
}

func TestJSONStoreKeepsUnicodeAndIndent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warframes.json")
	s := NewJSONStore(path)
	require.NoError(t, s.Save(Base{"excalibur": {"rol": "daño"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rol": "daño"`)
	assert.Contains(t, string(data), "\n    \"excalibur\"")
}

func TestJSONStoreLoadNormalizesKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warframes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"  Nova ": {"rol": "control de masas"}, "": {"rol": "x"}}`), 0644))

	b, err := NewJSONStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, Base{"nova": {"rol": "control de masas"}}, b)
}

func TestJSONStoreMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":       `{"excalibur": `,
		"empty file":     ``,
		"array":          `[1, 2]`,
		"non-string val": `{"excalibur": {"rol": 3}}`,
		"flat record":    `{"excalibur": "daño"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "warframes.json")
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))

			_, err := NewJSONStore(path).Load()
			require.Error(t, err)
			var pe *PersistenceError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, "load", pe.Op)
			assert.True(t, IsPersistenceError(err))
		})
	}
}

func TestYAMLStoreMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- just\n- a list\n"), 0644))

	_, err := NewYAMLStore(path).Load()
	assert.True(t, IsPersistenceError(err))
}

func failRenames(t *testing.T) {
	t.Helper()
	renameFile = func(string, string) error { return errors.New("disk full") }
	t.Cleanup(func() { renameFile = os.Rename })
}

func TestFileSaveFailureKeepsPreviousData(t *testing.T) {
	dir := t.TempDir()
	stores := map[string]Store{
		"json": NewJSONStore(filepath.Join(dir, "warframes.json")),
		"yaml": NewYAMLStore(filepath.Join(dir, "warframes.yaml")),
	}
	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save(Base{"excalibur": {"rol": "daño"}}))

			failRenames(t)
			err := s.Save(Base{"rhino": {"rol": "supervivencia"}})
			require.Error(t, err)
			var pe *PersistenceError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, "save", pe.Op)
			assert.Equal(t, s.Location(), pe.Path)

			got, err := s.Load()
			require.NoError(t, err)
			assert.Equal(t, Base{"excalibur": {"rol": "daño"}}, got)
		})
	}

	// No temp files are left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSQLiteSaveFailureRollsBack(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "kb.db"))
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.Save(Base{"excalibur": {"rol": "daño"}}))

	// Abort the transaction halfway: the deletes and the first insert ran.
	_, err = s.db.Exec(`CREATE TRIGGER reject_rhino BEFORE INSERT ON entities
		WHEN NEW.name = 'rhino' BEGIN SELECT RAISE(ABORT, 'rejected'); END`)
	require.NoError(t, err)

	err = s.Save(Base{"ash": {"tema": "ninja"}, "rhino": {"rol": "supervivencia"}})
	require.Error(t, err)
	var pe *PersistenceError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "save", pe.Op)

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, Base{"excalibur": {"rol": "daño"}}, got)
}

func TestSQLiteSaveOnClosedStore(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "kb.db"))
	require.NoError(t, err)
	require.NoError(t, s.Save(Base{"excalibur": {"rol": "daño"}}))
	require.NoError(t, s.Close())

	assert.True(t, IsPersistenceError(s.Save(Base{})))
}

func TestSaveIntoUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	// A regular file where a directory is expected cannot be written under.
	err := NewJSONStore(filepath.Join(blocker, "warframes.json")).Save(Base{})
	assert.True(t, IsPersistenceError(err))
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open("json", filepath.Join(dir, "a.json"))
	require.NoError(t, err)
	assert.IsType(t, &JSONStore{}, s)

	s, err = Open("YAML", filepath.Join(dir, "a.yaml"))
	require.NoError(t, err)
	assert.IsType(t, &YAMLStore{}, s)

	s, err = Open("sqlite", filepath.Join(dir, "a.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open("mongo", "x")
	assert.True(t, errors.Is(err, ErrUnknownBackend))
}

func TestSQLiteGarbageFileFailsOnLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.db")
	garbage := []byte("definitely not a database file, just some text padding it out")
	require.NoError(t, os.WriteFile(path, garbage, 0644))

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Load()
	var pe *PersistenceError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "load", pe.Op)

	assert.True(t, IsPersistenceError(s.Save(Base{"ash": {}})))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, garbage, data)
}

func TestSQLiteMissingFileIsNotCreatedByLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kb.db")
	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	base, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, base)
	assert.NoDirExists(t, filepath.Dir(path))

	require.NoError(t, s.Save(Base{"ash": {"tema": "ninja"}}))
	assert.FileExists(t, path)
}
