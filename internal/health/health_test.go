package health

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/adivina/internal/config"
	"github.com/jeanpaul/adivina/internal/knowledge"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Storage.Path = filepath.Join(dir, "warframes.json")
	cfg.Assets.Dir = filepath.Join(dir, "recursos")
	cfg.Log.File = filepath.Join(dir, "logs", "adivina.log")
	return cfg
}

func byCheck(statuses []Status) map[string]Status {
	out := make(map[string]Status, len(statuses))
	for _, s := range statuses {
		out[s.Check] = s
	}
	return out
}

func TestCheckHealthy(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, knowledge.NewJSONStore(cfg.Storage.Path).Save(knowledge.Base{
		"ash":  {"tema": "ninja"},
		"loki": {"rol": "sigilo"},
	}))
	require.NoError(t, os.MkdirAll(cfg.Assets.Dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Assets.Dir, "ash.png"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Assets.Dir, "notes.txt"), nil, 0644))

	got := byCheck(Check(context.Background(), cfg))
	require.Len(t, got, 3)

	assert.True(t, got["storage"].OK)
	assert.Equal(t, "2 warframes", got["storage"].Detail)
	assert.True(t, got["assets"].OK)
	assert.Equal(t, "1 images", got["assets"].Detail)
	assert.True(t, got["log"].OK)
	assert.FileExists(t, cfg.Log.File)
}

func TestCheckReportsFailures(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.Storage.Path, []byte("{not json"), 0644))

	got := byCheck(Check(context.Background(), cfg))

	assert.False(t, got["storage"].OK)
	assert.Contains(t, got["storage"].Error, "invalid JSON")
	assert.False(t, got["assets"].OK)
	assert.True(t, got["log"].OK)
}

func TestCheckMissingStorageIsHealthy(t *testing.T) {
	cfg := testConfig(t)
	cfg.Assets.Dir = ""

	got := byCheck(Check(context.Background(), cfg))
	assert.True(t, got["storage"].OK)
	assert.Equal(t, "absent (empty)", got["storage"].Detail)
	assert.Equal(t, "disabled", got["assets"].Detail)
	assert.NoFileExists(t, cfg.Storage.Path)
}

func TestCheckMissingSQLiteIsNotCreated(t *testing.T) {
	cfg := testConfig(t)
	dir := filepath.Join(t.TempDir(), "datos")
	cfg.Storage.Backend = "sqlite"
	cfg.Storage.Path = filepath.Join(dir, "warframes.db")

	got := byCheck(Check(context.Background(), cfg))
	assert.True(t, got["storage"].OK)
	assert.Equal(t, "absent (empty)", got["storage"].Detail)
	assert.NoFileExists(t, cfg.Storage.Path)
	assert.NoDirExists(t, dir)
}

func TestCheckExistingSQLite(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Backend = "sqlite"
	cfg.Storage.Path = filepath.Join(t.TempDir(), "warframes.db")

	store, err := knowledge.Open("sqlite", cfg.Storage.Path)
	require.NoError(t, err)
	require.NoError(t, store.Save(knowledge.Base{"rhino": {"tema": "animal"}}))
	require.NoError(t, store.Close())

	got := byCheck(Check(context.Background(), cfg))
	assert.True(t, got["storage"].OK)
	assert.Equal(t, "1 warframes", got["storage"].Detail)
}
