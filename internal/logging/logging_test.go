package logging

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "adivina.log")
	logger, closer := New(path, "info", false)

	logger.WithField("entity", "rhino").Info("learned entity")
	logger.Debug("hidden")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "rhino", entry["entity"])
	assert.Equal(t, "learned entity", entry["msg"])
}

func TestVerboseRaisesLevel(t *testing.T) {
	logger, closer := New(filepath.Join(t.TempDir(), "a.log"), "warn", true)
	defer closer.Close()
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestUnopenableFileDiscards(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	logger, closer := New(filepath.Join(blocker, "a.log"), "bogus", false)
	assert.NotPanics(t, func() { logger.Info("dropped") })
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.NoError(t, closer.Close())
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.Equal(t, io.Discard, logger.Out)
	logger.Info("dropped")
}
