// Package logging sets up the file logger. The terminal belongs to the game,
// so nothing is ever written to stdout or stderr.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// New returns a JSON logger appending to file at level. When the file cannot
// be opened the logger discards everything; the returned closer is always
// safe to call.
func New(file, level string, verbose bool) (*logrus.Logger, io.Closer) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	if verbose {
		lvl = logrus.DebugLevel
	}
	logger.SetLevel(lvl)

	if file == "" {
		logger.SetOutput(io.Discard)
		return logger, nopCloser{}
	}
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		logger.SetOutput(io.Discard)
		return logger, nopCloser{}
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logger.SetOutput(io.Discard)
		return logger, nopCloser{}
	}
	logger.SetOutput(f)
	return logger, f
}

// Discard returns a logger that drops every entry.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
