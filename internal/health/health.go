// Package health runs the diagnostics behind `adivina doctor`.
package health

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/jeanpaul/adivina/internal/assets"
	"github.com/jeanpaul/adivina/internal/config"
	"github.com/jeanpaul/adivina/internal/knowledge"
)

type Status struct {
	Check   string
	Target  string
	OK      bool
	Detail  string
	Error   string
	Latency time.Duration
}

// Check runs every diagnostic against cfg. A failing check never stops the
// others.
func Check(ctx context.Context, cfg *config.Config) []Status {
	return []Status{
		timed(func() Status { return checkStorage(ctx, cfg.Storage.Backend, cfg.Storage.Path) }),
		timed(func() Status { return checkAssets(cfg.Assets.Dir) }),
		timed(func() Status { return checkLog(cfg.Log.File) }),
	}
}

func timed(fn func() Status) Status {
	start := time.Now()
	s := fn()
	s.Latency = time.Since(start)
	return s
}

func checkStorage(ctx context.Context, backend, path string) Status {
	s := Status{Check: "storage", Target: backend + ":" + path}

	// doctor never creates the store it inspects.
	if path != ":memory:" {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			s.OK = true
			s.Detail = "absent (empty)"
			return s
		} else if err != nil {
			s.Error = err.Error()
			return s
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	type result struct {
		n   int
		err error
	}
	done := make(chan result, 1)
	go func() {
		store, err := knowledge.Open(backend, path)
		if err != nil {
			done <- result{err: err}
			return
		}
		defer store.Close()
		base, err := store.Load()
		done <- result{n: len(base), err: err}
	}()

	select {
	case <-ctx.Done():
		s.Error = ctx.Err().Error()
	case r := <-done:
		if r.err != nil {
			s.Error = r.err.Error()
			return s
		}
		s.OK = true
		s.Detail = fmt.Sprintf("%d warframes", r.n)
	}
	return s
}

func checkAssets(dir string) Status {
	s := Status{Check: "assets", Target: dir}
	if dir == "" {
		s.OK = true
		s.Detail = "disabled"
		return s
	}
	info, err := os.Stat(dir)
	if err != nil {
		s.Error = err.Error()
		return s
	}
	if !info.IsDir() {
		s.Error = "not a directory"
		return s
	}
	pattern := "*.{" + strings.Join(assets.Extensions, ",") + "}"
	images, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		s.Error = err.Error()
		return s
	}
	s.OK = true
	s.Detail = fmt.Sprintf("%d images", len(images))
	return s
}

func checkLog(file string) Status {
	s := Status{Check: "log", Target: file}
	if file == "" {
		s.OK = true
		s.Detail = "disabled"
		return s
	}
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		s.Error = err.Error()
		return s
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		s.Error = err.Error()
		return s
	}
	f.Close()
	s.OK = true
	s.Detail = "writable"
	return s
}
