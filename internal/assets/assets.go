// Package assets finds display images for entities. A missing image is a
// normal condition and never an error.
package assets

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Extensions are tried in this order.
var Extensions = []string{"png", "jpg", "jpeg", "gif"}

// Finder looks up images named after entities in one directory.
type Finder struct {
	dir  string
	fsys fs.FS
}

// NewFinder returns a Finder rooted at dir. An empty dir disables lookups.
func NewFinder(dir string) *Finder {
	f := &Finder{dir: dir}
	if dir != "" {
		f.fsys = os.DirFS(dir)
	}
	return f
}

// Lookup returns the path of the image for entity, if any.
func (f *Finder) Lookup(entity string) (string, bool) {
	if f == nil || f.fsys == nil {
		return "", false
	}
	name := strings.ToLower(strings.TrimSpace(entity))
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", false
	}

	pattern := escape(name) + ".{" + strings.Join(Extensions, ",") + "}"
	matches, err := doublestar.Glob(f.fsys, pattern, doublestar.WithFilesOnly())
	if err != nil || len(matches) == 0 {
		return "", false
	}

	// Prefer the extension order over glob order.
	for _, ext := range Extensions {
		for _, m := range matches {
			if strings.EqualFold(filepath.Ext(m), "."+ext) {
				return filepath.Join(f.dir, m), true
			}
		}
	}
	return filepath.Join(f.dir, matches[0]), true
}

// escape quotes glob metacharacters so entity names match literally.
func escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '{', '}':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
