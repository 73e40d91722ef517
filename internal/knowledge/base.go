// Package knowledge owns the knowledge base of known entities and its
// durable storage.
package knowledge

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Record maps attribute names to the value recorded for one entity.
// Records may be sparse.
type Record map[string]string

// Clone returns an independent copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Equal reports whether r and o hold the same attributes and values.
func (r Record) Equal(o Record) bool {
	if len(r) != len(o) {
		return false
	}
	for k, v := range r {
		if ov, ok := o[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Attributes returns the recorded attribute names, sorted.
func (r Record) Attributes() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r Record) lines() string {
	var b strings.Builder
	for _, k := range r.Attributes() {
		fmt.Fprintf(&b, "%s: %s\n", k, r[k])
	}
	return b.String()
}

// Base maps normalized entity names to their records.
type Base map[string]Record

// NewBase returns an empty knowledge base.
func NewBase() Base { return make(Base) }

// Names returns all entity names, sorted.
func (b Base) Names() []string {
	names := make([]string, 0, len(b))
	for n := range b {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Clone deep-copies b.
func (b Base) Clone() Base {
	out := make(Base, len(b))
	for n, r := range b {
		out[n] = r.Clone()
	}
	return out
}

// Put stores a copy of r under the normalized name and returns the record it
// replaced, if any. Empty names are ignored.
func (b Base) Put(name string, r Record) (Record, bool) {
	key := NormalizeName(name)
	if key == "" {
		return nil, false
	}
	prev, ok := b[key]
	b[key] = r.Clone()
	return prev, ok
}

// NormalizeName is the storage key for an entity name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DisplayName capitalizes each word of a stored name: "nova prime" -> "Nova Prime".
func DisplayName(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}

// normalize rebuilds raw with normalized keys. Keys that normalize to the
// same name resolve to the last one in sorted order; empty keys are dropped.
func normalize(raw map[string]map[string]string) Base {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b := make(Base, len(raw))
	for _, k := range keys {
		key := NormalizeName(k)
		if key == "" {
			continue
		}
		rec := make(Record, len(raw[k]))
		for attr, v := range raw[k] {
			rec[attr] = v
		}
		b[key] = rec
	}
	return b
}

func (b Base) raw() map[string]map[string]string {
	out := make(map[string]map[string]string, len(b))
	for n, r := range b {
		out[n] = map[string]string(r.Clone())
	}
	return out
}

// DiffRecords renders a unified diff between two versions of an entity.
// It returns "" when they are equal.
func DiffRecords(name string, before, after Record) string {
	if before.Equal(after) {
		return ""
	}
	a, c := before.lines(), after.lines()
	edits := myers.ComputeEdits(span.URIFromPath(name), a, c)
	return fmt.Sprint(gotextdiff.ToUnified(name+" (before)", name+" (after)", a, edits))
}
