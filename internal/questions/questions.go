// Package questions holds the fixed interrogation schedule of a game: an
// ordered list of attributes, each with its ordered list of valid options.
package questions

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOutOfRange is returned by Set.At when the index is past the last question.
var ErrOutOfRange = errors.New("questions: index out of range")

// Attribute is a question category with its ordered options.
type Attribute struct {
	Name    string   `yaml:"name" mapstructure:"name"`
	Options []string `yaml:"options" mapstructure:"options"`
}

// Has reports whether option is one of the attribute's options.
func (a Attribute) Has(option string) bool {
	for _, o := range a.Options {
		if o == option {
			return true
		}
	}
	return false
}

func (a Attribute) clone() Attribute {
	opts := make([]string, len(a.Options))
	copy(opts, a.Options)
	return Attribute{Name: a.Name, Options: opts}
}

// Set is an immutable, ordered list of attributes.
type Set struct {
	attrs []Attribute
}

// New builds a Set, rejecting empty or duplicated names and options.
func New(attrs ...Attribute) (*Set, error) {
	if len(attrs) == 0 {
		return nil, fmt.Errorf("questions: at least one attribute is required")
	}
	seen := make(map[string]bool, len(attrs))
	s := &Set{attrs: make([]Attribute, 0, len(attrs))}
	for i, a := range attrs {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			return nil, fmt.Errorf("questions: attribute %d has an empty name", i)
		}
		if seen[name] {
			return nil, fmt.Errorf("questions: duplicate attribute %q", name)
		}
		seen[name] = true
		if len(a.Options) == 0 {
			return nil, fmt.Errorf("questions: attribute %q has no options", name)
		}
		opts := make(map[string]bool, len(a.Options))
		for _, o := range a.Options {
			if strings.TrimSpace(o) == "" {
				return nil, fmt.Errorf("questions: attribute %q has an empty option", name)
			}
			if opts[o] {
				return nil, fmt.Errorf("questions: attribute %q repeats option %q", name, o)
			}
			opts[o] = true
		}
		c := a.clone()
		c.Name = name
		s.attrs = append(s.attrs, c)
	}
	return s, nil
}

// MustNew is New for static tables; it panics on an invalid set.
func MustNew(attrs ...Attribute) *Set {
	s, err := New(attrs...)
	if err != nil {
		panic(err)
	}
	return s
}

// Default returns the built-in Warframe question set.
func Default() *Set {
	return MustNew(
		Attribute{Name: "rol", Options: []string{"daño", "supervivencia", "soporte", "control de masas", "sigilo"}},
		Attribute{Name: "genero", Options: []string{"masculino", "femenino"}},
		Attribute{Name: "elemento", Options: []string{"agua", "toxina", "fuego", "electricidad", "aire", "magia", "magnietico", "tierra", "hielo"}},
		Attribute{Name: "tema", Options: []string{"militar", "ninja", "animal", "mitologico", "magico", "necromante", "cibernetico"}},
		Attribute{Name: "dificultad", Options: []string{"alta", "media", "baja"}},
	)
}

// At returns the attribute asked at position i.
func (s *Set) At(i int) (Attribute, error) {
	if i < 0 || i >= len(s.attrs) {
		return Attribute{}, fmt.Errorf("%w: %d (have %d)", ErrOutOfRange, i, len(s.attrs))
	}
	return s.attrs[i].clone(), nil
}

// Count is the number of questions in the schedule.
func (s *Set) Count() int { return len(s.attrs) }

// Names lists the attribute names in schedule order.
func (s *Set) Names() []string {
	names := make([]string, len(s.attrs))
	for i, a := range s.attrs {
		names[i] = a.Name
	}
	return names
}

// Lookup finds an attribute by name.
func (s *Set) Lookup(name string) (Attribute, bool) {
	for _, a := range s.attrs {
		if a.Name == name {
			return a.clone(), true
		}
	}
	return Attribute{}, false
}
