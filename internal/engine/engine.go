// Package engine predicts which known entity matches a set of answers and
// learns new entities after a wrong guess.
package engine

import (
	"errors"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jeanpaul/adivina/internal/knowledge"
	"github.com/jeanpaul/adivina/internal/logging"
)

// DefaultEntity is predicted when the knowledge base is empty.
const DefaultEntity = "excalibur"

// ErrEmptyName is returned by Learn for a blank entity name. The knowledge
// base is left untouched and the caller should ask again.
var ErrEmptyName = errors.New("engine: entity name is empty")

// Answers is the user's chosen option per attribute.
type Answers = knowledge.Record

// Engine filters the knowledge base by answers and records corrections.
type Engine struct {
	store       knowledge.Store
	rng         *rand.Rand
	defaultName string
	log         *logrus.Entry
}

type Option func(*Engine)

// WithRand injects the random source used to break ties.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithDefault sets the name predicted for an empty knowledge base.
func WithDefault(name string) Option {
	return func(e *Engine) {
		if n := knowledge.NormalizeName(name); n != "" {
			e.defaultName = n
		}
	}
}

func WithLogger(l *logrus.Entry) Option {
	return func(e *Engine) { e.log = l }
}

// New returns an engine persisting through store.
func New(store knowledge.Store, opts ...Option) *Engine {
	e := &Engine{
		store:       store,
		defaultName: DefaultEntity,
		log:         logrus.NewEntry(logging.Discard()),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return e
}

// Candidates returns, sorted, the entities consistent with answers. An
// attribute the entity has not recorded never disqualifies it; a recorded
// one must equal the answer exactly.
func Candidates(answers Answers, base knowledge.Base) []string {
	var out []string
	for _, name := range base.Names() {
		if matches(base[name], answers) {
			out = append(out, name)
		}
	}
	return out
}

func matches(rec knowledge.Record, answers Answers) bool {
	for attr, want := range answers {
		got, ok := rec[attr]
		if !ok {
			continue
		}
		if got != want {
			return false
		}
	}
	return true
}

// Predict picks uniformly among the candidates, falling back to every known
// entity and then to the default name.
func (e *Engine) Predict(answers Answers, base knowledge.Base) string {
	candidates := Candidates(answers, base)
	pool := candidates
	if len(pool) == 0 {
		pool = base.Names()
	}

	var guess string
	if len(pool) == 0 {
		guess = e.defaultName
	} else {
		guess = pool[e.rng.Intn(len(pool))]
	}

	e.log.WithFields(logrus.Fields{
		"candidates": len(candidates),
		"known":      len(base),
		"entity":     guess,
		"answers":    SortedAnswers(answers),
	}).Debug("prediction")
	return guess
}

// LearnResult describes the effect of a successful Learn.
type LearnResult struct {
	Key      string
	Replaced bool
	Previous knowledge.Record
}

// Learn stores answers under the normalized name, replacing any previous
// record, and persists the whole base. When saving fails the in-memory base
// keeps the new record and the *knowledge.PersistenceError is returned.
func (e *Engine) Learn(name string, answers Answers, base knowledge.Base) (LearnResult, error) {
	if strings.TrimSpace(name) == "" {
		return LearnResult{}, ErrEmptyName
	}

	key := knowledge.NormalizeName(name)
	prev, replaced := base.Put(key, answers)
	res := LearnResult{Key: key, Replaced: replaced, Previous: prev}

	fields := logrus.Fields{"entity": key, "replaced": replaced}
	if replaced {
		if diff := knowledge.DiffRecords(key, prev, base[key]); diff != "" {
			fields["diff"] = diff
		}
	}

	if err := e.store.Save(base); err != nil {
		e.log.WithFields(fields).WithError(err).Error("failed to persist learned entity")
		return res, err
	}

	e.log.WithFields(fields).Info("learned entity")
	return res, nil
}

// SortedAnswers lists answers as "attr=value" pairs for display and logs.
func SortedAnswers(a Answers) []string {
	out := make([]string, 0, len(a))
	for k, v := range a {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
