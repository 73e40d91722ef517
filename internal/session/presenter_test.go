package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/adivina/internal/knowledge"
)

var errScriptDone = errors.New("script exhausted")

// scriptedPresenter replays canned answers and records what was shown.
type scriptedPresenter struct {
	options  []string
	confirms []bool
	names    []string
	choices  []Choice

	asked       []string
	predictions []string
	outcomes    []Outcome
	entities    []string
	errs        []error
}

func (p *scriptedPresenter) ShowQuestion(attr string, options []string) (string, error) {
	p.asked = append(p.asked, attr)
	if len(p.options) == 0 {
		return "", errScriptDone
	}
	o := p.options[0]
	p.options = p.options[1:]
	return o, nil
}

func (p *scriptedPresenter) ShowPrediction(entity string) {
	p.predictions = append(p.predictions, entity)
}

func (p *scriptedPresenter) RequestConfirmation() (bool, error) {
	if len(p.confirms) == 0 {
		return false, errScriptDone
	}
	c := p.confirms[0]
	p.confirms = p.confirms[1:]
	return c, nil
}

func (p *scriptedPresenter) RequestEntityName() (string, error) {
	if len(p.names) == 0 {
		return "", errScriptDone
	}
	n := p.names[0]
	p.names = p.names[1:]
	return n, nil
}

func (p *scriptedPresenter) ShowOutcome(kind Outcome, entity string) {
	p.outcomes = append(p.outcomes, kind)
	p.entities = append(p.entities, entity)
}

func (p *scriptedPresenter) ShowError(err error) { p.errs = append(p.errs, err) }

func (p *scriptedPresenter) OfferRestartOrQuit() (Choice, error) {
	if len(p.choices) == 0 {
		return ChoiceQuit, errScriptDone
	}
	c := p.choices[0]
	p.choices = p.choices[1:]
	return c, nil
}

func TestRunLearnsThenGuesses(t *testing.T) {
	store := &memStore{}
	base := knowledge.NewBase()
	c := newController(t, base, store)

	p := &scriptedPresenter{
		options:  append(append([]string{}, excaliburAnswers...), excaliburAnswers...),
		confirms: []bool{false, true},
		names:    []string{"", "  Volt "},
		choices:  []Choice{ChoiceRestart, ChoiceQuit},
	}

	require.NoError(t, Run(context.Background(), c, p))
	assert.Equal(t, Quit, c.State())
	assert.Equal(t, []string{"excalibur", "volt"}, p.predictions)
	assert.Equal(t, []Outcome{OutcomeLearned, OutcomeCorrect}, p.outcomes)
	assert.Equal(t, []string{"volt", "volt"}, p.entities)
	assert.Len(t, p.asked, 10)
	assert.Contains(t, store.saved, "volt")
}

func TestRunSurfacesPersistenceErrorAndRetries(t *testing.T) {
	store := &memStore{failErr: errors.New("permission denied")}
	c := newController(t, nil, store)

	p := &scriptedPresenter{
		options:  excaliburAnswers,
		confirms: []bool{false},
		names:    []string{"volt"},
	}

	err := Run(context.Background(), c, p)
	assert.True(t, errors.Is(err, errScriptDone))
	require.Len(t, p.errs, 1)
	assert.True(t, knowledge.IsPersistenceError(p.errs[0]))
	assert.Equal(t, AwaitingEntityName, c.State())
}

func TestRunReportsUnknownOption(t *testing.T) {
	c := newController(t, nil, nil)
	p := &scriptedPresenter{options: []string{"arquero"}}

	err := Run(context.Background(), c, p)
	assert.True(t, errors.Is(err, errScriptDone))
	require.Len(t, p.errs, 1)
	assert.True(t, errors.Is(p.errs[0], ErrUnknownOption))
	assert.Equal(t, []string{"rol", "rol"}, p.asked)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	c := newController(t, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, c, &scriptedPresenter{})
	assert.True(t, errors.Is(err, context.Canceled))
}
