// Package session drives one player through rounds of the guessing game:
// questions, prediction, confirmation and learning.
package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jeanpaul/adivina/internal/engine"
	"github.com/jeanpaul/adivina/internal/knowledge"
	"github.com/jeanpaul/adivina/internal/logging"
	"github.com/jeanpaul/adivina/internal/questions"
)

var (
	// ErrInvalidTransition is returned when an event does not apply to the current state.
	ErrInvalidTransition = errors.New("session: invalid transition")
	// ErrUnknownOption is returned when a selected option is not offered by the current question.
	ErrUnknownOption = errors.New("session: unknown option")
)

// Controller is the explicit state machine of a game session. It owns the
// answers of the current round; the knowledge base is shared by reference
// with the engine.
type Controller struct {
	questions *questions.Set
	engine    *engine.Engine
	base      knowledge.Base
	log       *logrus.Entry

	id          string
	state       State
	index       int
	answers     engine.Answers
	prediction  string
	outcome     Outcome
	learnedName string
}

// New builds a controller in AskingQuestions(0) with empty answers.
func New(qs *questions.Set, eng *engine.Engine, base knowledge.Base, log *logrus.Entry) *Controller {
	if base == nil {
		base = knowledge.NewBase()
	}
	if log == nil {
		log = logrus.NewEntry(logging.Discard())
	}
	c := &Controller{questions: qs, engine: eng, base: base, log: log}
	c.reset()
	return c
}

func (c *Controller) reset() {
	c.id = uuid.New().String()
	c.state = AskingQuestions
	c.index = 0
	c.answers = engine.Answers{}
	c.prediction = ""
	c.outcome = OutcomeNone
	c.learnedName = ""
	c.logger().Debug("round started")
}

func (c *Controller) logger() *logrus.Entry {
	return c.log.WithField("session_id", c.id)
}

func (c *Controller) State() State            { return c.state }
func (c *Controller) Index() int              { return c.index }
func (c *Controller) Prediction() string      { return c.prediction }
func (c *Controller) Outcome() Outcome        { return c.outcome }
func (c *Controller) LearnedName() string     { return c.learnedName }
func (c *Controller) SessionID() string       { return c.id }
func (c *Controller) Base() knowledge.Base    { return c.base }
func (c *Controller) Total() int              { return c.questions.Count() }
func (c *Controller) Answers() engine.Answers { return c.answers.Clone() }

// Question returns the attribute being asked. It panics outside
// AskingQuestions: an out of range index is a controller defect.
func (c *Controller) Question() questions.Attribute {
	if c.state != AskingQuestions {
		panic(fmt.Sprintf("session: Question called in state %s", c.state))
	}
	q, err := c.questions.At(c.index)
	if err != nil {
		panic(err)
	}
	return q
}

func (c *Controller) expect(s State, event string) error {
	if c.state != s {
		return fmt.Errorf("%w: %s in state %s", ErrInvalidTransition, event, c.state)
	}
	return nil
}

// SelectOption records the answer to the current question and advances.
// After the last question the controller predicts and ends in Confirming.
func (c *Controller) SelectOption(option string) error {
	if err := c.expect(AskingQuestions, "select"); err != nil {
		return err
	}
	q := c.Question()
	if !q.Has(option) {
		return fmt.Errorf("%w %q for %s", ErrUnknownOption, option, q.Name)
	}

	c.answers[q.Name] = option
	c.index++
	if c.index < c.questions.Count() {
		return nil
	}

	c.state = Predicting
	c.predict()
	return nil
}

func (c *Controller) predict() {
	c.prediction = c.engine.Predict(c.answers, c.base)
	c.state = Confirming
	c.logger().WithField("entity", c.prediction).Info("prediction made")
}

// Confirm answers the yes/no question about the prediction.
func (c *Controller) Confirm(correct bool) error {
	if err := c.expect(Confirming, "confirm"); err != nil {
		return err
	}
	if correct {
		c.state = Resolved
		c.outcome = OutcomeCorrect
		c.logger().WithField("entity", c.prediction).Info("guessed correctly")
		return nil
	}
	c.state = AwaitingEntityName
	return nil
}

// SubmitName learns the entity the user was thinking of. A blank name
// returns engine.ErrEmptyName and a persistence failure returns the
// *knowledge.PersistenceError; both keep the controller in
// AwaitingEntityName so the caller can ask again.
func (c *Controller) SubmitName(name string) error {
	if err := c.expect(AwaitingEntityName, "submit name"); err != nil {
		return err
	}
	res, err := c.engine.Learn(name, c.answers, c.base)
	if err != nil {
		return err
	}
	c.learnedName = res.Key
	c.state = Resolved
	c.outcome = OutcomeLearned
	return nil
}

// Restart begins a new round with cleared answers.
func (c *Controller) Restart() error {
	if err := c.expect(Resolved, "restart"); err != nil {
		return err
	}
	c.reset()
	return nil
}

// Quit ends the session.
func (c *Controller) Quit() error {
	if err := c.expect(Resolved, "quit"); err != nil {
		return err
	}
	c.state = Quit
	c.logger().Debug("session ended")
	return nil
}
