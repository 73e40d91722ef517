package session

import (
	"context"
	"errors"

	"github.com/jeanpaul/adivina/internal/engine"
)

// Presenter is the presentation layer the Run loop talks to. Every
// request method blocks until the user answers.
type Presenter interface {
	// ShowQuestion displays an attribute with its options and returns the chosen one.
	ShowQuestion(attribute string, options []string) (string, error)

	// ShowPrediction displays the guessed entity. Implementations may look up
	// an image for it; a missing image is not an error.
	ShowPrediction(entity string)

	RequestConfirmation() (bool, error)
	RequestEntityName() (string, error)

	// ShowOutcome reports how the round ended; entity is the guessed or learned name.
	ShowOutcome(kind Outcome, entity string)

	// ShowError reports a recoverable failure such as a persistence error.
	ShowError(err error)

	OfferRestartOrQuit() (Choice, error)
}

// Run plays rounds on c through p until the user quits, p fails or ctx is
// cancelled.
func Run(ctx context.Context, c *Controller, p Presenter) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch c.State() {
		case AskingQuestions:
			q := c.Question()
			choice, err := p.ShowQuestion(q.Name, q.Options)
			if err != nil {
				return err
			}
			if err := c.SelectOption(choice); err != nil {
				if errors.Is(err, ErrUnknownOption) {
					p.ShowError(err)
					continue
				}
				return err
			}

		case Confirming:
			p.ShowPrediction(c.Prediction())
			ok, err := p.RequestConfirmation()
			if err != nil {
				return err
			}
			if err := c.Confirm(ok); err != nil {
				return err
			}

		case AwaitingEntityName:
			name, err := p.RequestEntityName()
			if err != nil {
				return err
			}
			if err := c.SubmitName(name); err != nil {
				if errors.Is(err, engine.ErrEmptyName) {
					continue
				}
				// Persistence failures keep the round open for a retry.
				p.ShowError(err)
				continue
			}

		case Resolved:
			entity := c.Prediction()
			if c.Outcome() == OutcomeLearned {
				entity = c.LearnedName()
			}
			p.ShowOutcome(c.Outcome(), entity)

			choice, err := p.OfferRestartOrQuit()
			if err != nil {
				return err
			}
			if choice == ChoiceQuit {
				return c.Quit()
			}
			if err := c.Restart(); err != nil {
				return err
			}

		case Quit:
			return nil

		default:
			return ErrInvalidTransition
		}
	}
}
