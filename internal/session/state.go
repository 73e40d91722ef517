package session

// State is the controller's position in a round.
type State int

const (
	AskingQuestions State = iota
	Predicting
	Confirming
	AwaitingEntityName
	Resolved
	Quit
)

func (s State) String() string {
	switch s {
	case AskingQuestions:
		return "asking"
	case Predicting:
		return "predicting"
	case Confirming:
		return "confirming"
	case AwaitingEntityName:
		return "awaiting_name"
	case Resolved:
		return "resolved"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// Outcome is how a resolved round ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCorrect
	OutcomeLearned
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeLearned:
		return "learned"
	default:
		return "none"
	}
}

// Choice is the user's decision after a round.
type Choice int

const (
	ChoiceRestart Choice = iota
	ChoiceQuit
)
