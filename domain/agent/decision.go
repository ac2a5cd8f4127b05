package agent

// DecisionType identifies the kind of decision an agent produced.
type DecisionType string

const (
	// DecisionAct commits to an action.
	DecisionAct DecisionType = "act"
	// DecisionRequestModel defers and asks for an updated model of the
	// environment.
	DecisionRequestModel DecisionType = "request_model"
)

// Decision is the sole result of Decide at every layer - exactly one of
// a committed action or a request for an updated model. The action type
// must be comparable so that independently derived decisions can be
// checked for agreement.
type Decision[A comparable] struct {
	Type DecisionType

	// Action is the committed action. Only meaningful when Type is
	// DecisionAct.
	Action A
}

// NewActionDecision creates a decision committing to the given action.
func NewActionDecision[A comparable](action A) Decision[A] {
	return Decision[A]{Type: DecisionAct, Action: action}
}

// NewRequestModelDecision creates a decision requesting an updated model.
func NewRequestModelDecision[A comparable]() Decision[A] {
	return Decision[A]{Type: DecisionRequestModel}
}

// IsAction returns true if the decision commits to an action.
func (d Decision[A]) IsAction() bool {
	return d.Type == DecisionAct
}

// IsRequestModel returns true if the decision requests an updated model.
func (d Decision[A]) IsRequestModel() bool {
	return d.Type == DecisionRequestModel
}

// String returns the string representation of the decision type.
func (t DecisionType) String() string {
	return string(t)
}
