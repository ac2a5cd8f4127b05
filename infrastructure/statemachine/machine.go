// Package statemachine provides the statekit integration for the run
// loop. The statechart enforces which run phase transitions are legal;
// the runner drives it by sending events as it decides, acts, and
// refreshes the model.
package statemachine

import (
	"github.com/felixgeelhaar/statekit"
)

// Phase identifies a phase of a layered run.
type Phase string

const (
	// PhaseDeciding means the agent is being asked for a decision.
	PhaseDeciding Phase = "deciding"
	// PhaseActing means a committed action is being applied.
	PhaseActing Phase = "acting"
	// PhaseRefreshing means a new model is being fetched.
	PhaseRefreshing Phase = "refreshing"
	// PhaseCompleted means the run reached its goal.
	PhaseCompleted Phase = "completed"
	// PhaseStalled means the run gave up without reaching the goal.
	PhaseStalled Phase = "stalled"
	// PhaseFailed means the run aborted with an error.
	PhaseFailed Phase = "failed"
)

// IsTerminal reports whether the phase ends the run.
func (p Phase) IsTerminal() bool {
	switch p {
	case PhaseCompleted, PhaseStalled, PhaseFailed:
		return true
	}
	return false
}

// Run loop events.
const (
	// EventCommit signals a committed decision.
	EventCommit statekit.EventType = "COMMIT"
	// EventRequestModel signals the layers escalated for a new model.
	EventRequestModel statekit.EventType = "REQUEST_MODEL"
	// EventActed signals the committed action was applied.
	EventActed statekit.EventType = "ACTED"
	// EventRefreshed signals a model refresh succeeded.
	EventRefreshed statekit.EventType = "REFRESHED"
	// EventGoal signals the goal predicate holds.
	EventGoal statekit.EventType = "GOAL"
	// EventBudget signals the step budget is exhausted.
	EventBudget statekit.EventType = "BUDGET"
	// EventStall signals the stall limit was reached.
	EventStall statekit.EventType = "STALL"
	// EventFail signals an unrecoverable error.
	EventFail statekit.EventType = "FAIL"
)

// State IDs as StateID type for statekit.
const (
	phaseDeciding   statekit.StateID = statekit.StateID(PhaseDeciding)
	phaseActing     statekit.StateID = statekit.StateID(PhaseActing)
	phaseRefreshing statekit.StateID = statekit.StateID(PhaseRefreshing)
	phaseCompleted  statekit.StateID = statekit.StateID(PhaseCompleted)
	phaseStalled    statekit.StateID = statekit.StateID(PhaseStalled)
	phaseFailed     statekit.StateID = statekit.StateID(PhaseFailed)
)

// Context carries run counters through the state machine.
type Context struct {
	// Step counts applied actions.
	Step int
	// Stalls counts consecutive model requests without a commit.
	Stalls int
	// MaxSteps bounds Step (0 means unlimited).
	MaxSteps int
	// StallLimit bounds Stalls (0 means unlimited).
	StallLimit int
	// Outcome describes how the run ended.
	Outcome string
}

// NewContext creates a machine context with the given budgets.
func NewContext(maxSteps, stallLimit int) *Context {
	return &Context{
		MaxSteps:   maxSteps,
		StallLimit: stallLimit,
	}
}

// NewRunMachine creates the canonical run statechart.
func NewRunMachine() (*statekit.MachineConfig[*Context], error) {
	return statekit.NewMachine[*Context]("run").
		WithInitial(phaseDeciding).
		WithContext(&Context{}).
		// Register actions
		WithAction("recordCommit", recordCommit).
		WithAction("recordRequest", recordRequest).
		WithAction("recordStep", recordStep).
		WithAction("recordOutcome", recordOutcome).
		WithAction("recordFinalStep", recordFinalStep).
		// Register guards
		WithGuard("underStallLimit", guardUnderStallLimit).
		WithGuard("withinStepBudget", guardWithinStepBudget).
		// Define states
		State(phaseDeciding).
			On("COMMIT").Target(phaseActing).Guard("withinStepBudget").Do("recordCommit").
			On("REQUEST_MODEL").Target(phaseRefreshing).Guard("underStallLimit").Do("recordRequest").
			On("GOAL").Target(phaseCompleted).Do("recordOutcome").
			On("BUDGET").Target(phaseStalled).Do("recordOutcome").
			On("STALL").Target(phaseStalled).Do("recordOutcome").
			On("FAIL").Target(phaseFailed).Do("recordOutcome").
			Done().
		State(phaseActing).
			On("ACTED").Target(phaseDeciding).Do("recordStep").
			On("GOAL").Target(phaseCompleted).Do("recordFinalStep").
			On("FAIL").Target(phaseFailed).Do("recordOutcome").
			Done().
		State(phaseRefreshing).
			On("REFRESHED").Target(phaseDeciding).
			On("FAIL").Target(phaseFailed).Do("recordOutcome").
			Done().
		State(phaseCompleted).
			Final().
			Done().
		State(phaseStalled).
			Final().
			Done().
		State(phaseFailed).
			Final().
			Done().
		Build()
}
