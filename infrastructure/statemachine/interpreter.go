package statemachine

import (
	"github.com/felixgeelhaar/statekit"
)

// Interpreter wraps the statekit interpreter with run-specific
// functionality.
type Interpreter struct {
	interp *statekit.Interpreter[*Context]
	ctx    *Context
}

// NewInterpreter creates a new interpreter for the run state machine.
func NewInterpreter(machine *statekit.MachineConfig[*Context], ctx *Context) *Interpreter {
	interp := statekit.NewInterpreter(machine)
	// Update the context reference in the machine
	interp.UpdateContext(func(c **Context) {
		*c = ctx
	})
	return &Interpreter{
		interp: interp,
		ctx:    ctx,
	}
}

// Start initializes the interpreter and enters the initial state.
func (i *Interpreter) Start() {
	i.interp.Start()
}

// Stop stops the interpreter.
func (i *Interpreter) Stop() {
	i.interp.Stop()
}

// Phase returns the current run phase.
func (i *Interpreter) Phase() Phase {
	return Phase(i.interp.State().Value)
}

// Send delivers an event to the machine and reports whether it caused
// a transition. Guarded transitions whose guard rejects the event
// leave the machine in place and return false.
func (i *Interpreter) Send(eventType statekit.EventType, payload any) bool {
	before := i.interp.State().Value
	i.interp.Send(statekit.Event{
		Type:    eventType,
		Payload: payload,
	})
	return i.interp.State().Value != before
}

// Commit signals a committed decision. It returns false when the step
// budget guard rejects the commit.
func (i *Interpreter) Commit() bool {
	return i.Send(EventCommit, nil)
}

// RequestModel signals escalation for a fresh model. It returns false
// when the stall limit guard rejects the request.
func (i *Interpreter) RequestModel() bool {
	return i.Send(EventRequestModel, nil)
}

// Acted signals the committed action was applied.
func (i *Interpreter) Acted() {
	i.Send(EventActed, nil)
}

// Refreshed signals a successful model refresh.
func (i *Interpreter) Refreshed() {
	i.Send(EventRefreshed, nil)
}

// Goal ends the run as completed with the given outcome.
func (i *Interpreter) Goal(outcome string) {
	i.Send(EventGoal, OutcomePayload{Outcome: outcome})
}

// Budget ends the run as stalled because the step budget is spent.
func (i *Interpreter) Budget(outcome string) {
	i.Send(EventBudget, OutcomePayload{Outcome: outcome})
}

// Stall ends the run as stalled because the stall limit was reached.
func (i *Interpreter) Stall(outcome string) {
	i.Send(EventStall, OutcomePayload{Outcome: outcome})
}

// Fail ends the run as failed.
func (i *Interpreter) Fail(outcome string) {
	i.Send(EventFail, OutcomePayload{Outcome: outcome})
}

// IsTerminal returns true if the interpreter is in a terminal state.
func (i *Interpreter) IsTerminal() bool {
	return i.interp.Done()
}

// Matches checks if the current phase matches the given phase.
func (i *Interpreter) Matches(phase Phase) bool {
	return i.interp.Matches(statekit.StateID(phase))
}

// Context returns the interpreter context.
func (i *Interpreter) Context() *Context {
	return i.ctx
}
