package agent

// Agent is the capability contract implemented by every agent-like
// entity in a layer stack. M is the model type, A the action type, D
// the delta type produced by reversible mutations.
//
// All operations run to completion synchronously and mutate the agent
// in place. Mutate and Undo must be paired in strict stack order with
// no intervening Act; the Probe guard on Layered enforces this pairing
// structurally and is the only way the library itself ever mutates
// tentatively.
type Agent[M any, A comparable, D any] interface {
	// UpdateModel unconditionally replaces the internal model for all
	// layers, delegating down to the innermost base agent.
	UpdateModel(model M)

	// Decide returns the next decision. Any model mutations performed
	// while deciding are strictly undone before Decide returns.
	Decide() Decision[A]

	// Act applies the action to the model. Irreversible - this
	// represents committing to the real world.
	Act(action A)

	// Mutate applies one tentative perturbation to the model and
	// returns the delta needed to reverse it.
	Mutate() D

	// Undo exactly reverses the most recent unreverted Mutate.
	Undo(delta D)
}
