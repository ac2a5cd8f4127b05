package agent

import "errors"

// Domain errors for agent construction.
var (
	// ErrNilDecider indicates a base agent was created without a decider.
	ErrNilDecider = errors.New("decider is required")

	// ErrNilActor indicates a base agent was created without an actor.
	ErrNilActor = errors.New("actor is required")

	// ErrNilMutater indicates a base agent was created without a mutater.
	ErrNilMutater = errors.New("mutater is required")

	// ErrNilUndoer indicates a base agent was created without an undoer.
	ErrNilUndoer = errors.New("undoer is required")
)
