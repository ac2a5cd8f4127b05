package statemachine

import (
	"github.com/felixgeelhaar/statekit"
)

// In statekit, guards receive the context by value. Since our context
// is *Context, guards receive *Context directly.

// guardUnderStallLimit blocks model requests once the stall limit is
// reached. A zero limit means unlimited.
func guardUnderStallLimit(ctx *Context, _ statekit.Event) bool {
	if ctx == nil {
		return false
	}
	return ctx.StallLimit <= 0 || ctx.Stalls < ctx.StallLimit
}

// guardWithinStepBudget blocks commits once the step budget is spent.
// A zero budget means unlimited.
func guardWithinStepBudget(ctx *Context, _ statekit.Event) bool {
	if ctx == nil {
		return false
	}
	return ctx.MaxSteps <= 0 || ctx.Step < ctx.MaxSteps
}
