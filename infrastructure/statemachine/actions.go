package statemachine

import (
	"github.com/felixgeelhaar/statekit"
)

// OutcomePayload carries the run outcome with a terminal event.
type OutcomePayload struct {
	Outcome string
}

// In statekit, actions receive a pointer to the context. Since our
// context is *Context, actions receive **Context.

// recordCommit resets the stall counter after a committed decision.
func recordCommit(ctx **Context, _ statekit.Event) {
	if ctx == nil || *ctx == nil {
		return
	}
	(*ctx).Stalls = 0
}

// recordRequest counts a model request toward the stall limit.
func recordRequest(ctx **Context, _ statekit.Event) {
	if ctx == nil || *ctx == nil {
		return
	}
	(*ctx).Stalls++
}

// recordStep counts an applied action toward the step budget.
func recordStep(ctx **Context, _ statekit.Event) {
	if ctx == nil || *ctx == nil {
		return
	}
	(*ctx).Step++
}

// recordOutcome stores the outcome carried by a terminal event.
func recordOutcome(ctx **Context, event statekit.Event) {
	if ctx == nil || *ctx == nil {
		return
	}
	if payload, ok := event.Payload.(OutcomePayload); ok {
		(*ctx).Outcome = payload.Outcome
	}
}

// recordFinalStep counts the action that reached the goal and stores
// the outcome.
func recordFinalStep(ctx **Context, event statekit.Event) {
	recordStep(ctx, event)
	recordOutcome(ctx, event)
}
