package agent

// DefaultMutationLimit bounds the number of probe attempts per decision
// when no explicit limit is configured via WithMutationLimit.
const DefaultMutationLimit = 4

// Successor is one safety layer: an agent holding a core agent one
// level shallower. It is only constructed through Add and Inc.
type Successor[M any, A comparable, D any] struct {
	core  *Layered[M, A, D]
	limit int
}

// Core returns the wrapped agent one safety level shallower.
func (s *Successor[M, A, D]) Core() *Layered[M, A, D] {
	return s.core
}

// MutationLimit returns the probe budget of this layer.
func (s *Successor[M, A, D]) MutationLimit() int {
	return s.limit
}

// UpdateModel implements Agent by replacing the model of the innermost
// base agent.
func (s *Successor[M, A, D]) UpdateModel(model M) {
	s.core.Z().UpdateModel(model)
}

// Decide implements Agent with one level of safety checking on top of
// the core decision.
//
// The unmutated innermost base decides first; using the core zero here
// keeps a full top-level decision linear in the layer count. If even
// the base cannot decide, no amount of checking helps, so the request
// propagates immediately. Otherwise the decision is probed under up to
// MutationLimit hypothetical model perturbations, each strictly undone
// before its outcome is inspected:
//
//   - the probed decision agrees with the base decision: commit it,
//     agreement across a model change increases confidence.
//   - the probed decision disagrees: request a model update, a single
//     hypothetical that flips the decision is enough to escalate.
//   - the probed decision is itself a model request: inconclusive, try
//     the next perturbation.
//
// Exhausting the probe budget without confirmation also requests a
// model update. Falling back to the unconfirmed base action here would
// regress safety at higher layers.
func (s *Successor[M, A, D]) Decide() Decision[A] {
	first := s.core.Z().Decide()
	if first.IsRequestModel() {
		return first
	}

	for i := 0; i < s.limit; i++ {
		probe := s.core.Probe()
		probed := s.core.Decide()
		probe.End()

		if probed.IsRequestModel() {
			continue
		}
		if probed.Action == first.Action {
			return first
		}
		return NewRequestModelDecision[A]()
	}

	return NewRequestModelDecision[A]()
}

// Act implements Agent by applying the action to the innermost base
// agent's model.
func (s *Successor[M, A, D]) Act(action A) {
	s.core.Z().Act(action)
}

// Mutate implements Agent by perturbing one level down. Delegating to
// the core rather than the base keeps the delta bookkeeping of
// intermediate layers intact.
func (s *Successor[M, A, D]) Mutate() D {
	return s.core.Mutate()
}

// Undo implements Agent by reversing the perturbation on the innermost
// base agent.
func (s *Successor[M, A, D]) Undo(delta D) {
	s.core.Z().Undo(delta)
}

var _ Agent[struct{}, int, int] = (*Successor[struct{}, int, int])(nil)
