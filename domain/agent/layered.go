package agent

// Layered is an agent with n added safety layers. It is a two-variant
// recursive structure: the zero case wraps a Base directly, the
// successor case wraps a Successor holding a Layered agent one level
// shallower. Exactly one of the two fields is set.
//
// The structure owns its contents by value down to the single Base at
// the bottom; there is no sharing between stacks and no cycles.
type Layered[M any, A comparable, D any] struct {
	base *Base[M, A, D]
	succ *Successor[M, A, D]
}

// Z descends through all successor shells and returns the unique
// innermost base agent - the single owner of the model. Every layer's
// UpdateModel, Act, and Undo ultimately target this agent.
func (l *Layered[M, A, D]) Z() *Base[M, A, D] {
	if l.base != nil {
		return l.base
	}
	return l.succ.core.Z()
}

// IsZero returns true if the agent has no safety layers.
func (l *Layered[M, A, D]) IsZero() bool {
	return l.base != nil
}

// Depth returns the number of safety layers.
func (l *Layered[M, A, D]) Depth() int {
	depth := 0
	for cur := l; cur.succ != nil; cur = cur.succ.core {
		depth++
	}
	return depth
}

// Dec removes the outermost safety layer in O(1), leaving the inner
// structure unchanged. Decrementing the zero case returns it as is.
func (l *Layered[M, A, D]) Dec() *Layered[M, A, D] {
	if l.base != nil {
		return l
	}
	return l.succ.core
}

// Inc adds one safety layer in O(1), wrapping the agent in a new
// successor shell.
func (l *Layered[M, A, D]) Inc(opts ...Option) *Layered[M, A, D] {
	o := applyOptions(opts)
	return &Layered[M, A, D]{
		succ: &Successor[M, A, D]{
			core:  l,
			limit: o.mutationLimit,
		},
	}
}

// Successor returns the outermost successor shell, or nil for the zero
// case.
func (l *Layered[M, A, D]) Successor() *Successor[M, A, D] {
	return l.succ
}

// UpdateModel implements Agent.
func (l *Layered[M, A, D]) UpdateModel(model M) {
	if l.base != nil {
		l.base.UpdateModel(model)
		return
	}
	l.succ.UpdateModel(model)
}

// Decide implements Agent.
func (l *Layered[M, A, D]) Decide() Decision[A] {
	if l.base != nil {
		return l.base.Decide()
	}
	return l.succ.Decide()
}

// Act implements Agent.
func (l *Layered[M, A, D]) Act(action A) {
	if l.base != nil {
		l.base.Act(action)
		return
	}
	l.succ.Act(action)
}

// Mutate implements Agent.
func (l *Layered[M, A, D]) Mutate() D {
	if l.base != nil {
		return l.base.Mutate()
	}
	return l.succ.Mutate()
}

// Undo implements Agent.
func (l *Layered[M, A, D]) Undo(delta D) {
	if l.base != nil {
		l.base.Undo(delta)
		return
	}
	l.succ.Undo(delta)
}

var _ Agent[struct{}, int, int] = (*Layered[struct{}, int, int])(nil)
