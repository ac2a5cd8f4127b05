package agent

// DeciderFunc chooses the next action for a model. It must not mutate
// the model.
type DeciderFunc[M any, A comparable] func(model *M) A

// ActorFunc applies an action to the model in place.
type ActorFunc[M any, A comparable] func(model *M, action A)

// MutaterFunc perturbs the model in place and returns a delta
// sufficient to exactly reverse the perturbation.
type MutaterFunc[M, D any] func(model *M) D

// UndoerFunc reverses a perturbation in place given its delta. It is
// the exact inverse of the paired MutaterFunc call.
type UndoerFunc[M, D any] func(model *M, delta D)

// Base is an agent that only acts, assuming its model is perfect. It
// owns the single live model of any stack built on top of it and never
// requests a model update on its own.
//
// The four operations must be pure in the sense that they depend only
// on the model and their arguments; capturing mutable external state
// would break the undo guarantee the safety layers rely on.
type Base[M any, A comparable, D any] struct {
	model   M
	decider DeciderFunc[M, A]
	actor   ActorFunc[M, A]
	mutater MutaterFunc[M, D]
	undoer  UndoerFunc[M, D]
}

// NewBase creates a base agent from an initial model and its four
// operations. All four operations are required.
func NewBase[M any, A comparable, D any](
	model M,
	decider DeciderFunc[M, A],
	actor ActorFunc[M, A],
	mutater MutaterFunc[M, D],
	undoer UndoerFunc[M, D],
) (*Base[M, A, D], error) {
	if decider == nil {
		return nil, ErrNilDecider
	}
	if actor == nil {
		return nil, ErrNilActor
	}
	if mutater == nil {
		return nil, ErrNilMutater
	}
	if undoer == nil {
		return nil, ErrNilUndoer
	}

	return &Base[M, A, D]{
		model:   model,
		decider: decider,
		actor:   actor,
		mutater: mutater,
		undoer:  undoer,
	}, nil
}

// MustNewBase is like NewBase but panics on invalid arguments. Intended
// for static agent definitions where construction cannot fail.
func MustNewBase[M any, A comparable, D any](
	model M,
	decider DeciderFunc[M, A],
	actor ActorFunc[M, A],
	mutater MutaterFunc[M, D],
	undoer UndoerFunc[M, D],
) *Base[M, A, D] {
	b, err := NewBase(model, decider, actor, mutater, undoer)
	if err != nil {
		panic(err)
	}
	return b
}

// Model returns a copy of the current model.
func (b *Base[M, A, D]) Model() M {
	return b.model
}

// Clone returns a base agent with a copy of the current model and the
// same operations. Useful for replaying a scenario at a different
// safety level.
func (b *Base[M, A, D]) Clone() *Base[M, A, D] {
	clone := *b
	return &clone
}

// Add wraps the base agent in n safety layers, producing the Peano
// representation of n: zero layers is the zero case wrapping the base
// directly, each further layer is one successor shell. n below zero is
// treated as zero.
func (b *Base[M, A, D]) Add(n int, opts ...Option) *Layered[M, A, D] {
	layered := &Layered[M, A, D]{base: b}
	for ; n > 0; n-- {
		layered = layered.Inc(opts...)
	}
	return layered
}

// UpdateModel implements Agent.
func (b *Base[M, A, D]) UpdateModel(model M) {
	b.model = model
}

// Decide implements Agent. A base agent always commits to an action.
func (b *Base[M, A, D]) Decide() Decision[A] {
	return NewActionDecision(b.decider(&b.model))
}

// Act implements Agent.
func (b *Base[M, A, D]) Act(action A) {
	b.actor(&b.model, action)
}

// Mutate implements Agent.
func (b *Base[M, A, D]) Mutate() D {
	return b.mutater(&b.model)
}

// Undo implements Agent.
func (b *Base[M, A, D]) Undo(delta D) {
	b.undoer(&b.model, delta)
}

var _ Agent[struct{}, int, int] = (*Base[struct{}, int, int])(nil)
