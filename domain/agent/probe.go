package agent

// Probe is a scoped guard around one tentative model perturbation. It
// captures the delta when created and guarantees the perturbation is
// reverted exactly once when ended, making the mutate/undo pairing
// impossible to misorder.
type Probe[M any, A comparable, D any] struct {
	core  *Layered[M, A, D]
	delta D
	ended bool
}

// Probe perturbs the model one level down and returns a guard holding
// the reversing delta. The caller must End the probe before the next
// externally visible read of the model, and must not interleave probes
// with Act or UpdateModel on the same stack.
func (l *Layered[M, A, D]) Probe() *Probe[M, A, D] {
	return &Probe[M, A, D]{core: l, delta: l.Mutate()}
}

// End reverts the perturbation. End is idempotent; only the first call
// undoes.
func (p *Probe[M, A, D]) End() {
	if p.ended {
		return
	}
	p.ended = true
	p.core.Undo(p.delta)
}

// Ended returns true if the probe has been reverted.
func (p *Probe[M, A, D]) Ended() bool {
	return p.ended
}
