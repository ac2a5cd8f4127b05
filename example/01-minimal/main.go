// Package main demonstrates direct use of the safety layers without the
// runner. This is the simplest possible layerkit example.
package main

import (
	"fmt"

	"github.com/felixgeelhaar/layerkit/domain/agent"
)

// counter seeks a target value one unit at a time.
type counter struct {
	Target  int
	Current int
}

func newBase(model counter) *agent.Base[counter, int, int] {
	return agent.MustNewBase(
		model,
		// Decider: move one unit toward the target.
		func(m *counter) int {
			switch {
			case m.Current < m.Target:
				return 1
			case m.Current > m.Target:
				return -1
			default:
				return 0
			}
		},
		// Actor: apply the chosen step.
		func(m *counter, action int) {
			m.Current += action
		},
		// Mutater: perturb the target by one, returning the delta.
		func(m *counter) int {
			if m.Target > 0 {
				m.Target--
				return -1
			}
			return 0
		},
		// Undoer: reverse the perturbation exactly.
		func(m *counter, delta int) {
			m.Target -= delta
		},
	)
}

func main() {
	fmt.Println("=== Minimal Safety Layers Example ===")

	// One unit short of the goal. A perturbed target changes the
	// decision here, so safety layers refuse to act.
	model := counter{Target: 4, Current: 3}

	// 1. No layers: the base agent always commits.
	zero := newBase(model).Add(0)
	fmt.Printf("0 layers: %s\n", describe(zero.Decide()))

	// 2. One layer: probing the model flips the decision, so the
	// layer escalates instead of acting.
	one := newBase(model).Add(1)
	fmt.Printf("1 layer:  %s\n", describe(one.Decide()))

	// 3. Supplying a model further from the goal makes the decision
	// stable again.
	one.UpdateModel(counter{Target: 6, Current: 3})
	decision := one.Decide()
	fmt.Printf("updated:  %s\n", describe(decision))

	// 4. Commit the agreed action against the live model.
	one.Act(decision.Action)
	fmt.Printf("model after acting: %+v\n", one.Z().Model())

	// 5. Layers compose: Inc and Dec adjust the stack in O(1).
	two := one.Inc()
	fmt.Printf("depth after Inc: %d\n", two.Depth())
	fmt.Printf("depth after Dec: %d\n", two.Dec().Depth())
}

func describe(d agent.Decision[int]) string {
	if d.IsAction() {
		return fmt.Sprintf("act %+d", d.Action)
	}
	return "request a fresh model"
}
