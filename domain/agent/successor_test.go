package agent

import "testing"

func TestSuccessor_AgreementCommits(t *testing.T) {
	t.Parallel()

	// At (4,1), lowering the target to 3 still favors +1, so the probed
	// decision agrees and the layer commits.
	l := newCounterBase(t, 4, 1).Add(1)

	if d := l.Decide(); !d.IsAction() || d.Action != 1 {
		t.Errorf("Decide() = %+v, want Action(1)", d)
	}
}

func TestSuccessor_DisagreementEscalates(t *testing.T) {
	t.Parallel()

	// At (4,3), lowering the target to 3 flips the decision from +1 to
	// 0. A single disagreeing hypothetical is enough to escalate.
	l := newCounterBase(t, 4, 3).Add(1)

	if d := l.Decide(); !d.IsRequestModel() {
		t.Errorf("Decide() = %+v, want RequestModel", d)
	}
}

func TestSuccessor_ExhaustionEscalates(t *testing.T) {
	t.Parallel()

	// At (4,2) with two layers, every outer probe makes the inner layer
	// itself request a model, so all attempts are inconclusive and the
	// outer layer escalates rather than falling back to the base action.
	l := newCounterBase(t, 4, 2).Add(2)

	if d := l.Decide(); !d.IsRequestModel() {
		t.Errorf("Decide() = %+v, want RequestModel after exhausted probes", d)
	}
}

func TestSuccessor_ProbeBudget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		current       int
		layers        int
		opts          []Option
		wantMutations int
	}{
		{
			// First probe agrees, no further probes.
			name:          "agreement stops probing",
			current:       1,
			layers:        1,
			wantMutations: 1,
		},
		{
			// Each outer probe costs one outer mutation plus one inner
			// probe that disagrees immediately; default budget is 4.
			name:          "default limit exhausts",
			current:       2,
			layers:        2,
			wantMutations: DefaultMutationLimit * 2,
		},
		{
			name:          "custom limit exhausts sooner",
			current:       2,
			layers:        2,
			opts:          []Option{WithMutationLimit(2)},
			wantMutations: 2 * 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mutations := 0
			b := MustNewBase(
				counterModel{Target: 4, Current: tt.current},
				counterDecider,
				counterActor,
				func(m *counterModel) int {
					mutations++
					return counterMutater(m)
				},
				counterUndoer,
			)

			b.Add(tt.layers, tt.opts...).Decide()

			if mutations != tt.wantMutations {
				t.Errorf("mutations = %d, want %d", mutations, tt.wantMutations)
			}
		})
	}
}

func TestSuccessor_DecideIsIdempotent(t *testing.T) {
	t.Parallel()

	for _, layers := range []int{0, 1, 2, 3} {
		b := newCounterBase(t, 4, 2)
		l := b.Add(layers)

		first := l.Decide()
		second := l.Decide()

		if first != second {
			t.Errorf("layers=%d: Decide() = %+v then %+v, want identical", layers, first, second)
		}
		if got := b.Model(); got != (counterModel{Target: 4, Current: 2}) {
			t.Errorf("layers=%d: model after pure decisions = %+v, want {4 2}", layers, got)
		}
	}
}

func TestSuccessor_SafetyMonotonicity(t *testing.T) {
	t.Parallel()

	// A deeper stack never commits to an action a shallower stack would
	// disagree with - extra layers only add caution.
	for current := 0; current <= 4; current++ {
		for layers := 1; layers <= 3; layers++ {
			deeper := newCounterBase(t, 4, current).Add(layers).Decide()
			if !deeper.IsAction() {
				continue
			}

			shallower := newCounterBase(t, 4, current).Add(layers - 1).Decide()
			if shallower.IsAction() && shallower.Action != deeper.Action {
				t.Errorf("current=%d layers=%d: deeper committed %d but %d layers committed %d",
					current, layers, deeper.Action, layers-1, shallower.Action)
			}
		}
	}
}

// TestSuccessor_GoalSeekScenario is the end-to-end reference scenario: a
// goal of reaching 4 by unit increments, replayed at increasing safety
// levels and decremented back down.
func TestSuccessor_GoalSeekScenario(t *testing.T) {
	t.Parallel()

	z := newCounterBase(t, 4, 0)

	if d := z.Decide(); d != NewActionDecision(1) {
		t.Fatalf("base Decide() = %+v, want Action(1)", d)
	}
	mustAct[counterModel, int](t, z, 1)
	if got := z.Model(); got != (counterModel{Target: 4, Current: 1}) {
		t.Fatalf("base model = %+v, want {4 1}", got)
	}

	// One safety layer: two more steps, then the agent is undecided
	// whether the goal is 4 or 3 and asks for clarification.
	s := z.Clone().Add(1)
	mustAct[counterModel, int](t, s, 1)
	if got := s.Z().Model(); got != (counterModel{Target: 4, Current: 2}) {
		t.Fatalf("model = %+v, want {4 2}", got)
	}
	mustAct[counterModel, int](t, s, 1)
	if got := s.Z().Model(); got != (counterModel{Target: 4, Current: 3}) {
		t.Fatalf("model = %+v, want {4 3}", got)
	}
	if d := s.Decide(); !d.IsRequestModel() {
		t.Fatalf("one layer at {4 3}: Decide() = %+v, want RequestModel", d)
	}

	// Two safety layers: escalation comes one step earlier, undecided
	// between goals 4, 3 and 2.
	s = z.Clone().Add(2)
	mustAct[counterModel, int](t, s, 1)
	if got := s.Z().Model(); got != (counterModel{Target: 4, Current: 2}) {
		t.Fatalf("model = %+v, want {4 2}", got)
	}
	if d := s.Decide(); !d.IsRequestModel() {
		t.Fatalf("two layers at {4 2}: Decide() = %+v, want RequestModel", d)
	}

	// Decrease safety level back to one.
	s = s.Dec()
	mustAct[counterModel, int](t, s, 1)
	if got := s.Z().Model(); got != (counterModel{Target: 4, Current: 3}) {
		t.Fatalf("model = %+v, want {4 3}", got)
	}
	if d := s.Decide(); !d.IsRequestModel() {
		t.Fatalf("one layer at {4 3}: Decide() = %+v, want RequestModel", d)
	}

	// Decrease safety level back to zero and reach the goal.
	s = s.Dec()
	mustAct[counterModel, int](t, s, 1)
	if got := s.Z().Model(); got != (counterModel{Target: 4, Current: 4}) {
		t.Fatalf("model = %+v, want {4 4}", got)
	}
	if d := s.Decide(); d != NewActionDecision(0) {
		t.Fatalf("at goal: Decide() = %+v, want Action(0)", d)
	}
}
