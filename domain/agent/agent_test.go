package agent

import "testing"

// counterModel is the reference goal-seek scenario: reach Target by
// unit increments of Current.
type counterModel struct {
	Target  int
	Current int
}

func counterDecider(m *counterModel) int {
	switch {
	case m.Current < m.Target:
		return 1
	case m.Current > m.Target:
		return -1
	default:
		return 0
	}
}

func counterActor(m *counterModel, action int) {
	m.Current += action
}

// counterMutater questions the goal by lowering the target one step.
func counterMutater(m *counterModel) int {
	if m.Target > 0 {
		m.Target--
		return -1
	}
	return 0
}

func counterUndoer(m *counterModel, delta int) {
	m.Target -= delta
}

func newCounterBase(t *testing.T, target, current int) *Base[counterModel, int, int] {
	t.Helper()

	b, err := NewBase(
		counterModel{Target: target, Current: current},
		counterDecider,
		counterActor,
		counterMutater,
		counterUndoer,
	)
	if err != nil {
		t.Fatalf("NewBase error: %v", err)
	}
	return b
}

// mustAct asserts the decision commits to an action and applies it.
func mustAct[M any, D any](t *testing.T, a Agent[M, int, D], want int) {
	t.Helper()

	d := a.Decide()
	if !d.IsAction() {
		t.Fatalf("Decide() = %v, want action %d", d.Type, want)
	}
	if d.Action != want {
		t.Fatalf("Decide() action = %d, want %d", d.Action, want)
	}
	a.Act(d.Action)
}
