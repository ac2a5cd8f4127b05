package agent

import (
	"errors"
	"testing"
)

func TestNewBase_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		decider DeciderFunc[counterModel, int]
		actor   ActorFunc[counterModel, int]
		mutater MutaterFunc[counterModel, int]
		undoer  UndoerFunc[counterModel, int]
		wantErr error
	}{
		{
			name:    "nil decider",
			actor:   counterActor,
			mutater: counterMutater,
			undoer:  counterUndoer,
			wantErr: ErrNilDecider,
		},
		{
			name:    "nil actor",
			decider: counterDecider,
			mutater: counterMutater,
			undoer:  counterUndoer,
			wantErr: ErrNilActor,
		},
		{
			name:    "nil mutater",
			decider: counterDecider,
			actor:   counterActor,
			undoer:  counterUndoer,
			wantErr: ErrNilMutater,
		},
		{
			name:    "nil undoer",
			decider: counterDecider,
			actor:   counterActor,
			mutater: counterMutater,
			wantErr: ErrNilUndoer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewBase(counterModel{}, tt.decider, tt.actor, tt.mutater, tt.undoer)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewBase error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		b, err := NewBase(counterModel{Target: 4}, counterDecider, counterActor, counterMutater, counterUndoer)
		if err != nil {
			t.Fatalf("NewBase error: %v", err)
		}
		if b.Model().Target != 4 {
			t.Errorf("Model().Target = %d, want 4", b.Model().Target)
		}
	})
}

func TestMustNewBase_Panics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("MustNewBase did not panic on nil decider")
		}
	}()

	MustNewBase[counterModel, int, int](counterModel{}, nil, counterActor, counterMutater, counterUndoer)
}

func TestBase_DecideAlwaysActs(t *testing.T) {
	t.Parallel()

	b := newCounterBase(t, 4, 0)

	for i := 0; i < 10; i++ {
		if d := b.Decide(); !d.IsAction() {
			t.Fatalf("Decide() = %v, base agents never request a model", d.Type)
		}
	}
}

func TestBase_Act(t *testing.T) {
	t.Parallel()

	b := newCounterBase(t, 4, 0)

	mustAct[counterModel, int](t, b, 1)
	if got := b.Model(); got != (counterModel{Target: 4, Current: 1}) {
		t.Errorf("model = %+v, want {4 1}", got)
	}
}

func TestBase_MutateUndoRoundTrip(t *testing.T) {
	t.Parallel()

	b := newCounterBase(t, 4, 2)
	before := b.Model()

	delta := b.Mutate()
	if b.Model() == before {
		t.Fatal("Mutate() did not perturb the model")
	}
	b.Undo(delta)
	if got := b.Model(); got != before {
		t.Errorf("model after undo = %+v, want %+v", got, before)
	}
}

func TestBase_UpdateModel(t *testing.T) {
	t.Parallel()

	b := newCounterBase(t, 4, 0)
	b.UpdateModel(counterModel{Target: 7, Current: 3})

	if got := b.Model(); got != (counterModel{Target: 7, Current: 3}) {
		t.Errorf("model = %+v, want {7 3}", got)
	}
}

func TestBase_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	b := newCounterBase(t, 4, 0)
	clone := b.Clone()

	b.Act(1)

	if clone.Model().Current != 0 {
		t.Errorf("clone model moved with original: %+v", clone.Model())
	}
	if b.Model().Current != 1 {
		t.Errorf("original model = %+v, want Current 1", b.Model())
	}
}

func TestBase_Add(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		layers    int
		wantDepth int
	}{
		{name: "zero", layers: 0, wantDepth: 0},
		{name: "one", layers: 1, wantDepth: 1},
		{name: "three", layers: 3, wantDepth: 3},
		{name: "negative treated as zero", layers: -2, wantDepth: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := newCounterBase(t, 4, 0)
			l := b.Add(tt.layers)

			if got := l.Depth(); got != tt.wantDepth {
				t.Errorf("Depth() = %d, want %d", got, tt.wantDepth)
			}
			if l.Z() != b {
				t.Error("Z() is not the original base agent")
			}
		})
	}
}
