package memory

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/layerkit/domain/ledger"
)

func TestLedgerStore_AppendAndLoad(t *testing.T) {
	t.Parallel()

	s := NewLedgerStore()
	ctx := context.Background()

	e1 := ledger.NewEntry(ledger.EntryRunStarted, "run-1", 0, nil)
	e2 := ledger.NewEntry(ledger.EntryDecision, "run-1", 1, nil)
	e3 := ledger.NewEntry(ledger.EntryRunStarted, "run-2", 0, nil)

	if err := s.Append(ctx, e1, e2); err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if err := s.Append(ctx, e3); err != nil {
		t.Fatalf("Append error: %v", err)
	}

	entries, err := s.Load(ctx, "run-1")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].ID != e1.ID || entries[1].ID != e2.ID {
		t.Error("entries out of append order")
	}
}

func TestLedgerStore_LoadUnknownRun(t *testing.T) {
	t.Parallel()

	s := NewLedgerStore()

	entries, err := s.Load(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}

func TestLedgerStore_Runs(t *testing.T) {
	t.Parallel()

	s := NewLedgerStore()
	ctx := context.Background()

	_ = s.Append(ctx, ledger.NewEntry(ledger.EntryRunStarted, "b", 0, nil))
	_ = s.Append(ctx, ledger.NewEntry(ledger.EntryRunStarted, "a", 0, nil))

	runs, err := s.Runs(ctx)
	if err != nil {
		t.Fatalf("Runs error: %v", err)
	}
	if len(runs) != 2 || runs[0] != "a" || runs[1] != "b" {
		t.Errorf("Runs() = %v, want [a b]", runs)
	}
}

func TestLedgerStore_CancelledContext(t *testing.T) {
	t.Parallel()

	s := NewLedgerStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Append(ctx, ledger.NewEntry(ledger.EntryRunStarted, "run-1", 0, nil)); err == nil {
		t.Error("Append with cancelled context should fail")
	}
	if _, err := s.Load(ctx, "run-1"); err == nil {
		t.Error("Load with cancelled context should fail")
	}
}
