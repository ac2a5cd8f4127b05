// Package main demonstrates driving a layered agent with the runner,
// persisting the run ledger to an in-memory store.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/felixgeelhaar/layerkit/domain/agent"
	"github.com/felixgeelhaar/layerkit/domain/ledger"
	"github.com/felixgeelhaar/layerkit/infrastructure/storage/memory"
	"github.com/felixgeelhaar/layerkit/runner"
)

// counter seeks a target value one unit at a time.
type counter struct {
	Target  int `json:"target"`
	Current int `json:"current"`
}

func newCounterAgent(model counter, layers int) *agent.Layered[counter, int, int] {
	base := agent.MustNewBase(
		model,
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
		func(m *counter, action int) {
			m.Current += action
		},
		func(m *counter) int {
			if m.Target > 0 {
				m.Target--
				return -1
			}
			return 0
		},
		func(m *counter, delta int) {
			m.Target -= delta
		},
	)
	return base.Add(layers)
}

func main() {
	ctx := context.Background()

	// 1. One safety layer over a counter one unit short of its goal.
	// The layer escalates on the first decision.
	layered := newCounterAgent(counter{Target: 4, Current: 3}, 1)

	// 2. A source answering escalations with a model further from the
	// goal, where the decision is stable again.
	source := runner.StaticSource(counter{Target: 6, Current: 3})

	// 3. An in-memory ledger store keeps the full run record.
	store := memory.NewLedgerStore()

	// 4. Build the runner. The goal stops the run once the counter is
	// past the original target.
	r, err := runner.New(runner.Config[counter, int, int]{
		Agent:  layered,
		Source: source,
		Store:  store,
		Goal: func(m counter) bool {
			return m.Current >= 4
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	// 5. Run to a terminal phase.
	result, err := r.Run(ctx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("=== Runner Example ===")
	fmt.Printf("Phase:   %s\n", result.Phase)
	fmt.Printf("Steps:   %d\n", result.Steps)
	fmt.Printf("Outcome: %s\n", result.Outcome)

	// 6. Read the persisted ledger back from the store.
	entries, err := store.Load(ctx, result.RunID)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Ledger (%d entries):\n", len(entries))
	for _, entry := range entries {
		fmt.Printf("  step %d: %s\n", entry.Step, entry.Type)
	}

	requests := result.Ledger.EntriesByType(ledger.EntryModelRequested)
	fmt.Printf("Model requests: %d\n", len(requests))
}
