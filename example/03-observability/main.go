// Package main demonstrates running a layered agent with tracing and
// metrics exported to stdout.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/felixgeelhaar/layerkit/domain/agent"
	"github.com/felixgeelhaar/layerkit/infrastructure/observability"
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

	// 1. Set up observability with stdout exporters. The run span and
	// its attributes print when the provider shuts down.
	provider, err := observability.NewStdoutProvider("layerkit-example")
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := provider.Shutdown(ctx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	// 2. A one-layer agent that escalates once before reaching its
	// goal, so the trace shows a model refresh.
	layered := newCounterAgent(counter{Target: 4, Current: 3}, 1)
	source := runner.StaticSource(counter{Target: 6, Current: 3})

	// 3. Wire the provider's metrics into the runner.
	r, err := runner.New(runner.Config[counter, int, int]{
		Agent:   layered,
		Source:  source,
		Metrics: provider.Metrics(),
		Goal: func(m counter) bool {
			return m.Current >= 4
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	result, err := r.Run(ctx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("=== Observability Example ===")
	fmt.Printf("Phase:   %s\n", result.Phase)
	fmt.Printf("Steps:   %d\n", result.Steps)
	fmt.Printf("Outcome: %s\n", result.Outcome)
	fmt.Println("Spans follow on shutdown.")
}
