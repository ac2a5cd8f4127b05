package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/layerkit/domain/agent"
	"github.com/felixgeelhaar/layerkit/domain/ledger"
	"github.com/felixgeelhaar/layerkit/runner"
)

// counterModel is the built-in demo domain: a counter seeking a target.
type counterModel struct {
	Target  int `json:"target"`
	Current int `json:"current"`
}

// newCounterAgent builds the goal-seeking demo agent. The decider moves
// Current one unit toward Target; probing perturbs Target by one.
func newCounterAgent(model counterModel, layers, mutationLimit int) *agent.Layered[counterModel, int, int] {
	base := agent.MustNewBase(
		model,
		func(m *counterModel) int {
			switch {
			case m.Current < m.Target:
				return 1
			case m.Current > m.Target:
				return -1
			default:
				return 0
			}
		},
		func(m *counterModel, action int) {
			m.Current += action
		},
		func(m *counterModel) int {
			if m.Target > 0 {
				m.Target--
				return -1
			}
			return 0
		},
		func(m *counterModel, delta int) {
			m.Target -= delta
		},
	)

	var opts []agent.Option
	if mutationLimit > 0 {
		opts = append(opts, agent.WithMutationLimit(mutationLimit))
	}
	return base.Add(layers, opts...)
}

// demoOptions holds options for the demo command.
type demoOptions struct {
	layers        int
	mutationLimit int
	target        int
	current       int
	maxSteps      int
	stallLimit    int
}

// newDemoCmd creates the demo command.
func (a *App) newDemoCmd() *cobra.Command {
	opts := &demoOptions{}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the goal-seeking counter demo",
		Long: `Run the built-in goal-seeking demo: an agent nudges a counter toward a
target while safety layers probe each decision by perturbing the target.
Near the goal the perturbed model disagrees with the live one, so the
layers escalate instead of acting. More layers means earlier escalation.

Examples:
  # Safe run with one layer
  layerkit demo --layers 1

  # Watch deeper stacks refuse to act sooner
  layerkit demo --layers 2 --target 6`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDemo(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.layers, "layers", 1, "Number of safety layers")
	cmd.Flags().IntVar(&opts.mutationLimit, "mutation-limit", 0, "Probe budget per decision (0 uses the default)")
	cmd.Flags().IntVar(&opts.target, "target", 4, "Target value the counter seeks")
	cmd.Flags().IntVar(&opts.current, "current", 0, "Starting counter value")
	cmd.Flags().IntVar(&opts.maxSteps, "max-steps", 100, "Maximum number of applied actions")
	cmd.Flags().IntVar(&opts.stallLimit, "stall-limit", 3, "Consecutive refreshes before the run stalls")

	return cmd
}

// runDemo executes the demo scenario.
func (a *App) runDemo(cmd *cobra.Command, opts *demoOptions) error {
	layered := newCounterAgent(counterModel{
		Target:  opts.target,
		Current: opts.current,
	}, opts.layers, opts.mutationLimit)

	// The source re-observes the live model, the way an environment
	// sensor would.
	source := runner.ModelSourceFunc[counterModel](func(ctx context.Context) (counterModel, error) {
		return layered.Z().Model(), nil
	})

	r, err := runner.NewWithOptions(
		layered,
		runner.WithGoal[counterModel, int, int](func(m counterModel) bool {
			return m.Current == m.Target
		}),
		runner.WithSource[counterModel, int, int](source),
		runner.WithMaxSteps[counterModel, int, int](opts.maxSteps),
		runner.WithStallLimit[counterModel, int, int](opts.stallLimit),
	)
	if err != nil {
		return err
	}

	result, err := r.Run(cmd.Context())
	if err != nil {
		return err
	}

	a.printResult(result)
	return nil
}

// printResult writes a run summary to stdout.
func (a *App) printResult(result *runner.Result) {
	fmt.Fprintf(a.stdout, "Run %s finished\n", result.RunID)
	fmt.Fprintf(a.stdout, "  Phase:   %s\n", result.Phase)
	fmt.Fprintf(a.stdout, "  Steps:   %d\n", result.Steps)
	fmt.Fprintf(a.stdout, "  Outcome: %s\n", result.Outcome)
	fmt.Fprintf(a.stdout, "  Ledger:  %d entries (%d decisions, %d model requests)\n",
		result.Ledger.Count(),
		len(result.Ledger.EntriesByType(ledger.EntryDecision)),
		len(result.Ledger.EntriesByType(ledger.EntryModelRequested)))
}
