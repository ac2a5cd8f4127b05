package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/layerkit/domain/config"
	"github.com/felixgeelhaar/layerkit/domain/ledger"
	infraconfig "github.com/felixgeelhaar/layerkit/infrastructure/config"
	"github.com/felixgeelhaar/layerkit/infrastructure/logging"
	"github.com/felixgeelhaar/layerkit/infrastructure/resilience"
	badgerstore "github.com/felixgeelhaar/layerkit/infrastructure/storage/badger"
	"github.com/felixgeelhaar/layerkit/infrastructure/storage/memory"
	"github.com/felixgeelhaar/layerkit/infrastructure/watch"
	"github.com/felixgeelhaar/layerkit/runner"
)

// runOptions holds options for the run command.
type runOptions struct {
	configPath string
	modelPath  string
}

// newRunCmd creates the run command.
func (a *App) newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the counter agent against a model file",
		Long: `Run the goal-seeking counter agent against a JSON model file. The run
re-reads the file whenever the safety layers escalate, so editing it
while the run waits supplies the requested fresh model.

The model file holds the counter model:
  {"target": 4, "current": 0}

Examples:
  # Run with defaults (one safety layer, in-memory ledger)
  layerkit run -m model.json

  # Run with a configuration file
  layerkit run -c run.yaml -m model.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFromConfig(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().StringVarP(&opts.modelPath, "model", "m", "", "Path to JSON model file (required)")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}

// runFromConfig wires up a full run from configuration.
func (a *App) runFromConfig(cmd *cobra.Command, opts *runOptions) error {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := infraconfig.NewLoader().LoadFile(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	store, closeStore, err := a.openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	source, err := watch.NewFileSource(opts.modelPath, func(data []byte) (counterModel, error) {
		var m counterModel
		err := json.Unmarshal(data, &m)
		return m, err
	})
	if err != nil {
		return err
	}
	defer source.Close()

	model, err := source.Fetch(cmd.Context())
	if err != nil {
		return err
	}

	layered := newCounterAgent(model, cfg.Safety.Layers, cfg.Safety.MutationLimit)

	r, err := runner.NewWithOptions(
		layered,
		runner.WithGoal[counterModel, int, int](func(m counterModel) bool {
			return m.Current == m.Target
		}),
		runner.WithSource[counterModel, int, int](source),
		runner.WithStore[counterModel, int, int](store),
		runner.WithMaxSteps[counterModel, int, int](cfg.Runner.MaxSteps),
		runner.WithStallLimit[counterModel, int, int](cfg.Runner.StallLimit),
		runner.WithRefresh[counterModel, int, int](resilience.RefresherConfig{
			MaxAttempts:       cfg.Refresh.MaxAttempts,
			InitialDelay:      cfg.Refresh.InitialDelay,
			BackoffMultiplier: cfg.Refresh.BackoffMultiplier,
		}),
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

// openStore creates the ledger store named by the configuration.
func (a *App) openStore(cfg *config.RunConfig) (ledger.Store, func(), error) {
	switch cfg.Storage.Backend {
	case "badger":
		store, err := badgerstore.NewLedgerStore(badgerstore.Config{
			Dir: cfg.Storage.Dir,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open badger store: %w", err)
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return memory.NewLedgerStore(), func() {}, nil
	}
}
