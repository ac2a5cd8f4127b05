package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	infraconfig "github.com/felixgeelhaar/layerkit/infrastructure/config"
)

// validateOptions holds options for the validate command.
type validateOptions struct {
	configPath string
	strict     bool
}

// newValidateCmd creates the validate command.
func (a *App) newValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a run configuration file",
		Long: `Validate a run configuration file for correctness.

This command checks:
  - File format (YAML or JSON)
  - Required fields and value constraints
  - Environment variable references (in strict mode)

Examples:
  # Validate a configuration file
  layerkit validate -c run.yaml

  # Strict validation (fail on missing env vars)
  layerkit validate -c run.yaml --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.validateConfig(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Enable strict validation (fail on missing env vars)")

	return cmd
}

// validateConfig validates the configuration file.
func (a *App) validateConfig(opts *validateOptions) error {
	if opts.configPath == "" {
		return fmt.Errorf("configuration file path is required (-c flag)")
	}

	loaderOpts := []infraconfig.LoaderOption{
		infraconfig.WithValidation(true),
	}
	if opts.strict {
		loaderOpts = append(loaderOpts, infraconfig.WithStrictEnv(true))
	}

	loader := infraconfig.NewLoaderWithOptions(loaderOpts...)
	cfg, err := loader.LoadFile(opts.configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(a.stdout, "✓ Configuration is valid\n")
	fmt.Fprintf(a.stdout, "  Name: %s\n", cfg.Name)
	if cfg.Description != "" {
		fmt.Fprintf(a.stdout, "  Description: %s\n", cfg.Description)
	}

	fmt.Fprintf(a.stdout, "\nConfiguration summary:\n")
	fmt.Fprintf(a.stdout, "  Safety layers: %d\n", cfg.Safety.Layers)
	if cfg.Safety.MutationLimit > 0 {
		fmt.Fprintf(a.stdout, "  Mutation limit: %d\n", cfg.Safety.MutationLimit)
	}
	fmt.Fprintf(a.stdout, "  Max steps: %d\n", cfg.Runner.MaxSteps)
	fmt.Fprintf(a.stdout, "  Stall limit: %d\n", cfg.Runner.StallLimit)
	fmt.Fprintf(a.stdout, "  Storage backend: %s\n", cfg.Storage.Backend)

	return nil
}
