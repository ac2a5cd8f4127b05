// Package config provides domain models for run configuration.
package config

import "time"

// RunConfig represents the complete configuration of a layered run.
type RunConfig struct {
	// Name is a human-readable name for this configuration.
	Name string `json:"name" yaml:"name"`
	// Description describes the run's purpose.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Safety contains safety layer settings.
	Safety SafetyConfig `json:"safety" yaml:"safety"`
	// Runner contains runner loop settings.
	Runner RunnerConfig `json:"runner,omitempty" yaml:"runner,omitempty"`
	// Refresh contains model refresh settings.
	Refresh RefreshConfig `json:"refresh,omitempty" yaml:"refresh,omitempty"`
	// Logging contains logging settings.
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
	// Storage contains ledger storage settings.
	Storage StorageConfig `json:"storage,omitempty" yaml:"storage,omitempty"`
}

// SafetyConfig contains safety layer settings.
type SafetyConfig struct {
	// Layers is the number of safety layers wrapped around the base
	// agent.
	Layers int `json:"layers" yaml:"layers"`
	// MutationLimit bounds probe attempts per decision (0 uses the
	// library default).
	MutationLimit int `json:"mutation_limit,omitempty" yaml:"mutation_limit,omitempty"`
}

// RunnerConfig contains runner loop settings.
type RunnerConfig struct {
	// MaxSteps is the maximum number of decide/act steps (0 uses the
	// runner default).
	MaxSteps int `json:"max_steps,omitempty" yaml:"max_steps,omitempty"`
	// StallLimit is the number of consecutive model refreshes that
	// leave the agent undecided before the run is declared stalled.
	StallLimit int `json:"stall_limit,omitempty" yaml:"stall_limit,omitempty"`
}

// RefreshConfig contains model refresh retry settings.
type RefreshConfig struct {
	// MaxAttempts is the maximum number of fetch attempts per refresh.
	MaxAttempts int `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty"`
	// InitialDelay is the delay before the first retry.
	InitialDelay time.Duration `json:"initial_delay,omitempty" yaml:"initial_delay,omitempty"`
	// BackoffMultiplier is the exponential backoff multiplier.
	BackoffMultiplier float64 `json:"backoff_multiplier,omitempty" yaml:"backoff_multiplier,omitempty"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	// Format is the output format (json or console).
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// StorageConfig contains ledger storage settings.
type StorageConfig struct {
	// Backend selects the ledger store (memory or badger).
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty"`
	// Dir is the data directory for persistent backends.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// Default returns a configuration with sensible defaults.
func Default() *RunConfig {
	return &RunConfig{
		Name: "layered-run",
		Safety: SafetyConfig{
			Layers: 1,
		},
		Runner: RunnerConfig{
			MaxSteps:   100,
			StallLimit: 3,
		},
		Refresh: RefreshConfig{
			MaxAttempts:       3,
			InitialDelay:      100 * time.Millisecond,
			BackoffMultiplier: 2.0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Storage: StorageConfig{
			Backend: "memory",
		},
	}
}
