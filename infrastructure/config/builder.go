package config

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/layerkit/domain/config"
)

// Builder provides a fluent interface for constructing run
// configurations programmatically.
type Builder struct {
	cfg *config.RunConfig
}

// NewBuilder creates a builder seeded with the default configuration.
func NewBuilder(name string) *Builder {
	cfg := config.Default()
	cfg.Name = name
	return &Builder{cfg: cfg}
}

// WithDescription sets the description.
func (b *Builder) WithDescription(desc string) *Builder {
	b.cfg.Description = desc
	return b
}

// WithLayers sets the number of safety layers.
func (b *Builder) WithLayers(n int) *Builder {
	b.cfg.Safety.Layers = n
	return b
}

// WithMutationLimit sets the probe budget per decision.
func (b *Builder) WithMutationLimit(n int) *Builder {
	b.cfg.Safety.MutationLimit = n
	return b
}

// WithMaxSteps sets the step budget for the runner loop.
func (b *Builder) WithMaxSteps(n int) *Builder {
	b.cfg.Runner.MaxSteps = n
	return b
}

// WithStallLimit sets the consecutive-refresh stall threshold.
func (b *Builder) WithStallLimit(n int) *Builder {
	b.cfg.Runner.StallLimit = n
	return b
}

// WithRefresh sets the model refresh retry policy.
func (b *Builder) WithRefresh(maxAttempts int, initialDelay time.Duration, multiplier float64) *Builder {
	b.cfg.Refresh = config.RefreshConfig{
		MaxAttempts:       maxAttempts,
		InitialDelay:      initialDelay,
		BackoffMultiplier: multiplier,
	}
	return b
}

// WithLogging sets the logging level and format.
func (b *Builder) WithLogging(level, format string) *Builder {
	b.cfg.Logging = config.LoggingConfig{
		Level:  level,
		Format: format,
	}
	return b
}

// WithStorage sets the ledger storage backend.
func (b *Builder) WithStorage(backend, dir string) *Builder {
	b.cfg.Storage = config.StorageConfig{
		Backend: backend,
		Dir:     dir,
	}
	return b
}

// Build validates and returns the configuration.
func (b *Builder) Build() (*config.RunConfig, error) {
	validator := config.NewValidator()
	if errs := validator.Validate(b.cfg); errs.HasErrors() {
		return nil, fmt.Errorf("%w: %v", config.ErrValidationFailed, errs)
	}
	return b.cfg, nil
}

// MustBuild is like Build but panics on validation failure. Intended
// for static configurations in examples and tests.
func (b *Builder) MustBuild() *config.RunConfig {
	cfg, err := b.Build()
	if err != nil {
		panic(err)
	}
	return cfg
}
