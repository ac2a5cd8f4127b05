package runner

import (
	"github.com/felixgeelhaar/layerkit/domain/agent"
	"github.com/felixgeelhaar/layerkit/domain/ledger"
	"github.com/felixgeelhaar/layerkit/infrastructure/resilience"
	"github.com/felixgeelhaar/layerkit/infrastructure/telemetry"
)

// Option configures the runner.
type Option[M any, A comparable, D any] func(*Config[M, A, D])

// WithSource sets the model source.
func WithSource[M any, A comparable, D any](s ModelSource[M]) Option[M, A, D] {
	return func(c *Config[M, A, D]) {
		c.Source = s
	}
}

// WithGoal sets the goal predicate.
func WithGoal[M any, A comparable, D any](g GoalFunc[M]) Option[M, A, D] {
	return func(c *Config[M, A, D]) {
		c.Goal = g
	}
}

// WithStore sets the ledger store.
func WithStore[M any, A comparable, D any](s ledger.Store) Option[M, A, D] {
	return func(c *Config[M, A, D]) {
		c.Store = s
	}
}

// WithMetrics sets the metrics provider.
func WithMetrics[M any, A comparable, D any](m telemetry.Metrics) Option[M, A, D] {
	return func(c *Config[M, A, D]) {
		c.Metrics = m
	}
}

// WithMaxSteps sets the maximum number of applied actions.
func WithMaxSteps[M any, A comparable, D any](n int) Option[M, A, D] {
	return func(c *Config[M, A, D]) {
		c.MaxSteps = n
	}
}

// WithStallLimit sets the consecutive-refresh stall threshold.
func WithStallLimit[M any, A comparable, D any](n int) Option[M, A, D] {
	return func(c *Config[M, A, D]) {
		c.StallLimit = n
	}
}

// WithRefresh sets the model refresh retry policy.
func WithRefresh[M any, A comparable, D any](cfg resilience.RefresherConfig) Option[M, A, D] {
	return func(c *Config[M, A, D]) {
		c.Refresh = cfg
	}
}

// NewWithOptions creates a runner with functional options.
func NewWithOptions[M any, A comparable, D any](layered *agent.Layered[M, A, D], opts ...Option[M, A, D]) (*Runner[M, A, D], error) {
	config := Config[M, A, D]{
		Agent: layered,
	}
	for _, opt := range opts {
		opt(&config)
	}
	return New(config)
}
