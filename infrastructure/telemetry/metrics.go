// Package telemetry provides OpenTelemetry metrics for layered runs.
package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsProvider provides access to metrics instruments.
type MetricsProvider struct {
	meter metric.Meter

	// Counters
	decisions     metric.Int64Counter
	escalations   metric.Int64Counter
	actions       metric.Int64Counter
	modelUpdates  metric.Int64Counter

	// Histograms
	decideDuration metric.Float64Histogram

	// Gauges (UpDownCounter for OpenTelemetry)
	activeRuns metric.Int64UpDownCounter

	initOnce sync.Once
	initErr  error
}

// MetricsConfig configures the metrics provider.
type MetricsConfig struct {
	// MeterName is the name of the meter (default: "github.com/felixgeelhaar/layerkit").
	MeterName string
	// MeterVersion is the version of the meter.
	MeterVersion string
	// Attributes are default attributes to attach to all metrics.
	Attributes []attribute.KeyValue
}

// DefaultMetricsConfig returns a default metrics configuration.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		MeterName:    "github.com/felixgeelhaar/layerkit",
		MeterVersion: "1.0.0",
	}
}

// NewMetricsProvider creates a new metrics provider.
func NewMetricsProvider(config MetricsConfig) *MetricsProvider {
	if config.MeterName == "" {
		config = DefaultMetricsConfig()
	}

	provider := otel.GetMeterProvider()
	meter := provider.Meter(
		config.MeterName,
		metric.WithInstrumentationVersion(config.MeterVersion),
	)

	mp := &MetricsProvider{
		meter: meter,
	}

	mp.initOnce.Do(func() {
		mp.initErr = mp.initInstruments()
	})

	return mp
}

// initInstruments initializes all metric instruments.
func (mp *MetricsProvider) initInstruments() error {
	var err error

	mp.decisions, err = mp.meter.Int64Counter(
		"layerkit.decisions",
		metric.WithDescription("Number of top-level decisions"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		return err
	}

	mp.escalations, err = mp.meter.Int64Counter(
		"layerkit.escalations",
		metric.WithDescription("Number of decisions escalated to a model request"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		return err
	}

	mp.actions, err = mp.meter.Int64Counter(
		"layerkit.actions",
		metric.WithDescription("Number of actions applied to the model"),
		metric.WithUnit("{action}"),
	)
	if err != nil {
		return err
	}

	mp.modelUpdates, err = mp.meter.Int64Counter(
		"layerkit.model.updates",
		metric.WithDescription("Number of model updates supplied to the agent"),
		metric.WithUnit("{update}"),
	)
	if err != nil {
		return err
	}

	mp.decideDuration, err = mp.meter.Float64Histogram(
		"layerkit.decide.duration",
		metric.WithDescription("Duration of top-level decisions"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	mp.activeRuns, err = mp.meter.Int64UpDownCounter(
		"layerkit.runs.active",
		metric.WithDescription("Number of active runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return err
	}

	return nil
}

// Error returns any initialization error.
func (mp *MetricsProvider) Error() error {
	return mp.initErr
}

// RecordDecision records a top-level decision and its duration.
func (mp *MetricsProvider) RecordDecision(ctx context.Context, runID string, depth int, committed bool, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("run.id", runID),
		attribute.Int("layers.depth", depth),
		attribute.Bool("committed", committed),
	}

	mp.decisions.Add(ctx, 1, metric.WithAttributes(attrs...))
	mp.decideDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if !committed {
		mp.escalations.Add(ctx, 1, metric.WithAttributes(
			attribute.String("run.id", runID),
			attribute.Int("layers.depth", depth),
		))
	}
}

// RecordAction records an action applied to the model.
func (mp *MetricsProvider) RecordAction(ctx context.Context, runID string, depth int) {
	mp.actions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("run.id", runID),
		attribute.Int("layers.depth", depth),
	))
}

// RecordModelUpdate records a model update supplied to the agent.
func (mp *MetricsProvider) RecordModelUpdate(ctx context.Context, runID string, attempts int) {
	mp.modelUpdates.Add(ctx, 1, metric.WithAttributes(
		attribute.String("run.id", runID),
		attribute.Int("refresh.attempts", attempts),
	))
}

// IncrementActiveRuns increments the active runs counter.
func (mp *MetricsProvider) IncrementActiveRuns(ctx context.Context) {
	mp.activeRuns.Add(ctx, 1)
}

// DecrementActiveRuns decrements the active runs counter.
func (mp *MetricsProvider) DecrementActiveRuns(ctx context.Context) {
	mp.activeRuns.Add(ctx, -1)
}

// NoopMetricsProvider is a no-op metrics provider for when metrics are
// disabled.
type NoopMetricsProvider struct{}

// RecordDecision is a no-op.
func (n *NoopMetricsProvider) RecordDecision(ctx context.Context, runID string, depth int, committed bool, duration time.Duration) {
}

// RecordAction is a no-op.
func (n *NoopMetricsProvider) RecordAction(ctx context.Context, runID string, depth int) {}

// RecordModelUpdate is a no-op.
func (n *NoopMetricsProvider) RecordModelUpdate(ctx context.Context, runID string, attempts int) {}

// IncrementActiveRuns is a no-op.
func (n *NoopMetricsProvider) IncrementActiveRuns(ctx context.Context) {}

// DecrementActiveRuns is a no-op.
func (n *NoopMetricsProvider) DecrementActiveRuns(ctx context.Context) {}

// Metrics defines the interface for metrics recording.
type Metrics interface {
	RecordDecision(ctx context.Context, runID string, depth int, committed bool, duration time.Duration)
	RecordAction(ctx context.Context, runID string, depth int)
	RecordModelUpdate(ctx context.Context, runID string, attempts int)
	IncrementActiveRuns(ctx context.Context)
	DecrementActiveRuns(ctx context.Context)
}

// Ensure implementations satisfy the interface.
var (
	_ Metrics = (*MetricsProvider)(nil)
	_ Metrics = (*NoopMetricsProvider)(nil)
)
