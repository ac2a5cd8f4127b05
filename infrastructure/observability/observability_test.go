package observability

import (
	"context"
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ServiceName != "layerkit" {
		t.Errorf("expected default service name, got: %s", cfg.ServiceName)
	}
	if cfg.ServiceVersion != "1.0.0" {
		t.Errorf("expected default version, got: %s", cfg.ServiceVersion)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected development environment, got: %s", cfg.Environment)
	}
	if cfg.Tracing.Enabled {
		t.Error("expected tracing disabled by default")
	}
	if cfg.Metrics.Enabled {
		t.Error("expected metrics disabled by default")
	}
}

func TestConfigOptions(t *testing.T) {
	tests := []struct {
		name   string
		opts   []Option
		verify func(*testing.T, Config)
	}{
		{
			name: "WithServiceName",
			opts: []Option{WithServiceName("my-service")},
			verify: func(t *testing.T, cfg Config) {
				if cfg.ServiceName != "my-service" {
					t.Errorf("expected my-service, got: %s", cfg.ServiceName)
				}
			},
		},
		{
			name: "WithServiceVersion",
			opts: []Option{WithServiceVersion("1.2.3")},
			verify: func(t *testing.T, cfg Config) {
				if cfg.ServiceVersion != "1.2.3" {
					t.Errorf("expected 1.2.3, got: %s", cfg.ServiceVersion)
				}
			},
		},
		{
			name: "WithEnvironment",
			opts: []Option{WithEnvironment("production")},
			verify: func(t *testing.T, cfg Config) {
				if cfg.Environment != "production" {
					t.Errorf("expected production, got: %s", cfg.Environment)
				}
			},
		},
		{
			name: "WithStdoutTracing",
			opts: []Option{WithStdoutTracing()},
			verify: func(t *testing.T, cfg Config) {
				if !cfg.Tracing.Enabled {
					t.Error("expected tracing enabled")
				}
				if cfg.Tracing.Exporter != ExporterStdout {
					t.Errorf("expected stdout exporter, got: %s", cfg.Tracing.Exporter)
				}
			},
		},
		{
			name: "WithNoopTracing",
			opts: []Option{WithNoopTracing()},
			verify: func(t *testing.T, cfg Config) {
				if !cfg.Tracing.Enabled {
					t.Error("expected tracing enabled")
				}
				if cfg.Tracing.Exporter != ExporterNoop {
					t.Errorf("expected noop exporter, got: %s", cfg.Tracing.Exporter)
				}
			},
		},
		{
			name: "WithSampleRate",
			opts: []Option{WithSampleRate(0.5)},
			verify: func(t *testing.T, cfg Config) {
				if cfg.Tracing.SampleRate != 0.5 {
					t.Errorf("expected 0.5 sample rate, got: %f", cfg.Tracing.SampleRate)
				}
			},
		},
		{
			name: "WithMetrics",
			opts: []Option{WithMetrics()},
			verify: func(t *testing.T, cfg Config) {
				if !cfg.Metrics.Enabled {
					t.Error("expected metrics enabled")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			for _, opt := range tt.opts {
				opt(&cfg)
			}
			tt.verify(t, cfg)
		})
	}
}

func TestNoopProvider(t *testing.T) {
	provider := NewNoopProvider()

	if provider.Tracer() == nil {
		t.Error("expected non-nil tracer")
	}
	if provider.Metrics() == nil {
		t.Error("expected non-nil metrics")
	}

	// Shutdown should not error
	if err := provider.Shutdown(context.Background()); err != nil {
		t.Errorf("expected no error, got: %v", err)
	}
}

func TestProviderWithNoopExporter(t *testing.T) {
	provider, err := New(
		WithServiceName("test-service"),
		WithNoopTracing(),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer provider.Shutdown(context.Background())

	if provider.Tracer() == nil {
		t.Error("expected non-nil tracer")
	}
	if provider.Metrics() == nil {
		t.Error("expected non-nil metrics")
	}
}

func TestProviderWithStdoutTracing(t *testing.T) {
	// Note: This creates actual stdout output
	provider, err := New(
		WithServiceName("test-service"),
		WithStdoutTracing(),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer provider.Shutdown(context.Background())

	if provider.Tracer() == nil {
		t.Error("expected non-nil tracer")
	}
}

func TestProviderWithMetricsEnabled(t *testing.T) {
	provider, err := New(
		WithServiceName("test-service"),
		WithMetrics(),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer provider.Shutdown(context.Background())

	if provider.Metrics() == nil {
		t.Error("expected non-nil metrics")
	}
}

func TestProviderTracingUnknownExporter(t *testing.T) {
	provider := &Provider{
		config: Config{
			ServiceName:    "test",
			ServiceVersion: "1.0.0",
			Tracing: TracingConfig{
				Enabled:  true,
				Exporter: ExporterType("invalid"),
			},
		},
		shutdownFuncs: make([]func(context.Context) error, 0),
	}

	if err := provider.setupTracing(); err == nil {
		t.Error("expected error for unknown exporter")
	}
}

func TestProviderTracingSamplers(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
	}{
		{"always sample", 1.0},
		{"never sample", 0.0},
		{"ratio sample", 0.5},
		{"ratio sample high", 1.5},
		{"ratio sample negative", -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := New(
				WithServiceName("test-service"),
				WithStdoutTracing(),
				WithSampleRate(tt.sampleRate),
			)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			provider.Shutdown(context.Background())
		})
	}
}

func TestProviderShutdownWithError(t *testing.T) {
	provider := NewNoopProvider()
	provider.shutdownFuncs = []func(context.Context) error{
		func(ctx context.Context) error {
			return errors.New("shutdown error")
		},
	}

	if err := provider.Shutdown(context.Background()); err == nil {
		t.Error("expected error from shutdown")
	}
}

func TestProviderShutdownMultipleErrors(t *testing.T) {
	provider := NewNoopProvider()
	provider.shutdownFuncs = []func(context.Context) error{
		func(ctx context.Context) error { return errors.New("error 1") },
		func(ctx context.Context) error { return errors.New("error 2") },
	}

	if err := provider.Shutdown(context.Background()); err == nil {
		t.Error("expected error from shutdown")
	}
}

func TestNewStdoutProvider(t *testing.T) {
	provider, err := NewStdoutProvider("test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer provider.Shutdown(context.Background())

	if provider.Tracer() == nil {
		t.Error("expected non-nil tracer")
	}
	if provider.Metrics() == nil {
		t.Error("expected non-nil metrics")
	}
}
