package config

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()

	if cfg.Safety.Layers != 1 {
		t.Errorf("Safety.Layers = %d, want 1", cfg.Safety.Layers)
	}
	if cfg.Runner.MaxSteps != 100 {
		t.Errorf("Runner.MaxSteps = %d, want 100", cfg.Runner.MaxSteps)
	}
	if cfg.Refresh.InitialDelay != 100*time.Millisecond {
		t.Errorf("Refresh.InitialDelay = %v", cfg.Refresh.InitialDelay)
	}

	if errs := NewValidator().Validate(cfg); errs.HasErrors() {
		t.Errorf("default config does not validate: %v", errs)
	}
}

func TestValidator_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(*RunConfig)
		wantPath string
	}{
		{
			name:     "missing name",
			mutate:   func(c *RunConfig) { c.Name = "" },
			wantPath: "name",
		},
		{
			name:     "negative layers",
			mutate:   func(c *RunConfig) { c.Safety.Layers = -1 },
			wantPath: "safety.layers",
		},
		{
			name:     "negative mutation limit",
			mutate:   func(c *RunConfig) { c.Safety.MutationLimit = -4 },
			wantPath: "safety.mutation_limit",
		},
		{
			name:     "negative max steps",
			mutate:   func(c *RunConfig) { c.Runner.MaxSteps = -1 },
			wantPath: "runner.max_steps",
		},
		{
			name:     "bad backoff multiplier",
			mutate:   func(c *RunConfig) { c.Refresh.BackoffMultiplier = 0.5 },
			wantPath: "refresh.backoff_multiplier",
		},
		{
			name:     "unknown log level",
			mutate:   func(c *RunConfig) { c.Logging.Level = "loud" },
			wantPath: "logging.level",
		},
		{
			name:     "unknown storage backend",
			mutate:   func(c *RunConfig) { c.Storage.Backend = "postgres" },
			wantPath: "storage.backend",
		},
		{
			name:     "badger without dir",
			mutate:   func(c *RunConfig) { c.Storage.Backend = "badger"; c.Storage.Dir = "" },
			wantPath: "storage.dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.mutate(cfg)

			errs := NewValidator().Validate(cfg)
			if !errs.HasErrors() {
				t.Fatal("expected validation errors")
			}

			found := false
			for _, e := range errs {
				if e.Path == tt.wantPath {
					found = true
				}
			}
			if !found {
				t.Errorf("no error at path %q, got %v", tt.wantPath, errs)
			}
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Parallel()

	var none ValidationErrors
	if none.Error() != "no validation errors" {
		t.Errorf("empty Error() = %q", none.Error())
	}

	one := ValidationErrors{{Path: "name", Message: "name is required"}}
	if one.Error() != "name: name is required" {
		t.Errorf("single Error() = %q", one.Error())
	}

	two := ValidationErrors{
		{Path: "name", Message: "name is required"},
		{Path: "safety.layers", Message: "must not be negative"},
	}
	if got := two.Error(); got == "" || len(got) < 20 {
		t.Errorf("multi Error() = %q", got)
	}
}
