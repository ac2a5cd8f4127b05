package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/felixgeelhaar/layerkit/domain/config"
)

const validYAML = `
name: goal-seek
description: counter goal seeking
safety:
  layers: 2
  mutation_limit: 4
runner:
  max_steps: 50
  stall_limit: 2
logging:
  level: debug
  format: json
storage:
  backend: memory
`

const validJSON = `{
  "name": "goal-seek",
  "safety": {"layers": 1}
}`

func TestLoader_LoadYAML(t *testing.T) {
	t.Parallel()

	cfg, err := NewLoader().LoadString(validYAML, FormatYAML)
	if err != nil {
		t.Fatalf("LoadString error: %v", err)
	}

	if cfg.Name != "goal-seek" {
		t.Errorf("Name = %q, want %q", cfg.Name, "goal-seek")
	}
	if cfg.Safety.Layers != 2 {
		t.Errorf("Safety.Layers = %d, want 2", cfg.Safety.Layers)
	}
	if cfg.Safety.MutationLimit != 4 {
		t.Errorf("Safety.MutationLimit = %d, want 4", cfg.Safety.MutationLimit)
	}
	if cfg.Runner.MaxSteps != 50 {
		t.Errorf("Runner.MaxSteps = %d, want 50", cfg.Runner.MaxSteps)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}
	// Omitted sections keep defaults.
	if cfg.Refresh.MaxAttempts != 3 {
		t.Errorf("Refresh.MaxAttempts = %d, want default 3", cfg.Refresh.MaxAttempts)
	}
}

func TestLoader_LoadJSON(t *testing.T) {
	t.Parallel()

	cfg, err := NewLoader().LoadString(validJSON, FormatJSON)
	if err != nil {
		t.Fatalf("LoadString error: %v", err)
	}
	if cfg.Name != "goal-seek" || cfg.Safety.Layers != 1 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoader_InvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().LoadString("name: [unclosed", FormatYAML)
	if !errors.Is(err, config.ErrInvalidFormat) {
		t.Errorf("err = %v, want ErrInvalidFormat", err)
	}
}

func TestLoader_ValidationFailure(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().LoadString("name: bad\nsafety:\n  layers: -1\n", FormatYAML)
	if !errors.Is(err, config.ErrValidationFailed) {
		t.Errorf("err = %v, want ErrValidationFailed", err)
	}

	// Validation can be disabled.
	l := NewLoaderWithOptions(WithValidation(false))
	if _, err := l.LoadString("name: bad\nsafety:\n  layers: -1\n", FormatYAML); err != nil {
		t.Errorf("unvalidated load error: %v", err)
	}
}

func TestLoader_LoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	if err := os.WriteFile(path, []byte(validYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewLoader().LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.Runner.StallLimit != 2 {
		t.Errorf("Runner.StallLimit = %d, want 2", cfg.Runner.StallLimit)
	}
}

func TestLoader_LoadFileErrors(t *testing.T) {
	t.Parallel()

	l := NewLoader()

	if _, err := l.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, config.ErrConfigNotFound) {
		t.Errorf("err = %v, want ErrConfigNotFound", err)
	}

	dir := t.TempDir()
	txt := filepath.Join(dir, "run.txt")
	if err := os.WriteFile(txt, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := l.LoadFile(txt); !errors.Is(err, config.ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}

	if _, err := l.LoadFile(dir); !errors.Is(err, config.ErrInvalidFormat) {
		t.Errorf("err = %v, want ErrInvalidFormat", err)
	}
}

func TestLoader_EnvExpansion(t *testing.T) {
	t.Setenv("LAYERKIT_TEST_NAME", "from-env")

	cfg, err := NewLoader().LoadString("name: ${LAYERKIT_TEST_NAME}\nsafety:\n  layers: 1\n", FormatYAML)
	if err != nil {
		t.Fatalf("LoadString error: %v", err)
	}
	if cfg.Name != "from-env" {
		t.Errorf("Name = %q, want %q", cfg.Name, "from-env")
	}
}

func TestBuilder(t *testing.T) {
	t.Parallel()

	cfg, err := NewBuilder("demo").
		WithDescription("builder demo").
		WithLayers(3).
		WithMutationLimit(2).
		WithMaxSteps(20).
		WithStallLimit(5).
		WithRefresh(4, 50*time.Millisecond, 1.5).
		WithLogging("warn", "json").
		WithStorage("badger", t.TempDir()).
		Build()
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	if cfg.Safety.Layers != 3 || cfg.Safety.MutationLimit != 2 {
		t.Errorf("safety = %+v", cfg.Safety)
	}
	if cfg.Refresh.MaxAttempts != 4 || cfg.Refresh.BackoffMultiplier != 1.5 {
		t.Errorf("refresh = %+v", cfg.Refresh)
	}
	if cfg.Storage.Backend != "badger" {
		t.Errorf("Storage.Backend = %q, want %q", cfg.Storage.Backend, "badger")
	}
}

func TestBuilder_ValidationFailure(t *testing.T) {
	t.Parallel()

	if _, err := NewBuilder("bad").WithLayers(-2).Build(); !errors.Is(err, config.ErrValidationFailed) {
		t.Errorf("err = %v, want ErrValidationFailed", err)
	}
}
