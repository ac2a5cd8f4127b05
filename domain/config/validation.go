package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Path is the path to the invalid field.
	Path string
	// Message describes the validation error.
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%d validation errors:\n  - %s", len(e), strings.Join(msgs, "\n  - "))
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator validates run configuration.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates the configuration and returns any errors.
func (v *Validator) Validate(config *RunConfig) ValidationErrors {
	v.errors = nil

	if config.Name == "" {
		v.addError("name", "name is required")
	}

	v.validateSafety(config)
	v.validateRunner(config)
	v.validateRefresh(config)
	v.validateLogging(config)
	v.validateStorage(config)

	return v.errors
}

func (v *Validator) addError(path, message string) {
	v.errors = append(v.errors, ValidationError{Path: path, Message: message})
}

func (v *Validator) validateSafety(config *RunConfig) {
	if config.Safety.Layers < 0 {
		v.addError("safety.layers", "must not be negative")
	}
	if config.Safety.MutationLimit < 0 {
		v.addError("safety.mutation_limit", "must not be negative")
	}
}

func (v *Validator) validateRunner(config *RunConfig) {
	if config.Runner.MaxSteps < 0 {
		v.addError("runner.max_steps", "must not be negative")
	}
	if config.Runner.StallLimit < 0 {
		v.addError("runner.stall_limit", "must not be negative")
	}
}

func (v *Validator) validateRefresh(config *RunConfig) {
	if config.Refresh.MaxAttempts < 0 {
		v.addError("refresh.max_attempts", "must not be negative")
	}
	if config.Refresh.InitialDelay < 0 {
		v.addError("refresh.initial_delay", "must not be negative")
	}
	if m := config.Refresh.BackoffMultiplier; m != 0 && m < 1 {
		v.addError("refresh.backoff_multiplier", "must be at least 1")
	}
}

func (v *Validator) validateLogging(config *RunConfig) {
	switch config.Logging.Level {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		v.addError("logging.level", fmt.Sprintf("unknown level %q", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "", "json", "console":
	default:
		v.addError("logging.format", fmt.Sprintf("unknown format %q", config.Logging.Format))
	}
}

func (v *Validator) validateStorage(config *RunConfig) {
	switch config.Storage.Backend {
	case "", "memory":
	case "badger":
		if config.Storage.Dir == "" {
			v.addError("storage.dir", "required for the badger backend")
		}
	default:
		v.addError("storage.backend", fmt.Sprintf("unknown backend %q", config.Storage.Backend))
	}
}
