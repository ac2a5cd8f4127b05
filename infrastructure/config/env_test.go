package config

import (
	"errors"
	"testing"

	domainconfig "github.com/felixgeelhaar/layerkit/domain/config"
)

func TestExpand_Bracketed(t *testing.T) {
	t.Setenv("LK_VAR", "value")

	e := &envExpander{}
	got, err := e.Expand("a=${LK_VAR} b=${LK_UNSET}")
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	if got != "a=value b=" {
		t.Errorf("Expand() = %q", got)
	}
}

func TestExpand_Default(t *testing.T) {
	t.Setenv("LK_SET", "set")

	e := &envExpander{}
	got, err := e.Expand("${LK_UNSET:-fallback} ${LK_SET:-fallback}")
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	if got != "fallback set" {
		t.Errorf("Expand() = %q", got)
	}
}

func TestExpand_Required(t *testing.T) {
	e := &envExpander{}
	_, err := e.Expand("${LK_REQUIRED:?must be set}")
	if !errors.Is(err, domainconfig.ErrMissingEnvVar) {
		t.Errorf("err = %v, want ErrMissingEnvVar", err)
	}
}

func TestExpand_Strict(t *testing.T) {
	e := &envExpander{strict: true}
	_, err := e.Expand("${LK_STRICT_UNSET}")
	if !errors.Is(err, domainconfig.ErrMissingEnvVar) {
		t.Errorf("err = %v, want ErrMissingEnvVar", err)
	}
}

func TestExpand_Simple(t *testing.T) {
	t.Setenv("LK_SIMPLE", "simple")

	got := ExpandEnv("prefix $LK_SIMPLE suffix")
	if got != "prefix simple suffix" {
		t.Errorf("ExpandEnv() = %q", got)
	}
}

func TestExpandEnvStrict(t *testing.T) {
	if _, err := ExpandEnvStrict("$LK_NOPE_UNSET"); err == nil {
		t.Error("ExpandEnvStrict should fail for unset variable")
	}
}
