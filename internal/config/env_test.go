package config

import (
	"errors"
	"strings"
	"testing"
)

func TestEnvExpander_SimpleExpansion(t *testing.T) {
	t.Setenv("GOCHART_TEST_VAR", "hello")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bracket syntax", input: "${GOCHART_TEST_VAR}", want: "hello"},
		{name: "dollar syntax", input: "$GOCHART_TEST_VAR", want: "hello"},
		{name: "embedded in text", input: "prefix-${GOCHART_TEST_VAR}-suffix", want: "prefix-hello-suffix"},
		{name: "unset variable", input: "${GOCHART_TEST_UNSET}", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandEnv(tt.input)
			if got != tt.want {
				t.Errorf("ExpandEnv(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEnvExpander_DefaultValue(t *testing.T) {
	t.Setenv("GOCHART_TEST_SET", "set-value")
	t.Setenv("GOCHART_TEST_EMPTY", "")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "unset with default", input: "${GOCHART_TEST_UNSET:-default}", want: "default"},
		{name: "set with default", input: "${GOCHART_TEST_SET:-default}", want: "set-value"},
		{name: "empty with default", input: "${GOCHART_TEST_EMPTY:-fallback}", want: "fallback"},
		{name: "default with colons", input: "${GOCHART_TEST_UNSET:-/opt/fonts:/usr/share}", want: "/opt/fonts:/usr/share"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandEnv(tt.input)
			if got != tt.want {
				t.Errorf("ExpandEnv(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEnvExpander_Required(t *testing.T) {
	_, err := ExpandEnvStrict("${GOCHART_TEST_UNSET:?font directory required}")
	if !errors.Is(err, ErrMissingEnvVar) {
		t.Fatalf("expected ErrMissingEnvVar, got %v", err)
	}
	if !strings.Contains(err.Error(), "font directory required") {
		t.Errorf("expected message in error, got %v", err)
	}
}

func TestEnvExpander_Strict(t *testing.T) {
	_, err := ExpandEnvStrict("a: $GOCHART_TEST_UNSET_A\nb: ${GOCHART_TEST_UNSET_B}")
	if !errors.Is(err, ErrMissingEnvVar) {
		t.Fatalf("expected ErrMissingEnvVar, got %v", err)
	}
	for _, name := range []string{"GOCHART_TEST_UNSET_A", "GOCHART_TEST_UNSET_B"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("expected %s in error, got %v", name, err)
		}
	}
}
