/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package prompt_test

import (
	"strings"
	"testing"

	"chainguard.dev/refine/prompt"
)

func TestBindAndBuild(t *testing.T) {
	t.Parallel()
	tmpl, err := prompt.New("Write a {{length}} report about {{topic}}.")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	bound, err := tmpl.Bind("length", "five-paragraph")
	if err != nil {
		t.Fatalf("Bind length: %v", err)
	}
	bound, err = bound.Bind("topic", "ocean currents")
	if err != nil {
		t.Fatalf("Bind topic: %v", err)
	}

	got, err := bound.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got != "Write a five-paragraph report about ocean currents." {
		t.Fatalf("Build = %q", got)
	}
}

func TestBuildFailsOnUnbound(t *testing.T) {
	t.Parallel()
	tmpl := prompt.MustNew("Hello {{name}}")
	if _, err := tmpl.Build(); err == nil || !strings.Contains(err.Error(), `"name" is unbound`) {
		t.Fatalf("err = %v", err)
	}
}

func TestBindIsImmutable(t *testing.T) {
	t.Parallel()
	tmpl := prompt.MustNew("{{a}}")
	if _, err := tmpl.Bind("a", "one"); err != nil {
		t.Fatal(err)
	}
	// The original is still unbound.
	if _, err := tmpl.Build(); err == nil {
		t.Fatal("binding leaked into original template")
	}
}

func TestDoubleBindRejected(t *testing.T) {
	t.Parallel()
	tmpl := prompt.MustNew("{{a}}")
	bound, err := tmpl.Bind("a", "one")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := bound.Bind("a", "two"); err == nil {
		t.Fatal("expected error for double bind")
	}
}

func TestUnknownPlaceholderRejected(t *testing.T) {
	t.Parallel()
	tmpl := prompt.MustNew("no placeholders")
	if _, err := tmpl.Bind("ghost", "x"); err == nil {
		t.Fatal("expected error for unknown placeholder")
	}
}

func TestNewRejectsBadTemplates(t *testing.T) {
	t.Parallel()
	for _, text := range []string{
		"unterminated {{name",
		"bad {{na me}}",
		"empty {{}}",
	} {
		if _, err := prompt.New(text); err == nil {
			t.Errorf("New(%q) succeeded, want error", text)
		}
	}
}

func TestRepeatedPlaceholder(t *testing.T) {
	t.Parallel()
	tmpl := prompt.MustNew("{{x}} and {{x}}")
	bound, err := tmpl.Bind("x", "both")
	if err != nil {
		t.Fatal(err)
	}
	got, err := bound.Build()
	if err != nil {
		t.Fatal(err)
	}
	if got != "both and both" {
		t.Fatalf("Build = %q", got)
	}
}
