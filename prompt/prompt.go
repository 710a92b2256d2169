/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package prompt builds provider instructions from templates with
// {{name}} placeholders. Binding is immutable: each Bind returns a new
// Template, and Build fails if any placeholder is still unbound, so a
// half-assembled prompt can never reach a provider.
package prompt

import (
	"fmt"
	"maps"
	"strings"
)

// Template is a prompt with zero or more bindable placeholders.
type Template struct {
	text     string
	bindings map[string]*string
}

// New parses a template and registers its placeholders. Placeholder names
// may contain letters, digits, and underscores.
func New(text string) (*Template, error) {
	bindings := make(map[string]*string)
	if err := walk(text, func(name string) error {
		if !validName(name) {
			return fmt.Errorf("invalid placeholder name %q", name)
		}
		if _, ok := bindings[name]; !ok {
			bindings[name] = nil
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return &Template{text: text, bindings: bindings}, nil
}

// MustNew is New for templates known valid at compile time; it panics on
// parse errors.
func MustNew(text string) *Template {
	t, err := New(text)
	if err != nil {
		panic(err)
	}
	return t
}

// Placeholders returns the names of all placeholders in the template.
func (t *Template) Placeholders() map[string]struct{} {
	out := make(map[string]struct{}, len(t.bindings))
	for name := range t.bindings {
		out[name] = struct{}{}
	}
	return out
}

// Bind returns a new Template with the named placeholder bound to value.
// Binding an unknown or already-bound placeholder is an error.
func (t *Template) Bind(name, value string) (*Template, error) {
	bound, ok := t.bindings[name]
	if !ok {
		return nil, fmt.Errorf("unknown placeholder %q", name)
	}
	if bound != nil {
		return nil, fmt.Errorf("placeholder %q already bound", name)
	}
	next := &Template{text: t.text, bindings: maps.Clone(t.bindings)}
	next.bindings[name] = &value
	return next, nil
}

// Build renders the template. Every placeholder must be bound.
func (t *Template) Build() (string, error) {
	var sb strings.Builder
	rest := t.text
	for {
		start := strings.Index(rest, "{{")
		if start < 0 {
			sb.WriteString(rest)
			return sb.String(), nil
		}
		end := strings.Index(rest[start:], "}}")
		if end < 0 {
			return "", fmt.Errorf("unterminated placeholder at %q", rest[start:])
		}
		name := rest[start+2 : start+end]
		value := t.bindings[name]
		if value == nil {
			return "", fmt.Errorf("placeholder %q is unbound", name)
		}
		sb.WriteString(rest[:start])
		sb.WriteString(*value)
		rest = rest[start+end+2:]
	}
}

// walk invokes fn for each placeholder in text, left to right.
func walk(text string, fn func(name string) error) error {
	for {
		start := strings.Index(text, "{{")
		if start < 0 {
			return nil
		}
		end := strings.Index(text[start:], "}}")
		if end < 0 {
			return fmt.Errorf("unterminated placeholder at %q", text[start:])
		}
		if err := fn(text[start+2 : start+end]); err != nil {
			return err
		}
		text = text[start+end+2:]
	}
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}
