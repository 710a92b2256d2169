/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolcall

import (
	"context"
	"errors"
	"fmt"

	"chainguard.dev/refine/loop"
	"chainguard.dev/refine/schema"
)

// Handler executes a single tool call. Returning an error marks the call
// as failed; the failure text becomes the tool result.
type Handler func(ctx context.Context, args map[string]any) (string, error)

// Tool is one named capability a provider may request.
type Tool struct {
	Spec    loop.ToolSpec
	Handler Handler
}

// New builds a Tool whose argument schema is derived from the Args struct
// type.
func New[Args any](name, description string, handler Handler) (Tool, error) {
	if name == "" {
		return Tool{}, errors.New("tool name cannot be empty")
	}
	if handler == nil {
		return Tool{}, fmt.Errorf("tool %q has no handler", name)
	}
	m, err := schema.MapFor[Args]()
	if err != nil {
		return Tool{}, fmt.Errorf("deriving schema for tool %q: %w", name, err)
	}
	return Tool{
		Spec: loop.ToolSpec{
			Name:        name,
			Description: description,
			Schema:      m,
		},
		Handler: handler,
	}, nil
}
