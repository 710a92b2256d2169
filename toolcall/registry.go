/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolcall

import (
	"context"
	"fmt"
	"sort"

	"chainguard.dev/refine/loop"
	"github.com/chainguard-dev/clog"
)

// Registry dispatches tool calls by name. It implements loop.ToolExecutor.
// Registration happens during setup; Execute only reads, so no locking is
// needed under the loop's single-threaded discipline.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry builds a registry from the given tools. Duplicate names are
// rejected.
func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		if t.Spec.Name == "" {
			return nil, fmt.Errorf("tool with empty name")
		}
		if _, dup := r.tools[t.Spec.Name]; dup {
			return nil, fmt.Errorf("duplicate tool %q", t.Spec.Name)
		}
		if t.Handler == nil {
			return nil, fmt.Errorf("tool %q has no handler", t.Spec.Name)
		}
		r.tools[t.Spec.Name] = t
	}
	return r, nil
}

// Specs returns the registered tool specifications in name order, ready to
// advertise to a completion provider.
func (r *Registry) Specs() []loop.ToolSpec {
	specs := make([]loop.ToolSpec, 0, len(r.tools))
	for _, t := range r.tools {
		specs = append(specs, t.Spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs
}

// Execute runs the named tool. Unknown names and handler failures are
// returned as errors; the dispatch step records them as tool-result
// content rather than aborting the run.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (string, error) {
	tool, ok := r.tools[name]
	if !ok {
		clog.FromContext(ctx).With("tool", name).Error("Unknown tool requested")
		return "", fmt.Errorf("unknown tool: %q", name)
	}
	return tool.Handler(ctx, args)
}
