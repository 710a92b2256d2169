/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package loop

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type recordingExecutor struct {
	order []string
	fail  map[string]bool
}

func (e *recordingExecutor) Execute(_ context.Context, name string, _ map[string]any) (string, error) {
	e.order = append(e.order, name)
	if e.fail[name] {
		return "", fmt.Errorf("%s exploded", name)
	}
	return "ok: " + name, nil
}

func TestDispatchExecutesCallsInOrder(t *testing.T) {
	t.Parallel()
	st, _ := NewState("topic")
	mustAppend(t, st, Message{Role: RoleAssistant, ToolCalls: []ToolCall{
		{ID: "c1", Name: "alpha"},
		{ID: "c2", Name: "beta"},
		{ID: "c3", Name: "gamma"},
	}})
	st.markActor(ActorGenerator)

	exec := &recordingExecutor{fail: map[string]bool{"beta": true}}
	d := &ToolDispatch{Executor: exec}
	if err := d.Step(context.Background(), st); err != nil {
		t.Fatalf("Step: %v", err)
	}

	for i, want := range []string{"alpha", "beta", "gamma"} {
		if exec.order[i] != want {
			t.Fatalf("execution order = %v", exec.order)
		}
	}

	// One tool result per call, with matching IDs, failure captured as
	// content.
	h := st.History()
	results := h[len(h)-3:]
	for i, wantID := range []string{"c1", "c2", "c3"} {
		if results[i].Role != RoleToolResult || results[i].ToolCallID != wantID {
			t.Fatalf("result %d = %+v", i, results[i])
		}
	}
	if got := results[1].Content; got != `tool "beta" failed: beta exploded` {
		t.Fatalf("failure content = %q", got)
	}
	if len(st.PendingCalls()) != 0 {
		t.Fatal("calls left unresolved after dispatch")
	}
}

func TestDispatchWithNothingPendingIsRoutingError(t *testing.T) {
	t.Parallel()
	st, _ := NewState("topic")
	mustAppend(t, st, Message{Role: RoleAssistant, Content: "draft"})

	d := &ToolDispatch{Executor: &recordingExecutor{}}
	err := d.Step(context.Background(), st)
	var routing *RoutingError
	if !errors.As(err, &routing) {
		t.Fatalf("expected RoutingError, got %v", err)
	}
}
