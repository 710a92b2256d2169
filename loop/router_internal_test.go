/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package loop

import (
	"errors"
	"testing"
)

func mustAppend(t *testing.T, st *State, msgs ...Message) {
	t.Helper()
	for _, m := range msgs {
		if err := st.append(m); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
}

func TestRouterEntryGoesToGenerator(t *testing.T) {
	t.Parallel()
	st, _ := NewState("topic")
	step, err := Router{}.Next(st)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if step != StepGenerator {
		t.Fatalf("entry step = %v, want generator", step)
	}
}

func TestRouterAfterGenerator(t *testing.T) {
	t.Parallel()

	t.Run("no tool calls goes to reflector", func(t *testing.T) {
		t.Parallel()
		st, _ := NewState("topic")
		mustAppend(t, st, Message{Role: RoleAssistant, Content: "draft"})
		step, err := Router{}.Next(st)
		if err != nil {
			t.Fatal(err)
		}
		if step != StepReflector {
			t.Fatalf("step = %v, want reflector", step)
		}
	})

	t.Run("pending tool calls go to tools", func(t *testing.T) {
		t.Parallel()
		st, _ := NewState("topic")
		mustAppend(t, st, Message{Role: RoleAssistant, ToolCalls: []ToolCall{{ID: "c1", Name: "search"}}})
		st.markActor(ActorGenerator)
		step, err := Router{}.Next(st)
		if err != nil {
			t.Fatal(err)
		}
		if step != StepTools {
			t.Fatalf("step = %v, want tools", step)
		}
	})

	t.Run("cap reached goes to end", func(t *testing.T) {
		t.Parallel()
		st, _ := NewState("topic")
		mustAppend(t, st, Message{Role: RoleAssistant, Content: "draft"})
		step, err := Router{IterationCap: 1}.Next(st)
		if err != nil {
			t.Fatal(err)
		}
		if step != StepEnd {
			t.Fatalf("step = %v, want end", step)
		}
	})
}

func TestRouterAfterReflector(t *testing.T) {
	t.Parallel()

	t.Run("critique goes back to generator", func(t *testing.T) {
		t.Parallel()
		st, _ := NewState("topic")
		mustAppend(t, st,
			Message{Role: RoleAssistant, Content: "draft"},
			Message{Role: RoleRequester, Content: "critique"},
		)
		step, err := Router{}.Next(st)
		if err != nil {
			t.Fatal(err)
		}
		if step != StepGenerator {
			t.Fatalf("step = %v, want generator", step)
		}
	})

	t.Run("finished goes to end", func(t *testing.T) {
		t.Parallel()
		st, _ := NewState("topic")
		mustAppend(t, st,
			Message{Role: RoleAssistant, Content: "draft"},
			Message{Role: RoleRequester, Content: "critique"},
		)
		st.finish()
		step, err := Router{}.Next(st)
		if err != nil {
			t.Fatal(err)
		}
		if step != StepEnd {
			t.Fatalf("step = %v, want end", step)
		}
	})

	t.Run("cap reached goes to end", func(t *testing.T) {
		t.Parallel()
		st, _ := NewState("topic")
		mustAppend(t, st,
			Message{Role: RoleAssistant, Content: "draft"},
			Message{Role: RoleRequester, Content: "critique"},
		)
		step, err := Router{IterationCap: 2}.Next(st)
		if err != nil {
			t.Fatal(err)
		}
		if step != StepEnd {
			t.Fatalf("step = %v, want end", step)
		}
	})
}

func TestRouterAfterToolsReturnsToLastActor(t *testing.T) {
	t.Parallel()

	for actor, want := range map[Actor]Step{
		ActorGenerator: StepGenerator,
		ActorReflector: StepReflector,
	} {
		st, _ := NewState("topic")
		mustAppend(t, st,
			Message{Role: RoleAssistant, ToolCalls: []ToolCall{{ID: "c1", Name: "search"}}},
			Message{Role: RoleToolResult, Content: "result", ToolCallID: "c1"},
		)
		st.markActor(actor)
		step, err := Router{}.Next(st)
		if err != nil {
			t.Fatalf("actor %v: %v", actor, err)
		}
		if step != want {
			t.Fatalf("actor %v: step = %v, want %v", actor, step, want)
		}
	}
}

func TestRouterPartialDispatchResumesTools(t *testing.T) {
	t.Parallel()
	st, _ := NewState("topic")
	mustAppend(t, st,
		Message{Role: RoleAssistant, ToolCalls: []ToolCall{
			{ID: "c1", Name: "search"},
			{ID: "c2", Name: "search"},
		}},
		Message{Role: RoleToolResult, Content: "result", ToolCallID: "c1"},
	)
	st.markActor(ActorGenerator)
	step, err := Router{}.Next(st)
	if err != nil {
		t.Fatal(err)
	}
	if step != StepTools {
		t.Fatalf("step = %v, want tools", step)
	}
}

func TestRouterToolResultWithoutActorIsRoutingError(t *testing.T) {
	t.Parallel()
	st, _ := NewState("topic")
	mustAppend(t, st,
		Message{Role: RoleAssistant, ToolCalls: []ToolCall{{ID: "c1", Name: "search"}}},
		Message{Role: RoleToolResult, Content: "result", ToolCallID: "c1"},
	)
	_, err := Router{}.Next(st)
	var routing *RoutingError
	if !errors.As(err, &routing) {
		t.Fatalf("expected RoutingError, got %v", err)
	}
}

func TestRouterIsDeterministic(t *testing.T) {
	t.Parallel()
	st, _ := NewState("topic")
	mustAppend(t, st, Message{Role: RoleAssistant, Content: "draft"})

	r := Router{IterationCap: 5}
	first, err := r.Next(st)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		step, err := r.Next(st)
		if err != nil {
			t.Fatal(err)
		}
		if step != first {
			t.Fatalf("decision %d = %v, differs from first %v", i, step, first)
		}
	}
}

func TestRouterFinishedBeatsEverything(t *testing.T) {
	t.Parallel()
	st, _ := NewState("topic")
	mustAppend(t, st, Message{Role: RoleAssistant, Content: "draft"})
	st.finish()
	step, err := Router{}.Next(st)
	if err != nil {
		t.Fatal(err)
	}
	if step != StepEnd {
		t.Fatalf("step = %v, want end", step)
	}
}
