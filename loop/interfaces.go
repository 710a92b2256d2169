/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package loop

import "context"

// ToolSpec describes a tool a completion provider may request. Schema is a
// JSON schema object for the tool's arguments.
type ToolSpec struct {
	Name        string
	Description string
	Schema      map[string]any
}

// CompletionProvider produces one assistant message from an ordered
// conversation history and the set of tools it may request. The reply
// carries final content, tool-call requests, or both; never neither.
// Provider-level failures surface as errors — the loop does not substitute
// a default for a failed call.
//
// A run uses two independently configured instances: one for drafting and
// one for critique.
type CompletionProvider interface {
	Complete(ctx context.Context, history []Message, specs []ToolSpec) (Message, error)
}

// ToolExecutor performs a single named tool call. A failing call returns
// an error; dispatch converts it into tool-result content rather than
// aborting the run.
type ToolExecutor interface {
	Execute(ctx context.Context, name string, args map[string]any) (string, error)
}

// Sink receives the finished artifact at the end of a run.
type Sink interface {
	Persist(ctx context.Context, topic, artifact string) error
}

// Observer receives routing decisions and step outcomes for diagnostics.
// Observers must not mutate state; they have no effect on control flow.
type Observer interface {
	// Decision is invoked for every Router decision, including the
	// terminal one.
	Decision(ctx context.Context, step Step, st *State)
	// StepDone is invoked after the selected step has run.
	StepDone(ctx context.Context, step Step, st *State, err error)
}
