/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package loop

import (
	"context"
	"errors"

	"github.com/chainguard-dev/clog"
)

// Generator produces the next draft or revision. It invokes the drafting
// provider with the full, unswapped history and appends exactly one
// assistant message.
type Generator struct {
	Provider CompletionProvider
	Specs    []ToolSpec
}

// Step runs one generator turn against the state.
func (g *Generator) Step(ctx context.Context, st *State) error {
	log := clog.FromContext(ctx)

	msg, err := g.Provider.Complete(ctx, st.History(), g.Specs)
	if err != nil {
		var malformed *MalformedResponseError
		if errors.As(err, &malformed) {
			return err
		}
		return &ProviderError{Provider: "draft", Err: err}
	}
	if err := validateReply(msg); err != nil {
		return err
	}

	msg.Role = RoleAssistant
	if err := st.append(msg); err != nil {
		return err
	}
	if len(msg.ToolCalls) > 0 {
		st.markActor(ActorGenerator)
	}

	log.With("turn", st.TurnCount()).
		With("tool_calls", len(msg.ToolCalls)).
		With("content_length", len(msg.Content)).
		Info("Generator emitted draft")
	return nil
}

// validateReply rejects provider messages that are structurally unusable:
// neither content nor tool calls, or a tool call missing required fields.
func validateReply(msg Message) error {
	if msg.Content == "" && len(msg.ToolCalls) == 0 {
		return &MalformedResponseError{Reason: "reply carries neither content nor tool calls"}
	}
	for _, c := range msg.ToolCalls {
		if c.ID == "" {
			return &MalformedResponseError{Reason: "tool call without an identifier"}
		}
		if c.Name == "" {
			return &MalformedResponseError{Reason: "tool call without a name"}
		}
	}
	return nil
}
