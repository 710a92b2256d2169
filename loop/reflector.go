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

// Reflector critiques the latest draft. It sends the critique provider a
// role-swapped view of history so the draft reads as an external document,
// then persists the critique as a requester message so the next generator
// turn treats it as fresh instruction.
type Reflector struct {
	Provider CompletionProvider
	Specs    []ToolSpec
}

// Step runs one reflector turn against the state.
//
// When the provider requests tools, the reply is persisted as-is and no
// completion parsing happens: the critique is not finished until its tool
// calls resolve and a subsequent turn yields plain text. Otherwise the
// text is classified for a completion signal before being wrapped as the
// next requester instruction.
func (r *Reflector) Step(ctx context.Context, st *State) error {
	log := clog.FromContext(ctx)

	msg, err := r.Provider.Complete(ctx, SwapRoles(st.History()), r.Specs)
	if err != nil {
		var malformed *MalformedResponseError
		if errors.As(err, &malformed) {
			return err
		}
		return &ProviderError{Provider: "critique", Err: err}
	}
	if err := validateReply(msg); err != nil {
		return err
	}

	if len(msg.ToolCalls) > 0 {
		msg.Role = RoleAssistant
		if err := st.append(msg); err != nil {
			return err
		}
		st.markActor(ActorReflector)
		log.With("turn", st.TurnCount()).
			With("tool_calls", len(msg.ToolCalls)).
			Info("Reflector requested tools")
		return nil
	}

	complete := ParseCompletion(msg.Content)
	if err := st.append(Message{Role: RoleRequester, Content: msg.Content}); err != nil {
		return err
	}
	if complete {
		st.finish()
	}

	log.With("turn", st.TurnCount()).
		With("complete", complete).
		With("content_length", len(msg.Content)).
		Info("Reflector emitted critique")
	return nil
}
