/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package loop

import (
	"context"
	"fmt"

	"github.com/chainguard-dev/clog"
)

// ToolDispatch resolves the pending tool calls of the most recent message,
// in the order they were requested, appending one tool-result message per
// call. Executor failures never abort the run: a failing call yields a
// tool result describing the failure, visible to subsequent provider
// calls. Routing back to the requesting actor is the Router's job, not
// this step's.
type ToolDispatch struct {
	Executor ToolExecutor
}

// Step executes every pending tool call against the state. Invoking it
// with no pending calls is a broken precondition upstream and yields a
// RoutingError.
func (d *ToolDispatch) Step(ctx context.Context, st *State) error {
	log := clog.FromContext(ctx)

	calls := st.PendingCalls()
	if len(calls) == 0 {
		return &RoutingError{Reason: "tool dispatch invoked with no pending tool calls"}
	}
	if d.Executor == nil {
		return &RoutingError{Reason: "tool calls requested but no executor configured"}
	}

	for _, call := range calls {
		content, err := d.Executor.Execute(ctx, call.Name, call.Args)
		if err != nil {
			log.With("tool", call.Name).
				With("id", call.ID).
				With("error", err.Error()).
				Warn("Tool call failed, recording failure as result")
			content = fmt.Sprintf("tool %q failed: %v", call.Name, err)
		} else {
			log.With("tool", call.Name).
				With("id", call.ID).
				Info("Tool call succeeded")
		}

		if err := st.append(Message{
			Role:       RoleToolResult,
			Content:    content,
			ToolCallID: call.ID,
		}); err != nil {
			return err
		}
	}
	return nil
}
