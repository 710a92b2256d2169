/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package loop

import "fmt"

// ProviderError reports that a completion provider call failed outright
// (connectivity, auth, quota). The loop never substitutes a default for a
// failed provider call; the error aborts the run. Retry and backoff, if
// any, belong to the provider adapter.
type ProviderError struct {
	// Provider names the failing instance, "draft" or "critique".
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// MalformedResponseError reports that a provider returned a structurally
// unusable message: a tool call missing its identifier or name, or a reply
// with neither content nor tool calls. Guessing at intent would corrupt
// the conversation, so this aborts the run.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed provider response: %s", e.Reason)
}

// RoutingError reports a broken precondition in the conversation's causal
// structure: tool dispatch with nothing pending, a tool result without a
// matching call, or a new turn while calls remain unresolved. Continuing
// would silently corrupt history, so this aborts the run.
type RoutingError struct {
	Reason string
}

func (e *RoutingError) Error() string {
	return fmt.Sprintf("routing: %s", e.Reason)
}
