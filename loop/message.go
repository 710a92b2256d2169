/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package loop

import "maps"

// Role identifies the author of a conversation message.
// It is a closed set: consumers switch exhaustively over the three
// variants rather than comparing free-form strings.
type Role int

const (
	// RoleRequester is the side asking for work: the seed topic and every
	// persisted critique.
	RoleRequester Role = iota
	// RoleAssistant is the side producing work: drafts, revisions, and
	// tool-call requests.
	RoleAssistant
	// RoleToolResult carries the outcome of a single tool call. Its
	// content is evidentiary and is never reattributed to either party.
	RoleToolResult
)

// String returns the role name for logging.
func (r Role) String() string {
	switch r {
	case RoleRequester:
		return "requester"
	case RoleAssistant:
		return "assistant"
	case RoleToolResult:
		return "tool_result"
	default:
		return "unknown"
	}
}

// ToolCall is a provider-independent representation of a requested tool
// invocation.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}

// Clone returns a deep copy of the call.
func (c ToolCall) Clone() ToolCall {
	c.Args = maps.Clone(c.Args)
	return c
}

// Message is one unit of conversation history.
type Message struct {
	Role    Role
	Content string

	// ToolCalls is the ordered set of tool invocations requested by this
	// message. Empty unless the provider asked for tools.
	ToolCalls []ToolCall

	// ToolCallID correlates a tool-result message to the call that
	// produced it. Set only when Role is RoleToolResult.
	ToolCallID string
}

// Clone returns a deep copy of the message.
func (m Message) Clone() Message {
	if len(m.ToolCalls) > 0 {
		calls := make([]ToolCall, len(m.ToolCalls))
		for i, c := range m.ToolCalls {
			calls[i] = c.Clone()
		}
		m.ToolCalls = calls
	}
	return m
}

// SwapRoles returns a view of history with requester and assistant roles
// exchanged. Tool-result messages pass through untouched. The transform is
// its own inverse and never mutates its input: it exists solely to present
// prior generator output as externally authored input to the critique
// provider.
func SwapRoles(history []Message) []Message {
	out := make([]Message, len(history))
	for i, m := range history {
		switch m.Role {
		case RoleRequester:
			m.Role = RoleAssistant
		case RoleAssistant:
			m.Role = RoleRequester
		case RoleToolResult:
			// Evidence stays evidence.
		}
		out[i] = m
	}
	return out
}
