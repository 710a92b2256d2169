/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package loop

import (
	"errors"
	"fmt"
)

// Actor records which logical step most recently emitted pending tool
// calls, so that results route back to it.
type Actor int

const (
	ActorNone Actor = iota
	ActorGenerator
	ActorReflector
)

// String returns the actor name for logging.
func (a Actor) String() string {
	switch a {
	case ActorGenerator:
		return "generator"
	case ActorReflector:
		return "reflector"
	default:
		return "none"
	}
}

// State is the full context of one run: an append-only message log plus
// the routing metadata the Router consults. It has exactly one writer at a
// time (the currently running step); messages are never reordered,
// rewritten, or truncated.
type State struct {
	history    []Message
	lastActor  Actor
	finished   bool
	turnCount  int
	unresolved map[string]struct{}
}

// NewState creates the state for a single run, seeded with one requester
// message carrying the topic.
func NewState(topic string) (*State, error) {
	if topic == "" {
		return nil, errors.New("topic cannot be empty")
	}
	return &State{
		history:    []Message{{Role: RoleRequester, Content: topic}},
		unresolved: map[string]struct{}{},
	}, nil
}

// History returns a copy of the message log. Callers may hand the copy to
// a provider or transform it freely without affecting persisted state.
func (s *State) History() []Message {
	out := make([]Message, len(s.history))
	for i, m := range s.history {
		out[i] = m.Clone()
	}
	return out
}

// Len returns the number of persisted messages.
func (s *State) Len() int { return len(s.history) }

// Last returns the most recent message, if any.
func (s *State) Last() (Message, bool) {
	if len(s.history) == 0 {
		return Message{}, false
	}
	return s.history[len(s.history)-1].Clone(), true
}

// LastActor reports which step most recently requested tool calls.
func (s *State) LastActor() Actor { return s.lastActor }

// Finished reports whether the critique declared the draft complete.
// Monotonic: once true it stays true for the remainder of the run.
func (s *State) Finished() bool { return s.finished }

// TurnCount is the number of non-tool-result messages emitted by steps so
// far. The seed topic does not count.
func (s *State) TurnCount() int { return s.turnCount }

// PendingCalls returns, in request order, the tool calls that have not yet
// received a matching tool-result message.
func (s *State) PendingCalls() []ToolCall {
	if len(s.unresolved) == 0 {
		return nil
	}
	for i := len(s.history) - 1; i >= 0; i-- {
		if len(s.history[i].ToolCalls) == 0 {
			continue
		}
		var pending []ToolCall
		for _, c := range s.history[i].ToolCalls {
			if _, ok := s.unresolved[c.ID]; ok {
				pending = append(pending, c.Clone())
			}
		}
		return pending
	}
	return nil
}

// FinalDraft returns the content of the most recent generator output: the
// last assistant message that carries no tool calls. This is the artifact
// a finished run delivers.
func (s *State) FinalDraft() (string, bool) {
	for i := len(s.history) - 1; i >= 0; i-- {
		m := s.history[i]
		if m.Role == RoleAssistant && len(m.ToolCalls) == 0 {
			return m.Content, true
		}
	}
	return "", false
}

// append adds one message to the log, enforcing the correlation
// invariants. A tool result must match an unresolved call identifier; no
// other turn may land while calls remain unresolved.
func (s *State) append(m Message) error {
	switch m.Role {
	case RoleToolResult:
		if m.ToolCallID == "" {
			return &RoutingError{Reason: "tool result without a call identifier"}
		}
		if _, ok := s.unresolved[m.ToolCallID]; !ok {
			return &RoutingError{Reason: fmt.Sprintf("tool result %q has no matching unresolved call", m.ToolCallID)}
		}
		delete(s.unresolved, m.ToolCallID)
	case RoleRequester, RoleAssistant:
		if len(s.unresolved) > 0 {
			return &RoutingError{Reason: fmt.Sprintf("%d tool calls still unresolved", len(s.unresolved))}
		}
		for _, c := range m.ToolCalls {
			if _, dup := s.unresolved[c.ID]; dup {
				return &RoutingError{Reason: fmt.Sprintf("duplicate tool call identifier %q", c.ID)}
			}
			s.unresolved[c.ID] = struct{}{}
		}
		s.turnCount++
	default:
		return &RoutingError{Reason: fmt.Sprintf("message with unknown role %d", m.Role)}
	}
	s.history = append(s.history, m.Clone())
	return nil
}

// markActor records the origin of the pending tool calls.
func (s *State) markActor(a Actor) { s.lastActor = a }

// finish latches the completion flag. There is no way to unset it.
func (s *State) finish() { s.finished = true }
