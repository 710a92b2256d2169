/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package loop

import "fmt"

// Step is a Router decision: which participant acts next, or End.
type Step int

const (
	StepGenerator Step = iota
	StepReflector
	StepTools
	StepEnd
)

// String returns the step name for logging.
func (s Step) String() string {
	switch s {
	case StepGenerator:
		return "generator"
	case StepReflector:
		return "reflector"
	case StepTools:
		return "tools"
	case StepEnd:
		return "end"
	default:
		return "unknown"
	}
}

// DefaultIterationCap bounds the number of non-tool-result turns in a run.
// The cap is a liveness guarantee independent of the finish flag: it
// terminates runs whose critique never produces a completion signal,
// trading possible under-refinement for guaranteed termination.
const DefaultIterationCap = 15

// Router is the entire transition table of the refinement loop, expressed
// as a pure decision function over State. Identical states always yield
// identical decisions.
type Router struct {
	// IterationCap overrides DefaultIterationCap when positive.
	IterationCap int
}

func (r Router) cap() int {
	if r.IterationCap > 0 {
		return r.IterationCap
	}
	return DefaultIterationCap
}

// Next maps the current state to the next step:
//
//   - entry (seed topic only) -> generator
//   - after a generator turn: pending tool calls -> tools; turn cap
//     reached -> end; otherwise -> reflector
//   - after a reflector turn: pending tool calls -> tools; finished or
//     turn cap reached -> end; otherwise -> generator
//   - after tool dispatch: unconditionally back to whichever actor
//     requested the calls
//
// Structurally invalid states (tool results with no recorded origin,
// unknown roles) yield a RoutingError.
func (r Router) Next(s *State) (Step, error) {
	if s.Finished() {
		return StepEnd, nil
	}

	last, ok := s.Last()
	if !ok {
		return StepEnd, &RoutingError{Reason: "empty history"}
	}

	switch last.Role {
	case RoleRequester:
		// The seed topic or a persisted critique.
		if s.TurnCount() >= r.cap() {
			return StepEnd, nil
		}
		return StepGenerator, nil

	case RoleAssistant:
		if len(s.PendingCalls()) > 0 {
			return StepTools, nil
		}
		if s.TurnCount() >= r.cap() {
			return StepEnd, nil
		}
		return StepReflector, nil

	case RoleToolResult:
		if len(s.PendingCalls()) > 0 {
			// A resumed run may still owe results; finish dispatch first.
			return StepTools, nil
		}
		switch s.LastActor() {
		case ActorGenerator:
			return StepGenerator, nil
		case ActorReflector:
			return StepReflector, nil
		default:
			return StepEnd, &RoutingError{Reason: "tool results without a recorded origin"}
		}

	default:
		return StepEnd, &RoutingError{Reason: fmt.Sprintf("message with unknown role %d", last.Role)}
	}
}
