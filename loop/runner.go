/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package loop

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"
)

// Runner drives a complete refinement run: it repeatedly asks the Router
// for the next step, executes it, and stops on a terminal decision.
type Runner struct {
	generator *Generator
	reflector *Reflector
	dispatch  *ToolDispatch
	router    Router
	sink      Sink
	observer  Observer
}

// Option configures a Runner.
type Option func(*Runner) error

// WithIterationCap overrides the default turn cap.
func WithIterationCap(cap int) Option {
	return func(r *Runner) error {
		if cap <= 0 {
			return fmt.Errorf("iteration cap must be positive, got %d", cap)
		}
		r.router.IterationCap = cap
		return nil
	}
}

// WithToolExecutor enables tool dispatch and advertises the given specs to
// both providers.
func WithToolExecutor(exec ToolExecutor, specs []ToolSpec) Option {
	return func(r *Runner) error {
		if exec == nil {
			return errors.New("tool executor cannot be nil")
		}
		r.dispatch.Executor = exec
		r.generator.Specs = specs
		r.reflector.Specs = specs
		return nil
	}
}

// WithSink persists the finished artifact at the end of each run.
func WithSink(sink Sink) Option {
	return func(r *Runner) error {
		if sink == nil {
			return errors.New("sink cannot be nil")
		}
		r.sink = sink
		return nil
	}
}

// WithObserver attaches a diagnostic observer. It sees every routing
// decision and step outcome without altering control flow.
func WithObserver(obs Observer) Option {
	return func(r *Runner) error {
		if obs == nil {
			return errors.New("observer cannot be nil")
		}
		r.observer = obs
		return nil
	}
}

// NewRunner builds a Runner around a drafting provider and a critique
// provider.
func NewRunner(draft, critique CompletionProvider, opts ...Option) (*Runner, error) {
	if draft == nil {
		return nil, errors.New("draft provider cannot be nil")
	}
	if critique == nil {
		return nil, errors.New("critique provider cannot be nil")
	}

	r := &Runner{
		generator: &Generator{Provider: draft},
		reflector: &Reflector{Provider: critique},
		dispatch:  &ToolDispatch{},
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return r, nil
}

// Run executes the refinement loop for the given topic and returns the
// final draft. When a sink is configured the draft is persisted before
// returning. Cancellation is honored between steps only, so the state is
// always left structurally valid.
func (r *Runner) Run(ctx context.Context, topic string) (string, error) {
	log := clog.FromContext(ctx)

	st, err := NewState(topic)
	if err != nil {
		return "", err
	}

	log.With("topic_length", len(topic)).
		With("iteration_cap", r.router.cap()).
		Info("Starting refinement run")

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		step, err := r.router.Next(st)
		if r.observer != nil {
			r.observer.Decision(ctx, step, st)
		}
		if err != nil {
			return "", err
		}

		log.With("step", step.String()).
			With("turn", st.TurnCount()).
			With("finished", st.Finished()).
			Info("Router decision")

		if step == StepEnd {
			break
		}

		var stepErr error
		switch step {
		case StepGenerator:
			stepErr = r.generator.Step(ctx, st)
		case StepReflector:
			stepErr = r.reflector.Step(ctx, st)
		case StepTools:
			stepErr = r.dispatch.Step(ctx, st)
		}
		if r.observer != nil {
			r.observer.StepDone(ctx, step, st, stepErr)
		}
		if stepErr != nil {
			return "", stepErr
		}
	}

	draft, ok := st.FinalDraft()
	if !ok {
		return "", &RoutingError{Reason: "run ended without a draft"}
	}

	if r.sink != nil {
		if err := r.sink.Persist(ctx, topic, draft); err != nil {
			return draft, fmt.Errorf("persisting artifact: %w", err)
		}
	}

	log.With("turns", st.TurnCount()).
		With("finished", st.Finished()).
		With("artifact_length", len(draft)).
		Info("Refinement run complete")
	return draft, nil
}
