/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package runtrace records the routing decisions and step transitions of
// a refinement run for diagnostics. It implements loop.Observer: attaching
// a trace changes nothing about control flow, it only watches.
//
// Every event is mirrored onto an OpenTelemetry span, and Report renders
// the collected transitions as a markdown table for terminal inspection.
package runtrace

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"chainguard.dev/refine/loop"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const tracerName = "chainguard.dev/refine/runtrace"

// EventKind distinguishes a routing decision from a completed step.
type EventKind string

const (
	KindDecision EventKind = "decision"
	KindStepDone EventKind = "step_done"
)

// Transition is one recorded event.
type Transition struct {
	Seq      int
	Kind     EventKind
	Step     loop.Step
	Turn     int
	Finished bool
	Pending  int
	Err      string
	At       time.Time
}

// Trace observes one run.
type Trace struct {
	RunID string

	mu          sync.Mutex
	transitions []Transition
	span        oteltrace.Span
}

// Start creates a trace and opens its span. Call End when the run
// finishes.
func Start(ctx context.Context) (context.Context, *Trace) {
	tr := otel.Tracer(tracerName, oteltrace.WithInstrumentationVersion("1.0.0"))
	runID := uuid.NewString()
	ctx, span := tr.Start(ctx, "refine.run",
		oteltrace.WithAttributes(attribute.String("run.id", runID)))
	return ctx, &Trace{RunID: runID, span: span}
}

// Decision implements loop.Observer.
func (t *Trace) Decision(_ context.Context, step loop.Step, st *loop.State) {
	t.record(Transition{
		Kind:     KindDecision,
		Step:     step,
		Turn:     st.TurnCount(),
		Finished: st.Finished(),
		Pending:  len(st.PendingCalls()),
	})
}

// StepDone implements loop.Observer.
func (t *Trace) StepDone(_ context.Context, step loop.Step, st *loop.State, err error) {
	tr := Transition{
		Kind:     KindStepDone,
		Step:     step,
		Turn:     st.TurnCount(),
		Finished: st.Finished(),
		Pending:  len(st.PendingCalls()),
	}
	if err != nil {
		tr.Err = err.Error()
	}
	t.record(tr)
}

func (t *Trace) record(tr Transition) {
	t.mu.Lock()
	defer t.mu.Unlock()
	tr.Seq = len(t.transitions) + 1
	tr.At = time.Now()
	t.transitions = append(t.transitions, tr)

	attrs := []attribute.KeyValue{
		attribute.String("loop.event", string(tr.Kind)),
		attribute.String("loop.step", tr.Step.String()),
		attribute.Int("loop.turn", tr.Turn),
		attribute.Bool("loop.finished", tr.Finished),
		attribute.Int("loop.pending_calls", tr.Pending),
	}
	if tr.Err != "" {
		attrs = append(attrs, attribute.String("loop.error", tr.Err))
	}
	t.span.AddEvent(fmt.Sprintf("%s:%s", tr.Kind, tr.Step), oteltrace.WithAttributes(attrs...))
}

// Transitions returns a copy of the recorded events.
func (t *Trace) Transitions() []Transition {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Transition, len(t.transitions))
	copy(out, t.transitions)
	return out
}

// End closes the trace span, recording the run's terminal error if any.
func (t *Trace) End(err error) {
	if err != nil {
		t.span.RecordError(err)
		t.span.SetStatus(codes.Error, err.Error())
	} else {
		t.span.SetStatus(codes.Ok, "")
	}
	t.span.End()
}

// Report renders the recorded transitions as a markdown table.
func (t *Trace) Report(w io.Writer) error {
	table := newTransitionTable(w)
	for _, tr := range t.Transitions() {
		if err := table.Append([]string{
			strconv.Itoa(tr.Seq),
			string(tr.Kind),
			tr.Step.String(),
			strconv.Itoa(tr.Turn),
			strconv.FormatBool(tr.Finished),
			strconv.Itoa(tr.Pending),
			tr.Err,
		}); err != nil {
			return err
		}
	}
	return table.Render()
}
