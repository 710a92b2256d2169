/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package runtrace_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"chainguard.dev/refine/loop"
	"chainguard.dev/refine/runtrace"
)

func TestTraceRecordsTransitions(t *testing.T) {
	t.Parallel()
	ctx, trace := runtrace.Start(context.Background())
	defer trace.End(nil)

	st, err := loop.NewState("topic")
	if err != nil {
		t.Fatal(err)
	}

	trace.Decision(ctx, loop.StepGenerator, st)
	trace.StepDone(ctx, loop.StepGenerator, st, nil)
	trace.Decision(ctx, loop.StepEnd, st)

	got := trace.Transitions()
	if len(got) != 3 {
		t.Fatalf("recorded %d transitions, want 3", len(got))
	}
	if got[0].Seq != 1 || got[0].Kind != runtrace.KindDecision || got[0].Step != loop.StepGenerator {
		t.Fatalf("first transition = %+v", got[0])
	}
	if got[1].Kind != runtrace.KindStepDone {
		t.Fatalf("second transition = %+v", got[1])
	}
	if trace.RunID == "" {
		t.Fatal("missing run id")
	}
}

func TestTraceRecordsStepErrors(t *testing.T) {
	t.Parallel()
	ctx, trace := runtrace.Start(context.Background())
	defer trace.End(nil)

	st, _ := loop.NewState("topic")
	trace.StepDone(ctx, loop.StepTools, st, errors.New("boom"))

	got := trace.Transitions()
	if got[0].Err != "boom" {
		t.Fatalf("error not recorded: %+v", got[0])
	}
}

func TestReportRendersTable(t *testing.T) {
	t.Parallel()
	ctx, trace := runtrace.Start(context.Background())
	defer trace.End(nil)

	st, _ := loop.NewState("topic")
	trace.Decision(ctx, loop.StepGenerator, st)
	trace.Decision(ctx, loop.StepReflector, st)

	var sb strings.Builder
	if err := trace.Report(&sb); err != nil {
		t.Fatalf("Report: %v", err)
	}
	out := sb.String()
	for _, want := range []string{"STEP", "generator", "reflector", "decision"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}
