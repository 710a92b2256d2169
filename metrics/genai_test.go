/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics_test

import (
	"context"
	"testing"

	"chainguard.dev/refine/metrics"
)

func TestGenAIRecordsWithoutProvider(t *testing.T) {
	t.Parallel()
	// With no meter provider registered, the global no-op applies; the
	// recorders must still be safe to call.
	g := metrics.NewGenAI("refine.test")
	if g == nil {
		t.Fatal("expected metrics instance")
	}
	g.RecordTokens(context.Background(), "claude-sonnet-4-5", 100, 50)
	g.RecordTokens(context.Background(), "claude-sonnet-4-5", 0, 0)
	g.RecordToolCall(context.Background(), "claude-sonnet-4-5", "search")
}
