/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package metrics provides OpenTelemetry counters for completion provider
// usage: prompt and completion tokens plus tool-call volume, dimensioned
// by model name.
package metrics

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// GenAI records token usage and tool calls for a completion provider.
// Metric creation degrades gracefully: a counter that fails to initialize
// is replaced by a no-op so the provider keeps working.
type GenAI struct {
	promptTokens     metric.Int64Counter
	completionTokens metric.Int64Counter
	toolCallCounter  metric.Int64Counter
}

// NewGenAI creates counters under the given meter name. Use one meter name
// across all providers and let the model attribute differentiate them.
func NewGenAI(meterName string) *GenAI {
	meter := otel.Meter(meterName, metric.WithInstrumentationVersion("1.0.0"))

	promptTokens, err := meter.Int64Counter("genai.token.prompt",
		metric.WithDescription("The number of prompt tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create prompt tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		promptTokens = noop.Int64Counter{}
	}

	completionTokens, err := meter.Int64Counter("genai.token.completion",
		metric.WithDescription("The number of completion tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create completion tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		completionTokens = noop.Int64Counter{}
	}

	toolCallCounter, err := meter.Int64Counter("genai.tool.calls",
		metric.WithDescription("The number of tool calls requested by the model"),
		metric.WithUnit("{calls}"))
	if err != nil {
		slog.Warn("Failed to create tool call counter, metrics will be disabled", "error", err, "meter", meterName)
		toolCallCounter = noop.Int64Counter{}
	}

	return &GenAI{
		promptTokens:     promptTokens,
		completionTokens: completionTokens,
		toolCallCounter:  toolCallCounter,
	}
}

// RecordTokens records prompt and completion token usage for one call.
func (g *GenAI) RecordTokens(ctx context.Context, model string, promptTokens, completionTokens int64) {
	attrs := metric.WithAttributes(attribute.String("model", model))
	if promptTokens > 0 {
		g.promptTokens.Add(ctx, promptTokens, attrs)
	}
	if completionTokens > 0 {
		g.completionTokens.Add(ctx, completionTokens, attrs)
	}
}

// RecordToolCall counts one tool-call request.
func (g *GenAI) RecordToolCall(ctx context.Context, model, tool string) {
	g.toolCallCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("model", model),
		attribute.String("tool", tool),
	))
}
