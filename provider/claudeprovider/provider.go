/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package claudeprovider

import (
	"context"
	"fmt"

	"chainguard.dev/refine/loop"
	"chainguard.dev/refine/metrics"
	"chainguard.dev/refine/prompt"
	"chainguard.dev/refine/retry"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/chainguard-dev/clog"
)

// Provider is a loop.CompletionProvider backed by Claude.
type Provider struct {
	client       anthropic.Client
	modelName    string
	maxTokens    int64
	temperature  float64
	system       *prompt.Template
	genaiMetrics *metrics.GenAI
	retryConfig  retry.Config
}

// New creates a Provider with the given client and options.
func New(client anthropic.Client, opts ...Option) (*Provider, error) {
	p := &Provider{
		client:       client,
		modelName:    "claude-sonnet-4-5@20250929",
		maxTokens:    8192,
		temperature:  0.1,
		genaiMetrics: metrics.NewGenAI("chainguard.refine.providers"),
		retryConfig:  retry.DefaultConfig(),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return p, nil
}

// Complete implements loop.CompletionProvider.
func (p *Provider) Complete(ctx context.Context, history []loop.Message, specs []loop.ToolSpec) (loop.Message, error) {
	log := clog.FromContext(ctx)

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.modelName),
		MaxTokens: p.maxTokens,
		Messages:  toMessageParams(history),
		Tools:     toToolParams(specs),
	}
	params.Temperature = anthropic.Float(p.temperature)

	if p.system != nil {
		systemPrompt, err := p.system.Build()
		if err != nil {
			return loop.Message{}, fmt.Errorf("building system prompt: %w", err)
		}
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}

	log.With("model", p.modelName).
		With("messages", len(params.Messages)).
		With("tools", len(params.Tools)).
		Info("Requesting Claude completion")

	message, err := retry.Do(ctx, p.retryConfig, "stream_message", isRetryableClaudeError, func() (anthropic.Message, error) {
		stream := p.client.Messages.NewStreaming(ctx, params)
		var msg anthropic.Message
		for stream.Next() {
			event := stream.Current()
			if err := msg.Accumulate(event); err != nil {
				return msg, fmt.Errorf("failed to accumulate event: %w", err)
			}
		}
		if err := stream.Err(); err != nil {
			return msg, err
		}
		return msg, nil
	})
	if err != nil {
		return loop.Message{}, fmt.Errorf("streaming Claude response: %w", err)
	}

	if message.Usage.InputTokens > 0 || message.Usage.OutputTokens > 0 {
		p.genaiMetrics.RecordTokens(ctx, p.modelName, message.Usage.InputTokens, message.Usage.OutputTokens)
	}

	reply, err := fromMessage(message)
	if err != nil {
		return loop.Message{}, err
	}
	for _, call := range reply.ToolCalls {
		p.genaiMetrics.RecordToolCall(ctx, p.modelName, call.Name)
	}
	return reply, nil
}
