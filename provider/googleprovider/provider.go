/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googleprovider

import (
	"context"
	"fmt"

	"chainguard.dev/refine/loop"
	"chainguard.dev/refine/metrics"
	"chainguard.dev/refine/prompt"
	"chainguard.dev/refine/retry"
	"github.com/chainguard-dev/clog"
	"google.golang.org/genai"
)

// Provider is a loop.CompletionProvider backed by Gemini.
type Provider struct {
	client          *genai.Client
	modelName       string
	maxOutputTokens int32
	temperature     float32
	system          *prompt.Template
	genaiMetrics    *metrics.GenAI
	retryConfig     retry.Config
}

// New creates a Provider with the given client and options.
func New(client *genai.Client, opts ...Option) (*Provider, error) {
	p := &Provider{
		client:          client,
		modelName:       "gemini-2.5-flash",
		maxOutputTokens: 8192,
		temperature:     0.1,
		genaiMetrics:    metrics.NewGenAI("chainguard.refine.providers"),
		retryConfig:     retry.DefaultConfig(),
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

	config := &genai.GenerateContentConfig{
		Temperature:     ptr(p.temperature),
		MaxOutputTokens: p.maxOutputTokens,
	}

	if p.system != nil {
		systemPrompt, err := p.system.Build()
		if err != nil {
			return loop.Message{}, fmt.Errorf("building system prompt: %w", err)
		}
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		}
	}

	if declarations := toDeclarations(specs); len(declarations) > 0 {
		config.Tools = []*genai.Tool{{FunctionDeclarations: declarations}}
	}

	contents := toContents(history)

	log.With("model", p.modelName).
		With("contents", len(contents)).
		With("tools", len(specs)).
		Info("Requesting Gemini completion")

	response, err := retry.Do(ctx, p.retryConfig, "generate_content", isRetryableVertexError, func() (*genai.GenerateContentResponse, error) {
		return p.client.Models.GenerateContent(ctx, p.modelName, contents, config)
	})
	if err != nil {
		return loop.Message{}, fmt.Errorf("generating Gemini content: %w", err)
	}

	if response.UsageMetadata != nil {
		p.genaiMetrics.RecordTokens(ctx, p.modelName,
			int64(response.UsageMetadata.PromptTokenCount),
			int64(response.UsageMetadata.CandidatesTokenCount))
	}

	reply, err := fromResponse(response)
	if err != nil {
		return loop.Message{}, err
	}
	for _, call := range reply.ToolCalls {
		p.genaiMetrics.RecordToolCall(ctx, p.modelName, call.Name)
	}
	return reply, nil
}

// ptr is a helper function to create a pointer to a value
func ptr[T any](v T) *T {
	return &v
}
