/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package openaiprovider

import (
	"context"
	"fmt"

	"chainguard.dev/refine/loop"
	"chainguard.dev/refine/metrics"
	"chainguard.dev/refine/prompt"
	"chainguard.dev/refine/retry"
	"github.com/chainguard-dev/clog"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"
)

// Provider is a loop.CompletionProvider backed by OpenAI chat models.
type Provider struct {
	client       openai.Client
	modelName    string
	maxTokens    int64
	temperature  float64
	system       *prompt.Template
	genaiMetrics *metrics.GenAI
	retryConfig  retry.Config
}

// New creates a Provider with the given client and options.
func New(client openai.Client, opts ...Option) (*Provider, error) {
	p := &Provider{
		client:       client,
		modelName:    string(openai.ChatModelGPT4o),
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

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	if p.system != nil {
		systemPrompt, err := p.system.Build()
		if err != nil {
			return loop.Message{}, fmt.Errorf("building system prompt: %w", err)
		}
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	messages = append(messages, toChatMessages(history)...)

	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(p.modelName),
		Messages:    messages,
		MaxTokens:   openai.Int(p.maxTokens),
		Temperature: openai.Float(p.temperature),
	}
	if tools := toChatTools(specs); len(tools) > 0 {
		params.Tools = tools
	}

	log.With("model", p.modelName).
		With("messages", len(params.Messages)).
		With("tools", len(params.Tools)).
		Info("Requesting OpenAI completion")

	resp, err := retry.Do(ctx, p.retryConfig, "chat_completion", isRetryableOpenAIError, func() (*openai.ChatCompletion, error) {
		return p.client.Chat.Completions.New(ctx, params)
	})
	if err != nil {
		return loop.Message{}, fmt.Errorf("requesting OpenAI completion: %w", err)
	}

	if resp.Usage.PromptTokens > 0 || resp.Usage.CompletionTokens > 0 {
		p.genaiMetrics.RecordTokens(ctx, p.modelName, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	}

	reply, err := fromChatCompletion(resp)
	if err != nil {
		return loop.Message{}, err
	}
	for _, call := range reply.ToolCalls {
		p.genaiMetrics.RecordToolCall(ctx, p.modelName, call.Name)
	}
	return reply, nil
}
