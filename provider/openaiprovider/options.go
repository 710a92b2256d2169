/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package openaiprovider

import (
	"errors"
	"fmt"

	"chainguard.dev/refine/prompt"
	"chainguard.dev/refine/retry"
)

// Option is a functional option for configuring the provider.
type Option func(*Provider) error

// WithModel overrides the model name.
func WithModel(model string) Option {
	return func(p *Provider) error {
		if model == "" {
			return errors.New("model name cannot be empty")
		}
		p.modelName = model
		return nil
	}
}

// WithMaxTokens sets the maximum tokens for responses.
func WithMaxTokens(tokens int64) Option {
	return func(p *Provider) error {
		if tokens <= 0 {
			return fmt.Errorf("max tokens must be positive, got %d", tokens)
		}
		p.maxTokens = tokens
		return nil
	}
}

// WithTemperature sets the sampling temperature. OpenAI chat models
// accept values from 0.0 to 2.0.
func WithTemperature(temp float64) Option {
	return func(p *Provider) error {
		if temp < 0.0 || temp > 2.0 {
			return fmt.Errorf("temperature must be between 0.0 and 2.0, got %f", temp)
		}
		p.temperature = temp
		return nil
	}
}

// WithSystemInstructions sets the system prompt. The template is built on
// every completion call, so it must be fully bound.
func WithSystemInstructions(tmpl *prompt.Template) Option {
	return func(p *Provider) error {
		if tmpl == nil {
			return errors.New("system instructions template cannot be nil")
		}
		p.system = tmpl
		return nil
	}
}

// WithRetryConfig overrides the retry behavior for transient API errors.
func WithRetryConfig(cfg retry.Config) Option {
	return func(p *Provider) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		p.retryConfig = cfg
		return nil
	}
}
