/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package claudeprovider

import (
	"errors"
	"fmt"
	"strings"

	"chainguard.dev/refine/prompt"
	"chainguard.dev/refine/retry"
)

// Option is a functional option for configuring the provider.
type Option func(*Provider) error

// WithModel overrides the model name.
func WithModel(model string) Option {
	return func(p *Provider) error {
		if !strings.HasPrefix(model, "claude-") {
			return fmt.Errorf("model %q does not appear to be a Claude model (expected claude-* format)", model)
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

// WithTemperature sets the sampling temperature. Claude models accept
// values from 0.0 to 1.0.
func WithTemperature(temp float64) Option {
	return func(p *Provider) error {
		if temp < 0.0 || temp > 1.0 {
			return fmt.Errorf("temperature must be between 0.0 and 1.0, got %f", temp)
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

// WithRetryConfig overrides the retry behavior for transient API errors,
// in particular 429 rate limit and 529 overloaded responses.
func WithRetryConfig(cfg retry.Config) Option {
	return func(p *Provider) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		p.retryConfig = cfg
		return nil
	}
}
