/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package retry provides exponential backoff with jitter for transient
// provider API errors, in particular quota and rate-limit responses.
package retry

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/chainguard-dev/clog"
)

// Config controls backoff behavior.
type Config struct {
	// MaxAttempts is the total number of tries, including the first.
	// Values below 1 are treated as 1 (no retry).
	MaxAttempts int
	// BaseBackoff is the delay before the first retry.
	BaseBackoff time.Duration
	// MaxBackoff caps the exponential growth.
	MaxBackoff time.Duration
	// MaxJitter is the upper bound of the random delay added to each
	// backoff to avoid thundering herds.
	MaxJitter time.Duration
}

// Validate checks the configuration for nonsensical values.
func (c Config) Validate() error {
	if c.BaseBackoff < 0 {
		return errors.New("base backoff cannot be negative")
	}
	if c.MaxBackoff < 0 {
		return errors.New("max backoff cannot be negative")
	}
	if c.MaxJitter < 0 {
		return errors.New("max jitter cannot be negative")
	}
	return nil
}

// DefaultConfig returns settings tuned for quota-style rate limits, which
// tend to need longer recovery windows than ordinary transient errors.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 6,
		BaseBackoff: time.Second,
		MaxBackoff:  60 * time.Second,
		MaxJitter:   500 * time.Millisecond,
	}
}

func (c Config) attempts() int {
	if c.MaxAttempts < 1 {
		return 1
	}
	return c.MaxAttempts
}

func (c Config) delay(attempt int) time.Duration {
	backoff := min(c.BaseBackoff<<attempt, c.MaxBackoff)
	if c.MaxJitter > 0 {
		if n, err := rand.Int(rand.Reader, big.NewInt(int64(c.MaxJitter))); err == nil {
			backoff += time.Duration(n.Int64())
		}
	}
	return backoff
}

// Do runs fn, retrying with exponential backoff for as long as retryable
// classifies the error as transient. The operation name appears in logs
// and in the terminal error.
func Do[T any](ctx context.Context, cfg Config, operation string, retryable func(error) bool, fn func() (T, error)) (T, error) {
	var result T
	var lastErr error

	attempts := cfg.attempts()
	for attempt := 0; attempt < attempts; attempt++ {
		result, lastErr = fn()
		if lastErr == nil {
			return result, nil
		}
		if !retryable(lastErr) {
			return result, lastErr
		}
		if attempt == attempts-1 {
			break
		}

		wait := cfg.delay(attempt)
		clog.FromContext(ctx).With("operation", operation).
			With("attempt", attempt+1).
			With("max_attempts", attempts).
			With("backoff", wait).
			With("error", lastErr.Error()).
			Warn("Transient provider error, retrying")

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(wait):
		}
	}

	return result, fmt.Errorf("%s failed after %d attempts: %w", operation, attempts, lastErr)
}
