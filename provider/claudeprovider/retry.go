/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package claudeprovider

import (
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
)

// isRetryableClaudeError reports whether an error is a transient Claude
// API error: rate limit, overloaded, or gateway failures.
func isRetryableClaudeError(err error) bool {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, 503, 504, 529:
			return true
		}
	}
	return false
}
