/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package claudeprovider adapts Anthropic's Claude API to the loop's
// CompletionProvider interface. It converts conversation history to the
// Messages API shape, streams and accumulates the response, retries
// transient rate-limit errors, and records token usage metrics.
package claudeprovider
