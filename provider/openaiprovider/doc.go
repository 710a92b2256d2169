/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package openaiprovider adapts the OpenAI Chat Completions API to the
// loop's CompletionProvider interface. It converts conversation history
// to chat messages, retries transient API errors, and records token
// usage metrics.
package openaiprovider
