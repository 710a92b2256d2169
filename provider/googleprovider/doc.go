/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package googleprovider adapts Google's Gemini models to the loop's
// CompletionProvider interface. It converts conversation history to
// genai contents, retries transient Vertex AI errors, and records token
// usage metrics.
package googleprovider
