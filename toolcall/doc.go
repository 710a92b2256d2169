/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package toolcall defines provider-independent tools and a registry that
// dispatches tool calls by name.
//
// A Tool pairs a loop.ToolSpec (name, description, argument schema) with a
// handler. Schemas can be derived from Go argument structs via the schema
// package:
//
//	tool, err := toolcall.New[fetchArgs]("fetch_url", "Fetch a page",
//		func(ctx context.Context, args map[string]any) (string, error) { ... })
//
// Registry implements loop.ToolExecutor. Handler errors are returned to
// the dispatch step, which converts them into tool-result content; nothing
// escapes the dispatch boundary as a crash.
package toolcall
