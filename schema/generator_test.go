/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package schema_test

import (
	"testing"

	"chainguard.dev/refine/schema"
	"github.com/stretchr/testify/require"
)

type searchArgs struct {
	Query string `json:"query" jsonschema:"description=Search query,required"`
	Limit int    `json:"limit,omitempty" jsonschema:"description=Maximum result count"`
}

func TestReflect(t *testing.T) {
	t.Parallel()
	s := schema.Reflect(&searchArgs{})
	require.NotNil(t, s)
	require.Equal(t, []string{"query"}, s.Required)

	query, ok := s.Properties.Get("query")
	require.True(t, ok, "missing query property")
	require.Equal(t, "Search query", query.Description)
}

func TestMapFor(t *testing.T) {
	t.Parallel()
	m, err := schema.MapFor[searchArgs]()
	require.NoError(t, err)
	require.Equal(t, "object", m["type"])

	props, ok := m["properties"].(map[string]any)
	require.True(t, ok, "properties missing")
	require.Contains(t, props, "query")
	require.Contains(t, props, "limit")

	require.Equal(t, []any{"query"}, m["required"])
}
