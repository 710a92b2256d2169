/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package schema derives JSON schemas for tool arguments from Go struct
// types, so tool definitions stay in sync with their handlers.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Generator wraps jsonschema.Reflector with the defaults tool schemas
// need.
type Generator struct {
	reflector jsonschema.Reflector
}

// NewGenerator constructs a generator wired for inline, tag-driven
// schemas.
func NewGenerator() *Generator {
	return &Generator{
		reflector: jsonschema.Reflector{
			RequiredFromJSONSchemaTags: true,
			ExpandedStruct:             true,
			AllowAdditionalProperties:  true,
			DoNotReference:             true,
		},
	}
}

// Reflect returns the JSON schema for the provided value.
func (g *Generator) Reflect(v any) *jsonschema.Schema {
	return g.reflector.Reflect(v)
}

// Reflect derives the JSON schema for the provided value using a default
// generator.
func Reflect(v any) *jsonschema.Schema {
	return NewGenerator().Reflect(v)
}

// ReflectType allocates a zero value of T and reflects it to a schema.
func ReflectType[T any]() *jsonschema.Schema {
	var zero T
	return Reflect(&zero)
}

// AsMap renders a schema as the plain JSON object form the provider SDKs
// accept.
func AsMap(s *jsonschema.Schema) (map[string]any, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("unmarshaling schema: %w", err)
	}
	return out, nil
}

// MapFor reflects T and renders it as a plain JSON object in one step.
func MapFor[T any]() (map[string]any, error) {
	return AsMap(ReflectType[T]())
}
