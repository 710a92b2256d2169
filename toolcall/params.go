/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolcall

import "fmt"

// Param extracts a required parameter from tool call args with type
// safety.
func Param[T any](args map[string]any, name string) (T, error) {
	var zero T

	value, exists := args[name]
	if !exists {
		return zero, fmt.Errorf("%s parameter is required", name)
	}
	if v, ok := value.(T); ok {
		return v, nil
	}
	if v, ok := convertNumeric[T](value); ok {
		return v, nil
	}
	return zero, fmt.Errorf("%s parameter must be of type %T, got %T", name, zero, value)
}

// OptionalParam extracts an optional parameter, falling back to the
// default when absent.
func OptionalParam[T any](args map[string]any, name string, defaultValue T) (T, error) {
	value, exists := args[name]
	if !exists {
		return defaultValue, nil
	}
	if v, ok := value.(T); ok {
		return v, nil
	}
	if v, ok := convertNumeric[T](value); ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("%s parameter must be of type %T, got %T", name, zero, value)
}

// convertNumeric handles the float64 arrivals JSON decoding produces for
// integer parameters.
func convertNumeric[T any](value any) (T, bool) {
	var zero T
	switch any(zero).(type) {
	case int:
		if f, ok := value.(float64); ok {
			return any(int(f)).(T), true
		}
	case int32:
		if f, ok := value.(float64); ok {
			return any(int32(f)).(T), true
		}
	case int64:
		if f, ok := value.(float64); ok {
			return any(int64(f)).(T), true
		}
	}
	return zero, false
}
