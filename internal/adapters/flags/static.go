// Package flags implements the feature flags port from static
// configuration. Flags are fixed at startup; a hosted provider can replace
// this adapter without touching its consumers.
package flags

import "context"

// Static is a feature flag provider backed by an in-memory map.
type Static struct {
	values map[string]string
}

// New creates a static flag provider from the given values. Boolean flags
// use the strings "true" and "false".
func New(values map[string]string) *Static {
	if values == nil {
		values = map[string]string{}
	}

	return &Static{values: values}
}

// IsEnabled implements ports.FeatureFlags.
func (s *Static) IsEnabled(_ context.Context, flag string, defaultValue bool) bool {
	v, ok := s.values[flag]
	if !ok {
		return defaultValue
	}

	return v == "true"
}

// GetString implements ports.FeatureFlags.
func (s *Static) GetString(_ context.Context, flag string, defaultValue string) string {
	v, ok := s.values[flag]
	if !ok {
		return defaultValue
	}

	return v
}
