package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_Enabled(t *testing.T) {
	tests := []struct {
		name     string
		registry *Registry
		flag     string
		expected bool
	}{
		{
			name:     "known flag defaults on",
			registry: New(nil),
			flag:     FlagRestoreLocation,
			expected: true,
		},
		{
			name:     "config turns a known flag off",
			registry: New(map[string]bool{FlagTraceTransitions: false}),
			flag:     FlagTraceTransitions,
			expected: false,
		},
		{
			name:     "extra flag from config",
			registry: New(map[string]bool{"feature-a": true}),
			flag:     "feature-a",
			expected: true,
		},
		{
			name:     "unknown flag returns false",
			registry: New(map[string]bool{"feature-a": true}),
			flag:     "unknown-flag",
			expected: false,
		},
		{
			name:     "nil registry returns false",
			registry: nil,
			flag:     FlagPatternCache,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.registry.Enabled(tt.flag))
		})
	}
}

func TestRegistry_All(t *testing.T) {
	r := New(map[string]bool{FlagPatternCache: false})

	all := r.All()
	require.Equal(t, map[string]bool{
		FlagRestoreLocation:  true,
		FlagTraceTransitions: true,
		FlagPatternCache:     false,
	}, all)

	all[FlagRestoreLocation] = false
	require.True(t, r.Enabled(FlagRestoreLocation), "All returns a copy")

	var nilRegistry *Registry
	require.Empty(t, nilRegistry.All())
}

func TestNew_DoesNotMutateInput(t *testing.T) {
	in := map[string]bool{FlagRestoreLocation: false}
	New(in)
	require.Len(t, in, 1)
}

func TestKnown(t *testing.T) {
	require.Equal(t, []string{FlagPatternCache, FlagRestoreLocation, FlagTraceTransitions}, Known())
}
