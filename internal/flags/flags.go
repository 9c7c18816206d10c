// Package flags provides feature flags read from the flags section of the
// config. Flags are read-only after initialization.
package flags

import (
	"maps"
	"slices"

	"github.com/zjrosen/spherenav/internal/log"
)

const (
	// FlagRestoreLocation resumes a session at the last stored location.
	FlagRestoreLocation = "restore-location"

	// FlagTraceTransitions emits a span per dispatched action when tracing is enabled.
	FlagTraceTransitions = "trace-transitions"

	// FlagPatternCache memoises normalised path lookups in the resolver.
	FlagPatternCache = "pattern-cache"
)

// defaults holds the value of every known flag when config does not set it.
var defaults = map[string]bool{
	FlagRestoreLocation:  true,
	FlagTraceTransitions: true,
	FlagPatternCache:     true,
}

// Known returns the names of all known flags, sorted.
func Known() []string {
	return slices.Sorted(maps.Keys(defaults))
}

// Registry holds feature flag state.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from the config map layered over the defaults.
// Names that are not known flags are kept but logged.
func New(flags map[string]bool) *Registry {
	merged := maps.Clone(defaults)
	for name, v := range flags {
		if _, ok := defaults[name]; !ok {
			log.Warn(log.CatConfig, "unknown feature flag in config", "flag", name)
		}
		merged[name] = v
	}
	r := &Registry{flags: merged}
	log.Debug(log.CatConfig, "feature flags initialized", "count", len(merged), "flags", r.All())
	return r
}

// Enabled reports whether the named flag is on. Unset unknown flags and a
// nil registry report false.
func (r *Registry) Enabled(name string) bool {
	if r == nil || r.flags == nil {
		return false
	}
	value, exists := r.flags[name]
	if !exists {
		log.Debug(log.CatConfig, "unknown flag accessed", "flag", name)
		return false
	}
	return value
}

// All returns a copy of all flags.
func (r *Registry) All() map[string]bool {
	if r == nil || r.flags == nil {
		return make(map[string]bool)
	}
	result := make(map[string]bool, len(r.flags))
	maps.Copy(result, r.flags)
	return result
}
