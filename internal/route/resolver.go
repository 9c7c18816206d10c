package route

import (
	"path"
	"strings"

	"github.com/zjrosen/spherenav/internal/cachemanager"
	"github.com/zjrosen/spherenav/internal/log"
	"github.com/zjrosen/spherenav/internal/sphere"
)

// Tier names the resolution step that answered a lookup.
type Tier string

const (
	TierExact   Tier = "exact"   // precomputed table hit
	TierCached  Tier = "cached"  // memoised pattern match
	TierPattern Tier = "pattern" // normalised + pattern matched
	TierMiss    Tier = "miss"    // not found
)

// ResolveObserver is notified of every Resolve call. Implemented by the
// metrics package.
type ResolveObserver interface {
	ObserveResolve(tier Tier)
}

// Validator is the part of the registry the resolver needs.
type Validator interface {
	IsValidDomain(id sphere.DomainID) bool
	IsValidSection(id sphere.SectionID) bool
}

// Resolver turns arbitrary path strings into route descriptors.
type Resolver struct {
	table     *Table
	validator Validator
	patterns  *cachemanager.ReadThroughCache[string, RouteDescriptor]
	observer  ResolveObserver
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithCache memoises pattern-tier results in cache.
func WithCache(cache cachemanager.CacheManager[string, RouteDescriptor]) ResolverOption {
	return func(r *Resolver) {
		r.patterns = cachemanager.NewReadThroughCache(cache, cachemanager.DefaultExpiration, r.matchPattern)
	}
}

// WithObserver reports the tier of every resolution to o.
func WithObserver(o ResolveObserver) ResolverOption {
	return func(r *Resolver) {
		r.observer = o
	}
}

// NewResolver creates a resolver over table, validating dynamic matches with v.
func NewResolver(table *Table, v Validator, opts ...ResolverOption) *Resolver {
	r := &Resolver{table: table, validator: v}
	r.patterns = cachemanager.NewReadThroughCache[string, RouteDescriptor](nil, 0, r.matchPattern)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the descriptor for p. Exact table paths are answered
// directly; anything else is normalised (query and fragment dropped, slashes
// collapsed, ids lower-cased) and matched against /domain/{id} and
// /domain/{id}/{section}, with ids checked against the registry. Empty or
// blank input does not resolve. Pattern results are memoised under the
// normalised path.
func (r *Resolver) Resolve(p string) (RouteDescriptor, bool) {
	if desc, ok := r.table.Lookup(p); ok {
		r.observe(TierExact)
		return desc, true
	}

	norm, ok := normalize(p)
	if !ok {
		return r.miss(p)
	}
	desc, ok, hit := r.patterns.Get(norm)
	switch {
	case !ok:
		return r.miss(p)
	case hit:
		r.observe(TierCached)
	default:
		r.observe(TierPattern)
	}
	return desc.clone(), true
}

func (r *Resolver) miss(p string) (RouteDescriptor, bool) {
	r.observe(TierMiss)
	log.Debug(log.CatRoute, "path not found", "path", p)
	return RouteDescriptor{}, false
}

// matchPattern resolves an already normalised path.
func (r *Resolver) matchPattern(p string) (RouteDescriptor, bool) {
	if desc, ok := r.table.Lookup(p); ok {
		return desc, true
	}

	segs := strings.Split(strings.TrimPrefix(p, "/"), "/")
	if segs[0] != domainSegment {
		return RouteDescriptor{}, false
	}

	var target Target
	switch len(segs) {
	case 2:
		target = DomainTarget(sphere.DomainID(segs[1]))
	case 3:
		target = SectionTarget(sphere.DomainID(segs[1]), sphere.SectionID(segs[2]))
	default:
		return RouteDescriptor{}, false
	}

	if !r.validator.IsValidDomain(target.Domain) {
		return RouteDescriptor{}, false
	}
	if target.View == ViewSection && !r.validator.IsValidSection(target.Section) {
		return RouteDescriptor{}, false
	}
	return r.table.Lookup(Generate(target))
}

func (r *Resolver) observe(t Tier) {
	if r.observer != nil {
		r.observer.ObserveResolve(t)
	}
}

// normalize cleans a hand-assembled path. It rejects empty input and
// anything that does not start with a slash once trimmed.
func normalize(raw string) (string, bool) {
	p := strings.TrimSpace(raw)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if !strings.HasPrefix(p, "/") {
		return "", false
	}
	p = path.Clean(strings.ToLower(p))
	return p, true
}
