package navigator

import (
	"fmt"

	"github.com/zjrosen/spherenav/internal/cachemanager"
	"github.com/zjrosen/spherenav/internal/deeplink"
	"github.com/zjrosen/spherenav/internal/graph"
	"github.com/zjrosen/spherenav/internal/route"
	"github.com/zjrosen/spherenav/internal/sphere"
)

// CatalogOptions configures NewCatalog. The zero value builds the built-in
// catalog with every extended section enabled.
type CatalogOptions struct {
	// ExtendedSections lists the enabled extended sections. Nil enables all,
	// an empty slice enables none.
	ExtendedSections []sphere.SectionID
	// Adjacency replaces the built-in domain graph when non-nil.
	Adjacency map[sphere.DomainID][]sphere.DomainID
	// Scheme and Host prefix deep links.
	Scheme string
	Host   string
	// Cache memoises normalised path lookups. Nil disables memoisation.
	Cache cachemanager.CacheManager[string, route.RouteDescriptor]
	// Observer receives the tier of every path resolution.
	Observer route.ResolveObserver
}

// Catalog is the immutable navigation configuration: registry, graph, route
// table, resolver and deep-link codec. One catalog can back any number of
// navigators.
type Catalog struct {
	registry *sphere.Registry
	graph    *graph.Graph
	table    *route.Table
	resolver *route.Resolver
	codec    *deeplink.Codec
}

// NewCatalog builds and validates a catalog.
func NewCatalog(opts CatalogOptions) (*Catalog, error) {
	reg, err := sphere.Builtin(opts.ExtendedSections)
	if err != nil {
		return nil, fmt.Errorf("build registry: %w", err)
	}

	adj := opts.Adjacency
	if adj == nil {
		adj = graph.Builtin()
	}
	g := graph.New(adj)
	if err := g.Validate(reg); err != nil {
		return nil, fmt.Errorf("validate adjacency: %w", err)
	}

	table := route.NewTable(reg)

	var resolverOpts []route.ResolverOption
	if opts.Cache != nil {
		resolverOpts = append(resolverOpts, route.WithCache(opts.Cache))
	}
	if opts.Observer != nil {
		resolverOpts = append(resolverOpts, route.WithObserver(opts.Observer))
	}
	resolver := route.NewResolver(table, reg, resolverOpts...)

	codec, err := deeplink.NewCodec(opts.Scheme, opts.Host, resolver)
	if err != nil {
		return nil, err
	}

	return &Catalog{
		registry: reg,
		graph:    g,
		table:    table,
		resolver: resolver,
		codec:    codec,
	}, nil
}

// Registry returns the domain registry.
func (c *Catalog) Registry() *sphere.Registry { return c.registry }

// Graph returns the adjacency graph.
func (c *Catalog) Graph() *graph.Graph { return c.graph }

// Table returns the route table.
func (c *Catalog) Table() *route.Table { return c.table }

// Resolver returns the path resolver.
func (c *Catalog) Resolver() *route.Resolver { return c.resolver }

// Codec returns the deep-link codec.
func (c *Catalog) Codec() *deeplink.Codec { return c.codec }
