// Package route maps canonical path strings to route descriptors and back.
//
// The canonical path grammar is:
//
//	/                               universe (also accepted: /universe)
//	/map                            map
//	/overlay                        overlay
//	/domain/{domainId}              domain
//	/domain/{domainId}/{sectionId}  section
//
// Table holds every valid path, built once from a sphere.Registry. Resolver
// looks paths up in the table and falls back to normalising and pattern
// matching hand-assembled input. Generate is the inverse of Resolve for
// every target the table contains.
package route

import (
	"slices"

	"github.com/zjrosen/spherenav/internal/sphere"
)

// View is the kind of screen a route shows.
type View string

const (
	ViewUniverse View = "universe"
	ViewMap      View = "map"
	ViewDomain   View = "domain"
	ViewSection  View = "section"
	ViewOverlay  View = "overlay"
)

// Valid reports whether v is one of the known view kinds.
func (v View) Valid() bool {
	switch v {
	case ViewUniverse, ViewMap, ViewDomain, ViewSection, ViewOverlay:
		return true
	}
	return false
}

// Canonical paths and path segments.
const (
	RootPath     = "/"
	UniversePath = "/universe"
	MapPath      = "/map"
	OverlayPath  = "/overlay"

	domainSegment = "domain"
	domainPrefix  = "/" + domainSegment + "/"
)

// Target is a navigation destination: the view/domain/section triple that
// path generation and resolution round-trip. Empty ids mean "none".
type Target struct {
	View    View             `json:"view" yaml:"view"`
	Domain  sphere.DomainID  `json:"domain,omitempty" yaml:"domain,omitempty"`
	Section sphere.SectionID `json:"section,omitempty" yaml:"section,omitempty"`
}

// Universe returns the universe target.
func Universe() Target { return Target{View: ViewUniverse} }

// Map returns the map target.
func Map() Target { return Target{View: ViewMap} }

// Overlay returns the overlay target.
func Overlay() Target { return Target{View: ViewOverlay} }

// DomainTarget returns the target for a sphere's own view.
func DomainTarget(d sphere.DomainID) Target {
	return Target{View: ViewDomain, Domain: d}
}

// SectionTarget returns the target for a section inside a sphere.
func SectionTarget(d sphere.DomainID, s sphere.SectionID) Target {
	return Target{View: ViewSection, Domain: d, Section: s}
}

// Breadcrumb is one ancestor level of a route.
type Breadcrumb struct {
	Label sphere.LocalizedText `json:"label" yaml:"label"`
	Path  string               `json:"path" yaml:"path"`
	Icon  string               `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// RouteDescriptor is the resolved metadata for a canonical path.
//
// A section descriptor always carries both ids, a domain descriptor only the
// domain id, and universe/map/overlay descriptors neither.
type RouteDescriptor struct {
	Path        string               `json:"path" yaml:"path"`
	View        View                 `json:"view" yaml:"view"`
	Domain      sphere.DomainID      `json:"domain,omitempty" yaml:"domain,omitempty"`
	Section     sphere.SectionID     `json:"section,omitempty" yaml:"section,omitempty"`
	Title       sphere.LocalizedText `json:"title" yaml:"title"`
	Breadcrumbs []Breadcrumb         `json:"breadcrumbs" yaml:"breadcrumbs"`
}

// Target returns the round-trippable part of the descriptor.
func (r RouteDescriptor) Target() Target {
	return Target{View: r.View, Domain: r.Domain, Section: r.Section}
}

func (r RouteDescriptor) clone() RouteDescriptor {
	r.Breadcrumbs = slices.Clone(r.Breadcrumbs)
	return r
}
