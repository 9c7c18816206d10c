package sphere

import (
	"fmt"
	"slices"
	"sort"
)

// Registry is the immutable set of valid domains and sections.
// It is safe for concurrent readers once built.
type Registry struct {
	domains   []Domain
	sections  []Section
	domainIdx map[DomainID]int
	sectIdx   map[SectionID]int
}

// NewRegistry builds a registry. Domains and sections are ordered by their
// Order field; ties keep the input order.
func NewRegistry(domains []Domain, sections []Section) (*Registry, error) {
	if len(domains) == 0 || len(sections) == 0 {
		return nil, ErrEmptyRegistry
	}

	r := &Registry{
		domains:   slices.Clone(domains),
		sections:  slices.Clone(sections),
		domainIdx: make(map[DomainID]int, len(domains)),
		sectIdx:   make(map[SectionID]int, len(sections)),
	}
	sort.SliceStable(r.domains, func(i, j int) bool { return r.domains[i].Order < r.domains[j].Order })
	sort.SliceStable(r.sections, func(i, j int) bool { return r.sections[i].Order < r.sections[j].Order })

	for i, d := range r.domains {
		if !ValidSlug(string(d.ID)) {
			return nil, fmt.Errorf("domain %q: %w", d.ID, ErrInvalidID)
		}
		if _, dup := r.domainIdx[d.ID]; dup {
			return nil, fmt.Errorf("domain %q: %w", d.ID, ErrDuplicateID)
		}
		r.domainIdx[d.ID] = i
	}
	for i, s := range r.sections {
		if !ValidSlug(string(s.ID)) {
			return nil, fmt.Errorf("section %q: %w", s.ID, ErrInvalidID)
		}
		if _, dup := r.sectIdx[s.ID]; dup {
			return nil, fmt.Errorf("section %q: %w", s.ID, ErrDuplicateID)
		}
		r.sectIdx[s.ID] = i
	}
	return r, nil
}

// ListDomains returns all domains in display order.
func (r *Registry) ListDomains() []Domain {
	return slices.Clone(r.domains)
}

// ListSections returns all enabled sections in display order.
func (r *Registry) ListSections() []Section {
	return slices.Clone(r.sections)
}

// IsValidDomain reports whether id is in the closed domain set.
func (r *Registry) IsValidDomain(id DomainID) bool {
	_, ok := r.domainIdx[id]
	return ok
}

// IsValidSection reports whether id is an enabled section.
func (r *Registry) IsValidSection(id SectionID) bool {
	_, ok := r.sectIdx[id]
	return ok
}

// Domain returns the domain with the given id.
// Returns a NotFoundError if id is outside the closed set.
func (r *Registry) Domain(id DomainID) (Domain, error) {
	i, ok := r.domainIdx[id]
	if !ok {
		return Domain{}, &NotFoundError{Kind: KindDomain, ID: string(id)}
	}
	return r.domains[i], nil
}

// Section returns the section with the given id.
// Returns a NotFoundError if id is not an enabled section.
func (r *Registry) Section(id SectionID) (Section, error) {
	i, ok := r.sectIdx[id]
	if !ok {
		return Section{}, &NotFoundError{Kind: KindSection, ID: string(id)}
	}
	return r.sections[i], nil
}
