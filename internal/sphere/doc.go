// Package sphere holds the closed catalog of spheres (top-level domains) and
// sections that every other navigation component validates against.
//
// # Core Types
//
// Domain is a sphere: an identifier from a fixed set plus display metadata
// (localized name, icon token, colour token, ordering index).
//
// Section is a view inside a sphere's bureau. Core sections (dashboard, notes,
// tasks, projects, threads, meetings) always exist; extended sections are
// enabled per deployment.
//
// Registry is the immutable collection built once at startup. Validity checks
// are pure functions of the set it was built with, so repeated calls with the
// same input always agree and nothing here is ever transient.
//
// # Identifiers
//
// Identifiers are lower-case slugs ([a-z][a-z0-9-]*). They appear verbatim in
// canonical paths, which keeps path generation free of escaping.
package sphere
