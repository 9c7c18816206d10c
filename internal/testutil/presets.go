package testutil

// WithStandardSession adds a short tour through business and finance, ending
// at /domain/finance/invoices.
func (b *Builder) WithStandardSession() *Builder {
	return b.
		WithLocation("/domain/business", Action("to_domain")).
		WithLocation("/domain/business/tasks", Action("to_section")).
		WithLocation("/map", Action("to_map")).
		WithLocation("/domain/finance/invoices", Action("to_section"))
}

// WithTwoSessions adds interleaved rows from sessions "alpha" and "beta".
// The newest row belongs to beta and points at /domain/home.
func (b *Builder) WithTwoSessions() *Builder {
	return b.
		WithLocation("/domain/health", Session("alpha"), Action("to_domain")).
		WithLocation("/map", Session("beta"), Action("to_map")).
		WithLocation("/domain/health/notes", Session("alpha"), Action("to_section")).
		WithLocation("/domain/home", Session("beta"), Action("to_domain"))
}

// WithStaleLocation adds a newest row whose section is extended, so it stops
// resolving once extended sections are disabled.
func (b *Builder) WithStaleLocation() *Builder {
	return b.WithLocation("/domain/business/clients", Action("to_section"))
}
