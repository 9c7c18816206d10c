package sphere

// Built-in sphere identifiers.
const (
	Business  DomainID = "business"
	Personal  DomainID = "personal"
	Finance   DomainID = "finance"
	Health    DomainID = "health"
	Learning  DomainID = "learning"
	Home      DomainID = "home"
	Community DomainID = "social"
)

// Core section identifiers (always present).
const (
	Dashboard SectionID = "dashboard"
	Notes     SectionID = "notes"
	Tasks     SectionID = "tasks"
	Projects  SectionID = "projects"
	Threads   SectionID = "threads"
	Meetings  SectionID = "meetings"
)

// Extended section identifiers (enabled per deployment).
const (
	Clients  SectionID = "clients"
	Invoices SectionID = "invoices"
	Permits  SectionID = "permits"
	Courses  SectionID = "courses"
	Goals    SectionID = "goals"
)

// BuiltinDomains returns the fixed sphere catalog.
func BuiltinDomains() []Domain {
	return []Domain{
		{ID: Business, Name: LocalizedText{LocaleEnglish: "Business", LocaleSpanish: "Negocios"}, Icon: "briefcase", Color: "#54A0FF", Order: 0},
		{ID: Personal, Name: LocalizedText{LocaleEnglish: "Personal", LocaleSpanish: "Personal"}, Icon: "user", Color: "#73F59F", Order: 1},
		{ID: Finance, Name: LocalizedText{LocaleEnglish: "Finance", LocaleSpanish: "Finanzas"}, Icon: "wallet", Color: "#FECA57", Order: 2},
		{ID: Health, Name: LocalizedText{LocaleEnglish: "Health", LocaleSpanish: "Salud"}, Icon: "heart", Color: "#FF8787", Order: 3},
		{ID: Learning, Name: LocalizedText{LocaleEnglish: "Learning", LocaleSpanish: "Aprendizaje"}, Icon: "book", Color: "#A29BFE", Order: 4},
		{ID: Home, Name: LocalizedText{LocaleEnglish: "Home", LocaleSpanish: "Hogar"}, Icon: "house", Color: "#FF9F43", Order: 5},
		{ID: Community, Name: LocalizedText{LocaleEnglish: "Social", LocaleSpanish: "Social"}, Icon: "people", Color: "#48DBFB", Order: 6},
	}
}

// CoreSections returns the sections every sphere's bureau carries.
func CoreSections() []Section {
	return []Section{
		{ID: Dashboard, Name: LocalizedText{LocaleEnglish: "Dashboard", LocaleSpanish: "Panel"}, Icon: "grid", Tier: TierCore, Order: 0},
		{ID: Notes, Name: LocalizedText{LocaleEnglish: "Notes", LocaleSpanish: "Notas"}, Icon: "note", Tier: TierCore, Order: 1},
		{ID: Tasks, Name: LocalizedText{LocaleEnglish: "Tasks", LocaleSpanish: "Tareas"}, Icon: "check", Tier: TierCore, Order: 2},
		{ID: Projects, Name: LocalizedText{LocaleEnglish: "Projects", LocaleSpanish: "Proyectos"}, Icon: "folder", Tier: TierCore, Order: 3},
		{ID: Threads, Name: LocalizedText{LocaleEnglish: "Threads", LocaleSpanish: "Hilos"}, Icon: "chat", Tier: TierCore, Order: 4},
		{ID: Meetings, Name: LocalizedText{LocaleEnglish: "Meetings", LocaleSpanish: "Reuniones"}, Icon: "calendar", Tier: TierCore, Order: 5},
	}
}

// ExtendedSections returns the optional sections.
func ExtendedSections() []Section {
	return []Section{
		{ID: Clients, Name: LocalizedText{LocaleEnglish: "Clients", LocaleSpanish: "Clientes"}, Icon: "contact", Tier: TierExtended, Order: 10},
		{ID: Invoices, Name: LocalizedText{LocaleEnglish: "Invoices", LocaleSpanish: "Facturas"}, Icon: "receipt", Tier: TierExtended, Order: 11},
		{ID: Permits, Name: LocalizedText{LocaleEnglish: "Permits", LocaleSpanish: "Permisos"}, Icon: "stamp", Tier: TierExtended, Order: 12},
		{ID: Courses, Name: LocalizedText{LocaleEnglish: "Courses", LocaleSpanish: "Cursos"}, Icon: "cap", Tier: TierExtended, Order: 13},
		{ID: Goals, Name: LocalizedText{LocaleEnglish: "Goals", LocaleSpanish: "Metas"}, Icon: "target", Tier: TierExtended, Order: 14},
	}
}

// Builtin returns a registry over the built-in spheres, the core sections and
// the requested extended sections. A nil slice enables every extended section;
// an empty slice enables none.
func Builtin(extended []SectionID) (*Registry, error) {
	sections := CoreSections()
	all := ExtendedSections()

	if extended == nil {
		sections = append(sections, all...)
		return NewRegistry(BuiltinDomains(), sections)
	}

	byID := make(map[SectionID]Section, len(all))
	for _, s := range all {
		byID[s.ID] = s
	}
	for _, id := range extended {
		s, ok := byID[id]
		if !ok {
			return nil, &NotFoundError{Kind: KindSection, ID: string(id)}
		}
		sections = append(sections, s)
	}
	return NewRegistry(BuiltinDomains(), sections)
}
