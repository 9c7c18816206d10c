package route

import (
	"fmt"

	"github.com/zjrosen/spherenav/internal/sphere"
)

// Titles and icons of the base views.
var (
	universeTitle = sphere.LocalizedText{sphere.LocaleEnglish: "Universe", sphere.LocaleSpanish: "Universo"}
	mapTitle      = sphere.LocalizedText{sphere.LocaleEnglish: "Map", sphere.LocaleSpanish: "Mapa"}
	overlayTitle  = sphere.LocalizedText{sphere.LocaleEnglish: "Assistant", sphere.LocaleSpanish: "Asistente"}
)

const (
	universeIcon = "sparkles"
	mapIcon      = "compass"
	overlayIcon  = "assistant"
)

// Table is the precomputed path → descriptor mapping. It is read-only after
// NewTable and safe for concurrent readers.
type Table struct {
	routes map[string]RouteDescriptor
	order  []string
}

// NewTable builds one descriptor per base view, per domain and per
// domain × section pair of reg.
func NewTable(reg *sphere.Registry) *Table {
	domains := reg.ListDomains()
	sections := reg.ListSections()

	t := &Table{routes: make(map[string]RouteDescriptor, 4+len(domains)*(1+len(sections)))}

	root := Breadcrumb{Label: universeTitle, Path: RootPath, Icon: universeIcon}

	t.add(RouteDescriptor{Path: RootPath, View: ViewUniverse, Title: universeTitle, Breadcrumbs: []Breadcrumb{root}})
	t.add(RouteDescriptor{Path: UniversePath, View: ViewUniverse, Title: universeTitle, Breadcrumbs: []Breadcrumb{root}})
	t.add(RouteDescriptor{
		Path: MapPath, View: ViewMap, Title: mapTitle,
		Breadcrumbs: []Breadcrumb{root, {Label: mapTitle, Path: MapPath, Icon: mapIcon}},
	})
	t.add(RouteDescriptor{
		Path: OverlayPath, View: ViewOverlay, Title: overlayTitle,
		Breadcrumbs: []Breadcrumb{root, {Label: overlayTitle, Path: OverlayPath, Icon: overlayIcon}},
	})

	for _, d := range domains {
		domainPath := Generate(DomainTarget(d.ID))
		domainCrumb := Breadcrumb{Label: d.Name, Path: domainPath, Icon: d.Icon}

		t.add(RouteDescriptor{
			Path:        domainPath,
			View:        ViewDomain,
			Domain:      d.ID,
			Title:       d.Name,
			Breadcrumbs: []Breadcrumb{root, domainCrumb},
		})

		for _, s := range sections {
			sectionPath := Generate(SectionTarget(d.ID, s.ID))
			t.add(RouteDescriptor{
				Path:        sectionPath,
				View:        ViewSection,
				Domain:      d.ID,
				Section:     s.ID,
				Title:       sectionTitle(d, s),
				Breadcrumbs: []Breadcrumb{root, domainCrumb, {Label: s.Name, Path: sectionPath, Icon: s.Icon}},
			})
		}
	}
	return t
}

func (t *Table) add(r RouteDescriptor) {
	t.routes[r.Path] = r
	t.order = append(t.order, r.Path)
}

// sectionTitle joins the section and domain names per locale, e.g. "Tasks · Business".
func sectionTitle(d sphere.Domain, s sphere.Section) sphere.LocalizedText {
	title := make(sphere.LocalizedText, len(s.Name))
	for locale, name := range s.Name {
		title[locale] = fmt.Sprintf("%s · %s", name, d.Name.In(locale))
	}
	return title
}

// Lookup returns the descriptor stored under exactly path.
func (t *Table) Lookup(path string) (RouteDescriptor, bool) {
	r, ok := t.routes[path]
	if !ok {
		return RouteDescriptor{}, false
	}
	return r.clone(), true
}

// Routes returns every descriptor in construction order.
func (t *Table) Routes() []RouteDescriptor {
	out := make([]RouteDescriptor, 0, len(t.order))
	for _, p := range t.order {
		out = append(out, t.routes[p].clone())
	}
	return out
}

// Len returns the number of paths in the table.
func (t *Table) Len() int {
	return len(t.order)
}
