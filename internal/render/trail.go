package render

import (
	"strings"

	"github.com/zjrosen/spherenav/internal/route"
	"github.com/zjrosen/spherenav/internal/sphere"
)

// Separator is placed between breadcrumb labels.
const Separator = " › "

// ColorSource looks up a sphere's colour token.
type ColorSource interface {
	Domain(id sphere.DomainID) (sphere.Domain, error)
}

// Trail renders the breadcrumbs of desc as one line. Crumbs at or below a
// sphere take that sphere's colour; the rest use RootStyle.
func Trail(desc route.RouteDescriptor, locale sphere.Locale, colors ColorSource) string {
	if len(desc.Breadcrumbs) == 0 {
		return ""
	}

	style := RootStyle
	if desc.Domain != "" && colors != nil {
		if d, err := colors.Domain(desc.Domain); err == nil {
			style = sphereStyle(d.Color)
		}
	}

	var b strings.Builder
	for i, crumb := range desc.Breadcrumbs {
		if i > 0 {
			b.WriteString(SeparatorStyle.Render(Separator))
		}
		label := crumb.Label.In(locale)
		if i == 0 {
			b.WriteString(RootStyle.Render(label))
			continue
		}
		b.WriteString(style.Render(label))
	}
	return b.String()
}

// Line renders a trail followed by the descriptor's path.
func Line(desc route.RouteDescriptor, locale sphere.Locale, colors ColorSource) string {
	return Trail(desc, locale, colors) + "  " + PathStyle.Render(desc.Path)
}

// Miss renders an unresolvable input.
func Miss(input string) string {
	return ErrorStyle.Render("not found") + "  " + PathStyle.Render(input)
}
