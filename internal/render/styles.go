// Package render formats navigation output for the terminal.
package render

import "github.com/charmbracelet/lipgloss"

// Colour tokens for non-sphere output.
var (
	RootColor      = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D79F2"}
	SeparatorColor = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	MutedColor     = lipgloss.AdaptiveColor{Light: "#6B6B6B", Dark: "#A0A0A0"}
	ErrorColor     = lipgloss.AdaptiveColor{Light: "#D7263D", Dark: "#FF6B6B"}
)

var (
	// RootStyle renders the universe and other sphere-less crumbs.
	RootStyle = lipgloss.NewStyle().
			Foreground(RootColor).
			Bold(true)

	// SeparatorStyle renders the arrow between crumbs.
	SeparatorStyle = lipgloss.NewStyle().
			Foreground(SeparatorColor)

	// PathStyle renders canonical paths next to titles.
	PathStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// ErrorStyle renders refusals and misses.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)
)

// sphereStyle colours a crumb with its sphere's colour token.
func sphereStyle(color string) lipgloss.Style {
	if color == "" {
		return RootStyle
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}
