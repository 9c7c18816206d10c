// Package navigation holds the navigation state machine: a product state of
// view, active domain, active section and history, changed only by
// dispatching one of a closed set of actions.
package navigation

import (
	"slices"
	"time"

	"github.com/zjrosen/spherenav/internal/route"
	"github.com/zjrosen/spherenav/internal/sphere"
)

// HistoryEntry records one committed transition. Overlay entries record the
// location that was active when the overlay opened.
type HistoryEntry struct {
	View    route.View       `json:"view" yaml:"view"`
	Domain  sphere.DomainID  `json:"domain,omitempty" yaml:"domain,omitempty"`
	Section sphere.SectionID `json:"section,omitempty" yaml:"section,omitempty"`
	Overlay bool             `json:"overlay,omitempty" yaml:"overlay,omitempty"`
	At      time.Time        `json:"at" yaml:"at"`
}

// Target returns the location the entry points at.
func (e HistoryEntry) Target() route.Target {
	return route.Target{View: e.View, Domain: e.Domain, Section: e.Section}
}

// State is a snapshot of the machine. Section is set only when View is
// section, and then Domain is set too. An empty Previous means none.
type State struct {
	View        route.View       `json:"view" yaml:"view"`
	Domain      sphere.DomainID  `json:"domain,omitempty" yaml:"domain,omitempty"`
	Section     sphere.SectionID `json:"section,omitempty" yaml:"section,omitempty"`
	Previous    route.View       `json:"previous,omitempty" yaml:"previous,omitempty"`
	OverlayOpen bool             `json:"overlay_open,omitempty" yaml:"overlay_open,omitempty"`
	History     []HistoryEntry   `json:"history" yaml:"history"`
}

// Initial returns the session start state.
func Initial() State {
	return State{View: route.ViewUniverse}
}

// Location returns the view/domain/section triple, ignoring the overlay.
func (s State) Location() route.Target {
	return route.Target{View: s.View, Domain: s.Domain, Section: s.Section}
}

// Target returns what is on screen: the overlay while it is open,
// otherwise the location.
func (s State) Target() route.Target {
	if s.OverlayOpen {
		return route.Overlay()
	}
	return s.Location()
}

// Clone returns a deep copy.
func (s State) Clone() State {
	s.History = slices.Clone(s.History)
	return s
}

// Equal compares two states including history.
func (s State) Equal(o State) bool {
	if s.View != o.View || s.Domain != o.Domain || s.Section != o.Section ||
		s.Previous != o.Previous || s.OverlayOpen != o.OverlayOpen {
		return false
	}
	return slices.EqualFunc(s.History, o.History, func(a, b HistoryEntry) bool {
		return a.View == b.View && a.Domain == b.Domain && a.Section == b.Section &&
			a.Overlay == b.Overlay && a.At.Equal(b.At)
	})
}
