package sqlite

import (
	"time"

	"github.com/zjrosen/spherenav/internal/navigator"
	"github.com/zjrosen/spherenav/internal/route"
	"github.com/zjrosen/spherenav/internal/sphere"
)

// LocationModel is one row of the locations table.
type LocationModel struct {
	ID        int64
	SessionID string
	Path      string
	View      string
	Domain    *string // nullable
	Section   *string // nullable
	Action    string
	CreatedAt int64 // Unix timestamp
}

// Location is a persisted address bar update.
type Location struct {
	ID        int64
	SessionID string
	Path      string
	Target    route.Target
	Action    string
	CreatedAt time.Time
}

func toLocationModel(change navigator.LocationChange, at time.Time) *LocationModel {
	m := &LocationModel{
		SessionID: change.SessionID,
		Path:      change.Path,
		View:      string(change.Target.View),
		Action:    change.Action,
		CreatedAt: at.Unix(),
	}
	if change.Target.Domain != "" {
		d := string(change.Target.Domain)
		m.Domain = &d
	}
	if change.Target.Section != "" {
		s := string(change.Target.Section)
		m.Section = &s
	}
	return m
}

func (m *LocationModel) toLocation() Location {
	loc := Location{
		ID:        m.ID,
		SessionID: m.SessionID,
		Path:      m.Path,
		Target:    route.Target{View: route.View(m.View)},
		Action:    m.Action,
		CreatedAt: time.Unix(m.CreatedAt, 0),
	}
	if m.Domain != nil {
		loc.Target.Domain = sphere.DomainID(*m.Domain)
	}
	if m.Section != nil {
		loc.Target.Section = sphere.SectionID(*m.Section)
	}
	return loc
}
