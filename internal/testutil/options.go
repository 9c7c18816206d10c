package testutil

import (
	"strings"
	"time"
)

// DefaultSession is the session id of rows that do not set one.
const DefaultSession = "test-session"

// baseTime anchors default timestamps; each row is one second after the last.
var baseTime = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

// locationData holds all data for a location row.
type locationData struct {
	sessionID string
	path      string
	view      string
	domain    *string
	section   *string
	action    string
	createdAt time.Time
}

// defaultLocation derives view, domain and section from a canonical path.
func defaultLocation(path string, seq int) locationData {
	loc := locationData{
		sessionID: DefaultSession,
		path:      path,
		view:      "universe",
		action:    "navigate",
		createdAt: baseTime.Add(time.Duration(seq) * time.Second),
	}
	segs := strings.Split(strings.Trim(path, "/"), "/")
	switch {
	case path == "/map":
		loc.view = "map"
	case path == "/overlay":
		loc.view = "overlay"
	case len(segs) == 2 && segs[0] == "domain":
		loc.view = "domain"
		loc.domain = &segs[1]
	case len(segs) == 3 && segs[0] == "domain":
		loc.view = "section"
		loc.domain = &segs[1]
		loc.section = &segs[2]
	}
	return loc
}

// LocationOption configures a location during builder setup.
type LocationOption func(*locationData)

// Session sets the session id.
func Session(id string) LocationOption {
	return func(l *locationData) { l.sessionID = id }
}

// Action sets the action that produced the location.
func Action(a string) LocationOption {
	return func(l *locationData) { l.action = a }
}

// View overrides the derived view.
func View(v string) LocationOption {
	return func(l *locationData) { l.view = v }
}

// CreatedAt sets the created_at timestamp.
func CreatedAt(t time.Time) LocationOption {
	return func(l *locationData) { l.createdAt = t }
}
