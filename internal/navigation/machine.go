package navigation

import (
	"errors"
	"fmt"
	"time"

	"github.com/zjrosen/spherenav/internal/log"
	"github.com/zjrosen/spherenav/internal/route"
	"github.com/zjrosen/spherenav/internal/sphere"
)

var (
	// ErrInvalidDomain is returned when a domain id is not in the registry.
	ErrInvalidDomain = errors.New("invalid domain")
	// ErrInvalidSection is returned when a section id is not enabled.
	ErrInvalidSection = errors.New("invalid section")
	// ErrOverlayNotOpen is returned when closing an overlay that is not open.
	ErrOverlayNotOpen = errors.New("overlay not open")
	// ErrOverlayAlreadyOpen is returned when opening an overlay twice.
	ErrOverlayAlreadyOpen = errors.New("overlay already open")
	// ErrUnknownAction is returned for action names outside the closed set.
	ErrUnknownAction = errors.New("unknown action")
)

// RejectedError reports an action refused before any state change.
type RejectedError struct {
	Action string
	Err    error
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s rejected: %v", e.Action, e.Err)
}

func (e *RejectedError) Unwrap() error { return e.Err }

// Validator is the registry surface the machine checks ids against.
type Validator interface {
	IsValidDomain(id sphere.DomainID) bool
	IsValidSection(id sphere.SectionID) bool
}

// Clock provides the time stamped on history entries.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time { return time.Now() }

// Transition describes the outcome of a committed action.
type Transition struct {
	Action Action
	From   route.Target
	To     route.Target
	// FromLocation and ToLocation ignore the overlay.
	FromLocation route.Target
	ToLocation   route.Target
	// Pushed is true when a history entry was appended.
	Pushed bool
	// Evicted is true when a bounded history dropped its oldest entry.
	Evicted bool
	// Noop is true when the action was accepted but changed nothing,
	// e.g. GoBack at the start of the session.
	Noop bool
}

// Machine owns a NavigationState. It is not safe for concurrent use; callers
// serialise Dispatch.
type Machine struct {
	validator   Validator
	clock       Clock
	view        route.View
	domain      sphere.DomainID
	section     sphere.SectionID
	previous    route.View
	overlayOpen bool
	history     *History
}

// Option configures a Machine.
type Option func(*Machine)

// WithCapacity bounds history to n entries. Zero means unbounded.
func WithCapacity(n int) Option {
	return func(m *Machine) {
		m.history = NewHistory(n)
	}
}

// WithClock sets the clock used for history timestamps.
func WithClock(c Clock) Option {
	return func(m *Machine) {
		m.clock = c
	}
}

// New creates a machine in the initial state.
func New(v Validator, opts ...Option) *Machine {
	m := &Machine{
		validator: v,
		clock:     RealClock{},
		view:      route.ViewUniverse,
		history:   NewHistory(0),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns a snapshot of the current state.
func (m *Machine) State() State {
	return State{
		View:        m.view,
		Domain:      m.domain,
		Section:     m.section,
		Previous:    m.previous,
		OverlayOpen: m.overlayOpen,
		History:     m.history.Entries(),
	}
}

// HistoryLen returns the number of history entries without copying them.
func (m *Machine) HistoryLen() int {
	return m.history.Len()
}

// Dispatch validates a and, if accepted, commits it. A rejected action
// returns a *RejectedError and leaves the state untouched.
func (m *Machine) Dispatch(a Action) (Transition, error) {
	if err := m.validate(a); err != nil {
		name := actionName(a)
		log.Warn(log.CatNav, "action rejected", "action", name, "error", err)
		return Transition{}, &RejectedError{Action: name, Err: err}
	}

	tr := Transition{Action: a, From: m.target(), FromLocation: m.location()}

	switch a := a.(type) {
	case ToUniverse:
		tr.Evicted = m.move(route.Universe())
		tr.Pushed = true
	case ToMap:
		tr.Evicted = m.move(route.Map())
		tr.Pushed = true
	case ToDomain:
		tr.Evicted = m.move(route.DomainTarget(a.Domain))
		tr.Pushed = true
	case ToSection:
		tr.Evicted = m.move(route.SectionTarget(a.Domain, a.Section))
		tr.Pushed = true
	case OpenOverlay:
		m.previous = m.view
		m.overlayOpen = true
		tr.Evicted = m.history.Push(m.entry(true))
		tr.Pushed = true
	case CloseOverlay:
		m.closeOverlay()
	case GoBack:
		tr.Noop = !m.goBack()
	case Reset:
		m.reset()
	}

	tr.To = m.target()
	tr.ToLocation = m.location()
	log.Debug(log.CatNav, "transition",
		"action", a.Name(),
		"from", route.Generate(tr.From),
		"to", route.Generate(tr.To),
		"history", m.history.Len())
	return tr, nil
}

func actionName(a Action) string {
	if a == nil {
		return "<nil>"
	}
	return a.Name()
}

func (m *Machine) validate(a Action) error {
	switch a := a.(type) {
	case ToDomain:
		if !m.validator.IsValidDomain(a.Domain) {
			return fmt.Errorf("%w: %q", ErrInvalidDomain, a.Domain)
		}
	case ToSection:
		if !m.validator.IsValidDomain(a.Domain) {
			return fmt.Errorf("%w: %q", ErrInvalidDomain, a.Domain)
		}
		if !m.validator.IsValidSection(a.Section) {
			return fmt.Errorf("%w: %q", ErrInvalidSection, a.Section)
		}
	case OpenOverlay:
		if m.overlayOpen {
			return ErrOverlayAlreadyOpen
		}
	case CloseOverlay:
		if !m.overlayOpen {
			return ErrOverlayNotOpen
		}
	case ToUniverse, ToMap, GoBack, Reset:
	case nil:
		return ErrUnknownAction
	default:
		return fmt.Errorf("%w: %T", ErrUnknownAction, a)
	}
	return nil
}

// move sets the location, closes the overlay and records the entry.
func (m *Machine) move(t route.Target) bool {
	m.previous = m.view
	m.overlayOpen = false
	m.setLocation(t)
	return m.history.Push(m.entry(false))
}

// closeOverlay restores the location recorded when the overlay opened.
// It appends nothing to history.
func (m *Machine) closeOverlay() {
	m.previous = route.ViewOverlay
	m.overlayOpen = false
	if e, ok := m.history.LastOverlay(); ok {
		m.setLocation(e.Target())
	}
}

// goBack drops the newest entry and restores the one before it. With fewer
// than two entries it does nothing and returns false. An open overlay is
// closed by dropping its entry and restoring the location it covered.
func (m *Machine) goBack() bool {
	if m.overlayOpen {
		m.previous = route.ViewOverlay
		m.overlayOpen = false
		if e, ok := m.history.Pop(); ok {
			m.setLocation(e.Target())
		}
		return true
	}
	if m.history.Len() < 2 {
		return false
	}
	m.history.Pop()
	e, _ := m.history.Last()
	m.previous = m.view
	m.setLocation(e.Target())
	return true
}

func (m *Machine) reset() {
	m.view = route.ViewUniverse
	m.domain = ""
	m.section = ""
	m.previous = ""
	m.overlayOpen = false
	m.history.Clear()
}

func (m *Machine) setLocation(t route.Target) {
	m.view = t.View
	m.domain = t.Domain
	m.section = t.Section
	if t.View != route.ViewSection {
		m.section = ""
	}
	if t.View != route.ViewSection && t.View != route.ViewDomain {
		m.domain = ""
	}
}

func (m *Machine) entry(overlay bool) HistoryEntry {
	return HistoryEntry{
		View:    m.view,
		Domain:  m.domain,
		Section: m.section,
		Overlay: overlay,
		At:      m.clock.Now(),
	}
}

func (m *Machine) target() route.Target {
	if m.overlayOpen {
		return route.Overlay()
	}
	return m.location()
}

func (m *Machine) location() route.Target {
	return route.Target{View: m.view, Domain: m.domain, Section: m.section}
}

// ActiveChanged reports whether the active domain or section differs
// between the two locations.
func (t Transition) ActiveChanged() bool {
	return t.FromLocation.Domain != t.ToLocation.Domain || t.FromLocation.Section != t.ToLocation.Section
}
