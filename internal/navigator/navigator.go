// Package navigator is the navigation façade: it validates requests against
// the catalog, drives the state machine and, once a transition is committed,
// synchronises the address bar and notifies collaborators.
package navigator

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/spherenav/internal/log"
	"github.com/zjrosen/spherenav/internal/navigation"
	"github.com/zjrosen/spherenav/internal/pubsub"
	"github.com/zjrosen/spherenav/internal/route"
	"github.com/zjrosen/spherenav/internal/sphere"
	"github.com/zjrosen/spherenav/internal/tracing"
)

// LocationChange is delivered to collaborators and subscribers after a
// committed transition.
type LocationChange struct {
	SessionID string       `json:"session_id" yaml:"session_id"`
	Action    string       `json:"action" yaml:"action"`
	Target    route.Target `json:"target" yaml:"target"`
	Path      string       `json:"path" yaml:"path"`
}

// Collaborator is notified after every committed domain or section
// transition and after any back or reset that changes the active domain or
// section. It runs synchronously and must not block or navigate.
type Collaborator interface {
	LocationChanged(change LocationChange)
}

// CollaboratorFunc adapts a function to Collaborator.
type CollaboratorFunc func(change LocationChange)

// LocationChanged calls f.
func (f CollaboratorFunc) LocationChanged(change LocationChange) { f(change) }

// AddressBar receives the canonical path whenever state settles.
type AddressBar interface {
	ReplaceAddress(ctx context.Context, change LocationChange) error
}

// MetricsRecorder receives transition counts. *metrics.Recorder implements it.
type MetricsRecorder interface {
	ObserveTransition(action, result string)
	ObserveAddressError()
	SetHistoryLength(n int)
}

// Navigator is one navigation session. Transitions are serialised; queries
// may run concurrently with them.
type Navigator struct {
	catalog       *Catalog
	sessionID     string
	locale        sphere.Locale
	collaborators []Collaborator
	addressBar    AddressBar
	tracer        trace.Tracer
	metrics       MetricsRecorder
	broker        *pubsub.Broker[LocationChange]

	dispatchMu sync.Mutex
	stateMu    sync.RWMutex
	machine    *navigation.Machine
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithCollaborators registers collaborators in notification order.
func WithCollaborators(c ...Collaborator) Option {
	return func(n *Navigator) {
		n.collaborators = append(n.collaborators, c...)
	}
}

// WithAddressBar sets the address bar kept in sync with the state.
func WithAddressBar(a AddressBar) Option {
	return func(n *Navigator) {
		n.addressBar = a
	}
}

// WithTracer records one span per dispatched action.
func WithTracer(t trace.Tracer) Option {
	return func(n *Navigator) {
		n.tracer = t
	}
}

// WithMetrics records transition metrics.
func WithMetrics(m MetricsRecorder) Option {
	return func(n *Navigator) {
		n.metrics = m
	}
}

// WithLocale sets the locale used for titles and breadcrumb labels.
func WithLocale(l sphere.Locale) Option {
	return func(n *Navigator) {
		n.locale = l
	}
}

// WithSessionID overrides the generated session id.
func WithSessionID(id string) Option {
	return func(n *Navigator) {
		if id != "" {
			n.sessionID = id
		}
	}
}

// WithMachineOptions passes options through to the state machine.
func WithMachineOptions(opts ...navigation.Option) Option {
	return func(n *Navigator) {
		n.machine = navigation.New(n.catalog.Registry(), opts...)
	}
}

// New creates a navigator in the initial state.
func New(catalog *Catalog, opts ...Option) *Navigator {
	n := &Navigator{
		catalog:   catalog,
		sessionID: uuid.NewString(),
		locale:    sphere.DefaultLocale,
		broker:    pubsub.NewBroker[LocationChange](),
		machine:   navigation.New(catalog.Registry()),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Close releases subscribers.
func (n *Navigator) Close() {
	n.broker.Close()
}

// SessionID returns the session id.
func (n *Navigator) SessionID() string { return n.sessionID }

// Catalog returns the catalog backing this navigator.
func (n *Navigator) Catalog() *Catalog { return n.catalog }

// Subscribe returns a channel of location changes, closed when ctx ends or
// the navigator is closed.
func (n *Navigator) Subscribe(ctx context.Context) <-chan pubsub.Event[LocationChange] {
	return n.broker.Subscribe(ctx)
}

// NavigateToUniverse shows the universe view.
func (n *Navigator) NavigateToUniverse(ctx context.Context) bool {
	return n.apply(ctx, navigation.ToUniverse{})
}

// NavigateToMap shows the map view.
func (n *Navigator) NavigateToMap(ctx context.Context) bool {
	return n.apply(ctx, navigation.ToMap{})
}

// NavigateToDomain opens sphere d. Unknown ids are logged and refused.
func (n *Navigator) NavigateToDomain(ctx context.Context, d sphere.DomainID) bool {
	if _, err := n.catalog.Registry().Domain(d); err != nil {
		n.refuse(navigation.NameToDomain, err)
		return false
	}
	return n.apply(ctx, navigation.ToDomain{Domain: d})
}

// NavigateToSection opens section s of sphere d. Unknown ids are logged and
// refused.
func (n *Navigator) NavigateToSection(ctx context.Context, d sphere.DomainID, s sphere.SectionID) bool {
	reg := n.catalog.Registry()
	if _, err := reg.Domain(d); err != nil {
		n.refuse(navigation.NameToSection, err)
		return false
	}
	if _, err := reg.Section(s); err != nil {
		n.refuse(navigation.NameToSection, err)
		return false
	}
	return n.apply(ctx, navigation.ToSection{Domain: d, Section: s})
}

// OpenOverlay shows the overlay. Opening an open overlay is a no-op that
// reports true.
func (n *Navigator) OpenOverlay(ctx context.Context) bool {
	if n.State().OverlayOpen {
		return true
	}
	return n.apply(ctx, navigation.OpenOverlay{})
}

// CloseOverlay hides the overlay. It reports false if it was not open.
func (n *Navigator) CloseOverlay(ctx context.Context) bool {
	return n.apply(ctx, navigation.CloseOverlay{})
}

// ToggleOverlay opens the overlay if closed and closes it otherwise.
func (n *Navigator) ToggleOverlay(ctx context.Context) bool {
	if n.State().OverlayOpen {
		return n.CloseOverlay(ctx)
	}
	return n.OpenOverlay(ctx)
}

// GoBack restores the previous history entry. It reports false at the start
// of the session.
func (n *Navigator) GoBack(ctx context.Context) bool {
	tr, err := n.Dispatch(ctx, navigation.GoBack{})
	return err == nil && !tr.Noop
}

// Reset returns to the initial state.
func (n *Navigator) Reset(ctx context.Context) {
	n.apply(ctx, navigation.Reset{})
}

// NavigateToPath resolves p and navigates to it. An unresolvable path sends
// the session to the universe and reports false.
func (n *Navigator) NavigateToPath(ctx context.Context, p string) bool {
	desc, ok := n.catalog.Resolver().Resolve(p)
	if !ok {
		log.Warn(log.CatRoute, "unresolvable path, falling back to universe", "path", p)
		n.NavigateToUniverse(ctx)
		return false
	}
	return n.NavigateTo(ctx, desc.Target())
}

// OpenLink decodes a deep link and navigates to it. Links that fail to
// decode send the session to the universe and report false.
func (n *Navigator) OpenLink(ctx context.Context, uri string) bool {
	target, ok := n.catalog.Codec().Decode(uri)
	if !ok {
		log.Warn(log.CatLink, "undecodable link, falling back to universe", "uri", uri)
		n.NavigateToUniverse(ctx)
		return false
	}
	return n.NavigateTo(ctx, target)
}

// NavigateTo dispatches the action that shows t.
func (n *Navigator) NavigateTo(ctx context.Context, t route.Target) bool {
	switch t.View {
	case route.ViewUniverse:
		return n.NavigateToUniverse(ctx)
	case route.ViewMap:
		return n.NavigateToMap(ctx)
	case route.ViewOverlay:
		return n.OpenOverlay(ctx)
	case route.ViewDomain:
		return n.NavigateToDomain(ctx, t.Domain)
	case route.ViewSection:
		return n.NavigateToSection(ctx, t.Domain, t.Section)
	default:
		log.Warn(log.CatNav, "unknown view", "view", t.View)
		return false
	}
}

func (n *Navigator) apply(ctx context.Context, a navigation.Action) bool {
	_, err := n.Dispatch(ctx, a)
	return err == nil
}

func (n *Navigator) refuse(action string, err error) {
	log.Warn(log.CatNav, "navigation refused", "action", action, "error", err)
	if n.metrics != nil {
		n.metrics.ObserveTransition(action, tracing.ResultRejected)
	}
}

// Dispatch runs a through the state machine and, when it is committed,
// performs the side effects. Rejections return a *navigation.RejectedError
// and leave the state unchanged.
func (n *Navigator) Dispatch(ctx context.Context, a navigation.Action) (navigation.Transition, error) {
	n.dispatchMu.Lock()
	defer n.dispatchMu.Unlock()

	name := "<nil>"
	if a != nil {
		name = a.Name()
	}
	fromPath := n.CurrentPath()
	ctx, span := tracing.StartTransition(ctx, n.tracer, name, n.sessionID, fromPath)

	n.stateMu.Lock()
	tr, err := n.machine.Dispatch(a)
	historyLen := n.machine.HistoryLen()
	n.stateMu.Unlock()

	if err != nil {
		n.observe(name, tracing.ResultRejected, historyLen)
		tracing.EndTransition(span, tracing.ResultRejected, fromPath, historyLen, err)
		return tr, err
	}

	result := tracing.ResultCommitted
	if tr.Noop {
		result = tracing.ResultNoop
	}
	n.observe(name, result, historyLen)

	toPath := route.Generate(tr.To)
	if !tr.Noop {
		n.settle(ctx, span, tr, toPath)
	}
	tracing.EndTransition(span, result, toPath, historyLen, nil)
	return tr, nil
}

func (n *Navigator) observe(action, result string, historyLen int) {
	if n.metrics == nil {
		return
	}
	n.metrics.ObserveTransition(action, result)
	n.metrics.SetHistoryLength(historyLen)
}

// settle runs the post-commit side effects. Failures are logged and never
// undo the transition.
func (n *Navigator) settle(ctx context.Context, span trace.Span, tr navigation.Transition, path string) {
	change := LocationChange{
		SessionID: n.sessionID,
		Action:    tr.Action.Name(),
		Target:    tr.To,
		Path:      path,
	}
	span.SetAttributes(
		attribute.String(tracing.AttrDomain, string(tr.To.Domain)),
		attribute.String(tracing.AttrSection, string(tr.To.Section)),
	)
	if tr.Evicted {
		span.AddEvent(tracing.EventHistoryEvicted)
	}

	if n.addressBar != nil {
		if err := n.addressBar.ReplaceAddress(ctx, change); err != nil {
			log.ErrorErr(log.CatNav, "address bar update failed", err, "path", path)
			span.AddEvent(tracing.EventAddressFailed, trace.WithAttributes(attribute.String(tracing.AttrToPath, path)))
			if n.metrics != nil {
				n.metrics.ObserveAddressError()
			}
		} else {
			span.AddEvent(tracing.EventAddressReplaced)
		}
	}

	if notifiesCollaborators(tr) {
		for _, c := range n.collaborators {
			c.LocationChanged(change)
		}
		if len(n.collaborators) > 0 {
			span.AddEvent(tracing.EventCollaboratorNotified, trace.WithAttributes(attribute.Int("count", len(n.collaborators))))
		}
	}

	n.broker.Publish(pubsub.LocationChangedEvent, change)
}

// notifiesCollaborators is true for every domain or section action and for
// any other transition that changes the active domain or section.
func notifiesCollaborators(tr navigation.Transition) bool {
	switch tr.Action.(type) {
	case navigation.ToDomain, navigation.ToSection:
		return true
	}
	return tr.ActiveChanged()
}

// State returns a snapshot of the navigation state.
func (n *Navigator) State() navigation.State {
	n.stateMu.RLock()
	defer n.stateMu.RUnlock()
	return n.machine.State()
}

// Location returns what is on screen.
func (n *Navigator) Location() route.Target {
	return n.State().Target()
}

// CurrentPath returns the canonical path of what is on screen.
func (n *Navigator) CurrentPath() string {
	return route.Generate(n.Location())
}

// Link returns the deep link for the current location.
func (n *Navigator) Link() string {
	return n.catalog.Codec().Encode(n.Location())
}

// Route returns the descriptor of the current location.
func (n *Navigator) Route() route.RouteDescriptor {
	desc, ok := n.catalog.Resolver().Resolve(n.CurrentPath())
	if !ok {
		// Every reachable state maps onto the table.
		desc, _ = n.catalog.Table().Lookup(route.RootPath)
	}
	return desc
}

// Breadcrumbs returns the ancestry of the current location, root first.
func (n *Navigator) Breadcrumbs() []route.Breadcrumb {
	return n.Route().Breadcrumbs
}

// BreadcrumbLabels returns the breadcrumb labels in the session locale.
func (n *Navigator) BreadcrumbLabels() []string {
	crumbs := n.Breadcrumbs()
	labels := make([]string, len(crumbs))
	for i, b := range crumbs {
		labels[i] = b.Label.In(n.locale)
	}
	return labels
}

// Title returns the current route title in the session locale.
func (n *Navigator) Title() string {
	return n.Route().Title.In(n.locale)
}

// IsDomainActive reports whether d is the active sphere.
func (n *Navigator) IsDomainActive(d sphere.DomainID) bool {
	return d != "" && n.State().Domain == d
}

// IsSectionActive reports whether s of sphere d is the active section.
func (n *Navigator) IsSectionActive(d sphere.DomainID, s sphere.SectionID) bool {
	st := n.State()
	return st.View == route.ViewSection && st.Domain == d && st.Section == s
}

// PathToDomain returns the shortest sphere path from the active sphere to
// target. Without an active sphere the path is just target.
func (n *Navigator) PathToDomain(target sphere.DomainID) []sphere.DomainID {
	active := n.State().Domain
	if active == "" {
		return []sphere.DomainID{target}
	}
	return n.catalog.Graph().ShortestPath(active, target)
}

// LastLocation is a store that remembers the most recent path.
type LastLocation interface {
	Last(ctx context.Context) (string, error)
}

// ErrNothingToRestore is returned by Restore when the store is empty.
var ErrNothingToRestore = errors.New("no location to restore")

// Restore navigates to the last location recorded in store.
func (n *Navigator) Restore(ctx context.Context, store LastLocation) error {
	p, err := store.Last(ctx)
	if err != nil {
		return err
	}
	if p == "" {
		return ErrNothingToRestore
	}
	if !n.NavigateToPath(ctx, p) {
		return &RestoreError{Path: p}
	}
	log.Info(log.CatNav, "location restored", "path", p, "session", n.sessionID)
	return nil
}

// RestoreError reports a stored path that no longer resolves.
type RestoreError struct {
	Path string
}

func (e *RestoreError) Error() string {
	return "stored location no longer resolves: " + e.Path
}
