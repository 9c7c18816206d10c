package navigator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zjrosen/spherenav/internal/graph"
	"github.com/zjrosen/spherenav/internal/navigation"
	"github.com/zjrosen/spherenav/internal/route"
	"github.com/zjrosen/spherenav/internal/sphere"
	"github.com/zjrosen/spherenav/internal/tracing"
)

type recordingAddressBar struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (a *recordingAddressBar) ReplaceAddress(_ context.Context, change LocationChange) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.paths = append(a.paths, change.Path)
	return nil
}

type fakeMetrics struct {
	transitions   map[string]int
	historyLength int
	addressErrors int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{transitions: map[string]int{}}
}

func (m *fakeMetrics) ObserveTransition(action, result string) {
	m.transitions[action+"/"+result]++
}
func (m *fakeMetrics) ObserveAddressError()   { m.addressErrors++ }
func (m *fakeMetrics) SetHistoryLength(n int) { m.historyLength = n }

func newCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(CatalogOptions{Scheme: "app", Host: "app.example.io"})
	require.NoError(t, err)
	return c
}

func TestScenario(t *testing.T) {
	ctx := context.Background()
	bar := &recordingAddressBar{}
	n := New(newCatalog(t), WithAddressBar(bar))

	require.True(t, n.NavigateToDomain(ctx, sphere.Business))
	require.Equal(t, route.DomainTarget(sphere.Business), n.Location())

	require.True(t, n.NavigateToSection(ctx, sphere.Business, sphere.Tasks))
	require.Equal(t, "/domain/business/tasks", n.CurrentPath())
	require.Equal(t, "app://app.example.io/domain/business/tasks", n.Link())
	require.True(t, n.IsSectionActive(sphere.Business, sphere.Tasks))

	require.True(t, n.GoBack(ctx))
	s := n.State()
	require.Equal(t, route.ViewDomain, s.View)
	require.Equal(t, sphere.Business, s.Domain)
	require.Empty(t, s.Section)

	require.Equal(t, []string{"/domain/business", "/domain/business/tasks", "/domain/business"}, bar.paths)
}

func TestNavigateToDomain_InvalidIsRefused(t *testing.T) {
	ctx := context.Background()
	var notified int
	bar := &recordingAddressBar{}
	m := newFakeMetrics()
	n := New(newCatalog(t),
		WithAddressBar(bar),
		WithMetrics(m),
		WithCollaborators(CollaboratorFunc(func(LocationChange) { notified++ })),
	)
	require.True(t, n.NavigateToMap(ctx))
	before := n.State()

	require.False(t, n.NavigateToDomain(ctx, "not-a-real-domain"))
	require.False(t, n.NavigateToSection(ctx, sphere.Home, "garage"))
	require.False(t, n.NavigateToSection(ctx, "nowhere", sphere.Tasks))

	require.True(t, before.Equal(n.State()))
	require.Zero(t, notified)
	require.Equal(t, []string{"/map"}, bar.paths)
	require.Equal(t, 1, m.transitions["to_domain/rejected"])
	require.Equal(t, 2, m.transitions["to_section/rejected"])
}

func TestCollaborators_NotifiedOnDomainAndSection(t *testing.T) {
	ctx := context.Background()
	var changes []LocationChange
	n := New(newCatalog(t), WithSessionID("s-1"), WithCollaborators(CollaboratorFunc(func(c LocationChange) {
		changes = append(changes, c)
	})))

	n.NavigateToMap(ctx)
	n.NavigateToDomain(ctx, sphere.Health)
	n.OpenOverlay(ctx)
	n.CloseOverlay(ctx)
	n.NavigateToSection(ctx, sphere.Health, sphere.Notes)
	n.GoBack(ctx)

	require.Len(t, changes, 3)
	require.Equal(t, LocationChange{SessionID: "s-1", Action: "to_domain", Target: route.DomainTarget(sphere.Health), Path: "/domain/health"}, changes[0])
	require.Equal(t, route.SectionTarget(sphere.Health, sphere.Notes), changes[1].Target)
	require.Equal(t, LocationChange{SessionID: "s-1", Action: "go_back", Target: route.DomainTarget(sphere.Health), Path: "/domain/health"}, changes[2])
}

func TestCollaborators_NotifiedWhenBackOrResetLeavesDomain(t *testing.T) {
	ctx := context.Background()
	var actions []string
	n := New(newCatalog(t), WithCollaborators(CollaboratorFunc(func(c LocationChange) {
		actions = append(actions, c.Action)
	})))

	n.NavigateToDomain(ctx, sphere.Finance)
	n.NavigateToMap(ctx)
	n.GoBack(ctx)
	n.OpenOverlay(ctx)
	n.GoBack(ctx)
	n.Reset(ctx)
	n.NavigateToUniverse(ctx)

	// to_map leaves finance, go_back re-enters it, the overlay go_back stays
	// in finance and reset leaves it.
	require.Equal(t, []string{"to_domain", "to_map", "go_back", "reset"}, actions)
}

func TestCollaborator_CanQueryState(t *testing.T) {
	ctx := context.Background()
	var seen string
	var n *Navigator
	n = New(newCatalog(t), WithCollaborators(CollaboratorFunc(func(LocationChange) {
		seen = n.CurrentPath()
	})))

	require.True(t, n.NavigateToDomain(ctx, sphere.Home))
	require.Equal(t, "/domain/home", seen)
}

func TestAddressBarFailure_DoesNotUndoTransition(t *testing.T) {
	ctx := context.Background()
	bar := &recordingAddressBar{err: errors.New("disk full")}
	m := newFakeMetrics()
	n := New(newCatalog(t), WithAddressBar(bar), WithMetrics(m))

	require.True(t, n.NavigateToDomain(ctx, sphere.Finance))
	require.Equal(t, "/domain/finance", n.CurrentPath())
	require.Equal(t, 1, m.addressErrors)
	require.Equal(t, 1, m.transitions["to_domain/committed"])
	require.Equal(t, 1, m.historyLength)
}

func TestOverlay(t *testing.T) {
	ctx := context.Background()
	n := New(newCatalog(t))
	n.NavigateToSection(ctx, sphere.Learning, sphere.Courses)

	require.True(t, n.ToggleOverlay(ctx))
	require.Equal(t, route.OverlayPath, n.CurrentPath())
	require.Equal(t, "Assistant", n.Title())
	require.True(t, n.OpenOverlay(ctx), "opening an open overlay is a no-op")

	require.True(t, n.ToggleOverlay(ctx))
	require.Equal(t, "/domain/learning/courses", n.CurrentPath())
	require.False(t, n.CloseOverlay(ctx))

	require.Len(t, n.State().History, 2)
}

func TestNavigateToPath(t *testing.T) {
	ctx := context.Background()
	n := New(newCatalog(t))

	require.True(t, n.NavigateToPath(ctx, "/Domain/Home/Tasks/"))
	require.Equal(t, route.SectionTarget(sphere.Home, sphere.Tasks), n.Location())

	require.True(t, n.NavigateToPath(ctx, "/overlay"))
	require.True(t, n.State().OverlayOpen)

	require.False(t, n.NavigateToPath(ctx, "/domain/atlantis"))
	require.Equal(t, route.Universe(), n.Location(), "unresolvable paths degrade to the universe")

	for _, p := range []string{"", "   "} {
		require.True(t, n.NavigateToDomain(ctx, sphere.Home))
		require.False(t, n.NavigateToPath(ctx, p), "%q", p)
		require.Equal(t, route.Universe(), n.Location())
	}
}

func TestOpenLink(t *testing.T) {
	ctx := context.Background()
	n := New(newCatalog(t))

	require.True(t, n.OpenLink(ctx, "app://app.example.io/domain/social/threads"))
	require.Equal(t, route.SectionTarget(sphere.Community, sphere.Threads), n.Location())

	require.False(t, n.OpenLink(ctx, "wrongscheme://host/domain/business"))
	require.Equal(t, route.Universe(), n.Location())

	require.False(t, n.OpenLink(ctx, "not-a-uri"))
	require.Equal(t, route.Universe(), n.Location())
}

func TestBreadcrumbs(t *testing.T) {
	ctx := context.Background()
	n := New(newCatalog(t), WithLocale(sphere.LocaleSpanish))

	require.Equal(t, []string{"Universo"}, n.BreadcrumbLabels())

	n.NavigateToSection(ctx, sphere.Finance, sphere.Invoices)
	require.Equal(t, []string{"Universo", "Finanzas", "Facturas"}, n.BreadcrumbLabels())
	require.Equal(t, "Facturas · Finanzas", n.Title())

	paths := make([]string, 0, 3)
	for _, b := range n.Breadcrumbs() {
		paths = append(paths, b.Path)
	}
	require.Equal(t, []string{"/", "/domain/finance", "/domain/finance/invoices"}, paths)
}

func TestIsDomainActive(t *testing.T) {
	ctx := context.Background()
	n := New(newCatalog(t))

	require.False(t, n.IsDomainActive(""))
	n.NavigateToDomain(ctx, sphere.Personal)
	require.True(t, n.IsDomainActive(sphere.Personal))
	require.False(t, n.IsDomainActive(sphere.Home))
	require.False(t, n.IsSectionActive(sphere.Personal, sphere.Tasks))
}

func TestPathToDomain(t *testing.T) {
	ctx := context.Background()
	n := New(newCatalog(t))

	require.Equal(t, []sphere.DomainID{sphere.Learning}, n.PathToDomain(sphere.Learning))

	n.NavigateToDomain(ctx, sphere.Personal)
	require.Equal(t, []sphere.DomainID{sphere.Personal, sphere.Business, sphere.Learning}, n.PathToDomain(sphere.Learning))
}

func TestSubscribe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	n := New(newCatalog(t))
	defer n.Close()

	events := n.Subscribe(ctx)
	n.NavigateToMap(ctx)

	select {
	case ev := <-events:
		require.Equal(t, "/map", ev.Payload.Path)
		require.Equal(t, navigation.NameToMap, ev.Payload.Action)
	case <-time.After(time.Second):
		t.Fatal("no location change delivered")
	}
}

func TestTracing(t *testing.T) {
	ctx := context.Background()
	exporter := tracetest.NewInMemoryExporter()
	provider := tracing.NewProviderWithExporter(tracing.DefaultConfig(), exporter)
	t.Cleanup(func() { _ = provider.Shutdown(ctx) })

	n := New(newCatalog(t), WithTracer(provider.Tracer()))
	n.NavigateToDomain(ctx, sphere.Home)
	_, _ = n.Dispatch(ctx, navigation.CloseOverlay{})

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	require.Equal(t, tracing.SpanPrefixTransition+"to_domain", spans[0].Name)
	require.Equal(t, tracing.SpanPrefixTransition+"close_overlay", spans[1].Name)

	result := func(s tracetest.SpanStub) string {
		for _, kv := range s.Attributes {
			if string(kv.Key) == tracing.AttrResult {
				return kv.Value.AsString()
			}
		}
		return ""
	}
	require.Equal(t, tracing.ResultCommitted, result(spans[0]))
	require.Equal(t, tracing.ResultRejected, result(spans[1]))
}

func TestHistoryCapacity(t *testing.T) {
	ctx := context.Background()
	n := New(newCatalog(t), WithMachineOptions(navigation.WithCapacity(2)))

	n.NavigateToDomain(ctx, sphere.Business)
	n.NavigateToDomain(ctx, sphere.Home)
	n.NavigateToDomain(ctx, sphere.Health)
	require.Len(t, n.State().History, 2)
}

func TestSessionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)
	a := New(c)
	b := New(c)

	a.NavigateToDomain(ctx, sphere.Business)
	require.Equal(t, route.Universe(), b.Location())
	require.NotEqual(t, a.SessionID(), b.SessionID())
}

type fakeStore struct {
	path string
	err  error
}

func (s fakeStore) Last(context.Context) (string, error) { return s.path, s.err }

func TestRestore(t *testing.T) {
	ctx := context.Background()
	n := New(newCatalog(t))

	require.NoError(t, n.Restore(ctx, fakeStore{path: "/domain/home/notes"}))
	require.Equal(t, "/domain/home/notes", n.CurrentPath())

	require.ErrorIs(t, n.Restore(ctx, fakeStore{}), ErrNothingToRestore)

	boom := errors.New("boom")
	require.ErrorIs(t, n.Restore(ctx, fakeStore{err: boom}), boom)

	var restoreErr *RestoreError
	require.ErrorAs(t, n.Restore(ctx, fakeStore{path: "/domain/atlantis"}), &restoreErr)
	require.Equal(t, route.Universe(), n.Location())
}

func TestNewCatalog_Errors(t *testing.T) {
	_, err := NewCatalog(CatalogOptions{ExtendedSections: []sphere.SectionID{"spaceships"}})
	require.ErrorIs(t, err, sphere.ErrNotFound)

	_, err = NewCatalog(CatalogOptions{Adjacency: map[sphere.DomainID][]sphere.DomainID{sphere.Home: {"moon"}}})
	require.ErrorIs(t, err, graph.ErrUnknownDomain)

	_, err = NewCatalog(CatalogOptions{Scheme: "9nope"})
	require.Error(t, err)
}

func TestRunScript(t *testing.T) {
	script, err := ParseScript(strings.NewReader(`
steps:
  - action: to_domain
    domain: business
  - action: navigate
    path: /domain/business/tasks
  - action: to_domain
    domain: atlantis
  - action: toggle_overlay
  - action: go_back
  - action: go_back
  - action: open_link
    link: app://app.example.io/map
`))
	require.NoError(t, err)

	n := New(newCatalog(t))
	results := n.Run(context.Background(), script)
	require.Len(t, results, 7)

	want := []struct {
		ok   bool
		path string
	}{
		{true, "/domain/business"},
		{true, "/domain/business/tasks"},
		{false, "/domain/business/tasks"},
		{true, "/overlay"},
		{true, "/domain/business/tasks"},
		{true, "/domain/business"},
		{true, "/map"},
	}
	for i, w := range want {
		require.Equal(t, w.ok, results[i].OK, "step %d", i+1)
		require.Equal(t, w.path, results[i].Path, "step %d", i+1)
	}
	require.ErrorIs(t, results[2].Err, navigation.ErrInvalidDomain)
}

func TestParseScript_Errors(t *testing.T) {
	_, err := ParseScript(strings.NewReader("steps:\n  - action: teleport\n"))
	require.ErrorIs(t, err, navigation.ErrUnknownAction)

	_, err = ParseScript(strings.NewReader("steps:\n  - action: go_back\n    speed: 3\n"))
	require.Error(t, err)

	s, err := ParseScript(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, s.Steps)
}
