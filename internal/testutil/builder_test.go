package testutil_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/spherenav/internal/infrastructure/sqlite"
	"github.com/zjrosen/spherenav/internal/route"
	"github.com/zjrosen/spherenav/internal/testutil"
)

func newStore(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), "nav.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestBuilder_WithLocation(t *testing.T) {
	db := newStore(t)

	testutil.NewBuilder(t, db.Connection()).
		WithLocation("/domain/home/tasks").
		Build()

	loc, err := db.LocationRepository().LastLocation(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/domain/home/tasks", loc.Path)
	require.Equal(t, route.SectionTarget("home", "tasks"), loc.Target)
	require.Equal(t, testutil.DefaultSession, loc.SessionID)
	require.Equal(t, "navigate", loc.Action)
}

func TestBuilder_DerivesViews(t *testing.T) {
	db := newStore(t)

	testutil.NewBuilder(t, db.Connection()).
		WithLocation("/").
		WithLocation("/map").
		WithLocation("/overlay").
		WithLocation("/domain/finance").
		Build()

	locs, err := db.LocationRepository().Recent(context.Background(), "", 10)
	require.NoError(t, err)
	require.Len(t, locs, 4)
	require.Equal(t, route.DomainTarget("finance"), locs[0].Target)
	require.Equal(t, route.Overlay(), locs[1].Target)
	require.Equal(t, route.Map(), locs[2].Target)
	require.Equal(t, route.Universe(), locs[3].Target)
}

func TestBuilder_Options(t *testing.T) {
	db := newStore(t)
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	testutil.NewBuilder(t, db.Connection()).
		WithLocation("/domain/home", testutil.Session("s1"), testutil.Action("to_domain"), testutil.CreatedAt(at)).
		Build()

	loc, err := db.LocationRepository().LastLocation(context.Background())
	require.NoError(t, err)
	require.Equal(t, "s1", loc.SessionID)
	require.Equal(t, "to_domain", loc.Action)
	require.True(t, at.Equal(loc.CreatedAt))
}

func TestPresets(t *testing.T) {
	ctx := context.Background()

	t.Run("standard session", func(t *testing.T) {
		db := newStore(t)
		testutil.NewBuilder(t, db.Connection()).WithStandardSession().Build()

		p, err := db.LocationRepository().Last(ctx)
		require.NoError(t, err)
		require.Equal(t, "/domain/finance/invoices", p)
	})

	t.Run("two sessions", func(t *testing.T) {
		db := newStore(t)
		testutil.NewBuilder(t, db.Connection()).WithTwoSessions().Build()

		alpha, err := db.LocationRepository().Recent(ctx, "alpha", 10)
		require.NoError(t, err)
		require.Len(t, alpha, 2)
		require.Equal(t, "/domain/health/notes", alpha[0].Path)

		p, err := db.LocationRepository().Last(ctx)
		require.NoError(t, err)
		require.Equal(t, "/domain/home", p)
	})
}
