package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zjrosen/spherenav/internal/cachemanager"
	"github.com/zjrosen/spherenav/internal/config"
	"github.com/zjrosen/spherenav/internal/flags"
	"github.com/zjrosen/spherenav/internal/infrastructure/sqlite"
	"github.com/zjrosen/spherenav/internal/log"
	"github.com/zjrosen/spherenav/internal/metrics"
	"github.com/zjrosen/spherenav/internal/navigation"
	"github.com/zjrosen/spherenav/internal/navigator"
	"github.com/zjrosen/spherenav/internal/paths"
	"github.com/zjrosen/spherenav/internal/route"
	"github.com/zjrosen/spherenav/internal/tracing"
)

// app holds everything built from the config for one command run.
type app struct {
	cfg     config.Config
	flags   *flags.Registry
	catalog *navigator.Catalog
	metrics *metrics.Recorder
	tracer  *tracing.Provider
	db      *sqlite.DB
	cache   *cachemanager.InMemoryCacheManager[string, route.RouteDescriptor]
}

// appOptions selects the optional infrastructure a command needs.
type appOptions struct {
	store   bool // open the location store when store.path is set
	tracing bool // build the tracer provider
	metrics bool // register the collectors
}

func newApp(c config.Config, opts appOptions) (*app, error) {
	a := &app{cfg: c, flags: flags.New(c.Flags)}

	catalogOpts := navigator.CatalogOptions{
		ExtendedSections: c.ExtendedSectionIDs(),
		Adjacency:        c.AdjacencyMap(),
		Scheme:           c.DeepLink.Scheme,
		Host:             c.DeepLink.Host,
	}

	if opts.metrics {
		a.metrics = metrics.New(metrics.Options{GoMetrics: true, ProcessMetrics: true})
		catalogOpts.Observer = a.metrics
	}
	if a.flags.Enabled(flags.FlagPatternCache) {
		a.cache = cachemanager.NewInMemoryCacheManager[string, route.RouteDescriptor](
			"route-patterns", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
		catalogOpts.Cache = a.cache
	}

	catalog, err := navigator.NewCatalog(catalogOpts)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}
	a.catalog = catalog

	if opts.tracing && c.Tracing.Enabled && a.flags.Enabled(flags.FlagTraceTransitions) {
		tc := c.Tracing
		if tc.Exporter == tracing.ExporterFile && tc.FilePath == "" {
			tc.FilePath = config.DefaultTracesFilePath()
		}
		tc.FilePath = paths.ExpandHome(tc.FilePath)
		provider, err := tracing.NewProvider(tc)
		if err != nil {
			return nil, fmt.Errorf("creating tracer: %w", err)
		}
		a.tracer = provider
	}

	if storePath := paths.ResolveStorePath(c.Store.Path); opts.store && storePath != "" {
		db, err := sqlite.NewDB(storePath)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("opening location store: %w", err)
		}
		a.db = db
	}

	log.Debug(log.CatConfig, "app wired",
		"metrics", a.metrics != nil,
		"tracing", a.tracer != nil,
		"store", a.db != nil,
		"patternCache", a.cache != nil)
	return a, nil
}

// navigator creates a session wired to the app's infrastructure.
func (a *app) navigator(opts ...navigator.Option) *navigator.Navigator {
	base := []navigator.Option{
		navigator.WithLocale(a.cfg.DisplayLocale()),
		navigator.WithMachineOptions(navigation.WithCapacity(a.cfg.History.Capacity)),
	}
	if a.metrics != nil {
		base = append(base, navigator.WithMetrics(a.metrics))
	}
	if a.tracer != nil {
		base = append(base, navigator.WithTracer(a.tracer.Tracer()))
	}
	if a.db != nil {
		base = append(base, navigator.WithAddressBar(a.db.LocationRepository()))
	}
	return navigator.New(a.catalog, append(base, opts...)...)
}

// restore resumes nav at the stored location when configured. A missing or
// stale location is logged and leaves nav at the universe.
func (a *app) restore(ctx context.Context, nav *navigator.Navigator) bool {
	if a.db == nil || !a.cfg.Store.Restore || !a.flags.Enabled(flags.FlagRestoreLocation) {
		return false
	}
	err := nav.Restore(ctx, a.db.LocationRepository())
	switch {
	case err == nil:
		return true
	case errors.Is(err, sqlite.ErrNoLocation), errors.Is(err, navigator.ErrNothingToRestore):
		log.Debug(log.CatDB, "no stored location")
	default:
		log.ErrorErr(log.CatDB, "restore failed", err)
	}
	return false
}

// Close releases the store and flushes traces.
func (a *app) Close() {
	if a.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.tracer.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "tracer shutdown failed", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			log.ErrorErr(log.CatDB, "closing location store failed", err)
		}
	}
}
