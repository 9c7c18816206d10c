package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/spherenav/internal/log"
	"github.com/zjrosen/spherenav/internal/navigator"
	"github.com/zjrosen/spherenav/internal/render"
	"github.com/zjrosen/spherenav/internal/sphere"
	"github.com/zjrosen/spherenav/internal/watcher"
)

var (
	watchInbox       string
	watchFromStart   bool
	watchMetricsAddr string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow a deep-link inbox and navigate to each entry",
	Long: `Follow an inbox file and open every line appended to it in one
long-running session. Lines are deep links or canonical paths; anything that
does not resolve sends the session to the universe.

Every location is written to the store (store.path) and the session resumes
at the stored location on start when store.restore is set. With metrics
enabled the Prometheus collectors are served on /metrics.

Examples:
  spherenav watch --inbox /tmp/spherenav.inbox
  echo spherenav://app.spherenav.io/domain/home >> /tmp/spherenav.inbox
  spherenav watch --inbox links.txt --from-start --metrics-addr :9464`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchInbox, "inbox", "", "inbox file (overrides inbox.path)")
	watchCmd.Flags().BoolVar(&watchFromStart, "from-start", false, "open lines already in the inbox")
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "", "serve /metrics on this address (overrides metrics.addr)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	inbox := watchInbox
	if inbox == "" {
		inbox = cfg.Inbox.Path
	}
	if inbox == "" {
		return errors.New("no inbox: set --inbox or inbox.path")
	}

	metricsAddr := watchMetricsAddr
	if metricsAddr == "" && cfg.Metrics.Enabled {
		metricsAddr = cfg.Metrics.Addr
	}

	a, err := newApp(cfg, appOptions{store: true, tracing: true, metrics: metricsAddr != ""})
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := &lockedWriter{w: cmd.OutOrStdout()}

	nav := a.navigator(navigator.WithCollaborators(navigator.CollaboratorFunc(func(change navigator.LocationChange) {
		log.Info(log.CatNav, "entered sphere", "domain", change.Target.Domain, "section", change.Target.Section)
	})))
	printed := printChanges(out, nav, cfg.DisplayLocale())
	defer func() {
		nav.Close()
		<-printed
	}()

	if a.restore(ctx, nav) {
		fmt.Fprintf(out, "resumed at %s\n", nav.CurrentPath())
	}

	if a.metrics != nil {
		srv := serveMetrics(metricsAddr, a.metrics.Handler())
		defer shutdownServer(srv)
		fmt.Fprintf(out, "metrics on %s/metrics\n", metricsAddr)
	}

	debounce := cfg.Inbox.Debounce
	if debounce <= 0 {
		debounce = watcher.DefaultDebounce
	}
	fmt.Fprintf(out, "watching %s (session %s)\n", inbox, nav.SessionID())

	err = watcher.Follow(ctx, watcher.Config{Path: inbox, DebounceDur: debounce}, watchFromStart, func(line string) {
		openEntry(ctx, nav, line)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("following inbox: %w", err)
	}
	return nil
}

// printChanges writes one line per location change until nav is closed.
// The returned channel closes once every buffered change has been written.
func printChanges(out io.Writer, nav *navigator.Navigator, locale sphere.Locale) <-chan struct{} {
	changes := nav.Subscribe(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range changes {
			desc, ok := nav.Catalog().Resolver().Resolve(ev.Payload.Path)
			if !ok {
				continue
			}
			fmt.Fprintf(out, "%s  %s\n", ev.Timestamp.Format(time.TimeOnly), render.Line(desc, locale, nav.Catalog().Registry()))
		}
	}()
	return done
}

// openEntry navigates to one inbox line: a canonical path or a deep link.
func openEntry(ctx context.Context, nav *navigator.Navigator, line string) bool {
	if strings.HasPrefix(line, "/") {
		return nav.NavigateToPath(ctx, line)
	}
	return nav.OpenLink(ctx, line)
}

func serveMetrics(addr string, h http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.ErrorErr(log.CatConfig, "metrics server failed", err, "addr", addr)
		}
	}()
	return srv
}

func shutdownServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
