package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/spherenav/internal/route"
)

func scrape(t *testing.T, r *Recorder) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestRecorder_Transitions(t *testing.T) {
	r := New(Options{})

	r.ObserveTransition("to_domain", "committed")
	r.ObserveTransition("to_domain", "committed")
	r.ObserveTransition("to_domain", "rejected")

	require.Equal(t, 2.0, testutil.ToFloat64(r.transitions.WithLabelValues("to_domain", "committed")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.transitions.WithLabelValues("to_domain", "rejected")))
}

func TestRecorder_ResolveAndHistory(t *testing.T) {
	r := New(Options{})

	r.ObserveResolve(route.TierExact)
	r.ObserveResolve(route.TierMiss)
	r.SetHistoryLength(7)
	r.ObserveAddressError()

	require.Equal(t, 1.0, testutil.ToFloat64(r.resolves.WithLabelValues("exact")))
	require.Equal(t, 7.0, testutil.ToFloat64(r.historyLength))
	require.Equal(t, 1.0, testutil.ToFloat64(r.addressErrors))

	out := scrape(t, r)
	require.Contains(t, out, `spherenav_resolve_total{tier="miss"} 1`)
	require.Contains(t, out, "spherenav_history_length 7")
}

func TestRecorder_RuntimeCollectors(t *testing.T) {
	out := scrape(t, New(Options{GoMetrics: true}))
	require.Contains(t, out, "go_goroutines")

	out = scrape(t, New(Options{}))
	require.NotContains(t, out, "go_goroutines")
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	require.NotPanics(t, func() {
		r.ObserveTransition("go_back", "noop")
		r.ObserveResolve(route.TierExact)
		r.ObserveAddressError()
		r.SetHistoryLength(1)
	})
}
