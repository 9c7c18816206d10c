// Package metrics exposes navigation counters on a private Prometheus
// registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zjrosen/spherenav/internal/route"
)

// Namespace prefixes every metric name.
const Namespace = "spherenav"

// Options controls which runtime collectors are registered next to the
// navigation metrics.
type Options struct {
	GoMetrics      bool
	ProcessMetrics bool
}

// Recorder owns the navigation collectors. The zero value is not usable;
// a nil *Recorder is, and drops every observation.
type Recorder struct {
	registry      *prometheus.Registry
	transitions   *prometheus.CounterVec
	resolves      *prometheus.CounterVec
	addressErrors prometheus.Counter
	historyLength prometheus.Gauge
}

// New registers the navigation collectors on a fresh registry.
func New(opts Options) *Recorder {
	reg := prometheus.NewRegistry()
	if opts.GoMetrics {
		reg.MustRegister(collectors.NewGoCollector())
	}
	if opts.ProcessMetrics {
		reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: Namespace}))
	}

	r := &Recorder{
		registry: reg,
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "transitions_total",
			Help:      "Dispatched navigation actions by action and result.",
		}, []string{"action", "result"}),
		resolves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "resolve_total",
			Help:      "Path resolutions by the tier that answered them.",
		}, []string{"tier"}),
		addressErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "address_errors_total",
			Help:      "Failed address bar updates.",
		}),
		historyLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "history_length",
			Help:      "Entries in the navigation history after the last transition.",
		}),
	}
	reg.MustRegister(r.transitions, r.resolves, r.addressErrors, r.historyLength)
	return r
}

// ObserveTransition counts one dispatched action.
func (r *Recorder) ObserveTransition(action, result string) {
	if r == nil {
		return
	}
	r.transitions.WithLabelValues(action, result).Inc()
}

// ObserveResolve counts one path resolution.
func (r *Recorder) ObserveResolve(tier route.Tier) {
	if r == nil {
		return
	}
	r.resolves.WithLabelValues(string(tier)).Inc()
}

// ObserveAddressError counts one failed address bar update.
func (r *Recorder) ObserveAddressError() {
	if r == nil {
		return
	}
	r.addressErrors.Inc()
}

// SetHistoryLength records the current history size.
func (r *Recorder) SetHistoryLength(n int) {
	if r == nil {
		return
	}
	r.historyLength.Set(float64(n))
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
