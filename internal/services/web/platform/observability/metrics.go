package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/louisbranch/royal.studio/internal/showcase/viewstate"
)

// Frame outcomes counted by LiveFrames.
const (
	FrameAccepted    = "accepted"
	FrameRejected    = "rejected"
	FrameRateLimited = "rate_limited"
	FrameMalformed   = "malformed"
)

// Lookup results counted by ContentLookups.
const (
	LookupHit  = "hit"
	LookupMiss = "miss"
)

// Metrics groups the service's collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	ActiveSessions  prometheus.Gauge
	ViewTransitions *prometheus.CounterVec
	LiveFrames      *prometheus.CounterVec
	ContentLookups  *prometheus.CounterVec
	SessionDuration prometheus.Histogram
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)
	m := &Metrics{
		registry: reg,
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "royal_studio",
			Name:      "live_sessions_active",
			Help:      "Number of open live view sessions.",
		}),
		ViewTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "royal_studio",
			Name:      "view_transitions_total",
			Help:      "View mode changes pushed to live sessions, by target mode.",
		}, []string{"mode"}),
		LiveFrames: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "royal_studio",
			Name:      "live_frames_total",
			Help:      "Inbound live frames, by outcome.",
		}, []string{"outcome"}),
		ContentLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "royal_studio",
			Name:      "content_lookups_total",
			Help:      "Project lookups, by result.",
		}, []string{"result"}),
		SessionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "royal_studio",
			Name:      "live_session_duration_seconds",
			Help:      "Lifetime of live view sessions.",
			Buckets:   []float64{1, 5, 15, 30, 60, 180, 600, 1800},
		}),
	}
	for _, mode := range viewstate.Modes() {
		m.ViewTransitions.WithLabelValues(string(mode))
	}
	return m
}

// Registry exposes the underlying registry for tests and custom gatherers.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Transition counts a view mode change.
func (m *Metrics) Transition(mode viewstate.Mode) {
	if m == nil {
		return
	}
	m.ViewTransitions.WithLabelValues(string(mode)).Inc()
}

// Frame counts one inbound live frame.
func (m *Metrics) Frame(outcome string) {
	if m == nil {
		return
	}
	m.LiveFrames.WithLabelValues(outcome).Inc()
}

// Lookup counts one project lookup.
func (m *Metrics) Lookup(hit bool) {
	if m == nil {
		return
	}
	result := LookupMiss
	if hit {
		result = LookupHit
	}
	m.ContentLookups.WithLabelValues(result).Inc()
}

// SessionOpened increments the active session gauge.
func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.ActiveSessions.Inc()
}

// SessionClosed decrements the gauge and records the session lifetime.
func (m *Metrics) SessionClosed(seconds float64) {
	if m == nil {
		return
	}
	m.ActiveSessions.Dec()
	m.SessionDuration.Observe(seconds)
}
