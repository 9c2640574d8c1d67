// Package metrics holds the Prometheus collectors for recommendation and
// HTTP traffic. Collectors live on a private registry owned by Metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recommendation outcomes
const (
	OutcomeOK       = "ok"
	OutcomeTerminal = "terminal"
	OutcomeNoRole   = "no_role"
	OutcomeError    = "error"
)

// Fallback kinds
const (
	FallbackEmbedding = "embedding"
	FallbackAdvice    = "advice"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	recommendationsTotal   *prometheus.CounterVec
	fallbacksTotal         *prometheus.CounterVec
	recommendationDuration prometheus.Histogram
	httpRequestsTotal      *prometheus.CounterVec
	roleVectors            prometheus.Gauge
}

// New creates and registers all collectors on a fresh registry
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		recommendationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "career_recommendations_total",
				Help: "Number of recommendation requests by outcome.",
			},
			[]string{"outcome"},
		),
		fallbacksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "career_fallbacks_total",
				Help: "Number of times a collaborator failed and a fallback was used.",
			},
			[]string{"kind"},
		),
		recommendationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "career_recommendation_duration_seconds",
				Help:    "Time taken to produce recommendations.",
				Buckets: prometheus.DefBuckets,
			},
		),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "career_http_requests_total",
				Help: "Number of HTTP requests by route and status code.",
			},
			[]string{"route", "code"},
		),
		roleVectors: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "career_role_vectors",
				Help: "Number of precomputed role vectors.",
			},
		),
	}

	m.Registry.MustRegister(
		m.recommendationsTotal,
		m.fallbacksTotal,
		m.recommendationDuration,
		m.httpRequestsTotal,
		m.roleVectors,
	)
	return m
}

// ObserveRecommendation records one recommendation run
func (m *Metrics) ObserveRecommendation(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.recommendationsTotal.WithLabelValues(outcome).Inc()
	m.recommendationDuration.Observe(elapsed.Seconds())
}

// IncFallback records a collaborator fallback
func (m *Metrics) IncFallback(kind string) {
	if m == nil {
		return
	}
	m.fallbacksTotal.WithLabelValues(kind).Inc()
}

// ObserveHTTP records one served HTTP request
func (m *Metrics) ObserveHTTP(route string, code int) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// SetRoleVectors records the size of the role-vector cache
func (m *Metrics) SetRoleVectors(n int) {
	if m == nil {
		return
	}
	m.roleVectors.Set(float64(n))
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
