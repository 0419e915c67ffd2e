package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the crew center
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Database Metrics
	DBConnections *prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Business Metrics
	PirepsSubmittedTotal prometheus.Counter
	PirepsRejectedTotal  *prometheus.CounterVec
	PirepsUpdatedTotal   prometheus.Counter
	RouteRecomputedTotal prometheus.Counter
}

// NewMetricsRegistry registers every metric on reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not collide.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crewcenter_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "crewcenter_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "crewcenter_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Database Metrics
		DBConnections: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "crewcenter_db_connections",
				Help: "Current number of database connections",
			},
			[]string{"state"},
		),

		// Cache Metrics
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crewcenter_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crewcenter_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Business Metrics
		PirepsSubmittedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "crewcenter_pireps_submitted_total",
				Help: "Total flight reports filed",
			},
		),
		PirepsRejectedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crewcenter_pireps_rejected_total",
				Help: "Total flight report submissions rejected, by error code",
			},
			[]string{"code"},
		),
		PirepsUpdatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "crewcenter_pireps_updated_total",
				Help: "Total flight reports edited",
			},
		),
		RouteRecomputedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "crewcenter_route_recomputed_total",
				Help: "Total planned route recomputations",
			},
		),
	}
}
