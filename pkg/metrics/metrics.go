// Package metrics defines the Prometheus metric collectors used by the
// relevance service and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	RankQueriesTotal     *prometheus.CounterVec
	RankLatency          *prometheus.HistogramVec
	RankedSentences      prometheus.Histogram
	CacheHitsTotal       prometheus.Counter
	CacheMissesTotal     prometheus.Counter
	CorporaActive        prometheus.Gauge
	CorporaCreatedTotal  *prometheus.CounterVec
	QueriesLoggedTotal   prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed.",
			},
		),
		RankQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rank_queries_total",
				Help: "Total rank queries by outcome (matched, zero_result, error).",
			},
			[]string{"outcome"},
		),
		RankLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rank_latency_seconds",
				Help:    "Rank query latency in seconds.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"cache_status"},
		),
		RankedSentences: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rank_results_count",
				Help:    "Number of sentences returned per rank query.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
			},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Total number of result-cache hits.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Total number of result-cache misses.",
			},
		),
		CorporaActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "corpora_active",
				Help: "Number of corpora currently held in memory.",
			},
		),
		CorporaCreatedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corpora_created_total",
				Help: "Total corpora created, by ingestion source (http, kafka).",
			},
			[]string{"source"},
		),
		QueriesLoggedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "queries_logged_total",
				Help: "Total query-log events flushed to storage.",
			},
		),
	}

	prometheus.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.RankQueriesTotal,
		m.RankLatency,
		m.RankedSentences,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.CorporaActive,
		m.CorporaCreatedTotal,
		m.QueriesLoggedTotal,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
