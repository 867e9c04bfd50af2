// Package metrics defines Prometheus metrics for omopgraph.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "omopgraph_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "omopgraph_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "omopgraph_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	TraversalDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "omopgraph_traversal_duration_seconds",
			Help:    "Traversal plus assembly duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"policy"},
	)

	TraversalSteps = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "omopgraph_traversal_steps",
			Help:    "Steps emitted per successful traversal",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
		[]string{"policy"},
	)

	StoreQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "omopgraph_store_queries_total",
			Help: "Relationship store reads by outcome",
		},
		[]string{"outcome"},
	)

	StoreQueryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "omopgraph_store_query_duration_seconds",
			Help:    "Relationship store read duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	DBPoolAcquired = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "omopgraph_db_pool_acquired_conns",
			Help: "Store connections currently in use",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		TraversalDuration, TraversalSteps,
		StoreQueriesTotal, StoreQueryDuration,
		DBPoolAcquired,
	)
}
