// Package metrics declares the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CatalogQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_queries_total",
			Help: "Total number of catalog queries by sort key and entry point",
		},
		[]string{"sort", "source"},
	)

	CatalogQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_query_duration_seconds",
			Help:    "Time spent in filter, sort and paginate",
			Buckets: []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01},
		},
		[]string{"source"},
	)

	CatalogResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_query_results",
			Help:    "Number of records matching a query before pagination",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	LiveSearchDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "live_search_deliveries_total",
			Help: "Live search results sent to clients, by outcome",
		},
		[]string{"outcome"},
	)

	BrowseSessions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "browse_session_operations_total",
			Help: "Browse session operations by kind",
		},
		[]string{"op"},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_events_published_total",
			Help: "Search events handed to the broker, by outcome",
		},
		[]string{"outcome"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status code",
		},
		[]string{"method", "route", "code"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP request latency by route",
		},
		[]string{"method", "route"},
	)
)
