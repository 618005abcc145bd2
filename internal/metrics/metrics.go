// Package metrics provides Prometheus metrics for the price checker.
// Scrape these at /metrics for Grafana dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricecheck_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pricecheck_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Batch Metrics
	BatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricecheck_batches_total",
			Help: "Total number of card list batches by final status",
		},
		[]string{"status"}, // "completed", "deadline_exceeded", "interrupted"
	)

	BatchesInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pricecheck_batches_in_flight",
			Help: "Number of batches currently being priced",
		},
	)

	BatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pricecheck_batch_duration_seconds",
			Help:    "Time taken to price a whole card list",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	CardsProcessedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pricecheck_cards_processed_total",
			Help: "Total number of cards whose store fan-out has completed",
		},
	)

	CardsNotFoundTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pricecheck_cards_not_found_total",
			Help: "Cards for which no retailer returned an offer",
		},
	)

	// Retailer Metrics
	SourceRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricecheck_source_requests_total",
			Help: "Retailer queries by outcome",
		},
		[]string{"source", "result"}, // result: "found", "not_found", "error"
	)

	SourceRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pricecheck_source_request_duration_seconds",
			Help:    "Retailer query latency, including rate limiter waits",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"source"},
	)

	ListingCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricecheck_listing_cache_lookups_total",
			Help: "Listing cache lookups by source and result",
		},
		[]string{"source", "result"}, // "hit", "miss"
	)
)
