// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

// Package metrics provides Prometheus instrumentation for Rewind:
// listener admission and backpressure, API latency and throughput,
// query engine timing, and upstream widget fetches.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Listener metrics
	ListenerActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "listener_active_connections",
			Help: "Current number of connections holding an admission permit",
		},
	)

	ListenerAcceptedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "listener_accepted_connections_total",
			Help: "Total number of accepted connections",
		},
	)

	ListenerAcceptRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "listener_accept_retries_total",
			Help: "Total number of accept failures retried with backoff",
		},
	)

	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// Query engine metrics
	QueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "history_query_duration_seconds",
			Help:    "Duration of history table queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Ingestion metrics, set once after startup aggregation
	HistoryRawEvents = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "history_raw_events",
			Help: "Number of raw watch events ingested from the export",
		},
	)

	HistoryDistinctItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "history_distinct_items",
			Help: "Number of distinct videos after deduplication",
		},
	)

	// Widget proxy metrics
	WidgetFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "widget_fetch_total",
			Help: "Total number of upstream widget script fetch attempts",
		},
		[]string{"result"}, // "success", "error", "throttled"
	)
)

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(active bool) {
	if active {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordQuery records one query engine execution.
func RecordQuery(duration time.Duration) {
	QueryDuration.Observe(duration.Seconds())
}

// RecordIngest publishes the aggregate counts of a completed ingestion.
func RecordIngest(rawEvents, distinctItems int) {
	HistoryRawEvents.Set(float64(rawEvents))
	HistoryDistinctItems.Set(float64(distinctItems))
}

// RecordWidgetFetch records one upstream widget fetch outcome.
func RecordWidgetFetch(result string) {
	WidgetFetchTotal.WithLabelValues(result).Inc()
}
