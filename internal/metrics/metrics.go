// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

// Package metrics defines the Prometheus collectors exported on /metrics.
// Collectors are registered with the default registry at package init.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "challengerec_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "challengerec_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "challengerec_api_active_requests",
			Help: "Requests currently being served",
		},
	)

	// Recommendation metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "challengerec_recommend_requests_total",
			Help: "Recommendation requests by outcome (cache, computed, error)",
		},
		[]string{"source"},
	)

	// Cache metrics
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "challengerec_cache_lookups_total",
			Help: "Cache lookups by backend and result (hit, miss)",
		},
		[]string{"backend", "result"},
	)

	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "challengerec_cache_errors_total",
			Help: "Cache backend errors by operation",
		},
		[]string{"backend", "operation"},
	)

	// Refresh metrics
	RefreshRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "challengerec_refresh_runs_total",
			Help: "Refresh cycles by status",
		},
		[]string{"status"},
	)

	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "challengerec_refresh_duration_seconds",
			Help:    "Duration of refresh cycles",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 300, 900},
		},
	)

	GraphUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "challengerec_graph_users",
			Help: "Users in the current similarity graph",
		},
	)

	GraphEdges = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "challengerec_graph_edges",
			Help: "Directed edges in the current similarity graph",
		},
	)

	GraphVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "challengerec_graph_version",
			Help: "Version of the similarity graph currently served",
		},
	)

	// Upstream metrics
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "challengerec_upstream_requests_total",
			Help: "Requests to the challenge service by endpoint and status",
		},
		[]string{"endpoint", "status"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "challengerec_upstream_request_duration_seconds",
			Help:    "Latency of challenge service requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "challengerec_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "challengerec_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	UnknownCategories = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "challengerec_unknown_categories_total",
			Help: "Upstream actions whose category was not recognized and was mapped to ETC",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCacheLookup counts a hit or miss for backend.
func RecordCacheLookup(backend string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(backend, result).Inc()
}

func RecordCacheError(backend, operation string) {
	CacheErrors.WithLabelValues(backend, operation).Inc()
}

// RecordRefresh records one refresh cycle outcome.
func RecordRefresh(status string, duration time.Duration) {
	RefreshRuns.WithLabelValues(status).Inc()
	RefreshDuration.Observe(duration.Seconds())
}

func RecordUpstreamRequest(endpoint, status string, duration time.Duration) {
	UpstreamRequests.WithLabelValues(endpoint, status).Inc()
	UpstreamDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}
