// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the suggestion engine:
// - external knowledge-base request volume and latency
// - circuit breaker state and trips per service
// - result cache efficiency
// - suggestion API latency and source mix

var (
	// External lookup metrics
	ExternalRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saporium_external_requests_total",
			Help: "Total number of external knowledge-base requests",
		},
		[]string{"service", "status"}, // status: success, failure, skipped
	)

	ExternalRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "saporium_external_request_duration_seconds",
			Help:    "Duration of external knowledge-base requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service"},
	)

	// Circuit breaker metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "saporium_circuit_breaker_state",
			Help: "Circuit breaker state per service (0 = closed, 1 = open)",
		},
		[]string{"service"},
	)

	CircuitBreakerFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saporium_circuit_breaker_failures_total",
			Help: "Total number of failures recorded against each service",
		},
		[]string{"service"},
	)

	CircuitBreakerTrips = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saporium_circuit_breaker_trips_total",
			Help: "Total number of times a circuit opened",
		},
		[]string{"service"},
	)

	// Result cache metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saporium_result_cache_hits_total",
			Help: "Total number of result cache hits",
		},
		[]string{"service"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saporium_result_cache_misses_total",
			Help: "Total number of result cache misses",
		},
		[]string{"service"},
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "saporium_result_cache_entries",
			Help: "Current number of entries in the result cache",
		},
	)

	// Suggestion engine metrics
	SuggestionRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saporium_suggestion_requests_total",
			Help: "Total number of suggestion requests by entity kind and result source",
		},
		[]string{"kind", "source"},
	)

	SuggestionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "saporium_suggestion_duration_seconds",
			Help:    "End-to-end suggestion request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"kind"},
	)

	// HTTP API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saporium_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "saporium_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Quota collaborator metrics
	QuotaNotifyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saporium_quota_notify_total",
			Help: "Total number of quota tracker notifications",
		},
		[]string{"service", "status"},
	)
)

// RecordExternalRequest records one external call outcome with its duration.
func RecordExternalRequest(service, status string, duration time.Duration) {
	ExternalRequestsTotal.WithLabelValues(service, status).Inc()
	ExternalRequestDuration.WithLabelValues(service).Observe(duration.Seconds())
}

// RecordAPIRequest records one API request outcome.
func RecordAPIRequest(method, path string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
