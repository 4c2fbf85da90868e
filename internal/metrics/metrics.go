// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bonsaisite"

var (
	// HTTPRequestDuration observes request latency per route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route pattern",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// HTTPPanics counts handler panics turned into 500 responses.
	HTTPPanics = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "panics_total",
			Help:      "Recovered handler panics by route pattern",
		},
		[]string{"route"},
	)

	// RateLimited counts requests rejected with 429, per limiter.
	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by a rate limiter",
		},
		[]string{"limiter"},
	)

	// DocstoreCalls counts document store calls by outcome.
	DocstoreCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "docstore",
			Name:      "calls_total",
			Help:      "Document store calls by collection, operation and outcome",
		},
		[]string{"collection", "op", "outcome"},
	)

	// DocstoreDuration observes document store call latency.
	DocstoreDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "docstore",
			Name:      "call_duration_seconds",
			Help:      "Document store call latency",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"collection", "op"},
	)

	// BreakerState reports the circuit breaker state per collection
	// (0 closed, 1 half-open, 2 open).
	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "docstore",
			Name:      "breaker_state",
			Help:      "Circuit breaker state: 0 closed, 1 half-open, 2 open",
		},
		[]string{"collection"},
	)

	// SearchQueries counts site searches; outcome is "blank" or "ok".
	SearchQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "queries_total",
			Help:      "Site-wide searches by outcome",
		},
		[]string{"outcome"},
	)

	// SearchBucketFailures counts sub-searches that degraded to empty.
	SearchBucketFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "bucket_failures_total",
			Help:      "Sub-searches that failed and returned an empty bucket",
		},
		[]string{"bucket"},
	)

	// ForumWrites counts post and reply creation attempts.
	ForumWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "forum",
			Name:      "writes_total",
			Help:      "Forum writes by kind (post, reply) and outcome",
		},
		[]string{"kind", "outcome"},
	)
)
