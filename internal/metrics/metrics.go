// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

// Package metrics provides Prometheus instrumentation for AccessLens:
// engine run throughput and latency, per-detector evaluation time, flag
// production counts, and event store operations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Engine Metrics
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "accesslens_runs_total",
			Help: "Total number of feature derivation runs by outcome",
		},
		[]string{"status"}, // "ok", "error"
	)

	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "accesslens_run_duration_seconds",
			Help:    "Duration of complete feature derivation runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	EventsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "accesslens_events_processed_total",
			Help: "Total number of access events consumed by runs",
		},
	)

	// Detector Metrics
	DetectorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "accesslens_detector_duration_seconds",
			Help:    "Duration of individual detector evaluations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"detector"},
	)

	FlagsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "accesslens_flags_emitted_total",
			Help: "Total number of true flags emitted per detector signal",
		},
		[]string{"detector"},
	)

	// Event Store Metrics
	StoreQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "accesslens_store_query_duration_seconds",
			Help:    "Duration of DuckDB event store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "list_events", "insert_events", "count"
	)

	StoreQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "accesslens_store_query_errors_total",
			Help: "Total number of DuckDB event store errors",
		},
		[]string{"operation"},
	)
)

// TrackStoreQuery records the duration of a store operation. Use with defer:
//
//	defer metrics.TrackStoreQuery("list_events")()
func TrackStoreQuery(operation string) func() {
	start := time.Now()
	return func() {
		StoreQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

// TrackDetector records the duration of one detector evaluation.
func TrackDetector(detector string) func() {
	start := time.Now()
	return func() {
		DetectorDuration.WithLabelValues(detector).Observe(time.Since(start).Seconds())
	}
}
