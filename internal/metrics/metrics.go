// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Session label values.
const (
	SessionAnonymous     = "anonymous"
	SessionAuthenticated = "authenticated"
)

// ResultSuccess is the result label for a delivered EPUB.
const ResultSuccess = "success"

var (
	// API Endpoint Metrics
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
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Conversion Metrics
	EPUBGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "epub_generations_total",
			Help: "Total number of EPUB generation attempts by session kind and result",
		},
		[]string{"session", "result"},
	)

	EPUBAcquisitionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "epub_acquisition_duration_seconds",
			Help:    "Time spent acquiring and packaging a story",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"session"},
	)

	EPUBSizeBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "epub_size_bytes",
			Help:    "Size of delivered EPUB files in bytes",
			Buckets: prometheus.ExponentialBuckets(16*1024, 4, 8), // 16KiB .. 256MiB
		},
	)

	CredentialsDiscarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_credentials_discarded_total",
			Help: "Caller-supplied cookies dropped by the site domain filter",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordEPUBGeneration records the outcome of one conversion.
// result is ResultSuccess or the service error kind; size is ignored on failure.
func RecordEPUBGeneration(session, result string, duration time.Duration, size int) {
	EPUBGenerationsTotal.WithLabelValues(session, result).Inc()
	EPUBAcquisitionDuration.WithLabelValues(session).Observe(duration.Seconds())
	if result == ResultSuccess {
		EPUBSizeBytes.Observe(float64(size))
	}
}

// RecordCredentialsDiscarded counts cookies rejected by the domain filter.
func RecordCredentialsDiscarded(n int) {
	if n > 0 {
		CredentialsDiscarded.Add(float64(n))
	}
}

// SessionLabel maps the authenticated flag to a session label value.
func SessionLabel(authenticated bool) string {
	if authenticated {
		return SessionAuthenticated
	}
	return SessionAnonymous
}
