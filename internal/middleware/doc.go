// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

// Package middleware provides HTTP middleware shared by the Shelfmark router:
// request ID propagation into the logging context and Prometheus request
// instrumentation.
//
// Middleware follows the chi signature func(http.Handler) http.Handler:
//
//	r := chi.NewRouter()
//	r.Use(middleware.RequestIDWithLogging())
//	r.Use(middleware.PrometheusMetrics)
package middleware
