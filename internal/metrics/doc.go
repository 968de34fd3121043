// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

/*
Package metrics defines Shelfmark's Prometheus instrumentation.

All collectors are registered on the default registry through promauto and
exposed by the API router at /metrics (when METRICS_ENABLED=true).

API metrics:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests

Conversion metrics:
  - epub_generations_total{session,result}: session is "anonymous" or
    "authenticated", result is "success" or the service error kind
  - epub_acquisition_duration_seconds{session}
  - epub_size_bytes
  - session_credentials_discarded_total: caller cookies rejected by the
    domain filter

Endpoint labels use the chi route pattern, never the raw path, to keep label
cardinality bounded.
*/
package metrics
