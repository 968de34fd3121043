// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

// Package services adapts Shelfmark components to suture's Serve(ctx) error
// lifecycle. HTTPServerService wraps an *http.Server, draining readiness and
// shutting down gracefully when its context is canceled.
package services
