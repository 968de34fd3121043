// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

// Package main is the entry point for the Shelfmark server.
//
// Shelfmark converts Wattpad stories into EPUB files over HTTP. Callers POST
// a story ID, an image flag and optionally their Wattpad session cookies to
// /generate-epub and receive the .epub as an attachment.
//
// # Startup
//
//  1. Configuration: struct defaults, .env, config.yaml, environment (Koanf v2)
//  2. Logging: zerolog, JSON by default
//  3. Session factory: shared transport plus the anonymous session
//  4. Wattpad engine and API handler
//  5. Supervisor tree running the HTTP server
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the root context. Readiness turns 503, the server
// stops accepting connections, and in-flight conversions get
// HTTP_SHUTDOWN_TIMEOUT (default 30s) to finish.
//
// # Example Usage
//
//	export HTTP_PORT=8080
//	export LOG_FORMAT=console
//	./shelfmark
//
//	curl -o story.epub -X POST localhost:8080/generate-epub \
//	  -d '{"storyId": 123456, "isEmbedImages": true}'
package main
