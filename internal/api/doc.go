// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

/*
Package api provides the HTTP surface of Shelfmark using the Chi router.

Endpoints:

	POST /generate-epub   convert a story to EPUB
	GET  /health/live     liveness probe
	GET  /health/ready    readiness probe
	GET  /metrics         Prometheus metrics (when enabled)

A conversion request looks like:

	{
	  "storyId": 42,
	  "isEmbedImages": false,
	  "cookies": [{"name": "token", "value": "...", "domain": ".wattpad.com"}]
	}

Without cookies the shared anonymous session is used. With cookies a
request-scoped session is built whose jar holds only the cookies for the
story site. The acquisition engine's error kinds are translated into a
ServiceError, which fixes both the HTTP status and the message:

	AuthenticationFailed     401
	NotLoggedIn              401
	LogoutFailed             500
	StoryNotFound            404
	MetadataFetchFailed      502
	DownloadFailed           502
	ChapterProcessingFailed  500
	EpubGenerationFailed     500
	IoError                  500

Every error body is {"error": "<message>"}. Internal error detail is logged,
never returned.
*/
package api
