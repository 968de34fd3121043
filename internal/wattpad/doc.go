// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

/*
Package wattpad implements acquire.Engine against the Wattpad web API.

An acquisition runs in four steps:

 1. Story metadata: GET /api/v3/stories/{id}?fields=...
 2. Chapter text: GET /apiv2/?m=storytext&id={partId} for every part,
    fetched concurrently up to the caller's limit, reassembled in order
 3. Chapter HTML is parsed with golang.org/x/net/html, reduced to a safe
    XHTML subset and, when requested, its images are downloaded and embedded
 4. The book is packaged with internal/epub

All requests go through the *http.Client handed in by the caller, so
session cookies (and the shared User-Agent) apply to every call.

Status mapping for the metadata request:

	400, 404  StoryNotFound
	401       AuthenticationFailed
	403       NotLoggedIn
	other     MetadataFetchFailed

Chapter requests map 401/403 the same way and everything else to
DownloadFailed. Image and cover failures never fail the book.
*/
package wattpad
