// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package session

import (
	"net/http"
)

// Credential is one browser cookie supplied by the caller.
// It lives for a single request and is never persisted or logged.
type Credential struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Domain string `json:"domain"`
}

// Session is an outbound HTTP client plus its cookie jar.
type Session struct {
	client        *http.Client
	jar           http.CookieJar
	authenticated bool
	admitted      int
	discarded     int
}

// Client returns the HTTP client to hand to the acquisition engine.
func (s *Session) Client() *http.Client {
	return s.client
}

// Jar returns the session's cookie jar.
func (s *Session) Jar() http.CookieJar {
	return s.jar
}

// Authenticated reports whether this is a request-scoped credentialed session.
// It is true even when every supplied cookie was filtered out.
func (s *Session) Authenticated() bool {
	return s.authenticated
}

// Admitted returns how many caller cookies were placed in the jar.
func (s *Session) Admitted() int {
	return s.admitted
}

// Discarded returns how many caller cookies were dropped by the filter.
func (s *Session) Discarded() int {
	return s.discarded
}

// userAgentTransport stamps the identifying User-Agent on every outbound
// request, redirects included, unless the caller set one explicitly.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

// RoundTrip implements http.RoundTripper.
func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(clone)
}
