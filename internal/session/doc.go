// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

/*
Package session builds the outbound HTTP clients used to talk to the story site.

There are two kinds of Session:

  - The anonymous session is built once by NewFactory and shared by every
    request that supplies no cookies. Its cookie jar keeps whatever the site
    sets (redirect cookies and the like) for the life of the process.
  - A credentialed session is built per request from caller-supplied cookies.
    It owns a fresh jar holding only the cookies whose domain contains the
    configured site domain substring, and is dropped when the request ends.

All sessions share one http.Transport, so TCP and TLS connections are pooled
while cookie jars never are.

	factory, err := session.NewFactory(session.Config{
	    BaseURL:      "https://www.wattpad.com",
	    CookieDomain: "wattpad.com",
	    UserAgent:    config.DefaultUserAgent,
	})
	sess, err := factory.ForRequest(creds)
	resp, err := sess.Client().Get(url)

The domain filter is a plain substring test: "wattpad.com.attacker.net"
passes. Admitted cookies are always scoped to BaseURL, never to the domain the
caller named, so a crafted domain cannot redirect where the cookie is sent.
*/
package session
