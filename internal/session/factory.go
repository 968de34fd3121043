// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package session

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/tomtom215/shelfmark/internal/logging"
)

// ErrInvalidBaseURL is returned by NewFactory when BaseURL is not an absolute http(s) origin.
var ErrInvalidBaseURL = errors.New("session: invalid base URL")

// Config configures the session factory.
type Config struct {
	// BaseURL is the site origin admitted cookies are scoped to.
	BaseURL string

	// CookieDomain is the substring a cookie's domain must contain to be admitted.
	CookieDomain string

	// UserAgent is sent on every outbound request from every session.
	UserAgent string

	// RequestTimeout bounds each outbound request. Zero means no client timeout.
	RequestTimeout time.Duration

	// Transport overrides the shared transport. Nil builds a tuned http.Transport.
	Transport http.RoundTripper
}

// Factory hands out the shared anonymous session and builds credentialed ones.
// It is safe for concurrent use.
type Factory struct {
	baseURL      *url.URL
	cookieDomain string
	timeout      time.Duration
	transport    http.RoundTripper
	anonymous    *Session
}

// NewFactory validates cfg, builds the shared transport and the anonymous session.
// It is called once at startup; an error here is a configuration error.
func NewFactory(cfg Config) (*Factory, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, cfg.BaseURL)
	}
	if cfg.CookieDomain == "" {
		return nil, errors.New("session: cookie domain is required")
	}
	if cfg.UserAgent == "" {
		return nil, errors.New("session: user agent is required")
	}

	transport := cfg.Transport
	if transport == nil {
		transport = newTransport()
	}

	f := &Factory{
		baseURL:      base,
		cookieDomain: cfg.CookieDomain,
		timeout:      cfg.RequestTimeout,
		transport:    &userAgentTransport{base: transport, userAgent: cfg.UserAgent},
	}

	jar, err := newJar()
	if err != nil {
		return nil, fmt.Errorf("session: anonymous cookie jar: %w", err)
	}
	f.anonymous = &Session{
		client: f.newClient(jar),
		jar:    jar,
	}

	return f, nil
}

// newTransport returns the pooled transport shared by every session.
func newTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		TLSHandshakeTimeout:   10 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
}

func newJar() (*cookiejar.Jar, error) {
	return cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
}

func (f *Factory) newClient(jar http.CookieJar) *http.Client {
	return &http.Client{
		Transport: f.transport,
		Jar:       jar,
		Timeout:   f.timeout,
	}
}

// BaseURL returns the site origin as a string.
func (f *Factory) BaseURL() string {
	return f.baseURL.String()
}

// Anonymous returns the process-wide anonymous session. Every call returns
// the same pointer.
func (f *Factory) Anonymous() *Session {
	return f.anonymous
}

// Admits reports whether a cookie with this domain is accepted.
// This is a substring test, not a suffix match.
func (f *Factory) Admits(domain string) bool {
	return strings.Contains(domain, f.cookieDomain)
}

// ForRequest selects the session for one request: the anonymous session when
// creds is empty, otherwise a new credentialed session.
func (f *Factory) ForRequest(creds []Credential) (*Session, error) {
	if len(creds) == 0 {
		return f.anonymous, nil
	}
	return f.ForCredentials(creds)
}

// ForCredentials builds a request-scoped session with a fresh jar holding the
// admitted cookies. Cookies failing the domain filter, or that do not parse as
// name=value, are dropped without error. A non-empty creds slice always yields
// a new session, even if nothing was admitted.
func (f *Factory) ForCredentials(creds []Credential) (*Session, error) {
	jar, err := newJar()
	if err != nil {
		return nil, fmt.Errorf("session: cookie jar: %w", err)
	}

	cookies := make([]*http.Cookie, 0, len(creds))
	for i := range creds {
		c := &creds[i]
		if !f.Admits(c.Domain) {
			continue
		}
		parsed, err := http.ParseSetCookie(c.Name + "=" + c.Value)
		if err != nil {
			continue
		}
		cookies = append(cookies, &http.Cookie{Name: parsed.Name, Value: parsed.Value, Path: "/"})
	}
	if len(cookies) > 0 {
		jar.SetCookies(f.baseURL, cookies)
	}

	s := &Session{
		client:        f.newClient(jar),
		jar:           jar,
		authenticated: true,
		admitted:      len(cookies),
		discarded:     len(creds) - len(cookies),
	}

	logging.Debug().
		Int("admitted", s.admitted).
		Int("discarded", s.discarded).
		Msg("Built credentialed session")

	return s, nil
}
