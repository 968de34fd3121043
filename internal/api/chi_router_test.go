// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/shelfmark/internal/acquire"
)

func newTestRouter(t *testing.T, cfg RouterConfig) (http.Handler, *Handler) {
	t.Helper()
	f := newTestFactory(t, "https://www.wattpad.com")
	h := NewHandler(f, acquire.EngineFunc(nil), 0)
	return NewRouter(h, cfg), h
}

func TestHealthLive(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, RouterConfig{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "alive" {
		t.Errorf("status field = %q, want alive", resp.Status)
	}
}

func TestHealthReady(t *testing.T) {
	t.Parallel()

	router, h := newTestRouter(t, RouterConfig{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("ready status = %d, want 200", rec.Code)
	}

	h.SetReady(false)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("draining status = %d, want 503", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not_ready") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRouterRequestIDHeader(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, RouterConfig{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header not set")
	}
}

func TestRouterCORSPreflight(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, RouterConfig{CORSOrigins: []string{"*"}})
	req := httptest.NewRequest(http.MethodOptions, "/generate-epub", nil)
	req.Header.Set("Origin", "https://reader.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodPost) {
		t.Errorf("Access-Control-Allow-Methods = %q, want POST", got)
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, RouterConfig{MetricsEnabled: true, MetricsPath: "/metrics"})

	// One request first so the request counter has a sample.
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health/live", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("metrics output missing api_requests_total")
	}
}

func TestRouterMetricsDisabled(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, RouterConfig{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestRouterUnknownRouteAndMethod(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, RouterConfig{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown route status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/generate-epub", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /generate-epub status = %d, want 405", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error"`) {
		t.Errorf("body = %s, want error envelope", rec.Body.String())
	}
}
