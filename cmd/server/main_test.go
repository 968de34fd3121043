// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/shelfmark/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:                "127.0.0.1",
			Port:                18080,
			ReadTimeout:         5 * time.Second,
			WriteTimeout:        time.Minute,
			ShutdownTimeout:     5 * time.Second,
			MaxRequestBodyBytes: 1 << 20,
		},
		Wattpad: config.WattpadConfig{
			BaseURL:        "https://www.wattpad.com",
			CookieDomain:   "wattpad.com",
			UserAgent:      config.DefaultUserAgent,
			RequestTimeout: 10 * time.Second,
		},
		Security: config.SecurityConfig{CORSOrigins: []string{"*"}},
		Metrics:  config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

func TestBuildServer(t *testing.T) {
	server, handler, err := buildServer(testConfig())
	if err != nil {
		t.Fatalf("buildServer() error = %v", err)
	}
	if server.Addr != "127.0.0.1:18080" {
		t.Errorf("Addr = %q", server.Addr)
	}
	if server.WriteTimeout != time.Minute {
		t.Errorf("WriteTimeout = %v", server.WriteTimeout)
	}

	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("ready status = %d, want 200", rec.Code)
	}

	handler.SetReady(false)
	rec = httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("draining status = %d, want 503", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/generate-epub", strings.NewReader(`{`))
	server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", rec.Code)
	}
}

func TestBuildServerRejectsBadBaseURL(t *testing.T) {
	cfg := testConfig()
	cfg.Wattpad.BaseURL = "not a url"
	if _, _, err := buildServer(cfg); err == nil {
		t.Error("expected error for invalid base URL")
	}
}
