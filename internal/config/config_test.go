// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.MaxRequestBodyBytes != 1<<20 {
		t.Errorf("Server.MaxRequestBodyBytes = %d, want 1MiB", cfg.Server.MaxRequestBodyBytes)
	}
	if cfg.Wattpad.BaseURL != "https://www.wattpad.com" {
		t.Errorf("Wattpad.BaseURL = %q, want https://www.wattpad.com", cfg.Wattpad.BaseURL)
	}
	if cfg.Wattpad.CookieDomain != "wattpad.com" {
		t.Errorf("Wattpad.CookieDomain = %q, want wattpad.com", cfg.Wattpad.CookieDomain)
	}
	if cfg.Wattpad.UserAgent != DefaultUserAgent {
		t.Errorf("Wattpad.UserAgent = %q, want default", cfg.Wattpad.UserAgent)
	}
	if cfg.Wattpad.RequestTimeout != 30*time.Second {
		t.Errorf("Wattpad.RequestTimeout = %v, want 30s", cfg.Wattpad.RequestTimeout)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestServerConfig_Addr(t *testing.T) {
	t.Parallel()

	s := ServerConfig{Host: "127.0.0.1", Port: 9000}
	if got := s.Addr(); got != "127.0.0.1:9000" {
		t.Errorf("Addr() = %q, want 127.0.0.1:9000", got)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"port too low", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "HTTP_PORT"},
		{"zero write timeout", func(c *Config) { c.Server.WriteTimeout = 0 }, "HTTP_WRITE_TIMEOUT"},
		{"zero body limit", func(c *Config) { c.Server.MaxRequestBodyBytes = 0 }, "MAX_REQUEST_BODY_BYTES"},
		{"bad environment", func(c *Config) { c.Server.Environment = "prod" }, "ENVIRONMENT"},
		{"ftp base url", func(c *Config) { c.Wattpad.BaseURL = "ftp://www.wattpad.com" }, "WATTPAD_BASE_URL"},
		{"base url with path", func(c *Config) { c.Wattpad.BaseURL = "https://www.wattpad.com/story" }, "WATTPAD_BASE_URL"},
		{"empty cookie domain", func(c *Config) { c.Wattpad.CookieDomain = " " }, "WATTPAD_COOKIE_DOMAIN"},
		{"empty user agent", func(c *Config) { c.Wattpad.UserAgent = "" }, "WATTPAD_USER_AGENT"},
		{"zero request timeout", func(c *Config) { c.Wattpad.RequestTimeout = 0 }, "WATTPAD_REQUEST_TIMEOUT"},
		{"no cors origins", func(c *Config) { c.Security.CORSOrigins = nil }, "CORS_ORIGINS"},
		{"bad cors origin", func(c *Config) { c.Security.CORSOrigins = []string{"chrome-extension://abc"} }, "CORS_ORIGINS"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate_AcceptsExplicitOrigins(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Security.CORSOrigins = []string{"https://reader.example.com", "http://localhost:3000"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected explicit origins to validate, got %v", err)
	}
}
