// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// DefaultUserAgent is the identifying header sent on every outbound request,
// shared by the anonymous and the credentialed sessions.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/139.0.0.0 Safari/537.36"

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Wattpad  WattpadConfig  `koanf:"wattpad"`
	Security SecurityConfig `koanf:"security"`
	Metrics  MetricsConfig  `koanf:"metrics"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	// MaxRequestBodyBytes caps the JSON body of /generate-epub.
	MaxRequestBodyBytes int64  `koanf:"max_request_body_bytes"`
	Environment         string `koanf:"environment"` // development, staging, production
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// WattpadConfig holds settings for the outbound story site.
type WattpadConfig struct {
	// BaseURL is the canonical origin that credentials are scoped to.
	BaseURL string `koanf:"base_url"`

	// CookieDomain is the substring a caller-supplied cookie's domain must
	// contain to be admitted into a credentialed session.
	CookieDomain string `koanf:"cookie_domain"`

	UserAgent string `koanf:"user_agent"`

	// RequestTimeout bounds each outbound request, not the whole conversion.
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// SecurityConfig holds cross-origin settings
type SecurityConfig struct {
	CORSOrigins []string `koanf:"cors_origins"`
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// IsProduction reports whether ENVIRONMENT=production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// String returns a one-line summary safe for logging.
func (c *Config) String() string {
	return fmt.Sprintf("addr=%s env=%s base_url=%s cookie_domain=%s metrics=%t",
		c.Server.Addr(), c.Server.Environment, c.Wattpad.BaseURL, c.Wattpad.CookieDomain, c.Metrics.Enabled)
}
