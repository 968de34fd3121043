// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

/*
Package config provides layered configuration for Shelfmark.

Configuration is resolved with Koanf v2 in four layers, later layers winning:

 1. Struct defaults (defaultConfig)
 2. A .env file in the working directory, loaded into the process environment
    with godotenv (existing variables are never overwritten)
 3. An optional YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml,
    /etc/shelfmark/config.yaml, /etc/shelfmark/config.yml
 4. Environment variables, mapped explicitly to config paths

Environment Variables:

	HTTP_HOST                Listen address (default: 0.0.0.0)
	HTTP_PORT                Listen port (default: 8080)
	HTTP_READ_TIMEOUT        Server read timeout (default: 15s)
	HTTP_WRITE_TIMEOUT       Server write timeout (default: 5m)
	HTTP_SHUTDOWN_TIMEOUT    Graceful shutdown budget (default: 30s)
	MAX_REQUEST_BODY_BYTES   Request body cap (default: 1048576)
	ENVIRONMENT              development, staging, production
	WATTPAD_BASE_URL         Site origin (default: https://www.wattpad.com)
	WATTPAD_COOKIE_DOMAIN    Substring a cookie domain must contain (default: wattpad.com)
	WATTPAD_USER_AGENT       Outbound User-Agent header
	WATTPAD_REQUEST_TIMEOUT  Per outbound request timeout (default: 30s)
	CORS_ORIGINS             Comma-separated allowed origins (default: *)
	METRICS_ENABLED          Expose /metrics (default: true)
	LOG_LEVEL                trace, debug, info, warn, error (default: info)
	LOG_FORMAT               json, console (default: json)
	LOG_CALLER               Include caller info (default: false)

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config
