// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package api

import (
	"net/http"
	"time"
)

// healthResponse is the probe body.
type healthResponse struct {
	Status    string    `json:"status"`
	Uptime    float64   `json:"uptime_seconds"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthLive handles liveness probes. It reports 200 while the process serves HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{
		Status:    "alive",
		Uptime:    time.Since(h.startTime).Seconds(),
		Timestamp: time.Now().UTC(),
	})
}

// HealthReady handles readiness probes.
// Returns 503 once the handler has been marked not ready (during shutdown).
func (h *Handler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{
		Status:    "ready",
		Uptime:    time.Since(h.startTime).Seconds(),
		Timestamp: time.Now().UTC(),
	}
	status := http.StatusOK
	if !h.ready.Load() {
		resp.Status = "not_ready"
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, resp)
}
