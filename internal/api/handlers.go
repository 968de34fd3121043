// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package api

import (
	"sync/atomic"
	"time"

	"github.com/tomtom215/shelfmark/internal/acquire"
	"github.com/tomtom215/shelfmark/internal/session"
)

// ChapterConcurrency bounds parallel chapter and image fetches per request.
const ChapterConcurrency = 10

// DefaultMaxBodyBytes caps the request body when the handler is built without a limit.
const DefaultMaxBodyBytes int64 = 1 << 20

// SessionSource hands out the outbound session for one request.
// *session.Factory satisfies it.
type SessionSource interface {
	ForRequest(creds []session.Credential) (*session.Session, error)
}

// Handler holds the dependencies of the HTTP endpoints.
type Handler struct {
	sessions     SessionSource
	engine       acquire.Engine
	maxBodyBytes int64
	startTime    time.Time
	ready        atomic.Bool
}

// NewHandler builds a Handler. A non-positive maxBodyBytes selects DefaultMaxBodyBytes.
// The handler starts ready; SetReady(false) drains it during shutdown.
func NewHandler(sessions SessionSource, engine acquire.Engine, maxBodyBytes int64) *Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	h := &Handler{
		sessions:     sessions,
		engine:       engine,
		maxBodyBytes: maxBodyBytes,
		startTime:    time.Now(),
	}
	h.ready.Store(true)
	return h
}

// SetReady flips the readiness probe.
func (h *Handler) SetReady(ready bool) {
	h.ready.Store(ready)
}
