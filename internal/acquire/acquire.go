// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

// Package acquire defines the contract between the HTTP layer and an
// acquisition engine: the component that fetches a story and packages it as
// an EPUB. Engines report failures through the closed Kind taxonomy so the
// caller can translate them without inspecting error strings.
package acquire

import (
	"context"
	"net/http"
)

// Result is a packaged story.
type Result struct {
	// EPUB is the complete .epub archive.
	EPUB []byte

	// SanitizedTitle is safe to use as a file name stem.
	SanitizedTitle string
}

// ProgressFunc is called after each chapter finishes; done counts up to total.
// Implementations must be safe to call from multiple goroutines.
type ProgressFunc func(done, total int)

// Engine fetches and packages one story using the supplied client, which
// carries the caller's session cookies. concurrency bounds parallel chapter
// and image fetches. progress may be nil.
//
// On failure Engine returns an *Error; any other error type is treated by
// callers as an unrecognised failure.
type Engine interface {
	Acquire(ctx context.Context, client *http.Client, storyID uint64, embedImages bool, concurrency int, progress ProgressFunc) (*Result, error)
}

// EngineFunc adapts a function to Engine.
type EngineFunc func(ctx context.Context, client *http.Client, storyID uint64, embedImages bool, concurrency int, progress ProgressFunc) (*Result, error)

// Acquire calls f.
func (f EngineFunc) Acquire(ctx context.Context, client *http.Client, storyID uint64, embedImages bool, concurrency int, progress ProgressFunc) (*Result, error) {
	return f(ctx, client, storyID, embedImages, concurrency, progress)
}
