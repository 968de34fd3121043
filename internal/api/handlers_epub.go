// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package api

import (
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tomtom215/shelfmark/internal/logging"
	"github.com/tomtom215/shelfmark/internal/metrics"
)

// GenerateEPUB handles POST /generate-epub.
//
// It selects the outbound session from the supplied cookies, runs one
// acquisition with ChapterConcurrency, and streams the EPUB back as an
// attachment. Engine failures go through TranslateError. There is no retry.
func (h *Handler) GenerateEPUB(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, rerr := decodeGenerateRequest(w, r, h.maxBodyBytes)
	if rerr != nil {
		logging.Ctx(ctx).Debug().Err(rerr.err).Int("status", rerr.status).Msg("Rejected request body")
		respondError(w, rerr.status, rerr.message)
		return
	}

	storyID := *req.StoryID
	embedImages := *req.IsEmbedImages
	ctx = logging.ContextWithStoryID(ctx, storyID)

	sess, err := h.sessions.ForRequest(req.Credentials())
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Failed to build outbound session")
		respondServiceError(ctx, w, ServiceError{Kind: DownloadFailed})
		return
	}
	metrics.RecordCredentialsDiscarded(sess.Discarded())
	sessionLabel := metrics.SessionLabel(sess.Authenticated())

	logging.Ctx(ctx).Info().
		Bool("embed_images", embedImages).
		Str("session", sessionLabel).
		Int("cookies_admitted", sess.Admitted()).
		Msg("Generating EPUB")

	start := time.Now()
	result, err := h.engine.Acquire(ctx, sess.Client(), storyID, embedImages, ChapterConcurrency, nil)
	if err != nil {
		se := TranslateError(ctx, err)
		metrics.RecordEPUBGeneration(sessionLabel, se.Kind.String(), time.Since(start), 0)
		logging.Ctx(ctx).Debug().Err(err).Msg("Acquisition failed")
		respondServiceError(ctx, w, se)
		return
	}

	if se := writeEPUB(w, result.SanitizedTitle, result.EPUB); se != nil {
		metrics.RecordEPUBGeneration(sessionLabel, se.Kind.String(), time.Since(start), 0)
		logging.Ctx(ctx).Error().
			Str("title", logging.SanitizeValue(result.SanitizedTitle)).
			Msg("EPUB file name is not a valid header value")
		respondServiceError(ctx, w, *se)
		return
	}

	elapsed := time.Since(start)
	metrics.RecordEPUBGeneration(sessionLabel, metrics.ResultSuccess, elapsed, len(result.EPUB))
	logging.Ctx(ctx).Info().
		Str("title", logging.SanitizeValue(result.SanitizedTitle)).
		Str("size", humanize.Bytes(uint64(len(result.EPUB)))).
		Dur("duration", elapsed).
		Msg("EPUB generated")
}
