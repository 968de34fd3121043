// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/net/http/httpguts"

	"github.com/tomtom215/shelfmark/internal/epub"
	"github.com/tomtom215/shelfmark/internal/logging"
)

var errInvalidHeaderValue = errors.New("invalid header value")

// errorResponse is the envelope for every failure body.
type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes v as JSON with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError writes the {"error": message} envelope.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondServiceError writes a ServiceError with its status and fixed message.
func respondServiceError(ctx context.Context, w http.ResponseWriter, se ServiceError) {
	logging.Ctx(ctx).Info().
		Str("error_kind", se.Kind.String()).
		Int("status", se.Status()).
		Msg("Request failed")
	respondError(w, se.Status(), se.Message())
}

// percentEncode escapes every byte outside [A-Za-z0-9] as %XX with uppercase hex.
func percentEncode(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z') || ('0' <= c && c <= '9') {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

// contentDisposition builds the attachment header for filename, carrying
// both the plain and the RFC 5987 encoded form.
func contentDisposition(filename string) (string, error) {
	quoted := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(filename)
	value := `attachment; filename="` + quoted + `"; filename*=UTF-8''` + percentEncode(filename)
	if !httpguts.ValidHeaderFieldValue(value) {
		return "", errInvalidHeaderValue
	}
	return value, nil
}

// writeEPUB sends the archive as an attachment named after title.
// It returns an EpubGenerationFailed ServiceError, without writing
// anything, when the headers cannot be built.
func writeEPUB(w http.ResponseWriter, title string, data []byte) *ServiceError {
	disposition, err := contentDisposition(title + ".epub")
	if err != nil {
		return &ServiceError{Kind: EpubGenerationFailed}
	}

	h := w.Header()
	h.Set("Content-Type", epub.MediaType)
	h.Set("Content-Length", strconv.Itoa(len(data)))
	h.Set("Content-Disposition", disposition)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logging.Debug().Err(err).Msg("Client went away while receiving EPUB")
	}
	return nil
}
