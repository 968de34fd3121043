// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/shelfmark/internal/session"
	"github.com/tomtom215/shelfmark/internal/validation"
)


// GenerateEPUBRequest is the body of POST /generate-epub.
// Pointers distinguish a missing field from its zero value.
type GenerateEPUBRequest struct {
	StoryID       *uint64         `json:"storyId" validate:"required"`
	IsEmbedImages *bool           `json:"isEmbedImages" validate:"required"`
	Cookies       []CookieRequest `json:"cookies,omitempty" validate:"omitempty,max=100,dive"`
}

// CookieRequest is one caller-supplied cookie.
type CookieRequest struct {
	Name   *string `json:"name" validate:"required"`
	Value  *string `json:"value" validate:"required"`
	Domain *string `json:"domain" validate:"required"`
}

// Credentials converts the cookie list for the session factory.
func (r *GenerateEPUBRequest) Credentials() []session.Credential {
	if len(r.Cookies) == 0 {
		return nil
	}
	creds := make([]session.Credential, 0, len(r.Cookies))
	for _, c := range r.Cookies {
		creds = append(creds, session.Credential{Name: *c.Name, Value: *c.Value, Domain: *c.Domain})
	}
	return creds
}

// requestError is a rejected request body, written with its own status.
type requestError struct {
	status  int
	message string
	err     error
}

func (e *requestError) Error() string { return e.message }
func (e *requestError) Unwrap() error { return e.err }

// decodeGenerateRequest reads and validates the request body.
//
// The body is read through http.MaxBytesReader (413 when exceeded), checked
// for JSON syntax (400), then decoded into the typed request (422 for type
// mismatches) and validated (422 for missing fields). Unknown fields are ignored.
func decodeGenerateRequest(w http.ResponseWriter, r *http.Request, limit int64) (*GenerateEPUBRequest, *requestError) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &requestError{status: http.StatusRequestEntityTooLarge, message: "Request body too large", err: err}
		}
		return nil, &requestError{status: http.StatusBadRequest, message: "Failed to read request body", err: err}
	}

	if !json.Valid(body) {
		return nil, &requestError{status: http.StatusBadRequest, message: "Request body is not valid JSON"}
	}

	var req GenerateEPUBRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, &requestError{status: http.StatusUnprocessableEntity, message: "Request body has the wrong shape", err: err}
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
		return nil, &requestError{status: http.StatusUnprocessableEntity, message: verr.Error(), err: verr}
	}
	return &req, nil
}
