// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tomtom215/shelfmark/internal/acquire"
	"github.com/tomtom215/shelfmark/internal/logging"
)

// ServiceErrorKind enumerates the failures the service reports to callers.
type ServiceErrorKind int

const (
	AuthenticationFailed ServiceErrorKind = iota + 1
	NotLoggedIn
	LogoutFailed
	StoryNotFound
	MetadataFetchFailed
	DownloadFailed
	ChapterProcessingFailed
	EpubGenerationFailed
	IoError
)

type serviceErrorSpec struct {
	status  int
	message string
	label   string
}

// serviceErrors is the wire table: one status and one fixed message per kind.
var serviceErrors = map[ServiceErrorKind]serviceErrorSpec{
	AuthenticationFailed:    {http.StatusUnauthorized, "Authentication failed, please check your credentials", "authentication_failed"},
	NotLoggedIn:             {http.StatusUnauthorized, "You must be logged in to access this content", "not_logged_in"},
	LogoutFailed:            {http.StatusInternalServerError, "Logout failed", "logout_failed"},
	StoryNotFound:           {http.StatusNotFound, "Story with ID %d could not be found", "story_not_found"},
	MetadataFetchFailed:     {http.StatusBadGateway, "Failed to fetch story metadata", "metadata_fetch_failed"},
	DownloadFailed:          {http.StatusBadGateway, "Failed to download story content", "download_failed"},
	ChapterProcessingFailed: {http.StatusInternalServerError, "Failed to process chapter content", "chapter_processing_failed"},
	EpubGenerationFailed:    {http.StatusInternalServerError, "Failed to generate EPUB file", "epub_generation_failed"},
	IoError:                 {http.StatusInternalServerError, "An internal I/O error occurred", "io_error"},
}

// String returns the snake_case label used in logs and metrics.
func (k ServiceErrorKind) String() string {
	if spec, ok := serviceErrors[k]; ok {
		return spec.label
	}
	return fmt.Sprintf("service_error(%d)", int(k))
}

// ServiceError is a failure ready to be written to the caller.
type ServiceError struct {
	Kind ServiceErrorKind

	// StoryID is set for StoryNotFound.
	StoryID uint64
}

// Status returns the HTTP status for the error.
func (e ServiceError) Status() int {
	if spec, ok := serviceErrors[e.Kind]; ok {
		return spec.status
	}
	return http.StatusInternalServerError
}

// Message returns the caller-facing message.
func (e ServiceError) Message() string {
	spec, ok := serviceErrors[e.Kind]
	if !ok {
		return serviceErrors[IoError].message
	}
	if e.Kind == StoryNotFound {
		return fmt.Sprintf(spec.message, e.StoryID)
	}
	return spec.message
}

// Error implements error.
func (e ServiceError) Error() string {
	return e.Message()
}

// acquireKinds maps engine kinds that have a same-named service kind.
var acquireKinds = map[acquire.Kind]ServiceErrorKind{
	acquire.KindAuthenticationFailed:    AuthenticationFailed,
	acquire.KindNotLoggedIn:             NotLoggedIn,
	acquire.KindLogoutFailed:            LogoutFailed,
	acquire.KindStoryNotFound:           StoryNotFound,
	acquire.KindMetadataFetchFailed:     MetadataFetchFailed,
	acquire.KindDownloadFailed:          DownloadFailed,
	acquire.KindChapterProcessingFailed: ChapterProcessingFailed,
	acquire.KindEpubGenerationFailed:    EpubGenerationFailed,
}

// TranslateError maps an engine failure onto a ServiceError.
//
// Known engine kinds map one to one, keeping the story ID. The engine's I/O
// kind and any other unlisted kind become DownloadFailed. An error that is
// not an *acquire.Error at all also becomes DownloadFailed and is logged as a
// warning with the original error.
func TranslateError(ctx context.Context, err error) ServiceError {
	ae, ok := acquire.AsError(err)
	if !ok {
		logging.Ctx(ctx).Warn().Err(err).Msg("Unhandled error type")
		return ServiceError{Kind: DownloadFailed}
	}

	kind, known := acquireKinds[ae.Kind]
	if !known {
		logging.Ctx(ctx).Debug().Err(err).Str("kind", ae.Kind.String()).Msg("Downgrading engine error to download failure")
		return ServiceError{Kind: DownloadFailed}
	}

	se := ServiceError{Kind: kind}
	if kind == StoryNotFound {
		se.StoryID = ae.StoryID
	}
	return se
}
