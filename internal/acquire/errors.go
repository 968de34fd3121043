// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package acquire

import (
	"errors"
	"fmt"
)

// Kind classifies an acquisition failure.
type Kind int

const (
	KindAuthenticationFailed Kind = iota + 1
	KindNotLoggedIn
	KindLogoutFailed
	KindStoryNotFound
	KindMetadataFetchFailed
	KindDownloadFailed
	KindChapterProcessingFailed
	KindEpubGenerationFailed
	// KindIO wraps a low-level I/O failure (reading a body, writing the archive).
	KindIO
)

var kindNames = map[Kind]string{
	KindAuthenticationFailed:    "authentication_failed",
	KindNotLoggedIn:             "not_logged_in",
	KindLogoutFailed:            "logout_failed",
	KindStoryNotFound:           "story_not_found",
	KindMetadataFetchFailed:     "metadata_fetch_failed",
	KindDownloadFailed:          "download_failed",
	KindChapterProcessingFailed: "chapter_processing_failed",
	KindEpubGenerationFailed:    "epub_generation_failed",
	KindIO:                      "io",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the failure type returned by engines.
type Error struct {
	Kind    Kind
	StoryID uint64
	Err     error
}

// Error implements error.
func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Kind == KindStoryNotFound {
		msg = fmt.Sprintf("%s: story %d", msg, e.StoryID)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by Kind, so errors.Is(err, &Error{Kind: KindNotLoggedIn}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// KindOf returns the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	if ae, ok := AsError(err); ok {
		return ae.Kind
	}
	return 0
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func AuthenticationFailed(err error) *Error    { return newError(KindAuthenticationFailed, err) }
func NotLoggedIn(err error) *Error             { return newError(KindNotLoggedIn, err) }
func LogoutFailed(err error) *Error            { return newError(KindLogoutFailed, err) }
func MetadataFetchFailed(err error) *Error     { return newError(KindMetadataFetchFailed, err) }
func DownloadFailed(err error) *Error          { return newError(KindDownloadFailed, err) }
func ChapterProcessingFailed(err error) *Error { return newError(KindChapterProcessingFailed, err) }
func EpubGenerationFailed(err error) *Error    { return newError(KindEpubGenerationFailed, err) }
func IO(err error) *Error                      { return newError(KindIO, err) }

// StoryNotFound reports that storyID does not exist or is not visible.
func StoryNotFound(storyID uint64) *Error {
	return &Error{Kind: KindStoryNotFound, StoryID: storyID}
}
