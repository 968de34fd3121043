// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide (it caches struct metadata
// and is safe for concurrent use). Field names in messages follow the json tag,
// so a missing storyId is reported as "storyId is required".
//
//	type GenerateEPUBRequest struct {
//	    StoryID       *uint64 `json:"storyId" validate:"required"`
//	    IsEmbedImages *bool   `json:"isEmbedImages" validate:"required"`
//	}
package validation
