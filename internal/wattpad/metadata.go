// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package wattpad

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/shelfmark/internal/acquire"
)

// storyFields is the field selector sent to /api/v3/stories.
const storyFields = "title,description,cover,completed,mature,tags,language(id,name),user(name,username),parts(id,title,deleted)"

type story struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Cover       string   `json:"cover"`
	Completed   bool     `json:"completed"`
	Mature      bool     `json:"mature"`
	Tags        []string `json:"tags"`
	Language    language `json:"language"`
	User        author   `json:"user"`
	Parts       []part   `json:"parts"`
}

type language struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type author struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

type part struct {
	ID      uint64 `json:"id"`
	Title   string `json:"title"`
	Deleted bool   `json:"deleted"`
}

// liveParts returns the parts that have not been deleted, in story order.
func (s *story) liveParts() []part {
	out := make([]part, 0, len(s.Parts))
	for _, p := range s.Parts {
		if !p.Deleted {
			out = append(out, p)
		}
	}
	return out
}

// languageNames maps the site's language names to BCP 47 tags.
var languageNames = map[string]string{
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"indonesian": "id",
	"filipino":   "fil",
	"turkish":    "tr",
	"russian":    "ru",
	"arabic":     "ar",
	"vietnamese": "vi",
	"polish":     "pl",
	"dutch":      "nl",
}

// languageCode returns the book language, defaulting to English.
func (s *story) languageCode() string {
	if code, ok := languageNames[strings.ToLower(strings.TrimSpace(s.Language.Name))]; ok {
		return code
	}
	return "en"
}

func (e *Engine) fetchStory(ctx context.Context, client *http.Client, storyID uint64) (*story, error) {
	u := e.endpoint(fmt.Sprintf("/api/v3/stories/%d", storyID), url.Values{"fields": {storyFields}})

	resp, err := get(ctx, client, u)
	if err != nil {
		return nil, acquire.DownloadFailed(fmt.Errorf("story %d metadata: %w", storyID, err))
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusBadRequest:
		return nil, acquire.StoryNotFound(storyID)
	case http.StatusUnauthorized:
		return nil, acquire.AuthenticationFailed(fmt.Errorf("story %d metadata: status %d", storyID, resp.StatusCode))
	case http.StatusForbidden:
		return nil, acquire.NotLoggedIn(fmt.Errorf("story %d metadata: status %d", storyID, resp.StatusCode))
	default:
		return nil, acquire.MetadataFetchFailed(fmt.Errorf("story %d metadata: status %d", storyID, resp.StatusCode))
	}

	body, err := readLimited(resp.Body, maxMetadataBytes)
	if err != nil {
		return nil, acquire.IO(fmt.Errorf("story %d metadata: %w", storyID, err))
	}

	var s story
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, acquire.MetadataFetchFailed(fmt.Errorf("story %d metadata: decode: %w", storyID, err))
	}
	if strings.TrimSpace(s.Title) == "" {
		return nil, acquire.MetadataFetchFailed(fmt.Errorf("story %d metadata: missing title", storyID))
	}
	return &s, nil
}
