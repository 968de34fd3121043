// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package wattpad

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/shelfmark/internal/acquire"
	"github.com/tomtom215/shelfmark/internal/epub"
	"github.com/tomtom215/shelfmark/internal/logging"
)

const (
	// DefaultConcurrency is used when the caller passes a non-positive limit.
	DefaultConcurrency = 10

	maxMetadataBytes = 4 << 20
	maxChapterBytes  = 16 << 20
	maxImageBytes    = 10 << 20
)

// Config configures the engine.
type Config struct {
	// BaseURL is the site origin, e.g. https://www.wattpad.com.
	BaseURL string

	// Now stamps dcterms:modified; defaults to time.Now.
	Now func() time.Time
}

// Engine fetches Wattpad stories and packages them as EPUB.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	base *url.URL
	now  func() time.Time
}

var _ acquire.Engine = (*Engine)(nil)

// New creates an Engine.
func New(cfg Config) (*Engine, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("wattpad: parse base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("wattpad: base URL must be absolute: %q", cfg.BaseURL)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{base: base, now: now}, nil
}

// Acquire implements acquire.Engine.
func (e *Engine) Acquire(ctx context.Context, client *http.Client, storyID uint64, embedImages bool, concurrency int, progress acquire.ProgressFunc) (*acquire.Result, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	log := logging.CtxWith(ctx).Str("component", "wattpad").Logger()

	story, err := e.fetchStory(ctx, client, storyID)
	if err != nil {
		return nil, err
	}
	parts := story.liveParts()
	log.Debug().
		Int("parts", len(parts)).
		Bool("embed_images", embedImages).
		Msg("Fetched story metadata")

	raw, err := e.fetchChapters(ctx, client, parts, concurrency, progress)
	if err != nil {
		return nil, err
	}

	docs := make([]*chapterDoc, len(raw))
	for i, body := range raw {
		doc, err := parseChapter(body)
		if err != nil {
			return nil, acquire.ChapterProcessingFailed(fmt.Errorf("part %d: %w", parts[i].ID, err))
		}
		docs[i] = doc
	}

	var resources []epub.Resource
	if embedImages {
		resources = e.embedImages(ctx, client, docs, concurrency)
	} else {
		for _, doc := range docs {
			doc.stripImages()
		}
	}

	chapters := make([]epub.Chapter, len(docs))
	for i, doc := range docs {
		body, err := doc.render()
		if err != nil {
			return nil, acquire.ChapterProcessingFailed(fmt.Errorf("part %d: %w", parts[i].ID, err))
		}
		chapters[i] = epub.Chapter{Title: parts[i].Title, Body: body}
	}

	book := &epub.Book{
		ID:          fmt.Sprintf("urn:wattpad:story:%d", storyID),
		Title:       story.Title,
		Author:      story.User.Name,
		Language:    story.languageCode(),
		Description: story.Description,
		Subjects:    story.Tags,
		Source:      e.storyPageURL(storyID),
		Modified:    e.now(),
		Cover:       e.fetchCover(ctx, client, story.Cover),
		Chapters:    chapters,
		Resources:   resources,
	}
	data, err := book.Bytes()
	if err != nil {
		return nil, acquire.EpubGenerationFailed(err)
	}

	return &acquire.Result{
		EPUB:           data,
		SanitizedTitle: SanitizeTitle(story.Title, storyID),
	}, nil
}

// fetchChapters downloads every part's HTML, preserving order.
func (e *Engine) fetchChapters(ctx context.Context, client *http.Client, parts []part, concurrency int, progress acquire.ProgressFunc) ([][]byte, error) {
	out := make([][]byte, len(parts))
	var done atomic.Int64
	total := len(parts)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := range parts {
		g.Go(func() error {
			body, err := e.fetchChapter(gctx, client, parts[i].ID)
			if err != nil {
				return err
			}
			out[i] = body
			n := done.Add(1)
			if progress != nil {
				progress(int(n), total)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Engine) fetchChapter(ctx context.Context, client *http.Client, partID uint64) ([]byte, error) {
	u := e.endpoint("/apiv2/", url.Values{
		"m":  {"storytext"},
		"id": {fmt.Sprint(partID)},
	})
	resp, err := get(ctx, client, u)
	if err != nil {
		return nil, acquire.DownloadFailed(fmt.Errorf("part %d: %w", partID, err))
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, acquire.AuthenticationFailed(fmt.Errorf("part %d: status %d", partID, resp.StatusCode))
	case resp.StatusCode == http.StatusForbidden:
		return nil, acquire.NotLoggedIn(fmt.Errorf("part %d: status %d", partID, resp.StatusCode))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, acquire.DownloadFailed(fmt.Errorf("part %d: status %d", partID, resp.StatusCode))
	}

	body, err := readLimited(resp.Body, maxChapterBytes)
	if err != nil {
		return nil, acquire.IO(fmt.Errorf("part %d: %w", partID, err))
	}
	return body, nil
}

// get issues a GET bound to ctx.
func get(ctx context.Context, client *http.Client, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return client.Do(req)
}

// errBodyTooLarge is returned by readLimited when the body exceeds the cap.
var errBodyTooLarge = errors.New("response body too large")

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errBodyTooLarge
	}
	return data, nil
}

func (e *Engine) endpoint(path string, query url.Values) string {
	u := *e.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = query.Encode()
	return u.String()
}

func (e *Engine) storyPageURL(storyID uint64) string {
	u := *e.base
	u.Path = fmt.Sprintf("%s/story/%d", strings.TrimRight(u.Path, "/"), storyID)
	return u.String()
}
