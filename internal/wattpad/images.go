// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package wattpad

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/shelfmark/internal/epub"
	"github.com/tomtom215/shelfmark/internal/logging"
)

// imageExtensions maps accepted image media types to file extensions.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type image struct {
	mediaType string
	data      []byte
}

// embedImages downloads every distinct image referenced by docs, rewrites
// <img src> to the in-book path and drops images that could not be fetched.
// Image failures are logged at debug level and never fail the book.
func (e *Engine) embedImages(ctx context.Context, client *http.Client, docs []*chapterDoc, concurrency int) []epub.Resource {
	var order []string
	seen := make(map[string]bool)
	for _, doc := range docs {
		for _, img := range doc.images {
			src := e.resolve(attr(img.Attr, "src"))
			if src == "" || seen[src] {
				continue
			}
			seen[src] = true
			order = append(order, src)
		}
	}

	var mu sync.Mutex
	fetched := make(map[string]*image, len(order))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, src := range order {
		g.Go(func() error {
			img, err := fetchImage(gctx, client, src)
			if err != nil {
				logging.Ctx(ctx).Debug().Err(err).Str("src", logging.SanitizeValue(src)).Msg("Dropping image")
				return nil
			}
			mu.Lock()
			fetched[src] = img
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	hrefs := make(map[string]string, len(fetched))
	resources := make([]epub.Resource, 0, len(fetched))
	for _, src := range order {
		img, ok := fetched[src]
		if !ok {
			continue
		}
		href := fmt.Sprintf("images/img-%03d%s", len(resources)+1, imageExtensions[img.mediaType])
		hrefs[src] = href
		resources = append(resources, epub.Resource{Href: href, MediaType: img.mediaType, Data: img.data})
	}

	for _, doc := range docs {
		for _, node := range doc.images {
			href, ok := hrefs[e.resolve(attr(node.Attr, "src"))]
			if !ok {
				if node.Parent != nil {
					node.Parent.RemoveChild(node)
				}
				continue
			}
			// chapters live in text/, images in images/
			node.Attr = setAttr(node.Attr, "src", "../"+href)
		}
		doc.images = nil
	}

	return resources
}

// fetchCover downloads the cover image; any failure yields nil.
func (e *Engine) fetchCover(ctx context.Context, client *http.Client, coverURL string) *epub.Resource {
	src := e.resolve(coverURL)
	if src == "" {
		return nil
	}
	img, err := fetchImage(ctx, client, src)
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Msg("Skipping cover image")
		return nil
	}
	return &epub.Resource{
		Href:      "images/cover" + imageExtensions[img.mediaType],
		MediaType: img.mediaType,
		Data:      img.data,
	}
}

func fetchImage(ctx context.Context, client *http.Client, src string) (*image, error) {
	resp, err := get(ctx, client, src)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	data, err := readLimited(resp.Body, maxImageBytes)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("empty image")
	}

	mediaType := imageMediaType(resp.Header.Get("Content-Type"), data)
	if _, ok := imageExtensions[mediaType]; !ok {
		return nil, fmt.Errorf("unsupported media type %q", mediaType)
	}
	return &image{mediaType: mediaType, data: data}, nil
}

// imageMediaType trusts a recognised Content-Type header, otherwise sniffs.
func imageMediaType(header string, data []byte) string {
	if mt, _, err := mime.ParseMediaType(header); err == nil {
		if _, ok := imageExtensions[mt]; ok {
			return mt
		}
	}
	mt, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	return mt
}

// resolve turns an image reference into an absolute http(s) URL, or "".
func (e *Engine) resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "data:") {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	abs := e.base.ResolveReference(u)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	return abs.String()
}

