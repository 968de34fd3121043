// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package wattpad

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// maxTitleRunes caps the sanitised title length.
const maxTitleRunes = 120

// SanitizeTitle turns a story title into a file name stem: NFC normalised,
// without control or path-hostile characters, whitespace collapsed and at most
// 120 runes. An empty result falls back to "story-<id>".
func SanitizeTitle(title string, storyID uint64) string {
	title = norm.NFC.String(title)

	var b strings.Builder
	b.Grow(len(title))
	space := false
	n := 0
	for _, r := range title {
		if n >= maxTitleRunes {
			break
		}
		switch {
		case unicode.IsSpace(r):
			space = b.Len() > 0
			continue
		case unicode.IsControl(r), strings.ContainsRune(`<>:"/\|?*`, r):
			continue
		}
		if space {
			b.WriteByte(' ')
			n++
			space = false
			if n >= maxTitleRunes {
				break
			}
		}
		b.WriteRune(r)
		n++
	}

	out := strings.TrimRight(b.String(), " ")
	if out == "" {
		return "story-" + strconv.FormatUint(storyID, 10)
	}
	return out
}
