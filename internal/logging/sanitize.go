// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package logging

import (
	"fmt"
	"strings"
)

// maxSanitizedLength caps caller-controlled strings written to logs.
const maxSanitizedLength = 256

// SanitizeValue removes control characters from caller-controlled strings
// (story titles, user agents, upstream error bodies) before they are logged,
// so a crafted value cannot forge log lines.
func SanitizeValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	n := 0
	for _, r := range s {
		if n >= maxSanitizedLength {
			b.WriteString("...")
			break
		}
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
		n++
	}
	return b.String()
}
