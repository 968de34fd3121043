// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPercentEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"abcXYZ019", "abcXYZ019"},
		{"My Story.epub", "My%20Story%2Eepub"},
		{"a-b_c~d", "a%2Db%5Fc%7Ed"},
		{"Caf\u00e9", "Caf%C3%A9"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := percentEncode(tt.in); got != tt.want {
			t.Errorf("percentEncode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestContentDisposition(t *testing.T) {
	t.Parallel()

	got, err := contentDisposition("My Story.epub")
	if err != nil {
		t.Fatalf("contentDisposition() error = %v", err)
	}
	want := `attachment; filename="My Story.epub"; filename*=UTF-8''My%20Story%2Eepub`
	if got != want {
		t.Errorf("contentDisposition() = %q, want %q", got, want)
	}
}

func TestContentDispositionEscapesQuotes(t *testing.T) {
	t.Parallel()

	got, err := contentDisposition(`say "hi".epub`)
	if err != nil {
		t.Fatalf("contentDisposition() error = %v", err)
	}
	want := `attachment; filename="say \"hi\".epub"; filename*=UTF-8''say%20%22hi%22%2Eepub`
	if got != want {
		t.Errorf("contentDisposition() = %q, want %q", got, want)
	}
}

func TestContentDispositionRejectsControlCharacters(t *testing.T) {
	t.Parallel()

	if _, err := contentDisposition("bad\nname.epub"); err == nil {
		t.Error("expected error for newline in file name")
	}
}

func TestWriteEPUB(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	if se := writeEPUB(rec, "Title", []byte("PK-data")); se != nil {
		t.Fatalf("writeEPUB() = %v", se)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/epub+zip" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := rec.Header().Get("Content-Length"); got != "7" {
		t.Errorf("Content-Length = %q, want 7", got)
	}
	if got, want := rec.Header().Get("Content-Disposition"), `attachment; filename="Title.epub"; filename*=UTF-8''Title%2Eepub`; got != want {
		t.Errorf("Content-Disposition = %q, want %q", got, want)
	}
	if rec.Body.String() != "PK-data" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestWriteEPUBInvalidHeader(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	se := writeEPUB(rec, "bad\x01title", []byte("x"))
	if se == nil {
		t.Fatal("expected a ServiceError")
	}
	if se.Kind != EpubGenerationFailed {
		t.Errorf("kind = %v, want EpubGenerationFailed", se.Kind)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body written on failure: %q", rec.Body.String())
	}
}
