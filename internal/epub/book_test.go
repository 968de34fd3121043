// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package epub

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func sampleBook() *Book {
	return &Book{
		ID:          "urn:uuid:00000000-0000-0000-0000-000000000001",
		Title:       "Tom & Jerry <Reloaded>",
		Author:      "A. Writer",
		Language:    "en",
		Description: "Cats & mice",
		Subjects:    []string{"comedy", "animals"},
		Modified:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Cover:       &Resource{Href: "images/cover.jpg", MediaType: "image/jpeg", Data: []byte{0xFF, 0xD8}},
		Chapters: []Chapter{
			{Title: "Beginning", Body: "<p>Once upon a time.</p>"},
			{Title: "", Body: `<p>Then <img src="../images/img-001.png" alt=""/></p>`},
		},
		Resources: []Resource{{Href: "images/img-001.png", MediaType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}},
	}
}

func readArchive(t *testing.T, data []byte) (*zip.Reader, map[string]string) {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	files := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		files[f.Name] = string(b)
	}
	return zr, files
}

func TestBook_Layout(t *testing.T) {
	t.Parallel()

	data, err := sampleBook().Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	zr, files := readArchive(t, data)

	first := zr.File[0]
	if first.Name != "mimetype" {
		t.Fatalf("first entry = %q, want mimetype", first.Name)
	}
	if first.Method != zip.Store {
		t.Errorf("mimetype method = %d, want Store", first.Method)
	}
	if files["mimetype"] != MediaType {
		t.Errorf("mimetype content = %q", files["mimetype"])
	}

	for _, name := range []string{
		"META-INF/container.xml",
		"OEBPS/content.opf",
		"OEBPS/nav.xhtml",
		"OEBPS/toc.ncx",
		"OEBPS/style.css",
		"OEBPS/text/chapter_001.xhtml",
		"OEBPS/text/chapter_002.xhtml",
		"OEBPS/images/cover.jpg",
		"OEBPS/images/img-001.png",
	} {
		if _, ok := files[name]; !ok {
			t.Errorf("missing entry %s", name)
		}
	}
}

func TestBook_DocumentsAreWellFormed(t *testing.T) {
	t.Parallel()

	data, err := sampleBook().Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	_, files := readArchive(t, data)

	for name, content := range files {
		if !strings.HasSuffix(name, ".xml") && !strings.HasSuffix(name, ".opf") &&
			!strings.HasSuffix(name, ".ncx") && !strings.HasSuffix(name, ".xhtml") {
			continue
		}
		dec := xml.NewDecoder(strings.NewReader(content))
		dec.Strict = true
		for {
			_, err := dec.Token()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				t.Errorf("%s is not well-formed: %v", name, err)
				break
			}
		}
	}

	opf := files["OEBPS/content.opf"]
	for _, want := range []string{
		"<dc:title>Tom &amp; Jerry &lt;Reloaded&gt;</dc:title>",
		"<dc:creator>A. Writer</dc:creator>",
		"<dc:subject>comedy</dc:subject>",
		`<meta property="dcterms:modified">2026-01-02T03:04:05Z</meta>`,
		`properties="cover-image"`,
		`<itemref idref="chapter-002"/>`,
	} {
		if !strings.Contains(opf, want) {
			t.Errorf("content.opf missing %s", want)
		}
	}

	if !strings.Contains(files["OEBPS/nav.xhtml"], "Chapter 2") {
		t.Error("expected untitled chapter to get a default title in nav")
	}
}

func TestBook_Errors(t *testing.T) {
	t.Parallel()

	noTitle := sampleBook()
	noTitle.Title = "  "
	if _, err := noTitle.Bytes(); !errors.Is(err, ErrNoTitle) {
		t.Errorf("expected ErrNoTitle, got %v", err)
	}

	noChapters := sampleBook()
	noChapters.Chapters = nil
	if _, err := noChapters.Bytes(); !errors.Is(err, ErrNoChapters) {
		t.Errorf("expected ErrNoChapters, got %v", err)
	}

	dup := sampleBook()
	dup.Resources = append(dup.Resources, Resource{Href: "images/cover.jpg", MediaType: "image/jpeg", Data: []byte{1}})
	if _, err := dup.Bytes(); !errors.Is(err, ErrDuplicateResource) {
		t.Errorf("expected ErrDuplicateResource, got %v", err)
	}
}

func TestBook_GeneratesIdentifier(t *testing.T) {
	t.Parallel()

	b := sampleBook()
	b.ID = ""
	b.Language = ""
	data, err := b.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	_, files := readArchive(t, data)
	opf := files["OEBPS/content.opf"]
	if !strings.Contains(opf, "urn:uuid:") {
		t.Error("expected generated urn:uuid identifier")
	}
	if !strings.Contains(opf, "<dc:language>en</dc:language>") {
		t.Error("expected default language en")
	}
}

func TestChapterHref(t *testing.T) {
	t.Parallel()

	if got := ChapterHref(0); got != "text/chapter_001.xhtml" {
		t.Errorf("ChapterHref(0) = %q", got)
	}
	if got := ChapterHref(119); got != "text/chapter_120.xhtml" {
		t.Errorf("ChapterHref(119) = %q", got)
	}
}
