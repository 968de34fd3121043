// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package epub

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MediaType is the EPUB container media type.
const MediaType = "application/epub+zip"

var (
	// ErrNoTitle is returned when a Book has an empty title.
	ErrNoTitle = errors.New("epub: book has no title")

	// ErrNoChapters is returned when a Book has no chapters.
	ErrNoChapters = errors.New("epub: book has no chapters")

	// ErrDuplicateResource is returned when two resources share an href.
	ErrDuplicateResource = errors.New("epub: duplicate resource href")
)

// Chapter is one reading-order document.
type Chapter struct {
	Title string
	// Body is an XHTML fragment placed inside <body>.
	Body string
}

// Resource is a binary file stored under OEBPS/.
type Resource struct {
	// Href is relative to OEBPS/, e.g. "images/cover.jpg".
	Href      string
	MediaType string
	Data      []byte
}

// Book is an in-memory EPUB.
type Book struct {
	// ID is the unique identifier; a urn:uuid is generated when empty.
	ID          string
	Title       string
	Author      string
	Language    string
	Description string
	Subjects    []string
	Source      string
	Modified    time.Time

	Cover     *Resource
	Chapters  []Chapter
	Resources []Resource
}

// ChapterHref returns the OEBPS-relative path of chapter i (zero based).
func ChapterHref(i int) string {
	return fmt.Sprintf("text/chapter_%03d.xhtml", i+1)
}

// Bytes serialises the book into a new buffer.
func (b *Book) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := b.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write serialises the book as a zip archive to w.
func (b *Book) Write(w io.Writer) error {
	pkg, err := b.prepare()
	if err != nil {
		return err
	}

	zw := zip.NewWriter(w)

	// mimetype must be first and uncompressed.
	mw, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		return fmt.Errorf("epub: write mimetype: %w", err)
	}
	if _, err := io.WriteString(mw, MediaType); err != nil {
		return fmt.Errorf("epub: write mimetype: %w", err)
	}

	files := []struct {
		name string
		tmpl string
	}{
		{"META-INF/container.xml", "container"},
		{"OEBPS/content.opf", "opf"},
		{"OEBPS/nav.xhtml", "nav"},
		{"OEBPS/toc.ncx", "ncx"},
	}
	for _, f := range files {
		if err := writeTemplate(zw, f.name, f.tmpl, pkg); err != nil {
			return err
		}
	}

	if err := writeEntry(zw, "OEBPS/style.css", []byte(stylesheet)); err != nil {
		return err
	}

	for i := range pkg.Chapters {
		ch := &pkg.Chapters[i]
		if err := writeTemplate(zw, "OEBPS/"+ch.Href, "chapter", chapterView{Book: pkg, Chapter: ch}); err != nil {
			return err
		}
	}

	for i := range pkg.Items {
		item := &pkg.Items[i]
		if err := writeEntry(zw, "OEBPS/"+item.Href, item.data); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("epub: finalize archive: %w", err)
	}
	return nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	fw, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("epub: create %s: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("epub: write %s: %w", name, err)
	}
	return nil
}

func writeTemplate(zw *zip.Writer, name, tmpl string, data any) error {
	fw, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("epub: create %s: %w", name, err)
	}
	if err := templates.ExecuteTemplate(fw, tmpl, data); err != nil {
		return fmt.Errorf("epub: render %s: %w", name, err)
	}
	return nil
}

// packageView is the validated, template-ready form of a Book.
type packageView struct {
	ID          string
	Title       string
	Author      string
	Language    string
	Description string
	Subjects    []string
	Source      string
	Modified    string
	CoverID     string
	Chapters    []chapterItem
	Items       []manifestItem
}

type chapterItem struct {
	ID    string
	Href  string
	Title string
	Body  string
	Order int
}

type manifestItem struct {
	ID         string
	Href       string
	MediaType  string
	Properties string
	data       []byte
}

type chapterView struct {
	Book    *packageView
	Chapter *chapterItem
}

func (b *Book) prepare() (*packageView, error) {
	title := strings.TrimSpace(b.Title)
	if title == "" {
		return nil, ErrNoTitle
	}
	if len(b.Chapters) == 0 {
		return nil, ErrNoChapters
	}

	pkg := &packageView{
		ID:          b.ID,
		Title:       title,
		Author:      b.Author,
		Language:    b.Language,
		Description: b.Description,
		Subjects:    b.Subjects,
		Source:      b.Source,
	}
	if pkg.ID == "" {
		pkg.ID = "urn:uuid:" + uuid.NewString()
	}
	if pkg.Language == "" {
		pkg.Language = "en"
	}
	modified := b.Modified
	if modified.IsZero() {
		modified = time.Now()
	}
	pkg.Modified = modified.UTC().Format("2006-01-02T15:04:05Z")

	pkg.Chapters = make([]chapterItem, len(b.Chapters))
	for i, ch := range b.Chapters {
		chTitle := strings.TrimSpace(ch.Title)
		if chTitle == "" {
			chTitle = fmt.Sprintf("Chapter %d", i+1)
		}
		pkg.Chapters[i] = chapterItem{
			ID:    fmt.Sprintf("chapter-%03d", i+1),
			Href:  ChapterHref(i),
			Title: chTitle,
			Body:  ch.Body,
			Order: i + 1,
		}
	}

	seen := make(map[string]bool, len(b.Resources)+1)
	if b.Cover != nil && len(b.Cover.Data) > 0 {
		pkg.CoverID = "cover-image"
		pkg.Items = append(pkg.Items, manifestItem{
			ID:         pkg.CoverID,
			Href:       b.Cover.Href,
			MediaType:  b.Cover.MediaType,
			Properties: "cover-image",
			data:       b.Cover.Data,
		})
		seen[b.Cover.Href] = true
	}
	for i, res := range b.Resources {
		if seen[res.Href] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateResource, res.Href)
		}
		seen[res.Href] = true
		pkg.Items = append(pkg.Items, manifestItem{
			ID:        fmt.Sprintf("res-%03d", i+1),
			Href:      res.Href,
			MediaType: res.MediaType,
			data:      res.Data,
		})
	}

	return pkg, nil
}
