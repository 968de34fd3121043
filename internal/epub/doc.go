// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

/*
Package epub writes EPUB 3 archives.

A Book is assembled in memory and serialised in one pass:

	mimetype                       (first entry, stored uncompressed)
	META-INF/container.xml
	OEBPS/content.opf              package document (EPUB 3, with NCX fallback)
	OEBPS/nav.xhtml                navigation document
	OEBPS/toc.ncx                  EPUB 2 table of contents
	OEBPS/style.css
	OEBPS/text/chapter_001.xhtml   one per chapter, in reading order
	OEBPS/images/...               cover and embedded images

Chapter bodies must already be well-formed XHTML fragments; the package does
not sanitise markup.
*/
package epub
