// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package epub

import (
	"bytes"
	"encoding/xml"
	"text/template"
)

const stylesheet = `body { font-family: serif; line-height: 1.5; margin: 0 5%; }
h1 { text-align: center; margin: 1.5em 0; }
p { text-indent: 1.5em; margin: 0 0 0.5em 0; }
img { max-width: 100%; height: auto; }
`

func xmlEscape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

var templates = template.Must(template.New("epub").Funcs(template.FuncMap{"x": xmlEscape}).Parse(`
{{- define "container" -}}
<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>
{{ end -}}

{{- define "opf" -}}
<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0" unique-identifier="book-id" xml:lang="{{x .Language}}">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:identifier id="book-id">{{x .ID}}</dc:identifier>
    <dc:title>{{x .Title}}</dc:title>
    <dc:language>{{x .Language}}</dc:language>
{{- if .Author}}
    <dc:creator>{{x .Author}}</dc:creator>
{{- end}}
{{- if .Description}}
    <dc:description>{{x .Description}}</dc:description>
{{- end}}
{{- range .Subjects}}
    <dc:subject>{{x .}}</dc:subject>
{{- end}}
{{- if .Source}}
    <dc:source>{{x .Source}}</dc:source>
{{- end}}
    <meta property="dcterms:modified">{{.Modified}}</meta>
{{- if .CoverID}}
    <meta name="cover" content="{{.CoverID}}"/>
{{- end}}
  </metadata>
  <manifest>
    <item id="nav" href="nav.xhtml" media-type="application/xhtml+xml" properties="nav"/>
    <item id="ncx" href="toc.ncx" media-type="application/x-dtbncx+xml"/>
    <item id="style" href="style.css" media-type="text/css"/>
{{- range .Chapters}}
    <item id="{{.ID}}" href="{{x .Href}}" media-type="application/xhtml+xml"/>
{{- end}}
{{- range .Items}}
    <item id="{{.ID}}" href="{{x .Href}}" media-type="{{x .MediaType}}"{{if .Properties}} properties="{{.Properties}}"{{end}}/>
{{- end}}
  </manifest>
  <spine toc="ncx">
{{- range .Chapters}}
    <itemref idref="{{.ID}}"/>
{{- end}}
  </spine>
</package>
{{ end -}}

{{- define "nav" -}}
<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops" xml:lang="{{x .Language}}">
<head>
  <title>{{x .Title}}</title>
</head>
<body>
  <nav epub:type="toc" id="toc">
    <h1>{{x .Title}}</h1>
    <ol>
{{- range .Chapters}}
      <li><a href="{{x .Href}}">{{x .Title}}</a></li>
{{- end}}
    </ol>
  </nav>
</body>
</html>
{{ end -}}

{{- define "ncx" -}}
<?xml version="1.0" encoding="UTF-8"?>
<ncx xmlns="http://www.daisy.org/z3986/2005/ncx/" version="2005-1">
  <head>
    <meta name="dtb:uid" content="{{x .ID}}"/>
    <meta name="dtb:depth" content="1"/>
    <meta name="dtb:totalPageCount" content="0"/>
    <meta name="dtb:maxPageNumber" content="0"/>
  </head>
  <docTitle><text>{{x .Title}}</text></docTitle>
  <navMap>
{{- range .Chapters}}
    <navPoint id="nav-{{.ID}}" playOrder="{{.Order}}">
      <navLabel><text>{{x .Title}}</text></navLabel>
      <content src="{{x .Href}}"/>
    </navPoint>
{{- end}}
  </navMap>
</ncx>
{{ end -}}

{{- define "chapter" -}}
<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml" xml:lang="{{x .Book.Language}}">
<head>
  <title>{{x .Chapter.Title}}</title>
  <link rel="stylesheet" type="text/css" href="../style.css"/>
</head>
<body>
  <h1>{{x .Chapter.Title}}</h1>
{{.Chapter.Body}}
</body>
</html>
{{ end -}}
`))
