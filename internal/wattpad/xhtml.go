// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package wattpad

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// keptElements survive sanitisation; other elements are unwrapped (their
// children are kept) unless listed in droppedElements.
var keptElements = map[atom.Atom]bool{
	atom.P: true, atom.Br: true, atom.Hr: true, atom.Div: true, atom.Span: true,
	atom.B: true, atom.Strong: true, atom.I: true, atom.Em: true, atom.U: true,
	atom.S: true, atom.Del: true, atom.Ins: true, atom.Sub: true, atom.Sup: true,
	atom.Small: true, atom.Blockquote: true, atom.Pre: true, atom.Code: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true,
	atom.Table: true, atom.Thead: true, atom.Tbody: true, atom.Tr: true, atom.Td: true, atom.Th: true,
	atom.Figure: true, atom.Figcaption: true, atom.Img: true,
}

// droppedElements are removed together with their content.
var droppedElements = map[atom.Atom]bool{
	atom.Script: true, atom.Style: true, atom.Noscript: true, atom.Iframe: true,
	atom.Object: true, atom.Embed: true, atom.Form: true, atom.Input: true,
	atom.Button: true, atom.Select: true, atom.Textarea: true, atom.Template: true,
	atom.Svg: true, atom.Math: true, atom.Video: true, atom.Audio: true,
}

// keptAttrs lists the attributes allowed per element.
var keptAttrs = map[atom.Atom][]string{
	atom.Img: {"src", "alt"},
	atom.Td:  {"colspan", "rowspan"},
	atom.Th:  {"colspan", "rowspan"},
}

// chapterDoc is a sanitised chapter body.
type chapterDoc struct {
	root   *html.Node
	images []*html.Node
}

// parseChapter parses an HTML fragment into a sanitised tree.
func parseChapter(raw []byte) (*chapterDoc, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(bytes.NewReader(raw), body)
	if err != nil {
		return nil, err
	}

	doc := &chapterDoc{
		root: &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div},
	}
	for _, n := range nodes {
		doc.appendSanitized(doc.root, n)
	}
	return doc, nil
}

func (d *chapterDoc) appendSanitized(parent, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		if text := stripInvalidXMLChars(n.Data); text != "" {
			parent.AppendChild(&html.Node{Type: html.TextNode, Data: text})
		}
	case html.ElementNode:
		if droppedElements[n.DataAtom] {
			return
		}
		target := parent
		if keptElements[n.DataAtom] {
			target = &html.Node{
				Type:     html.ElementNode,
				Data:     n.DataAtom.String(),
				DataAtom: n.DataAtom,
				Attr:     filterAttrs(n),
			}
			parent.AppendChild(target)
			if n.DataAtom == atom.Img {
				d.images = append(d.images, target)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			d.appendSanitized(target, c)
		}
	default:
		// comments, doctypes
	}
}

func filterAttrs(n *html.Node) []html.Attribute {
	allowed := keptAttrs[n.DataAtom]
	var out []html.Attribute
	for _, name := range allowed {
		for _, a := range n.Attr {
			if a.Namespace == "" && a.Key == name {
				out = append(out, html.Attribute{Key: a.Key, Val: stripInvalidXMLChars(a.Val)})
				break
			}
		}
	}
	if n.DataAtom == atom.Img && attr(out, "alt") == "" {
		out = setAttr(out, "alt", "")
	}
	return out
}

// stripImages removes every <img> from the tree.
func (d *chapterDoc) stripImages() {
	for _, img := range d.images {
		if img.Parent != nil {
			img.Parent.RemoveChild(img)
		}
	}
	d.images = nil
}

// render serialises the tree as an XHTML fragment.
func (d *chapterDoc) render() (string, error) {
	var buf bytes.Buffer
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// stripInvalidXMLChars removes runes not allowed in XML 1.0 documents.
func stripInvalidXMLChars(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return r
		case r < 0x20, r == 0xFFFE, r == 0xFFFF:
			return -1
		default:
			return r
		}
	}, s)
}

func attr(attrs []html.Attribute, key string) string {
	for _, a := range attrs {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(attrs []html.Attribute, key, val string) []html.Attribute {
	for i := range attrs {
		if attrs[i].Key == key {
			attrs[i].Val = val
			return attrs
		}
	}
	return append(attrs, html.Attribute{Key: key, Val: val})
}
