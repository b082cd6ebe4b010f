// Copyright 2025 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package markup

import (
	"fmt"
	"html"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/atom"
)

// An HTMLRenderer converts a parsed element tree into HTML.
// Resolve should be run on the tree first so that links carry their
// URLs; unresolved links render as bare anchors.
type HTMLRenderer struct {
	// BlockElements is the set of tags whose closing tag is followed by
	// a newline. No newline is written before a block element or after
	// its opening tag. If nil, a default set covering the parser's
	// structural tags is used.
	BlockElements map[string]bool
	// Divs is the set of tags rewritten as <div class='name'>.
	Divs map[string]bool
	// Spans is the set of tags rewritten as <span class='name'>.
	Spans map[string]bool
}

// RenderHTML writes doc to w as HTML using the default options for
// [HTMLRenderer]. It returns the first error encountered, if any.
func RenderHTML(w io.Writer, doc *Element) error {
	return new(HTMLRenderer).Render(w, doc)
}

// Render writes doc to w as HTML.
// It returns the first error encountered, if any.
func (r *HTMLRenderer) Render(w io.Writer, doc *Element) error {
	buf := r.AppendElement(nil, doc)
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("render markup to html: %w", err)
	}
	return nil
}

// AppendElement appends the rendered HTML of an element to dst
// and returns the resulting byte slice.
func (r *HTMLRenderer) AppendElement(dst []byte, el *Element) []byte {
	state := &htmlState{HTMLRenderer: r, dst: dst}
	state.element(el)
	return state.dst
}

var defaultBlockElements = map[string]bool{
	"body": true, "p": true, "blockquote": true, "pre": true,
	"ul": true, "ol": true, "li": true,
	"dl": true, "dt": true, "dd": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"h7": true, "h8": true, "h9": true,
}

type htmlState struct {
	*HTMLRenderer
	dst []byte
}

func (r *htmlState) isBlock(tag string) bool {
	if r.BlockElements != nil {
		return r.BlockElements[tag]
	}
	return defaultBlockElements[tag]
}

func (r *htmlState) element(el *Element) {
	tag := el.Tag()
	switch {
	case tag == "body":
		// The document element renders as its children only.
		r.children(el)
	case tag == "link":
		r.link(el)
	case r.Divs[tag]:
		r.dst = append(r.dst, `<div class='`...)
		r.dst = append(r.dst, html.EscapeString(tag)...)
		r.dst = append(r.dst, `'>`...)
		r.children(el)
		r.dst = append(r.dst, "</div>\n"...)
	case r.Spans[tag]:
		r.dst = append(r.dst, `<span class='`...)
		r.dst = append(r.dst, html.EscapeString(tag)...)
		r.dst = append(r.dst, `'>`...)
		r.children(el)
		r.dst = append(r.dst, "</span>"...)
	default:
		r.openTag(tag)
		r.children(el)
		r.closeTag(tag)
		if r.isBlock(tag) {
			r.dst = append(r.dst, '\n')
		}
	}
}

func (r *htmlState) children(el *Element) {
	for _, c := range el.Children() {
		switch c := c.(type) {
		case Text:
			r.dst = escapeHTML(r.dst, c)
		case *Element:
			r.element(c)
		}
	}
}

// link renders a link element as an anchor, taking the href from the
// url child added by [Resolve]. key and url children never render as
// content.
func (r *htmlState) link(el *Element) {
	var url *Element
	for _, c := range el.Children() {
		if e, ok := c.(*Element); ok && e.Tag() == "url" {
			url = e
			break
		}
	}

	r.dst = append(r.dst, "<a"...)
	if url != nil {
		r.dst = append(r.dst, ` href="`...)
		r.dst = append(r.dst, html.EscapeString(NormalizeURI(url.Text()))...)
		r.dst = append(r.dst, `"`...)
	}
	r.dst = append(r.dst, ">"...)
	for _, c := range el.Children() {
		switch c := c.(type) {
		case Text:
			r.dst = escapeHTML(r.dst, c)
		case *Element:
			if t := c.Tag(); t == "url" || t == "key" {
				continue
			}
			r.element(c)
		}
	}
	r.dst = append(r.dst, "</a>"...)
}

// openTag and closeTag write tag markup, using the interned
// [atom.Atom] name when the tag is a standard HTML element.
func (r *htmlState) openTag(tag string) {
	r.dst = append(r.dst, '<')
	r.dst = append(r.dst, tagName(tag)...)
	r.dst = append(r.dst, '>')
}

func (r *htmlState) closeTag(tag string) {
	r.dst = append(r.dst, "</"...)
	r.dst = append(r.dst, tagName(tag)...)
	r.dst = append(r.dst, '>')
}

func tagName(tag string) string {
	if a := atom.Lookup([]byte(tag)); a != 0 {
		return a.String()
	}
	return tag
}

// escapeHTML appends the HTML-escaped version of a text leaf to dst.
func escapeHTML(dst []byte, src Text) []byte {
	verbatimStart := 0
	for i := 0; i < len(src); i++ {
		var esc string
		switch src[i] {
		case '&':
			esc = "&amp;"
		case '\'':
			// "&#39;" is shorter than "&apos;" and apos was not in HTML until HTML5.
			esc = "&#39;"
		case '<':
			esc = "&lt;"
		case '>':
			esc = "&gt;"
		case '"':
			esc = "&quot;"
		default:
			continue
		}
		dst = append(dst, src[verbatimStart:i]...)
		dst = append(dst, esc...)
		verbatimStart = i + 1
	}
	if verbatimStart < len(src) {
		dst = append(dst, src[verbatimStart:]...)
	}
	return dst
}

// NormalizeURI percent-encodes any characters in a string
// that are not unreserved URI characters or reserved ones other than
// '[' and ']'.
// This is commonly used for transforming link URLs
// into strings suitable for href attributes.
func NormalizeURI(s string) string {
	// RFC 3986 reserved and unreserved characters, except '[' and ']'.
	const safeSet = `;/?:@&=+$,-_.!~*'()#`

	sb := new(strings.Builder)
	sb.Grow(len(s))
	skip := 0
	var buf [utf8.UTFMax]byte
	for i, c := range s {
		if skip > 0 {
			skip--
			sb.WriteRune(c)
			continue
		}
		switch {
		case c == '%':
			if i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
				skip = 2
				sb.WriteByte('%')
			} else {
				sb.WriteString("%25")
			}
		case (c < 0x80 && (isASCIILetter(byte(c)) || isASCIIDigit(byte(c)))) || strings.ContainsRune(safeSet, c):
			sb.WriteRune(c)
		default:
			n := utf8.EncodeRune(buf[:], c)
			for _, b := range buf[:n] {
				sb.WriteByte('%')
				sb.WriteByte(urlHexDigit(b >> 4))
				sb.WriteByte(urlHexDigit(b & 0x0f))
			}
		}
	}
	return sb.String()
}

func isASCIILetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isASCIIDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isHex(c byte) bool {
	return 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F' || isASCIIDigit(c)
}

func urlHexDigit(x byte) byte {
	switch {
	case x < 0xa:
		return '0' + x
	case x < 0x10:
		return 'A' + x - 0xa
	default:
		panic("out of bounds")
	}
}
