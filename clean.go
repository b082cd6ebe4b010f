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

import "unicode/utf8"

// A charToken is a single character of cleaned source text:
// a printable character, a space, or a line feed.
// Tabs have been expanded, trailing whitespace dropped,
// and CR/CRLF normalized to a lone LF.
type charToken struct {
	c   rune
	pos Position
}

// cleaner is the first pipeline stage.
// It consumes the raw source one rune at a time
// and yields charTokens on demand.
//
// Whitespace is buffered until the cleaner knows whether it is
// trailing (dropped at the line end) or interior (flushed as a run of
// spaces before the next printable character).
type cleaner struct {
	src      string
	i        int
	tabWidth int

	line int
	col  int // column of the next emitted token
	ws   int // buffered whitespace width

	pendingCR bool
	queue     []charToken
}

func newCleaner(src string, tabWidth int) *cleaner {
	if tabWidth <= 0 {
		tabWidth = defaultTabWidth
	}
	return &cleaner{src: src, tabWidth: tabWidth}
}

const defaultTabWidth = 8

// next returns the next cleaned character token,
// or ok=false at the end of input.
func (c *cleaner) next() (_ charToken, ok bool) {
	for len(c.queue) == 0 {
		r, size := utf8.DecodeRuneInString(c.src[c.i:])
		if size == 0 {
			// End of input. A held CR still produces a line feed;
			// buffered trailing whitespace is dropped.
			if c.pendingCR {
				c.pendingCR = false
				c.emitNewline()
				break
			}
			c.ws = 0
			return charToken{}, false
		}
		c.i += size

		if c.pendingCR {
			c.pendingCR = false
			c.emitNewline()
			if r == '\n' {
				// CRLF collapses to the single LF already emitted.
				continue
			}
			// Bare CR: fall through and process r normally.
		}

		switch r {
		case '\r':
			c.pendingCR = true
		case '\n':
			c.emitNewline()
		case '\t':
			c.ws += c.tabWidth
		case ' ':
			c.ws++
		default:
			for c.ws > 0 {
				c.queue = append(c.queue, charToken{c: ' ', pos: Position{Line: c.line, Col: c.col}})
				c.col++
				c.ws--
			}
			c.queue = append(c.queue, charToken{c: r, pos: Position{Line: c.line, Col: c.col}})
			c.col++
		}
	}

	tok := c.queue[0]
	c.queue = c.queue[1:]
	return tok, true
}

// emitNewline queues a line feed and starts a new line.
// The LF's column counts any dropped trailing whitespace.
func (c *cleaner) emitNewline() {
	c.queue = append(c.queue, charToken{c: '\n', pos: Position{Line: c.line, Col: c.col + c.ws}})
	c.ws = 0
	c.line++
	c.col = 0
}
