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
	"strings"
	"unicode"
)

// escapable is the set of sigils a backslash turns into literal text.
const escapable = `\{}*-#[]<|%`

// documentParser dispatches block-level structure. It serves the
// outermost document, brace-delimited subdocuments (braceIsEOF), and
// named sections (nestedSection).
type documentParser struct {
	e             *Element
	root          bool
	braceIsEOF    bool
	nestedSection bool
}

func (s *documentParser) grok(p *parseState, t token) error {
	switch t.kind {
	case tokenNewline, tokenBlank:
		return nil
	case tokenOpenBlockquote:
		p.pushParser(&blockquoteOrListParser{})
		return nil
	case tokenOpenVerbatim:
		pre := p.openElement("pre")
		p.pushParser(&verbatimParser{e: pre})
		return nil
	case tokenCloseBlockquote, tokenCloseVerbatim:
		return syntaxError(t.pos, "unexpected dedent")
	}

	switch t.c {
	case '*':
		p.pushParser(&headerParser{level: 1, braceIsEOF: s.braceIsEOF})
		return nil
	case '-':
		p.pushParser(&markerParser{
			buf:        []token{t},
			modelineOK: t.pos.Line == 0,
			braceIsEOF: s.braceIsEOF,
		})
		return nil
	case '#':
		p.pushParser(&hashParser{owner: s, buf: []token{t}})
		return nil
	case '[':
		if s.root {
			w := p.openElement("")
			p.pushParser(&ambiguousLinkParser{w: w})
			pushLink(p)
			return nil
		}
	case '}':
		if s.braceIsEOF {
			if err := p.closeElement(s.e, t.pos); err != nil {
				return err
			}
			p.popParser()
			return nil
		}
	}

	para := p.openElement("p")
	p.pushParser(&paragraphParser{e: para, braceIsEOF: s.braceIsEOF})
	return p.deliver(t)
}

// indentedElementParser parses the body of a blockquote, list item, or
// definition. It mirrors the document parser's dispatch but is closed
// by the dedent that ends its element.
type indentedElementParser struct {
	e *Element
}

func (s *indentedElementParser) grok(p *parseState, t token) error {
	switch t.kind {
	case tokenNewline, tokenBlank:
		return nil
	case tokenCloseBlockquote:
		if err := p.closeElement(s.e, t.pos); err != nil {
			return err
		}
		p.popParser()
		return nil
	case tokenCloseVerbatim:
		return syntaxError(t.pos, "unexpected dedent")
	case tokenOpenBlockquote:
		p.pushParser(&blockquoteOrListParser{})
		return nil
	case tokenOpenVerbatim:
		pre := p.openElement("pre")
		p.pushParser(&verbatimParser{e: pre})
		return nil
	}

	switch t.c {
	case '*':
		p.pushParser(&headerParser{level: 1})
		return nil
	case '-', '#':
		p.pushParser(&markerParser{buf: []token{t}})
		return nil
	}

	para := p.openElement("p")
	p.pushParser(&paragraphParser{e: para})
	return p.deliver(t)
}

// paragraphParser accumulates inline content.
// Wrapped lines join with a single space; a blank line or any change
// in block structure ends the paragraph.
type paragraphParser struct {
	e          *Element
	braceIsEOF bool
}

func (s *paragraphParser) grok(p *parseState, t token) error {
	switch t.kind {
	case tokenBlank:
		if err := p.closeElement(s.e, t.pos); err != nil {
			return err
		}
		p.popParser()
		return nil
	case tokenNewline:
		p.appendText(" ")
		return nil
	case tokenOpenBlockquote, tokenCloseBlockquote, tokenOpenVerbatim, tokenCloseVerbatim:
		if err := p.closeElement(s.e, t.pos); err != nil {
			return err
		}
		p.popParser()
		return p.deliver(t)
	}

	switch t.c {
	case '\\':
		p.pushParser(&slashParser{})
	case '[':
		pushLink(p)
	case '}':
		if s.braceIsEOF {
			if err := p.closeElement(s.e, t.pos); err != nil {
				return err
			}
			p.popParser()
			return p.deliver(t)
		}
		p.appendText(string(t.c))
	default:
		p.appendText(string(t.c))
	}
	return nil
}

// headerParser counts stars; the header level is the count.
type headerParser struct {
	level      int
	braceIsEOF bool
}

func (s *headerParser) grok(p *parseState, t token) error {
	switch {
	case t.isChar('*'):
		s.level++
		return nil
	case t.isChar(' '):
		h := p.openElement(fmt.Sprintf("h%d", s.level))
		p.swapParser(&paragraphParser{e: h, braceIsEOF: s.braceIsEOF})
		return nil
	default:
		return syntaxError(t.pos, "malformed header: expected '*' or space, got %v", t)
	}
}

// blockquoteOrListParser decides what an indented block is from its
// first character and hands off to the matching parser.
type blockquoteOrListParser struct{}

func (s *blockquoteOrListParser) grok(p *parseState, t token) error {
	switch {
	case t.isChar('#'):
		ol := p.openElement("ol")
		p.swapParser(&listParser{e: ol})
		return p.deliver(t)
	case t.isChar('-'):
		ul := p.openElement("ul")
		p.swapParser(&listParser{e: ul})
		return p.deliver(t)
	case t.isChar('%'):
		dl := p.openElement("dl")
		p.swapParser(&definitionListParser{e: dl})
		return p.deliver(t)
	default:
		bq := p.openElement("blockquote")
		p.swapParser(&indentedElementParser{e: bq})
		return p.deliver(t)
	}
}

// listParser collects the items of an ordered or unordered list.
// After each marker it eats the following space, bumps the expected
// indentation by two so the item's continuation lines nest, and parses
// the item body as an indented element.
type listParser struct {
	e      *Element
	marker rune
}

func (s *listParser) grok(p *parseState, t token) error {
	switch t.kind {
	case tokenNewline, tokenBlank:
		return nil
	case tokenCloseBlockquote:
		if err := p.closeElement(s.e, t.pos); err != nil {
			return err
		}
		p.popParser()
		return nil
	case tokenChar:
		if s.marker == 0 {
			s.marker = t.c
		}
		if t.c == s.marker {
			p.pushParser(&tokenEater{want: ' ', then: func(p *parseState) {
				p.tok.addIndentation(2)
				li := p.openElement("li")
				p.pushParser(&indentedElementParser{e: li})
			}})
			return nil
		}
		// A list at indentation zero has no closing dedent;
		// the first non-marker character ends it.
		if err := p.closeElement(s.e, t.pos); err != nil {
			return err
		}
		p.popParser()
		return p.deliver(t)
	}
	return syntaxError(t.pos, "unexpected %v in list", t)
}

// tokenEater requires the next token to be a given character and then
// invokes its continuation.
type tokenEater struct {
	want rune
	then func(p *parseState)
}

func (s *tokenEater) grok(p *parseState, t token) error {
	if !t.isChar(s.want) {
		return syntaxError(t.pos, "expected %q, got %v", s.want, t)
	}
	p.popParser()
	s.then(p)
	return nil
}

// definitionListParser collects dt/dd pairs.
// A % opens a term; the term's definition follows on lines indented
// two further, which arrive as an ordinary indented block.
type definitionListParser struct {
	e *Element
}

func (s *definitionListParser) grok(p *parseState, t token) error {
	switch t.kind {
	case tokenNewline, tokenBlank:
		return nil
	case tokenCloseBlockquote:
		if err := p.closeElement(s.e, t.pos); err != nil {
			return err
		}
		p.popParser()
		return nil
	case tokenOpenBlockquote:
		dd := p.openElement("dd")
		p.pushParser(&indentedElementParser{e: dd})
		return nil
	case tokenChar:
		if t.c == '%' {
			p.pushParser(&tokenEater{want: ' ', then: func(p *parseState) {
				dt := p.openElement("dt")
				p.pushParser(&definitionTermParser{e: dt})
			}})
			return nil
		}
	}
	return syntaxError(t.pos, "unexpected %v in definition list", t)
}

// definitionTermParser accumulates a dt until the end of its line.
type definitionTermParser struct {
	e *Element
}

func (s *definitionTermParser) grok(p *parseState, t token) error {
	switch t.kind {
	case tokenNewline, tokenBlank:
		if err := p.closeElement(s.e, t.pos); err != nil {
			return err
		}
		p.popParser()
		return nil
	case tokenOpenBlockquote, tokenCloseBlockquote, tokenOpenVerbatim, tokenCloseVerbatim:
		if err := p.closeElement(s.e, t.pos); err != nil {
			return err
		}
		p.popParser()
		return p.deliver(t)
	case tokenChar:
		switch t.c {
		case '\\':
			p.pushParser(&slashParser{})
		case '[':
			pushLink(p)
		default:
			p.appendText(string(t.c))
		}
		return nil
	}
	return syntaxError(t.pos, "unexpected %v in definition term", t)
}

// verbatimParser appends preformatted text.
// Interior blank lines are preserved; trailing ones are not.
type verbatimParser struct {
	e      *Element
	blanks int
}

func (s *verbatimParser) grok(p *parseState, t token) error {
	switch t.kind {
	case tokenBlank:
		s.blanks++
		return nil
	case tokenNewline:
		p.appendText("\n")
		return nil
	case tokenCloseVerbatim:
		if err := p.closeElement(s.e, t.pos); err != nil {
			return err
		}
		p.popParser()
		return nil
	case tokenChar:
		if s.blanks > 0 {
			p.appendText(strings.Repeat("\n", s.blanks+1))
			s.blanks = 0
		}
		p.appendText(string(t.c))
		return nil
	}
	return syntaxError(t.pos, "unexpected %v in verbatim block", t)
}

// slashParser handles the token after a backslash: an escapable sigil
// becomes literal text, anything else begins a brace-delimited tag name.
type slashParser struct{}

func (s *slashParser) grok(p *parseState, t token) error {
	if t.kind != tokenChar {
		return syntaxError(t.pos, "dangling backslash")
	}
	if strings.ContainsRune(escapable, t.c) {
		p.appendText(string(t.c))
		p.popParser()
		return nil
	}
	p.swapParser(&nameParser{})
	return p.deliver(t)
}

// nameParser accumulates a tag name up to its opening brace.
// Subdocument tags get block parsing; all others are inline.
type nameParser struct {
	name []rune
}

func (s *nameParser) grok(p *parseState, t token) error {
	switch {
	case t.isChar('{'):
		if len(s.name) == 0 {
			return syntaxError(t.pos, "empty tag name")
		}
		name := string(s.name)
		el := p.openElement(name)
		if p.subdocs[name] {
			p.swapParser(&documentParser{e: el, braceIsEOF: true})
		} else {
			p.swapParser(&braceDelimitedParser{e: el})
		}
		return nil
	case t.kind == tokenChar && (unicode.IsLetter(t.c) || unicode.IsDigit(t.c) || t.c == '_' || t.c == '-'):
		s.name = append(s.name, t.c)
		return nil
	default:
		return syntaxError(t.pos, "malformed tag name: unexpected %v", t)
	}
}

// braceDelimitedParser parses the inline-only body of \name{...}.
type braceDelimitedParser struct {
	e *Element
}

func (s *braceDelimitedParser) grok(p *parseState, t token) error {
	switch t.kind {
	case tokenNewline:
		p.appendText(" ")
		return nil
	case tokenChar:
		switch t.c {
		case '}':
			if err := p.closeElement(s.e, t.pos); err != nil {
				return err
			}
			p.popParser()
		case '\\':
			p.pushParser(&slashParser{})
		case '[':
			pushLink(p)
		default:
			p.appendText(string(t.c))
		}
		return nil
	}
	return syntaxError(t.pos, "unterminated \\%s{", s.e.Tag())
}

// pushLink opens a link element and pushes its parser.
// The [ has already been consumed.
func pushLink(p *parseState) {
	el := p.openElement("link")
	p.pushParser(&linkParser{e: el})
}

// linkParser parses [text] or [text|key].
type linkParser struct {
	e   *Element
	key *Element
}

func (s *linkParser) grok(p *parseState, t token) error {
	switch t.kind {
	case tokenNewline:
		p.appendText(" ")
		return nil
	case tokenChar:
		switch t.c {
		case ']':
			if s.key != nil {
				if err := p.closeElement(s.key, t.pos); err != nil {
					return err
				}
			}
			if err := p.closeElement(s.e, t.pos); err != nil {
				return err
			}
			p.popParser()
		case '|':
			if s.key != nil {
				return syntaxError(t.pos, "second | in link")
			}
			s.key = p.openElement("key")
		case '\\':
			p.pushParser(&slashParser{})
		default:
			p.appendText(string(t.c))
		}
		return nil
	}
	return syntaxError(t.pos, "unterminated link")
}

// ambiguousLinkParser sits under a linkParser at a block-start [.
// Once the link has been consumed, the next two tokens decide whether
// the block is a link definition ("[key] <url>") or a paragraph that
// happens to start with a link.
type ambiguousLinkParser struct {
	w        *Element
	sawSpace bool
}

func (s *ambiguousLinkParser) grok(p *parseState, t token) error {
	if !s.sawSpace {
		if t.isChar(' ') {
			s.sawSpace = true
			return nil
		}
		return s.revert(p, t, false)
	}
	if t.isChar('<') {
		s.w.tag = "link_def"
		p.swapParser(&linkdefParser{e: s.w})
		return p.deliver(t)
	}
	return s.revert(p, t, true)
}

// revert turns the wrapper into a paragraph and replays the buffered
// space (if any) and the current token into it.
func (s *ambiguousLinkParser) revert(p *parseState, t token, replaySpace bool) error {
	s.w.tag = "p"
	p.swapParser(&paragraphParser{e: s.w})
	if replaySpace {
		if err := p.deliver(token{kind: tokenChar, c: ' ', pos: t.pos}); err != nil {
			return err
		}
	}
	return p.deliver(t)
}

// linkdefParser parses the remainder of "[key] <url>", terminated by a
// blank line.
type linkdefParser struct {
	e      *Element
	sawURL bool
}

func (s *linkdefParser) grok(p *parseState, t token) error {
	switch t.kind {
	case tokenNewline:
		return nil
	case tokenBlank:
		if !s.sawURL {
			return syntaxError(t.pos, "link definition missing URL")
		}
		if err := p.closeElement(s.e, t.pos); err != nil {
			return err
		}
		p.popParser()
		return nil
	case tokenChar:
		if t.c == '<' && !s.sawURL {
			s.sawURL = true
			u := p.openElement("url")
			p.pushParser(&urlParser{e: u})
			return nil
		}
	}
	return syntaxError(t.pos, "unexpected %v in link definition", t)
}

// urlParser accumulates a URL up to its closing angle bracket.
type urlParser struct {
	e *Element
}

func (s *urlParser) grok(p *parseState, t token) error {
	if t.kind != tokenChar {
		return syntaxError(t.pos, "unterminated URL")
	}
	if t.c == '>' {
		if err := p.closeElement(s.e, t.pos); err != nil {
			return err
		}
		p.popParser()
		return nil
	}
	p.appendText(string(t.c))
	return nil
}

// markerParser disambiguates a block-start - or #: marker plus space
// begins a list at the current indentation, -*- on the first line is an
// editor modeline to discard, and anything else reverts to a paragraph.
type markerParser struct {
	buf        []token
	modelineOK bool
	braceIsEOF bool
	inModeline bool
}

func (s *markerParser) grok(p *parseState, t token) error {
	if s.inModeline {
		switch t.kind {
		case tokenChar:
			s.buf = append(s.buf, t)
			return nil
		case tokenNewline, tokenBlank:
			text := new(strings.Builder)
			for _, tok := range s.buf {
				text.WriteRune(tok.c)
			}
			if line := text.String(); len(line) >= 6 && strings.HasSuffix(line, "-*-") {
				p.popParser()
				return nil
			}
			return s.revert(p, t)
		}
		return s.revert(p, t)
	}

	switch {
	case t.isChar(' '):
		marker := s.buf[0]
		tag := "ul"
		if marker.c == '#' {
			tag = "ol"
		}
		list := p.openElement(tag)
		p.swapParser(&listParser{e: list})
		if err := p.deliver(marker); err != nil {
			return err
		}
		return p.deliver(t)
	case t.isChar('*') && s.modelineOK && s.buf[0].c == '-':
		s.inModeline = true
		s.buf = append(s.buf, t)
		return nil
	default:
		return s.revert(p, t)
	}
}

func (s *markerParser) revert(p *parseState, t token) error {
	para := p.openElement("p")
	p.swapParser(&paragraphParser{e: para, braceIsEOF: s.braceIsEOF})
	for _, tok := range s.buf {
		if err := p.deliver(tok); err != nil {
			return err
		}
	}
	return p.deliver(t)
}

// hashParser disambiguates a block-start #: "# " begins an ordered
// list, "## name" opens a named section at the top level, "##." closes
// the enclosing section, and anything else reverts to a paragraph.
type hashParser struct {
	owner *documentParser
	buf   []token
	name  []rune

	sawSecondHash bool
	sectionName   bool
	sectionClose  bool
}

func (s *hashParser) grok(p *parseState, t token) error {
	switch {
	case s.sectionName:
		switch t.kind {
		case tokenChar:
			s.name = append(s.name, t.c)
			return nil
		case tokenBlank:
			name := strings.TrimSpace(string(s.name))
			if name == "" {
				return syntaxError(t.pos, "empty section name")
			}
			sec := p.openElement(name)
			p.swapParser(&documentParser{e: sec, nestedSection: true})
			return nil
		default:
			return syntaxError(t.pos, "section header must be followed by a blank line")
		}

	case s.sectionClose:
		if t.kind != tokenBlank {
			return syntaxError(t.pos, "section close must be followed by a blank line")
		}
		p.popParser()
		p.popParser()
		return p.closeElement(s.owner.e, t.pos)

	case !s.sawSecondHash:
		switch {
		case t.isChar(' '):
			list := p.openElement("ol")
			p.swapParser(&listParser{e: list})
			if err := p.deliver(s.buf[0]); err != nil {
				return err
			}
			return p.deliver(t)
		case t.isChar('#'):
			s.sawSecondHash = true
			s.buf = append(s.buf, t)
			return nil
		default:
			return s.revert(p, t)
		}

	default: // saw "##"
		switch {
		case t.isChar(' '):
			if !s.owner.root {
				return syntaxError(t.pos, "sections do not nest")
			}
			s.sectionName = true
			return nil
		case t.isChar('.'):
			if !s.owner.nestedSection {
				return syntaxError(t.pos, "section close without an open section")
			}
			s.sectionClose = true
			return nil
		default:
			return s.revert(p, t)
		}
	}
}

func (s *hashParser) revert(p *parseState, t token) error {
	para := p.openElement("p")
	p.swapParser(&paragraphParser{e: para, braceIsEOF: s.owner.braceIsEOF})
	for _, tok := range s.buf {
		if err := p.deliver(tok); err != nil {
			return err
		}
	}
	return p.deliver(t)
}
