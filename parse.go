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

// Package markup parses a lightweight, indentation-sensitive plain-text
// markup language into a tree of tagged elements that renderers can
// walk.
//
// The pipeline has three stages: a character cleaner that normalizes
// newlines, expands tabs, and drops trailing whitespace; a tokenizer
// that turns indentation changes into structural tokens; and a
// recursive-descent parser driven by a stack of small cooperating
// parser states. [Parse] runs all three and returns the document
// element (tagged "body").
package markup

import (
	"fmt"
	"unicode/utf8"
)

// Markup holds the parser configuration.
// The zero value parses with no subdocument tags and a tab width of 8.
type Markup struct {
	// Subdocs lists tags whose \name{...} bodies are parsed with block
	// rules instead of inline rules.
	Subdocs []string
	// TabWidth is the number of spaces a tab expands to.
	// Zero means 8.
	TabWidth int
}

// Parse parses source with the default options.
func Parse(source []byte) (*Element, error) {
	return new(Markup).Parse(source)
}

// Parse parses a UTF-8 document into its element tree.
// The returned element is tagged "body"; its children are the
// document's block elements. Parsing stops at the first structural
// error and returns a [*ParseError].
func (m *Markup) Parse(source []byte) (*Element, error) {
	if !utf8.Valid(source) {
		return nil, fmt.Errorf("markup: parse: source is not valid UTF-8")
	}
	p := &parseState{
		subdocs: make(map[string]bool, len(m.Subdocs)),
		tok:     newTokenizer(newCleaner(string(source), m.TabWidth)),
	}
	for _, tag := range m.Subdocs {
		p.subdocs[tag] = true
	}

	doc := &Element{tag: "body"}
	p.elements = []*Element{doc}
	p.parsers = []parser{&documentParser{e: doc, root: true}}

	for {
		tok, ok := p.tok.next()
		if !ok {
			break
		}
		if err := p.deliver(tok); err != nil {
			return nil, err
		}
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	return doc, nil
}

// parser is a single state in the parser stack.
// grok consumes one token, mutating the element tree and the parser
// stack through p.
type parser interface {
	grok(p *parseState, t token) error
}

// parseState owns the element stack and the parser stack for one parse.
// The top of the element stack is the currently open element; the top
// of the parser stack receives the next token.
type parseState struct {
	tok      *tokenizer
	subdocs  map[string]bool
	elements []*Element
	parsers  []parser
}

// deliver hands t to the current parser. Parsers re-deliver tokens to
// the state below them by calling deliver again after popping or
// swapping themselves.
func (p *parseState) deliver(t token) error {
	return p.currentParser().grok(p, t)
}

func (p *parseState) currentParser() parser {
	return p.parsers[len(p.parsers)-1]
}

func (p *parseState) pushParser(s parser) {
	p.parsers = append(p.parsers, s)
}

func (p *parseState) popParser() {
	p.parsers = p.parsers[:len(p.parsers)-1]
}

// swapParser replaces the current parser with s.
func (p *parseState) swapParser(s parser) {
	p.parsers[len(p.parsers)-1] = s
}

// currentElement returns the element new content is appended to.
func (p *parseState) currentElement() *Element {
	return p.elements[len(p.elements)-1]
}

// openElement appends a new element to the current element's children
// and makes it current.
func (p *parseState) openElement(tag string) *Element {
	el := &Element{tag: tag}
	p.currentElement().appendChild(el)
	p.elements = append(p.elements, el)
	return el
}

// closeElement closes e, which must be the currently open element.
func (p *parseState) closeElement(e *Element, pos Position) error {
	if p.currentElement() != e {
		return syntaxError(pos, "close of element <%s> that is not the innermost open element <%s>", e.Tag(), p.currentElement().Tag())
	}
	p.elements = p.elements[:len(p.elements)-1]
	return nil
}

// appendText adds text to the currently open element.
func (p *parseState) appendText(s string) {
	p.currentElement().appendText(s)
}

// finish unwinds the parser stack after the token stream ends.
// Lists opened at indentation zero have no closing dedent token and
// are closed here; any other leftover state is an unterminated
// construct.
func (p *parseState) finish() error {
	for {
		switch s := p.currentParser().(type) {
		case *documentParser:
			if s.root {
				if len(p.elements) != 1 {
					return syntaxError(p.tok.lastPos, "unclosed element <%s> at end of input", p.currentElement().Tag())
				}
				return nil
			}
			if s.nestedSection {
				return syntaxError(p.tok.lastPos, "unclosed section <%s> at end of input", s.e.Tag())
			}
			return syntaxError(p.tok.lastPos, "unterminated \\%s{ at end of input", s.e.Tag())
		case *listParser:
			if err := p.closeElement(s.e, p.tok.lastPos); err != nil {
				return err
			}
			p.popParser()
		case *indentedElementParser:
			// A list at indentation zero has no closing dedent, so the
			// final item's body can still be open here.
			if err := p.closeElement(s.e, p.tok.lastPos); err != nil {
				return err
			}
			p.popParser()
		default:
			return syntaxError(p.tok.lastPos, "unexpected end of input")
		}
	}
}
