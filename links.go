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

	"golang.org/x/text/cases"
)

var keyFolder = cases.Fold()

// normalizeKey prepares a link key for lookup:
// interior whitespace collapses to single spaces and the result is
// Unicode case-folded, so "Foo  Bar" and "foo bar" match.
func normalizeKey(s string) string {
	return keyFolder.String(strings.Join(strings.Fields(s), " "))
}

// LinkDefs collects the link definitions among doc's top-level
// children into a mapping from link key to URL.
// In case of duplicate keys, the first definition in document order
// wins.
func LinkDefs(doc *Element) map[string]string {
	return linkDefs(doc, false)
}

// ExtractLinkDefs is like [LinkDefs] but also removes the link_def
// children from doc.
func ExtractLinkDefs(doc *Element) map[string]string {
	return linkDefs(doc, true)
}

func linkDefs(doc *Element, remove bool) map[string]string {
	defs := make(map[string]string)
	for i := 0; i < len(doc.children); {
		child, ok := doc.children[i].(*Element)
		if !ok || child.Tag() != "link_def" {
			i++
			continue
		}
		var key, url string
		for _, c := range child.children {
			e, ok := c.(*Element)
			if !ok {
				continue
			}
			switch e.Tag() {
			case "link":
				key = normalizeKey(e.Text())
			case "url":
				url = e.Text()
			}
		}
		if _, exists := defs[key]; key != "" && !exists {
			defs[key] = url
		}
		if remove {
			doc.removeChild(i)
		} else {
			i++
		}
	}
	return defs
}

// LinkKey returns the lookup key for a link element and removes the
// explicit key child, if any. When the link has no key child, the key
// is the link's own concatenated text.
func LinkKey(link *Element) string {
	for i, c := range link.children {
		if e, ok := c.(*Element); ok && e.Tag() == "key" {
			link.removeChild(i)
			return e.Text()
		}
	}
	return link.Text()
}

// Resolve performs the link-resolution post-pass on a parsed document:
// it extracts the document's link definitions, strips each link's key,
// and records the resolved URL as a url child of the link, which is
// what renderers consume. A link whose key has no definition is an
// error.
func Resolve(doc *Element) error {
	defs := ExtractLinkDefs(doc)
	return resolveLinks(doc, defs)
}

func resolveLinks(el *Element, defs map[string]string) error {
	if el.Tag() == "link" {
		key := LinkKey(el)
		url, ok := defs[normalizeKey(key)]
		if !ok {
			return fmt.Errorf("markup: resolve links: no definition for link %q", key)
		}
		el.appendChild(&Element{tag: "url", children: []Node{Text(url)}})
		return nil
	}
	for _, c := range el.children {
		if child, ok := c.(*Element); ok {
			if err := resolveLinks(child, defs); err != nil {
				return err
			}
		}
	}
	return nil
}
