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

// A Visitor receives the events of a pre-order walk over an element
// tree. For each element, OpenTag is called, then the children are
// visited, then CloseTag; string leaves invoke Text.
//
// Renderers decide per-tag formatting policy (block versus inline,
// rewriting configured tags as div/span wrappers, mapping links to
// anchors), so both tag callbacks receive the element itself.
type Visitor interface {
	OpenTag(el *Element)
	Text(text string)
	CloseTag(el *Element)
}

// Walk traverses the tree rooted at el in document order,
// invoking v's callbacks.
func Walk(el *Element, v Visitor) {
	v.OpenTag(el)
	for _, c := range el.Children() {
		switch c := c.(type) {
		case Text:
			v.Text(string(c))
		case *Element:
			Walk(c, v)
		}
	}
	v.CloseTag(el)
}
