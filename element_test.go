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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestElementTextCoalescing(t *testing.T) {
	el := &Element{tag: "p"}
	el.appendText("foo")
	el.appendText(" bar")
	if got := el.ChildCount(); got != 1 {
		t.Fatalf("ChildCount() = %d after appending two strings; want 1", got)
	}
	if got, want := el.Text(), "foo bar"; got != want {
		t.Errorf("Text() = %q; want %q", got, want)
	}

	el.appendChild(&Element{tag: "i", children: []Node{Text("x")}})
	el.appendText("!")
	want := []any{"p", "foo bar", []any{"i", "x"}, "!"}
	if diff := cmp.Diff(want, el.ToArray()); diff != "" {
		t.Errorf("ToArray() (-want +got):\n%s", diff)
	}
}

func TestElementText(t *testing.T) {
	el := NewElement("link", Text("Foo "), NewElement("i", Text("bar")), Text("!"))
	if got, want := el.Text(), "Foo bar!"; got != want {
		t.Errorf("Text() = %q; want %q", got, want)
	}
}

func TestFromArrayRoundTrip(t *testing.T) {
	arrs := [][]any{
		{"body"},
		{"body", []any{"p", "abc"}, []any{"p", "efg"}},
		{"body", []any{"ul", []any{"li", []any{"p", "one"}}}},
		{"p", "a", []any{"i", "b"}, "c"},
	}
	for _, arr := range arrs {
		el, err := FromArray(arr)
		if err != nil {
			t.Errorf("FromArray(%v): %v", arr, err)
			continue
		}
		if diff := cmp.Diff(arr, el.ToArray()); diff != "" {
			t.Errorf("FromArray(...).ToArray() (-want +got):\n%s", diff)
		}
	}
}

func TestFromArrayErrors(t *testing.T) {
	arrs := [][]any{
		{},
		{42},
		{"p", 42},
	}
	for _, arr := range arrs {
		if el, err := FromArray(arr); err == nil {
			t.Errorf("FromArray(%v) = %v; want error", arr, el)
		}
	}
}

func TestElementString(t *testing.T) {
	el := NewElement("p", Text("a "), NewElement("i", Text("b")))
	if got, want := el.String(), `(p "a " (i "b"))`; got != want {
		t.Errorf("String() = %q; want %q", got, want)
	}
}
