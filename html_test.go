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
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"zombiezen.com/go/markup/internal/normhtml"
)

func renderString(t *testing.T, r *HTMLRenderer, src string, subdocs ...string) string {
	t.Helper()
	doc, err := (&Markup{Subdocs: subdocs}).Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	if err := Resolve(doc); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	buf := new(bytes.Buffer)
	if err := r.Render(buf, doc); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestRenderHTML(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "Paragraphs",
			src:  "abc\n\nefg\n",
			want: "<p>abc</p>\n<p>efg</p>\n",
		},
		{
			name: "Header",
			src:  "* Title\n",
			want: "<h1>Title</h1>\n",
		},
		{
			name: "EscapedText",
			src:  "a <b> & 'c'\n",
			want: "<p>a &lt;b&gt; &amp; &#39;c&#39;</p>\n",
		},
		{
			name: "Verbatim",
			src:  "   x < y\n",
			want: "<pre>x &lt; y</pre>\n",
		},
		{
			name: "Link",
			src:  "[Docs|docs]\n\n[docs] <http://example.com/d>\n",
			want: "<p><a href=\"http://example.com/d\">Docs</a></p>\n",
		},
		{
			name: "InlineTag",
			src:  "so \\i{very} nice\n",
			want: "<p>so <i>very</i> nice</p>\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := renderString(t, new(HTMLRenderer), test.src)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("rendered HTML (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderHTMLDivsAndSpans(t *testing.T) {
	r := &HTMLRenderer{
		Divs:  map[string]bool{"note": true},
		Spans: map[string]bool{"code": true},
	}
	got := renderString(t, r, "\\note{A \\code{thing}.}\n", "note")
	want := "<p><div class='note'><p>A <span class='code'>thing</span>.</p>\n</div>\n</p>\n"
	if diff := cmp.Diff(
		string(normhtml.NormalizeHTML([]byte(want))),
		string(normhtml.NormalizeHTML([]byte(got))),
	); diff != "" {
		t.Errorf("rendered HTML (-want +got):\n%s", diff)
	}
}

func TestRenderHTMLUnknownTag(t *testing.T) {
	got := renderString(t, new(HTMLRenderer), "an \\xyzzy{odd} tag\n")
	want := "<p>an <xyzzy>odd</xyzzy> tag</p>\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rendered HTML (-want +got):\n%s", diff)
	}
}

func TestRenderHTMLBlockElementsOption(t *testing.T) {
	// With an explicit (empty) block set, no newlines are emitted.
	r := &HTMLRenderer{BlockElements: map[string]bool{}}
	got := renderString(t, r, "abc\n\nefg\n")
	want := "<p>abc</p><p>efg</p>"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rendered HTML (-want +got):\n%s", diff)
	}
}

func TestNormalizeURI(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://example.com/", "http://example.com/"},
		{"http://example.com/a b", "http://example.com/a%20b"},
		{"http://example.com/%20", "http://example.com/%20"},
		{"http://example.com/100%", "http://example.com/100%25"},
		{"http://example.com/ö", "http://example.com/%C3%B6"},
	}
	for _, test := range tests {
		if got := NormalizeURI(test.in); got != test.want {
			t.Errorf("NormalizeURI(%q) = %q; want %q", test.in, got, test.want)
		}
	}
}
