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

	"github.com/alecthomas/repr"
	"github.com/google/go-cmp/cmp"
	"zombiezen.com/go/markup/internal/normhtml"
	"zombiezen.com/go/markup/internal/spec"
)

func loadTestSuite(tb testing.TB) []spec.Example {
	testsuite, err := spec.Load()
	if err != nil {
		tb.Fatal(err)
	}
	return testsuite
}

func TestSpec(t *testing.T) {
	for _, test := range loadTestSuite(t) {
		t.Run(test.Name, func(t *testing.T) {
			m := &Markup{Subdocs: test.Subdocs, TabWidth: test.TabWidth}
			doc, err := m.Parse([]byte(test.Markup))
			if err != nil {
				t.Fatal("Parse:", err)
			}
			if test.Resolve {
				if err := Resolve(doc); err != nil {
					t.Fatal("Resolve:", err)
				}
			}

			if diff := cmp.Diff(test.Tree, doc.ToArray()); diff != "" {
				t.Errorf("Input:\n%s\nTree (-want +got):\n%s\ngot: %s", test.Markup, diff, repr.String(doc.ToArray()))
			}

			if test.HTML != "" {
				buf := new(bytes.Buffer)
				if err := RenderHTML(buf, doc); err != nil {
					t.Error("RenderHTML:", err)
				}
				got := string(normhtml.NormalizeHTML(buf.Bytes()))
				want := string(normhtml.NormalizeHTML([]byte(test.HTML)))
				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("Input:\n%s\nHTML (-want +got):\n%s", test.Markup, diff)
				}
			}
		})
	}
}
