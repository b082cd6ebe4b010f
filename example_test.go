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

package markup_test

import (
	"fmt"
	"os"

	"zombiezen.com/go/markup"
)

func Example() {
	// Parse markup into an element tree and render it as HTML.
	doc, err := markup.Parse([]byte("* Greetings\n\nHello, \\i{world}!\n"))
	if err != nil {
		panic(err)
	}
	markup.RenderHTML(os.Stdout, doc)
	// Output:
	// <h1>Greetings</h1>
	// <p>Hello, <i>world</i>!</p>
}

func ExampleResolve() {
	input := "Read the [fine manual|manual].\n" +
		"\n" +
		"[manual] <https://www.example.com/docs>\n"

	doc, err := markup.Parse([]byte(input))
	if err != nil {
		panic(err)
	}
	// Extract link definitions and substitute each link's URL.
	if err := markup.Resolve(doc); err != nil {
		panic(err)
	}
	markup.RenderHTML(os.Stdout, doc)
	// Output:
	// <p>Read the <a href="https://www.example.com/docs">fine manual</a>.</p>
}

func ExampleElement_String() {
	doc, err := markup.Parse([]byte("- one\n- two\n"))
	if err != nil {
		panic(err)
	}
	fmt.Println(doc)
	// Output:
	// (body (ul (li (p "one")) (li (p "two"))))
}
