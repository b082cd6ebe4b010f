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

// Package spec provides access to the example corpus for the markup
// language.
package spec

import (
	_ "embed"
	"encoding/json"
)

// Example is a single example from the corpus.
type Example struct {
	// Name identifies the example in test output.
	Name string
	// Markup is the source text.
	Markup string
	// Subdocs lists the subdocument tags the example is parsed with.
	Subdocs []string
	// TabWidth overrides the tab width when nonzero.
	TabWidth int
	// Resolve indicates that link resolution runs before comparison.
	Resolve bool
	// Tree is the expected element tree in array form.
	Tree []any
	// HTML, if set, is the expected rendering
	// (compared after normalization).
	HTML string
}

//go:embed spec.json
var specData []byte

// Load returns the examples from the corpus.
func Load() ([]Example, error) {
	var testsuite []Example
	if err := json.Unmarshal(specData, &testsuite); err != nil {
		return nil, err
	}
	return testsuite, nil
}
