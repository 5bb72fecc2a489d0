// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package sus is the front end for the SUS hardware description
// language: a lexer and parser that turn source text into a concrete
// syntax tree.
//
// The interesting packages are [token], [cst], and [parser]; this
// package ties them together with convenience entry points and a
// [Session] for parsing many files concurrently.
package sus

import (
	"os"

	"github.com/IBims1NicerTobi/sus-compiler/cst"
	"github.com/IBims1NicerTobi/sus-compiler/parser"
	"github.com/IBims1NicerTobi/sus-compiler/report"
)

// Parse parses a single source file, given as raw text.
//
// Parse always returns a tree, even for badly malformed input; check
// the report (or [cst.Tree.HasErrors]) to see whether the input was
// actually valid. The report's diagnostics are sorted by position.
func Parse(path, text string) (*cst.Tree, *report.Report) {
	errs := &report.Report{}
	tree := parser.Parse(report.NewFile(path, text), errs)
	errs.Sort()
	return tree, errs
}

// ParseFile reads path from disk and parses it. The returned error is
// only ever an I/O error; syntax errors land in the report.
func ParseFile(path string) (*cst.Tree, *report.Report, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	tree, errs := Parse(path, string(text))
	return tree, errs, nil
}
