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

package parser

import (
	"fmt"
	"strings"

	"github.com/IBims1NicerTobi/sus-compiler/report"
	"github.com/IBims1NicerTobi/sus-compiler/token"
)

// errUnrecognized diagnoses a run of input the lexer could not make a
// token out of.
type errUnrecognized struct {
	Token token.Token
}

// Error implements [error].
func (e errUnrecognized) Error() string {
	return "unrecognized token"
}

// Diagnose implements [report.Diagnose].
func (e errUnrecognized) Diagnose(d *report.Diagnostic) {
	d.With(report.Snippetf(e.Token, "expected an identifier, number, or punctuation"))
}

// errUnterminatedComment diagnoses a /* comment that runs off the end
// of the file.
type errUnterminatedComment struct {
	Open report.Span
}

// Error implements [error].
func (e errUnterminatedComment) Error() string {
	return "unterminated block comment"
}

// Diagnose implements [report.Diagnose].
func (e errUnterminatedComment) Diagnose(d *report.Diagnostic) {
	d.With(
		report.Snippetf(e.Open, "comment opened here"),
		report.Notef("expected a closing `*/`"),
	)
}

// errUnexpected is the general-purpose "unexpected token" parse error.
type errUnexpected struct {
	// The offending token; the zero token stands for end-of-file.
	found token.Token
	// Span to annotate when found is the zero token.
	eof report.Span

	// What was expected instead, e.g. "`module`" or "an expression".
	want string
	// Where it happened, e.g. "in module header". May be empty.
	where string
}

// Error implements [error].
func (e errUnexpected) Error() string {
	var out strings.Builder
	fmt.Fprintf(&out, "unexpected %v", e.found.Kind())
	if e.where != "" {
		out.WriteByte(' ')
		out.WriteString(e.where)
	}
	return out.String()
}

// Diagnose implements [report.Diagnose].
func (e errUnexpected) Diagnose(d *report.Diagnostic) {
	span := e.eof
	if !e.found.IsZero() {
		span = e.found.Span()
	}
	d.With(report.Snippetf(span, "expected %s", e.want))
}

// errExpectedSeparator diagnoses two statements on the same line.
type errExpectedSeparator struct {
	found token.Token
}

// Error implements [error].
func (e errExpectedSeparator) Error() string {
	return "statements must be separated by a line break"
}

// Diagnose implements [report.Diagnose].
func (e errExpectedSeparator) Diagnose(d *report.Diagnostic) {
	d.With(report.Snippetf(e.found, "expected a line break before this"))
}
