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

package report

import "fmt"

// Level represents the severity of a diagnostic message.
type Level int8

const (
	// Red. A constraint violation in the input: a lex or syntax error.
	Error Level = 1 + iota
	// Yellow. Something that probably should not be ignored.
	Warning
	// Cyan. The diagnostics version of "info".
	Remark
)

// String implements [fmt.Stringer].
func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Remark:
		return "remark"
	default:
		return fmt.Sprintf("report.Level(%d)", int8(l))
	}
}

// Diagnose is an error that can be rendered as a diagnostic.
//
// Errors constructed by the lexer and parser implement this interface so
// that the site that detects a problem, and the code that formats it,
// stay decoupled.
type Diagnose interface {
	error

	// Diagnose applies options to the given diagnostic, such as snippets
	// and notes. It should not set the level or the message; those are
	// set by the report.
	Diagnose(*Diagnostic)
}

// Diagnostic is a single problem (or remark) attached to a source file.
//
// To construct a diagnostic, call one of the [Report] methods, then
// apply options with [Diagnostic.With].
type Diagnostic struct {
	message string
	level   Level

	// The file this diagnostic occurs in, if it has no annotations. Used
	// for file-scoped errors that cannot be given a snippet.
	inFile string

	annotations []annotation
	notes       []string
}

// annotation is an annotated source span within a [Diagnostic].
type annotation struct {
	span    Span
	message string
	primary bool
}

// DiagnosticOption is an option that can be applied to a [Diagnostic].
//
// Nil values passed to [Diagnostic.With] are ignored.
type DiagnosticOption interface {
	Apply(*Diagnostic)
}

// Message returns this diagnostic's message.
func (d *Diagnostic) Message() string {
	return d.message
}

// Level returns this diagnostic's level.
func (d *Diagnostic) Level() Level {
	return d.level
}

// Notes returns this diagnostic's notes.
func (d *Diagnostic) Notes() []string {
	return d.notes
}

// Primary returns this diagnostic's primary span: the span of the first
// annotation added to it.
//
// If it doesn't have one, it returns the zero span.
func (d *Diagnostic) Primary() Span {
	for _, annotation := range d.annotations {
		if annotation.primary {
			return annotation.span
		}
	}
	return Span{}
}

// Path returns the path of the file this diagnostic is for.
func (d *Diagnostic) Path() string {
	if primary := d.Primary(); !primary.IsZero() {
		return primary.File.Path()
	}
	return d.inFile
}

// With applies the given options to this diagnostic.
//
// Nil values are ignored.
func (d *Diagnostic) With(options ...DiagnosticOption) *Diagnostic {
	for _, option := range options {
		if option != nil {
			option.Apply(d)
		}
	}
	return d
}

// InFile is a DiagnosticOption that causes a diagnostic without a primary
// span to mention the given file.
type InFile string

// Apply implements [DiagnosticOption].
func (f InFile) Apply(d *Diagnostic) {
	d.inFile = string(f)
}

// Snippet returns a DiagnosticOption that adds a source snippet to a
// diagnostic. Snippet(at) is equivalent to Snippetf(at, "").
//
// The first annotation added is the "primary" annotation; its span is
// the span of the diagnostic as a whole.
func Snippet(at Spanner) DiagnosticOption {
	return Snippetf(at, "")
}

// Snippetf is like [Snippet], but attaches a formatted message to the
// snippet.
//
// If at is nil, or has a zero span, this function returns nil, which
// [Diagnostic.With] ignores.
func Snippetf(at Spanner, format string, args ...any) DiagnosticOption {
	span := getSpan(at)
	if span.IsZero() {
		return nil
	}

	return snippet{
		span:    span,
		message: fmt.Sprintf(format, args...),
	}
}

type snippet struct {
	span    Span
	message string
}

// Apply implements [DiagnosticOption].
func (s snippet) Apply(d *Diagnostic) {
	d.annotations = append(d.annotations, annotation{
		span:    s.span,
		message: s.message,
		primary: len(d.annotations) == 0,
	})
}

// Notef returns a DiagnosticOption that appends a formatted note to the
// end of a diagnostic.
func Notef(format string, args ...any) DiagnosticOption {
	return note(fmt.Sprintf(format, args...))
}

type note string

// Apply implements [DiagnosticOption].
func (n note) Apply(d *Diagnostic) {
	d.notes = append(d.notes, string(n))
}
