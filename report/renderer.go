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

import (
	"fmt"
	"strings"
)

// Render renders a single diagnostic as plain text, in the classic
// path:line:col style, followed by the annotated source lines and any
// notes.
func Render(d *Diagnostic) string {
	var out strings.Builder

	primary := d.Primary()
	if primary.IsZero() {
		fmt.Fprintf(&out, "%s: %s: %s\n", d.Path(), d.level, d.message)
	} else {
		start := primary.StartLoc()
		fmt.Fprintf(&out, "%s:%d:%d: %s: %s\n", d.Path(), start.Line, start.Column, d.level, d.message)
	}

	for _, annotation := range d.annotations {
		renderAnnotation(&out, annotation)
	}
	for _, note := range d.notes {
		fmt.Fprintf(&out, "  note: %s\n", note)
	}

	return out.String()
}

// RenderAll renders every diagnostic in a report, separated by blank
// lines.
func RenderAll(r *Report) string {
	var out strings.Builder
	for i := range r.Diagnostics {
		if i > 0 {
			out.WriteByte('\n')
		}
		out.WriteString(Render(&r.Diagnostics[i]))
	}
	return out.String()
}

func renderAnnotation(out *strings.Builder, a annotation) {
	start := a.span.StartLoc()
	line := a.span.File.Line(start.Line)

	fmt.Fprintf(out, "  %5d | %s\n", start.Line, line)

	// Underline the annotated range, clamped to the first line.
	underline := a.span.Len()
	if nl := strings.IndexByte(a.span.Text(), '\n'); nl != -1 {
		underline = nl
	}
	underline = max(underline, 1)

	var caret strings.Builder
	col := start.Column - 1
	for _, r := range line {
		if col == 0 {
			break
		}
		col--
		if r == '\t' {
			caret.WriteByte('\t')
		} else {
			caret.WriteByte(' ')
		}
	}
	fmt.Fprintf(out, "        | %s%s", caret.String(), strings.Repeat("^", underline))
	if a.message != "" {
		fmt.Fprintf(out, " %s", a.message)
	}
	out.WriteByte('\n')
}
