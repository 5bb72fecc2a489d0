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
	"cmp"
	"fmt"
	"slices"
)

// Report is a collection of diagnostics, in the order they were
// generated.
//
// A zero Report is empty and ready to use. Reports are not synchronized;
// each parse should own its own Report.
type Report struct {
	Diagnostics []Diagnostic
}

// Error pushes a new error diagnostic described by err onto this report.
func (r *Report) Error(err Diagnose) *Diagnostic {
	d := r.push(Error, err.Error())
	err.Diagnose(d)
	return d
}

// Errorf pushes a new error diagnostic with a formatted message.
func (r *Report) Errorf(format string, args ...any) *Diagnostic {
	return r.push(Error, fmt.Sprintf(format, args...))
}

// Warnf pushes a new warning diagnostic with a formatted message.
func (r *Report) Warnf(format string, args ...any) *Diagnostic {
	return r.push(Warning, fmt.Sprintf(format, args...))
}

// Remarkf pushes a new remark with a formatted message.
func (r *Report) Remarkf(format string, args ...any) *Diagnostic {
	return r.push(Remark, fmt.Sprintf(format, args...))
}

// Count returns the number of diagnostics of the given level.
func (r *Report) Count(level Level) int {
	var n int
	for i := range r.Diagnostics {
		if r.Diagnostics[i].level == level {
			n++
		}
	}
	return n
}

// HasErrors returns whether this report contains any error diagnostics.
func (r *Report) HasErrors() bool {
	return r.Count(Error) > 0
}

// Sort reorders this report's diagnostics by file and then by start
// offset of their primary spans. The sort is stable, so diagnostics at
// the same position keep their generation order.
func (r *Report) Sort() {
	slices.SortStableFunc(r.Diagnostics, func(a, b Diagnostic) int {
		if diff := cmp.Compare(a.Path(), b.Path()); diff != 0 {
			return diff
		}
		return cmp.Compare(a.Primary().Start, b.Primary().Start)
	})
}

func (r *Report) push(level Level, message string) *Diagnostic {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		level:   level,
		message: message,
	})
	return &r.Diagnostics[len(r.Diagnostics)-1]
}
