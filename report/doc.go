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

// Package report provides source files, byte-offset spans, and the
// diagnostics that the lexer and parser accumulate instead of failing.
//
// A [Report] is an ordered list of [Diagnostic]s. Components that detect
// problems append to a shared Report and keep going; the caller decides
// what to do with the collected diagnostics once parsing completes. This
// is what allows the front end to guarantee that every parse returns a
// complete tree, no matter how broken the input is.
//
// Spans are plain byte ranges into a [File]. Line and column information
// is derived lazily, since most spans are never shown to a user.
package report
