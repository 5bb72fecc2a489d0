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

// Package token defines the tokens of the SUS surface syntax and the
// stream the lexer produces.
//
// Tokens are immutable byte ranges into a [report.File], produced in
// strict source order with no gaps: concatenating the text of every
// token in a [Stream] reproduces the file exactly. Whitespace and
// comments are "extras": real tokens that the grammar never sees,
// because [Cursor] skips them, but which stay in the stream so that
// exact-text round-trip tooling keeps working.
//
// A newline is not an extra. The SUS grammar uses line breaks as
// statement and list separators, so `\n` is a token in its own right
// and the parser decides where runs of them are significant.
package token
