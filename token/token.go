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

package token

import (
	"fmt"

	"github.com/IBims1NicerTobi/sus-compiler/report"
)

// ID is the identity of a [Token] within its [Stream]. IDs are dense and
// 1-indexed; 0 is reserved for the zero token.
type ID uint32

// In rehydrates this ID into a [Token] belonging to the given stream.
func (id ID) In(s *Stream) Token {
	return Token{stream: s, id: id}
}

// Zero is the zero [Token], which behaves like an end-of-file token with
// no position.
var Zero Token

// Token is a single lexical element of a source file.
//
// A Token is a lightweight handle into its [Stream]; copying it does not
// copy any text. The zero Token reports [EOF] as its kind.
type Token struct {
	stream *Stream
	id     ID
}

// IsZero returns whether this is the zero token.
func (t Token) IsZero() bool {
	return t.id == 0
}

// ID returns this token's ID within its stream.
func (t Token) ID() ID {
	return t.id
}

// Stream returns the stream this token belongs to, or nil for the zero
// token.
func (t Token) Stream() *Stream {
	return t.stream
}

// Kind returns this token's kind. The zero token is [EOF].
func (t Token) Kind() Kind {
	if t.IsZero() {
		return EOF
	}
	return t.stream.nats[t.id-1].kind
}

// Start returns this token's start byte offset.
func (t Token) Start() int {
	if t.IsZero() || t.id == 1 {
		return 0
	}
	return int(t.stream.nats[t.id-2].end)
}

// End returns this token's end byte offset (exclusive).
func (t Token) End() int {
	if t.IsZero() {
		return 0
	}
	return int(t.stream.nats[t.id-1].end)
}

// Text returns this token's raw source text.
func (t Token) Text() string {
	if t.IsZero() {
		return ""
	}
	return t.stream.file.Text()[t.Start():t.End()]
}

// Span implements [report.Spanner].
//
// The zero token has a zero span; a zero-stream EOF can be given a span
// with [Stream.EOF].
func (t Token) Span() report.Span {
	if t.IsZero() {
		return report.Span{}
	}
	return t.stream.file.Span(t.Start(), t.End())
}

// String implements [fmt.Stringer], for debugging.
func (t Token) String() string {
	if t.IsZero() {
		return "Token(<zero>)"
	}
	return fmt.Sprintf("Token(%d, %v, %q)", t.id, t.Kind(), t.Text())
}
