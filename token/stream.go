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
	"iter"
	"math"

	"github.com/IBims1NicerTobi/sus-compiler/report"
)

// Stream is the token stream for one source file.
//
// Internally, Stream uses a compressed representation: because the lexer
// covers every input byte with some token (extras included), only the end
// offset of each token is stored; a token's start is its predecessor's
// end. This makes the exact-text round-trip property structural; it
// cannot be broken by a lexer bug that drops text.
type Stream struct {
	file *report.File

	nats []nat
}

// nat is the stored representation of a token.
type nat struct {
	end  uint32
	kind Kind
}

// NewStream constructs an empty stream over the given file, ready for a
// lexer to push tokens into.
func NewStream(file *report.File) *Stream {
	return &Stream{file: file}
}

// File returns the source file this stream tokenizes.
func (s *Stream) File() *report.File {
	return s.file
}

// Len returns the number of tokens in this stream.
func (s *Stream) Len() int {
	return len(s.nats)
}

// Push mints the next token, covering the next length bytes of the input.
//
// Tokens are contiguous: the new token starts where the previous one
// ended. Panics if the new token would run past the end of the file, or
// if length is negative.
func (s *Stream) Push(length int, kind Kind) Token {
	if length < 0 || length > math.MaxInt32 {
		panic(fmt.Sprintf("sus/token: Push() called with invalid length: %d", length))
	}

	var prevEnd int
	if len(s.nats) > 0 {
		prevEnd = int(s.nats[len(s.nats)-1].end)
	}

	end := prevEnd + length
	if end > len(s.file.Text()) {
		panic(fmt.Sprintf("sus/token: Push() overflowed backing text: %d > %d", end, len(s.file.Text())))
	}

	s.nats = append(s.nats, nat{end: uint32(end), kind: kind})
	return Token{stream: s, id: ID(len(s.nats))}
}

// All returns an iterator over every token in this stream, extras
// included, in source order.
func (s *Stream) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for i := range s.nats {
			if !yield(Token{stream: s, id: ID(i + 1)}) {
				return
			}
		}
	}
}

// Cursor returns a new cursor positioned at the start of this stream.
func (s *Stream) Cursor() *Cursor {
	return &Cursor{stream: s}
}

// EOF returns a zero-length span pointing just past the last token.
func (s *Stream) EOF() report.Span {
	end := len(s.file.Text())
	if len(s.nats) > 0 {
		end = int(s.nats[len(s.nats)-1].end)
	}
	return s.file.Span(end, end)
}
