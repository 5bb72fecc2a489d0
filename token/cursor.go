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

// Cursor is an iterator-like construct for walking a [Stream]. Unlike a
// plain range func, it supports peeking and rewinding, which is what a
// recursive-descent parser wants.
//
// The Peek/Next pair skips extras (whitespace and comments). Newline
// tokens are never skipped; the grammar consumes them explicitly.
type Cursor struct {
	stream *Stream

	// Index of the next token to yield, 0-based.
	idx int
}

// CursorMark is the return value of [Cursor.Mark], which marks a position
// on a Cursor for rewinding to.
type CursorMark struct {
	owner *Cursor
	idx   int
}

// Done returns whether there are tokens left to yield.
func (c *Cursor) Done() bool {
	return c.Peek().IsZero()
}

// Mark makes a mark on this cursor that can be rewound to.
func (c *Cursor) Mark() CursorMark {
	return CursorMark{owner: c, idx: c.idx}
}

// Rewind moves this cursor back to the position described by mark.
//
// Panics if mark was not created by this cursor's Mark method.
func (c *Cursor) Rewind(mark CursorMark) {
	if c != mark.owner {
		panic("sus/token: rewound cursor using the wrong cursor's mark")
	}
	c.idx = mark.idx
}

// PeekSkippable returns the next token in the stream, extras included.
//
// Returns the zero token at the end of the stream.
func (c *Cursor) PeekSkippable() Token {
	if c.idx >= len(c.stream.nats) {
		return Zero
	}
	return Token{stream: c.stream, id: ID(c.idx + 1)}
}

// NextSkippable returns the next token, extras included, and advances
// the cursor.
func (c *Cursor) NextSkippable() Token {
	tok := c.PeekSkippable()
	if !tok.IsZero() {
		c.idx++
	}
	return tok
}

// Peek returns the next non-extra token without advancing.
//
// Returns the zero token, whose kind is [EOF], at the end of the stream.
func (c *Cursor) Peek() Token {
	idx := c.idx
	tok := c.Next()
	c.idx = idx
	return tok
}

// Next returns the next non-extra token and advances the cursor past it.
func (c *Cursor) Next() Token {
	for {
		next := c.NextSkippable()
		if next.IsZero() || !next.Kind().IsSkippable() {
			return next
		}
	}
}
