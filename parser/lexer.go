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
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/IBims1NicerTobi/sus-compiler/report"
	"github.com/IBims1NicerTobi/sus-compiler/token"
)

// Lex performs lexical analysis on file, appending any diagnostics to
// errs.
//
// Lexing never fails: every byte of the input ends up inside some
// token, with garbage becoming [token.Unrecognized] tokens.
func Lex(file *report.File, errs *report.Report) *token.Stream {
	l := &lexer{
		file:   file,
		stream: token.NewStream(file),
		Report: errs,
	}
	l.lex()
	return l.stream
}

type lexer struct {
	file   *report.File
	stream *token.Stream
	*report.Report

	cursor int
}

func (l *lexer) lex() {
	for !l.done() {
		start := l.cursor
		l.next()
		if l.cursor == start {
			panic(fmt.Sprintf(
				"sus/parser: lexer failed to make progress at offset %d; this is a bug", start))
		}
	}
}

// next lexes a single token.
func (l *lexer) next() {
	start := l.cursor
	rest := l.rest()
	r := l.peek()

	switch {
	case r == '\n':
		// A line break is its own token; the grammar uses it as the
		// statement separator.
		l.cursor++
		l.stream.Push(1, token.Newline)

	case r == ' ' || r == '\t' || r == '\r':
		l.takeWhile(func(r rune) bool {
			return r == ' ' || r == '\t' || r == '\r'
		})
		l.stream.Push(l.cursor-start, token.Space)

	case strings.HasPrefix(rest, "//"):
		// Line comment. Runs up to, but not including, the next line
		// break, which must remain a separate token.
		if nl := strings.IndexByte(rest, '\n'); nl != -1 {
			l.cursor += nl
		} else {
			l.cursor = len(l.text())
		}
		l.stream.Push(l.cursor-start, token.Comment)

	case strings.HasPrefix(rest, "/*"):
		// Block comment. Comments do not nest.
		if end := strings.Index(rest[2:], "*/"); end != -1 {
			l.cursor += 2 + end + 2
		} else {
			l.cursor = len(l.text())
			l.Error(errUnterminatedComment{
				Open: l.file.Span(start, start+2),
			})
		}
		l.stream.Push(l.cursor-start, token.Comment)

	case isDigit(r):
		l.takeWhile(func(r rune) bool {
			return isDigit(r) || r == '_'
		})
		l.stream.Push(l.cursor-start, token.Number)

	case isIdentStart(r):
		// Maximal munch, then classify: a keyword is only ever a
		// complete lexeme, so e.g. interface_thing stays an identifier.
		l.takeWhile(isIdentContinue)
		text := l.text()[start:l.cursor]
		l.stream.Push(l.cursor-start, token.LookupKeyword(text))

	default:
		for _, p := range punctuation {
			if strings.HasPrefix(rest, p.text) {
				l.cursor += len(p.text)
				l.stream.Push(len(p.text), p.kind)
				return
			}
		}
		l.unrecognized()
	}
}

// punctuation is ordered longest spelling first, so that maximal munch
// falls out of the scan order: `==` wins over `=`, `#(` over a bare `#`
// (which is no token at all).
var punctuation = []struct {
	text string
	kind token.Kind
}{
	{"::", token.ColonColon},
	{"->", token.Arrow},
	{"#(", token.HashParen},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"..", token.DotDot},

	{":", token.Colon},
	{"{", token.LBrace},
	{"}", token.RBrace},
	{"(", token.LParen},
	{")", token.RParen},
	{"[", token.LBracket},
	{"]", token.RBracket},
	{",", token.Comma},
	{"=", token.Eq},
	{"<", token.Lt},
	{">", token.Gt},
	{"+", token.Plus},
	{"-", token.Minus},
	{"*", token.Star},
	{"/", token.Slash},
	{"%", token.Percent},
	{"!", token.Bang},
	{"|", token.Pipe},
	{"&", token.Amp},
	{"^", token.Caret},
	{".", token.Dot},
	{"'", token.Quote},
}

// unrecognized mints a token for a maximal run of garbage, measured in
// grapheme clusters so that a single emoji is a single error, and
// diagnoses it once.
func (l *lexer) unrecognized() {
	start := l.cursor

	first := true
	graphemes := uniseg.NewGraphemes(l.rest())
	for graphemes.Next() {
		cluster := graphemes.Str()
		if !first && l.startsToken(cluster) {
			break
		}
		l.cursor += len(cluster)
		first = false
	}

	tok := l.stream.Push(l.cursor-start, token.Unrecognized)
	l.Error(errUnrecognized{Token: tok})
}

// startsToken reports whether a grapheme cluster could begin a
// recognized token, ending the current garbage run.
func (l *lexer) startsToken(cluster string) bool {
	r, _ := utf8.DecodeRuneInString(cluster)
	switch {
	case r == '\n' || r == ' ' || r == '\t' || r == '\r':
		return true
	case isDigit(r) || isIdentStart(r):
		return true
	}
	return strings.ContainsRune(`:{}()[],=<>+-*/%!|&^.'#`, r)
}

func (l *lexer) text() string {
	return l.file.Text()
}

func (l *lexer) rest() string {
	return l.text()[l.cursor:]
}

func (l *lexer) done() bool {
	return l.cursor >= len(l.text())
}

// peek decodes the rune at the cursor without advancing. Invalid UTF-8
// decodes as utf8.RuneError, which matches no token class and so flows
// into an unrecognized run.
func (l *lexer) peek() rune {
	r, _ := utf8.DecodeRuneInString(l.rest())
	return r
}

// takeWhile advances the cursor over runes matching the predicate.
func (l *lexer) takeWhile(pred func(rune) bool) {
	for !l.done() {
		r, n := utf8.DecodeRuneInString(l.rest())
		if r == utf8.RuneError && n <= 1 {
			return
		}
		if !pred(r) {
			return
		}
		l.cursor += n
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// Identifiers follow the Unicode XID classes, plus _ as a start
// character.

func isIdentStart(r rune) bool {
	if r == '_' {
		return true
	}
	return unicode.In(r, unicode.L, unicode.Nl, unicode.Other_ID_Start)
}

func isIdentContinue(r rune) bool {
	if isIdentStart(r) {
		return true
	}
	return unicode.In(r, unicode.Nd, unicode.Mn, unicode.Mc, unicode.Pc, unicode.Other_ID_Continue)
}
