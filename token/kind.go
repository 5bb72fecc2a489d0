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

import "fmt"

// Kind identifies what kind of token a particular [Token] is.
type Kind byte

const (
	// EOF is the kind of the zero [Token], returned by a [Cursor] once
	// the stream is exhausted. It is never stored in a [Stream].
	EOF Kind = iota

	Unrecognized // Garbage in the input the lexer could not classify.
	Space        // Horizontal whitespace or a carriage return.
	Comment      // A // or /* */ comment.
	Newline      // A single \n. Significant to the grammar.
	Ident        // An identifier.
	Number       // A run of digits and _ separators.

	// Reserved words. The lexer produces these by matching a maximal
	// identifier first and then consulting [LookupKeyword], so a keyword
	// is only ever a complete lexeme, never a prefix of an identifier.
	KwModule
	KwInterface
	KwReg
	KwInitial
	KwIf
	KwElse
	KwFor
	KwIn
	KwInput
	KwOutput
	KwState
	KwGen

	// Punctuation. Multi-character kinds win over their single-character
	// prefixes by maximal munch.
	Colon      // :
	ColonColon // ::
	Arrow      // ->
	HashParen  // #(, opens a template argument list.
	LBrace     // {
	RBrace     // }
	LParen     // (
	RParen     // )
	LBracket   // [
	RBracket   // ]
	Comma      // ,
	Eq         // =
	EqEq       // ==
	BangEq     // !=
	Lt         // <
	LtEq       // <=
	Gt         // >
	GtEq       // >=
	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	Percent    // %
	Bang       // !
	Pipe       // |
	Amp        // &
	Caret      // ^
	Dot        // .
	DotDot     // ..
	Quote      // ', introduces a latency specifier.

	total // Number of kinds; must remain last.
)

// keywords is the reserved-word table consulted after lexing a maximal
// identifier.
var keywords = map[string]Kind{
	"module":    KwModule,
	"interface": KwInterface,
	"reg":       KwReg,
	"initial":   KwInitial,
	"if":        KwIf,
	"else":      KwElse,
	"for":       KwFor,
	"in":        KwIn,
	"input":     KwInput,
	"output":    KwOutput,
	"state":     KwState,
	"gen":       KwGen,
}

// LookupKeyword classifies an identifier-shaped lexeme: it returns the
// keyword kind if text is reserved, and [Ident] otherwise.
func LookupKeyword(text string) Kind {
	if kind, ok := keywords[text]; ok {
		return kind
	}
	return Ident
}

// IsSkippable returns whether this is an "extra" that the grammar never
// examines: whitespace and comments.
//
// [Unrecognized] is not skippable. Error tokens must reach the statement
// grammar so that they can become error nodes in the tree.
func (k Kind) IsSkippable() bool {
	return k == Space || k == Comment
}

// IsKeyword returns whether this kind is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwModule && k <= KwGen
}

// Lexeme returns the fixed spelling for keyword and punctuation kinds,
// and "" for everything else.
func (k Kind) Lexeme() string {
	if s, ok := lexemes[k]; ok {
		return s
	}
	return ""
}

var lexemes = map[Kind]string{
	KwModule: "module", KwInterface: "interface", KwReg: "reg",
	KwInitial: "initial", KwIf: "if", KwElse: "else", KwFor: "for",
	KwIn: "in", KwInput: "input", KwOutput: "output", KwState: "state",
	KwGen: "gen",

	Colon: ":", ColonColon: "::", Arrow: "->", HashParen: "#(",
	LBrace: "{", RBrace: "}", LParen: "(", RParen: ")",
	LBracket: "[", RBracket: "]", Comma: ",", Eq: "=", EqEq: "==",
	BangEq: "!=", Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	Bang: "!", Pipe: "|", Amp: "&", Caret: "^", Dot: ".",
	DotDot: "..", Quote: "'",
}

// String implements [fmt.Stringer]. Keywords and punctuation render as
// their backticked spelling, which is what diagnostics want.
func (k Kind) String() string {
	switch k {
	case EOF:
		return "end-of-file"
	case Unrecognized:
		return "unrecognized token"
	case Space:
		return "whitespace"
	case Comment:
		return "comment"
	case Newline:
		return "newline"
	case Ident:
		return "identifier"
	case Number:
		return "number"
	default:
		if s := k.Lexeme(); s != "" {
			return "`" + s + "`"
		}
		return fmt.Sprintf("token.Kind(%d)", byte(k))
	}
}
