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
	"github.com/IBims1NicerTobi/sus-compiler/cst"
	"github.com/IBims1NicerTobi/sus-compiler/token"
)

// typeExpr parses a type: a (possibly templated) named type with any
// number of array suffixes. `int[W][H]` nests left, so the outermost
// array_type's index is the last bracket.
func (p *parser) typeExpr() cst.Built {
	base := p.namedType()
	for p.Peek().Kind() == token.LBracket {
		base = p.b.New(cst.ArrayType,
			cst.NodeChild(cst.FieldArr, base),
			cst.NodeChild(cst.FieldArrIdx, p.arrayBracket()))
	}
	return base
}

// namedType parses a named type, with its `#(...)` template parameter
// list if one follows.
func (p *parser) namedType() cst.Built {
	name := p.globalIdentifier()
	if p.Peek().Kind() != token.HashParen {
		return p.b.New(cst.NamedType, cst.NodeChild(cst.FieldName, name))
	}

	parts := []cst.Part{
		cst.NodeChild(cst.FieldName, name),
		cst.TokenChild(cst.FieldNone, p.Next()),
	}
	p.linebreaks()

	for !p.Done() && p.Peek().Kind() != token.RParen {
		parts = append(parts, cst.NodeChild(cst.FieldTemplateParams, p.templateParam()))
		p.linebreaks()
		if p.Peek().Kind() != token.Comma {
			break
		}
		parts = append(parts, cst.TokenChild(cst.FieldNone, p.Next()))
		p.linebreaks()
	}

	if close := p.expect(token.RParen, "in template parameters"); !close.IsZero() {
		parts = append(parts, cst.TokenChild(cst.FieldNone, close))
	}
	return p.b.New(cst.TemplateType, parts...)
}

// templateParam parses one template parameter: a type, or a generative
// expression. Whatever scans as a complete type is one; the rest is
// wrapped as a template_generative_expression.
func (p *parser) templateParam() cst.Built {
	if p.startsType() {
		return p.typeExpr()
	}
	e := p.expr()
	return p.b.New(cst.TemplateGenerativeExpression, e.part(cst.FieldContent))
}

// arrayBracket parses `[expr]`.
func (p *parser) arrayBracket() cst.Built {
	parts := []cst.Part{cst.TokenChild(cst.FieldNone, p.Next())}
	content := p.expr()
	parts = append(parts, content.part(cst.FieldContent))
	if close := p.expect(token.RBracket, "in array brackets"); !close.IsZero() {
		parts = append(parts, cst.TokenChild(cst.FieldNone, close))
	}
	return p.b.New(cst.ArrayBracketExpression, parts...)
}

// startsDeclaration reports whether the upcoming tokens begin a
// declaration rather than an expression: a type-shaped prefix followed
// by a name. The cursor does not move.
func (p *parser) startsDeclaration() bool {
	switch p.Peek().Kind() {
	case token.KwInput, token.KwOutput, token.KwState, token.KwGen:
		return true
	}

	mark := p.Mark()
	defer p.Rewind(mark)
	return p.scanTypePrefix() && p.Peek().Kind() == token.Ident
}

// startsType reports whether the upcoming tokens form a complete type
// within a template parameter list, i.e. a type-shaped prefix running
// up to the next `,` or `)`. The cursor does not move.
func (p *parser) startsType() bool {
	mark := p.Mark()
	defer p.Rewind(mark)
	if !p.scanTypePrefix() {
		return false
	}
	switch p.Peek().Kind() {
	case token.Comma, token.RParen, token.Newline, token.EOF:
		return true
	}
	return false
}

// scanTypePrefix advances past something type-shaped: a possibly
// `::`-qualified name plus any `[...]` and `#(...)` suffix groups.
// Reports whether the shape matched; the caller rewinds either way.
func (p *parser) scanTypePrefix() bool {
	if p.Peek().Kind() == token.ColonColon {
		p.Next()
	}
	if p.Peek().Kind() != token.Ident {
		return false
	}
	p.Next()

	for p.Peek().Kind() == token.ColonColon {
		p.Next()
		if p.Peek().Kind() != token.Ident {
			return false
		}
		p.Next()
	}

	for {
		switch p.Peek().Kind() {
		case token.LBracket, token.HashParen:
			if !p.scanBalanced() {
				return false
			}
		default:
			return true
		}
	}
}

// scanBalanced skips one bracketed group, tracking nesting across all
// bracket shapes. Reports whether the group closed before EOF or a
// stray brace.
func (p *parser) scanBalanced() bool {
	depth := 0
	for {
		switch p.Next().Kind() {
		case token.LBracket, token.LParen, token.HashParen:
			depth++
		case token.RBracket, token.RParen:
			depth--
			if depth == 0 {
				return true
			}
		case token.LBrace, token.RBrace, token.EOF:
			return false
		}
	}
}
