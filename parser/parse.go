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
	"github.com/IBims1NicerTobi/sus-compiler/report"
	"github.com/IBims1NicerTobi/sus-compiler/token"
)

// Parse lexes and parses file, producing a concrete syntax tree and
// appending any diagnostics to errs.
//
// Parse always returns a tree. Input it cannot match becomes error
// nodes; the tree for an input with no diagnostics contains none.
func Parse(file *report.File, errs *report.Report) *cst.Tree {
	return ParseStream(Lex(file, errs), errs)
}

// ParseStream parses an already-lexed token stream.
func ParseStream(stream *token.Stream, errs *report.Report) *cst.Tree {
	p := &parser{
		Cursor: stream.Cursor(),
		Report: errs,
		stream: stream,
		b:      cst.NewBuilder(stream),
	}
	return p.b.Done(p.sourceFile())
}

type parser struct {
	*token.Cursor
	*report.Report

	stream *token.Stream
	b      *cst.Builder
}

// sourceFile parses the whole file: a sequence of modules separated by
// line breaks.
func (p *parser) sourceFile() cst.Built {
	var parts []cst.Part
	p.linebreaks()
	for !p.Done() {
		if p.Peek().Kind() == token.KwModule {
			parts = append(parts, cst.NodeChild(cst.FieldItem, p.module()))
		} else {
			parts = append(parts, cst.NodeChild(cst.FieldNone, p.topLevelError()))
		}
		p.linebreaks()
	}
	return p.b.New(cst.SourceFile, parts...)
}

// topLevelError recovers from file-scope input that is not a module.
// Anything statement-shaped is parsed as a statement so later passes
// still see its structure; either way the result lands inside an error
// node, and the cursor advances at least one token.
func (p *parser) topLevelError() cst.Built {
	next := p.Peek()
	p.Error(errUnexpected{found: next, eof: p.stream.EOF(), want: "`module`"})

	if startsStatement(next.Kind()) {
		return p.b.New(cst.Error, cst.NodeChild(cst.FieldNone, p.statement()))
	}

	var parts []cst.Part
	for {
		switch p.Peek().Kind() {
		case token.EOF, token.Newline, token.KwModule:
			return p.b.New(cst.Error, parts...)
		}
		parts = append(parts, cst.TokenChild(cst.FieldNone, p.Next()))
	}
}

// module parses `module name #(...)? (: ports)? { ... }`.
func (p *parser) module() cst.Built {
	parts := []cst.Part{cst.TokenChild(cst.FieldNone, p.Next())}

	if name := p.expect(token.Ident, "in module header"); !name.IsZero() {
		parts = append(parts, cst.TokenChild(cst.FieldName, name))
	} else {
		parts = append(parts, cst.NodeChild(cst.FieldName, p.missing()))
	}

	if p.Peek().Kind() == token.HashParen {
		parts = append(parts,
			cst.NodeChild(cst.FieldTemplateDeclArguments, p.templateDeclArguments()))
	}
	if p.Peek().Kind() == token.Colon {
		parts = append(parts, cst.NodeChild(cst.FieldInterfacePorts, p.interfacePorts()))
	}

	parts = append(parts, cst.NodeChild(cst.FieldBlock, p.block()))
	return p.b.New(cst.Module, parts...)
}

// templateDeclArguments parses `#(T, int DEPTH, ...)` in a module
// header.
func (p *parser) templateDeclArguments() cst.Built {
	parts := []cst.Part{cst.TokenChild(cst.FieldNone, p.Next())}
	p.linebreaks()

	for !p.Done() && p.Peek().Kind() != token.RParen {
		parts = append(parts, cst.NodeChild(cst.FieldItem, p.templateDeclArgument()))
		p.linebreaks()
		if p.Peek().Kind() != token.Comma {
			break
		}
		parts = append(parts, cst.TokenChild(cst.FieldNone, p.Next()))
		p.linebreaks()
	}

	if close := p.expect(token.RParen, "in template argument list"); !close.IsZero() {
		parts = append(parts, cst.TokenChild(cst.FieldNone, close))
	}
	return p.b.New(cst.TemplateDeclArguments, parts...)
}

// templateDeclArgument parses one template argument. A bare name
// declares a type parameter; anything longer is a value parameter,
// which is an ordinary declaration.
func (p *parser) templateDeclArgument() cst.Built {
	if p.Peek().Kind() == token.Ident {
		switch p.peek2().Kind() {
		case token.Comma, token.RParen, token.Newline, token.EOF:
			return p.b.New(cst.TemplateDeclType, cst.TokenChild(cst.FieldName, p.Next()))
		}
	}
	return p.declaration()
}

// interfacePorts parses `: inputs -> outputs`, both lists optional.
func (p *parser) interfacePorts() cst.Built {
	parts := []cst.Part{cst.TokenChild(cst.FieldNone, p.Next())}

	if p.linebreaksBefore(startsDeclarationKind) {
		parts = append(parts, cst.NodeChild(cst.FieldInputs, p.declarationList()))
	}
	if p.linebreaksBefore(func(k token.Kind) bool { return k == token.Arrow }) {
		parts = append(parts, cst.TokenChild(cst.FieldNone, p.Next()))
		if p.linebreaksBefore(startsDeclarationKind) {
			parts = append(parts, cst.NodeChild(cst.FieldOutputs, p.declarationList()))
		}
	}
	return p.b.New(cst.InterfacePorts, parts...)
}

// declarationList parses comma-separated declarations, such as an
// interface's port list.
func (p *parser) declarationList() cst.Built {
	var parts []cst.Part
	for {
		parts = append(parts, cst.NodeChild(cst.FieldItem, p.declaration()))
		if p.Peek().Kind() != token.Comma {
			break
		}
		parts = append(parts, cst.TokenChild(cst.FieldNone, p.Next()))
		p.linebreaks()
	}
	return p.b.New(cst.DeclarationList, parts...)
}

// declaration parses `input? state? type name 'latency?`.
func (p *parser) declaration() cst.Built {
	var parts []cst.Part

	switch p.Peek().Kind() {
	case token.KwInput, token.KwOutput:
		parts = append(parts, cst.TokenChild(cst.FieldIOPortModifiers, p.Next()))
	}
	switch p.Peek().Kind() {
	case token.KwState, token.KwGen:
		parts = append(parts, cst.TokenChild(cst.FieldDeclarationModifiers, p.Next()))
	}

	parts = append(parts, cst.NodeChild(cst.FieldType, p.typeExpr()))

	if name := p.expect(token.Ident, "in declaration"); !name.IsZero() {
		parts = append(parts, cst.TokenChild(cst.FieldName, name))
	} else {
		parts = append(parts, cst.NodeChild(cst.FieldName, p.missing()))
	}

	if p.Peek().Kind() == token.Quote {
		parts = append(parts, cst.NodeChild(cst.FieldLatencySpecifier, p.latencySpecifier()))
	}
	return p.b.New(cst.Declaration, parts...)
}

// latencySpecifier parses `'expr` after a declaration's name.
func (p *parser) latencySpecifier() cst.Built {
	parts := []cst.Part{cst.TokenChild(cst.FieldNone, p.Next())}
	content := p.expr()
	parts = append(parts, content.part(cst.FieldContent))
	return p.b.New(cst.LatencySpecifier, parts...)
}

// globalIdentifier parses a `::`-separated path, with an optional
// leading `::` for root-relative references.
func (p *parser) globalIdentifier() cst.Built {
	var parts []cst.Part
	if p.Peek().Kind() == token.ColonColon {
		parts = append(parts, cst.TokenChild(cst.FieldNone, p.Next()))
	}

	if name := p.expect(token.Ident, "in name"); !name.IsZero() {
		parts = append(parts, cst.TokenChild(cst.FieldItem, name))
	} else {
		parts = append(parts, cst.NodeChild(cst.FieldItem, p.missing()))
		return p.b.New(cst.GlobalIdentifier, parts...)
	}

	for p.Peek().Kind() == token.ColonColon {
		parts = append(parts, cst.TokenChild(cst.FieldNone, p.Next()))
		if name := p.expect(token.Ident, "after `::`"); !name.IsZero() {
			parts = append(parts, cst.TokenChild(cst.FieldItem, name))
		} else {
			parts = append(parts, cst.NodeChild(cst.FieldItem, p.missing()))
			break
		}
	}
	return p.b.New(cst.GlobalIdentifier, parts...)
}

// expect consumes the next token if it has the wanted kind. Otherwise
// it diagnoses, leaves the cursor alone, and returns the zero token.
func (p *parser) expect(kind token.Kind, where string) token.Token {
	next := p.Peek()
	if next.Kind() != kind {
		p.Error(errUnexpected{
			found: next,
			eof:   p.stream.EOF(),
			want:  kind.String(),
			where: where,
		})
		return token.Zero
	}
	return p.Next()
}

// linebreaks consumes a run of newline tokens. Blank lines are never
// significant, so every site that admits one line break admits many.
func (p *parser) linebreaks() int {
	var n int
	for p.Peek().Kind() == token.Newline {
		p.Next()
		n++
	}
	return n
}

// linebreaksBefore consumes a newline run only when the token after it
// satisfies want; otherwise the newlines are left in place for the
// enclosing statement separator. Reports whether want is satisfied.
func (p *parser) linebreaksBefore(want func(token.Kind) bool) bool {
	mark := p.Mark()
	p.linebreaks()
	if want(p.Peek().Kind()) {
		return true
	}
	p.Rewind(mark)
	return false
}

// peek2 returns the token after the next one, without advancing.
func (p *parser) peek2() token.Token {
	mark := p.Mark()
	defer p.Rewind(mark)
	p.Next()
	return p.Peek()
}

// pos returns the byte offset of the next token, for placing zero-width
// error nodes.
func (p *parser) pos() int {
	if next := p.Peek(); !next.IsZero() {
		return next.Start()
	}
	return p.stream.EOF().Start
}

// missing creates a zero-width error node standing in for a required
// element at the current position.
func (p *parser) missing() cst.Built {
	return p.b.Missing(p.pos())
}
