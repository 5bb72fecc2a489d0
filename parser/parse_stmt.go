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

// startsStatement reports whether a token of this kind can begin a
// statement.
func startsStatement(k token.Kind) bool {
	switch k {
	case token.LBrace, token.KwInterface, token.KwIf, token.KwFor,
		token.KwReg, token.KwInitial, token.KwInput, token.KwOutput,
		token.KwState, token.KwGen, token.Ident, token.ColonColon,
		token.Number, token.LParen, token.Plus, token.Minus, token.Star,
		token.Bang, token.Pipe, token.Amp, token.Caret:
		return true
	}
	return false
}

// startsDeclarationKind reports whether a token of this kind can begin
// a declaration.
func startsDeclarationKind(k token.Kind) bool {
	switch k {
	case token.KwInput, token.KwOutput, token.KwState, token.KwGen,
		token.Ident, token.ColonColon:
		return true
	}
	return false
}

// block parses `{ statements }`, statements separated by line breaks.
//
// If there is no `{` at all, block diagnoses and returns a zero-width
// error node without consuming anything.
func (p *parser) block() cst.Built {
	open := p.expect(token.LBrace, "at start of block")
	if open.IsZero() {
		return p.missing()
	}

	parts := []cst.Part{cst.TokenChild(cst.FieldNone, open)}
	p.linebreaks()
	for {
		next := p.Peek()
		if next.IsZero() || next.Kind() == token.RBrace {
			break
		}

		parts = append(parts, cst.NodeChild(cst.FieldItem, p.statement()))

		if p.Peek().ID() == next.ID() {
			// The statement consumed nothing; the expression parser has
			// already diagnosed. Skip a token to guarantee progress.
			parts = append(parts, cst.NodeChild(cst.FieldNone,
				p.b.New(cst.Error, cst.TokenChild(cst.FieldNone, p.Next()))))
			p.linebreaks()
			continue
		}

		if p.linebreaks() == 0 {
			if after := p.Peek(); !after.IsZero() && after.Kind() != token.RBrace {
				p.Error(errExpectedSeparator{found: after})
			}
		}
	}

	if close := p.expect(token.RBrace, "at end of block"); !close.IsZero() {
		parts = append(parts, cst.TokenChild(cst.FieldNone, close))
	}
	return p.b.New(cst.Block, parts...)
}

func (p *parser) statement() cst.Built {
	switch p.Peek().Kind() {
	case token.LBrace:
		return p.block()
	case token.KwInterface:
		return p.interfaceStatement()
	case token.KwIf:
		return p.ifStatement()
	case token.KwFor:
		return p.forStatement()
	default:
		return p.declAssign()
	}
}

// interfaceStatement parses `interface name (: ports)?`.
func (p *parser) interfaceStatement() cst.Built {
	parts := []cst.Part{cst.TokenChild(cst.FieldNone, p.Next())}

	if name := p.expect(token.Ident, "in interface statement"); !name.IsZero() {
		parts = append(parts, cst.TokenChild(cst.FieldName, name))
	} else {
		parts = append(parts, cst.NodeChild(cst.FieldName, p.missing()))
	}

	if p.Peek().Kind() == token.Colon {
		parts = append(parts, cst.NodeChild(cst.FieldInterfacePorts, p.interfacePorts()))
	}
	return p.b.New(cst.InterfaceStatement, parts...)
}

// ifStatement parses `if cond { } (else { } | else if ...)?`.
func (p *parser) ifStatement() cst.Built {
	parts := []cst.Part{cst.TokenChild(cst.FieldNone, p.Next())}

	cond := p.expr()
	parts = append(parts,
		cond.part(cst.FieldCondition),
		cst.NodeChild(cst.FieldThenBlock, p.block()))

	if p.Peek().Kind() == token.KwElse {
		parts = append(parts, cst.TokenChild(cst.FieldNone, p.Next()))
		if p.Peek().Kind() == token.KwIf {
			// An `else if` chain hangs the nested if directly off the
			// else, binding each else to the nearest if.
			parts = append(parts, cst.NodeChild(cst.FieldElseBlock, p.ifStatement()))
		} else {
			parts = append(parts, cst.NodeChild(cst.FieldElseBlock, p.block()))
		}
	}
	return p.b.New(cst.IfStatement, parts...)
}

// forStatement parses `for decl in from..to { }`.
func (p *parser) forStatement() cst.Built {
	parts := []cst.Part{cst.TokenChild(cst.FieldNone, p.Next())}

	parts = append(parts, cst.NodeChild(cst.FieldForDecl, p.declaration()))
	if in := p.expect(token.KwIn, "in for statement"); !in.IsZero() {
		parts = append(parts, cst.TokenChild(cst.FieldNone, in))
	}

	from := p.expr()
	parts = append(parts, from.part(cst.FieldFrom))
	if dots := p.expect(token.DotDot, "in for statement"); !dots.IsZero() {
		parts = append(parts, cst.TokenChild(cst.FieldNone, dots))
	}
	to := p.expr()
	parts = append(parts, to.part(cst.FieldTo))

	parts = append(parts, cst.NodeChild(cst.FieldBlock, p.block()))
	return p.b.New(cst.ForStatement, parts...)
}

// declAssign parses an assignment, `targets = value`. Without an `=`,
// the left-hand side alone is the statement, which covers both bare
// declarations and expression statements such as submodule calls.
func (p *parser) declAssign() cst.Built {
	left := p.assignLeftSide()
	if p.Peek().Kind() != token.Eq {
		return left
	}

	eq := p.Next()
	value := p.expr()
	return p.b.New(cst.DeclAssignStatement,
		cst.NodeChild(cst.FieldAssignLeft, left),
		cst.TokenChild(cst.FieldNone, eq),
		value.part(cst.FieldAssignValue))
}

// assignLeftSide parses comma-separated assignment targets.
func (p *parser) assignLeftSide() cst.Built {
	var parts []cst.Part
	for {
		parts = append(parts, cst.NodeChild(cst.FieldItem, p.assignTo()))
		if p.Peek().Kind() != token.Comma {
			break
		}
		parts = append(parts, cst.TokenChild(cst.FieldNone, p.Next()))
		p.linebreaks()
	}
	return p.b.New(cst.AssignLeftSide, parts...)
}

// assignTo parses one assignment target: optional write modifiers, then
// either a declaration or an expression. Which of the two follows is
// decided by pure token lookahead, so no speculative nodes are built.
func (p *parser) assignTo() cst.Built {
	var parts []cst.Part

	switch p.Peek().Kind() {
	case token.KwReg, token.KwInitial:
		parts = append(parts, cst.NodeChild(cst.FieldWriteModifiers, p.writeModifiers()))
	}

	if p.startsDeclaration() {
		parts = append(parts, cst.NodeChild(cst.FieldExprOrDecl, p.declaration()))
	} else {
		e := p.expr()
		parts = append(parts, e.part(cst.FieldExprOrDecl))
	}
	return p.b.New(cst.AssignTo, parts...)
}

// writeModifiers parses `reg reg ...` or `initial`.
func (p *parser) writeModifiers() cst.Built {
	var parts []cst.Part
	if p.Peek().Kind() == token.KwInitial {
		parts = append(parts, cst.TokenChild(cst.FieldItem, p.Next()))
	} else {
		for p.Peek().Kind() == token.KwReg {
			parts = append(parts, cst.TokenChild(cst.FieldItem, p.Next()))
		}
	}
	return p.b.New(cst.WriteModifiers, parts...)
}
