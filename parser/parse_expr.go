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
	"slices"

	"github.com/IBims1NicerTobi/sus-compiler/cst"
	"github.com/IBims1NicerTobi/sus-compiler/token"
)

// expr is the result of parsing an expression: a single leaf token,
// such as a number, or a built node. Exactly one of the two is set.
type expr struct {
	tok  token.Token
	node cst.Built
}

func tokenExpr(t token.Token) expr { return expr{tok: t} }
func nodeExpr(n cst.Built) expr    { return expr{node: n} }

// part attaches this expression under the given field.
func (e expr) part(f cst.Field) cst.Part {
	if !e.tok.IsZero() {
		return cst.TokenChild(f, e.tok)
	}
	return cst.NodeChild(f, e.node)
}

// binaryTiers lists the binary operators loosest-first: comparisons
// bind loosest, then `|`, `&`, `^`, additive, and multiplicative. All
// binary operators are left-associative.
var binaryTiers = [...][]token.Kind{
	{token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq},
	{token.Pipe},
	{token.Amp},
	{token.Caret},
	{token.Plus, token.Minus},
	{token.Star, token.Slash, token.Percent},
}

func (p *parser) expr() expr {
	return p.binaryExpr(0)
}

func (p *parser) binaryExpr(tier int) expr {
	if tier == len(binaryTiers) {
		return p.unaryExpr()
	}

	lhs := p.binaryExpr(tier + 1)
	for slices.Contains(binaryTiers[tier], p.Peek().Kind()) {
		op := p.Next()
		rhs := p.binaryExpr(tier + 1)
		lhs = nodeExpr(p.b.New(cst.BinaryOp,
			lhs.part(cst.FieldLeft),
			cst.TokenChild(cst.FieldOperator, op),
			rhs.part(cst.FieldRight)))
	}
	return lhs
}

// unaryExpr parses prefix operators, which bind tighter than any binary
// operator and nest right-to-left.
func (p *parser) unaryExpr() expr {
	switch p.Peek().Kind() {
	case token.Plus, token.Minus, token.Star, token.Bang,
		token.Pipe, token.Amp, token.Caret:
		op := p.Next()
		inner := p.unaryExpr()
		return nodeExpr(p.b.New(cst.UnaryOp,
			cst.TokenChild(cst.FieldOperator, op),
			inner.part(cst.FieldRight)))
	}
	return p.postfixExpr()
}

// postfixExpr parses call, index, and field access suffixes, which bind
// tightest of all and chain left-to-right: `a.b(c)[0]` indexes the
// result of the call.
func (p *parser) postfixExpr() expr {
	e := p.primaryExpr()
	for {
		switch p.Peek().Kind() {
		case token.LParen:
			e = nodeExpr(p.b.New(cst.FuncCall,
				e.part(cst.FieldName),
				cst.NodeChild(cst.FieldArguments, p.parenExprList())))

		case token.LBracket:
			e = nodeExpr(p.b.New(cst.ArrayOp,
				e.part(cst.FieldArr),
				cst.NodeChild(cst.FieldArrIdx, p.arrayBracket())))

		case token.Dot:
			parts := []cst.Part{
				e.part(cst.FieldLeft),
				cst.TokenChild(cst.FieldNone, p.Next()),
			}
			if name := p.expect(token.Ident, "after `.`"); !name.IsZero() {
				parts = append(parts, cst.TokenChild(cst.FieldName, name))
			} else {
				parts = append(parts, cst.NodeChild(cst.FieldName, p.missing()))
			}
			e = nodeExpr(p.b.New(cst.FieldAccess, parts...))

		default:
			return e
		}
	}
}

func (p *parser) primaryExpr() expr {
	switch next := p.Peek(); next.Kind() {
	case token.Number:
		return tokenExpr(p.Next())

	case token.Ident, token.ColonColon:
		return nodeExpr(p.globalIdentifier())

	case token.LParen:
		parts := []cst.Part{cst.TokenChild(cst.FieldNone, p.Next())}
		p.linebreaks()
		inner := p.expr()
		parts = append(parts, inner.part(cst.FieldContent))
		p.linebreaks()
		if close := p.expect(token.RParen, "in parenthesized expression"); !close.IsZero() {
			parts = append(parts, cst.TokenChild(cst.FieldNone, close))
		}
		return nodeExpr(p.b.New(cst.ParenExpression, parts...))

	default:
		return nodeExpr(p.exprError(next))
	}
}

// parenExprList parses `(expr, expr, ...)`, the argument list of a
// call.
func (p *parser) parenExprList() cst.Built {
	parts := []cst.Part{cst.TokenChild(cst.FieldNone, p.Next())}
	p.linebreaks()

	for !p.Done() && p.Peek().Kind() != token.RParen {
		e := p.expr()
		parts = append(parts, e.part(cst.FieldItem))
		p.linebreaks()
		if p.Peek().Kind() != token.Comma {
			break
		}
		parts = append(parts, cst.TokenChild(cst.FieldNone, p.Next()))
		p.linebreaks()
	}

	if close := p.expect(token.RParen, "in argument list"); !close.IsZero() {
		parts = append(parts, cst.TokenChild(cst.FieldNone, close))
	}
	return p.b.New(cst.ParenExpressionList, parts...)
}

// exprError recovers from input where an expression was required: it
// diagnoses, then consumes tokens into an error node up to the nearest
// closer, separator, or line break. If the offending token is itself a
// closer, nothing is consumed and the error node is zero-width; the
// enclosing production handles the closer.
func (p *parser) exprError(found token.Token) cst.Built {
	p.Error(errUnexpected{
		found: found,
		eof:   p.stream.EOF(),
		want:  "an expression",
	})

	var parts []cst.Part
	for {
		switch p.Peek().Kind() {
		case token.EOF, token.Newline, token.RParen, token.RBracket,
			token.RBrace, token.Comma:
			if len(parts) == 0 {
				return p.missing()
			}
			return p.b.New(cst.Error, parts...)
		}
		parts = append(parts, cst.TokenChild(cst.FieldNone, p.Next()))
	}
}
