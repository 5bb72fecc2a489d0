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

package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IBims1NicerTobi/sus-compiler/cst"
	"github.com/IBims1NicerTobi/sus-compiler/parser"
	"github.com/IBims1NicerTobi/sus-compiler/report"
	"github.com/IBims1NicerTobi/sus-compiler/token"
)

func parse(t *testing.T, text string) (*cst.Tree, *report.Report) {
	t.Helper()
	errs := &report.Report{}
	tree := parser.Parse(report.NewFile("test.sus", text), errs)
	errs.Sort()
	return tree, errs
}

// parseValid parses text and requires that it produce no diagnostics
// and no error nodes.
func parseValid(t *testing.T, text string) *cst.Tree {
	t.Helper()
	tree, errs := parse(t, text)
	for _, d := range errs.Diagnostics {
		t.Logf("%v: %s", d.Primary().StartLoc(), d.Message())
	}
	require.False(t, errs.HasErrors())
	require.False(t, tree.HasErrors())
	return tree
}

// firstStatement digs out the first statement of the first module.
func firstStatement(t *testing.T, tree *cst.Tree) cst.Node {
	t.Helper()
	mod := tree.Root().FieldNode(cst.FieldItem)
	require.Equal(t, cst.Module, mod.Kind())
	block := mod.FieldNode(cst.FieldBlock)
	require.Equal(t, cst.Block, block.Kind())
	return block.FieldNode(cst.FieldItem)
}

// assignValue digs out the right-hand side of the first statement,
// which must be an assignment.
func assignValue(t *testing.T, tree *cst.Tree) cst.Child {
	t.Helper()
	stmt := firstStatement(t, tree)
	require.Equal(t, cst.DeclAssignStatement, stmt.Kind())
	return stmt.Field(cst.FieldAssignValue)
}

func TestValidInputHasNoErrorNodes(t *testing.T) {
	t.Parallel()

	parseValid(t, `
module replicatee #(T, int NUM_REPLS) : T data -> T[NUM_REPLS] result {
	for int i in 0..NUM_REPLS {
		result[i] = data
	}
}

module user {
	interface push : int d -> bool ready
	state int total'1
	reg reg total = total + d
	if ready { } else if d == 0 { } else { }
	gen int W = 1 * 2 + 3
	FIFO #(int, DEPTH) fifo
	bool x = ::std::util::flag(d, (W + 1) % 4)
}
`)
}

func TestArithmeticPrecedence(t *testing.T) {
	t.Parallel()

	// * binds tighter than +.
	tree := parseValid(t, "module m {\n\tx = 1 + 2 * 3\n}\n")
	value := assignValue(t, tree).AsNode()
	require.Equal(t, cst.BinaryOp, value.Kind())
	assert.Equal(t, token.Plus, value.FieldToken(cst.FieldOperator).Kind())
	assert.Equal(t, "1", value.Field(cst.FieldLeft).Text())

	right := value.FieldNode(cst.FieldRight)
	require.Equal(t, cst.BinaryOp, right.Kind())
	assert.Equal(t, token.Star, right.FieldToken(cst.FieldOperator).Kind())
	assert.Equal(t, "2 * 3", right.Text())
}

func TestBitwisePrecedence(t *testing.T) {
	t.Parallel()

	// & binds tighter than |, so a | b & c is a | (b & c).
	tree := parseValid(t, "module m {\n\tx = a | b & c\n}\n")
	value := assignValue(t, tree).AsNode()
	require.Equal(t, cst.BinaryOp, value.Kind())
	assert.Equal(t, token.Pipe, value.FieldToken(cst.FieldOperator).Kind())
	assert.Equal(t, "b & c", value.Field(cst.FieldRight).Text())
}

func TestComparisonBindsLoosest(t *testing.T) {
	t.Parallel()

	tree := parseValid(t, "module m {\n\tx = a + 1 == b * 2\n}\n")
	value := assignValue(t, tree).AsNode()
	require.Equal(t, cst.BinaryOp, value.Kind())
	assert.Equal(t, token.EqEq, value.FieldToken(cst.FieldOperator).Kind())
	assert.Equal(t, "a + 1", value.Field(cst.FieldLeft).Text())
	assert.Equal(t, "b * 2", value.Field(cst.FieldRight).Text())
}

func TestBinaryLeftAssociative(t *testing.T) {
	t.Parallel()

	tree := parseValid(t, "module m {\n\tx = a - b - c\n}\n")
	value := assignValue(t, tree).AsNode()
	require.Equal(t, cst.BinaryOp, value.Kind())
	assert.Equal(t, "a - b", value.Field(cst.FieldLeft).Text())
	assert.Equal(t, "c", value.Field(cst.FieldRight).Text())
}

func TestUnaryBindsTighterThanBinary(t *testing.T) {
	t.Parallel()

	tree := parseValid(t, "module m {\n\tx = -a + !b\n}\n")
	value := assignValue(t, tree).AsNode()
	require.Equal(t, cst.BinaryOp, value.Kind())
	assert.Equal(t, token.Plus, value.FieldToken(cst.FieldOperator).Kind())

	left := value.FieldNode(cst.FieldLeft)
	require.Equal(t, cst.UnaryOp, left.Kind())
	assert.Equal(t, token.Minus, left.FieldToken(cst.FieldOperator).Kind())

	right := value.FieldNode(cst.FieldRight)
	require.Equal(t, cst.UnaryOp, right.Kind())
	assert.Equal(t, token.Bang, right.FieldToken(cst.FieldOperator).Kind())
}

func TestPostfixChainsLeftToRight(t *testing.T) {
	t.Parallel()

	// a.b(c)[0] indexes the result of calling field b of a.
	tree := parseValid(t, "module m {\n\tx = a.b(c)[0]\n}\n")
	value := assignValue(t, tree).AsNode()
	require.Equal(t, cst.ArrayOp, value.Kind())
	assert.Equal(t, "0", value.FieldNode(cst.FieldArrIdx).Field(cst.FieldContent).Text())

	call := value.FieldNode(cst.FieldArr)
	require.Equal(t, cst.FuncCall, call.Kind())
	assert.Equal(t, "(c)", call.FieldNode(cst.FieldArguments).Text())

	callee := call.FieldNode(cst.FieldName)
	require.Equal(t, cst.FieldAccess, callee.Kind())
	assert.Equal(t, "a", callee.Field(cst.FieldLeft).Text())
	assert.Equal(t, "b", callee.FieldToken(cst.FieldName).Text())
}

func TestUnaryAppliesToWholePostfix(t *testing.T) {
	t.Parallel()

	tree := parseValid(t, "module m {\n\tx = -a[0]\n}\n")
	value := assignValue(t, tree).AsNode()
	require.Equal(t, cst.UnaryOp, value.Kind())
	assert.Equal(t, cst.ArrayOp, value.FieldNode(cst.FieldRight).Kind())
}

func TestDanglingElse(t *testing.T) {
	t.Parallel()

	tree := parseValid(t, "module m {\n\tif a { } else if b { } else { }\n}\n")
	outer := firstStatement(t, tree)
	require.Equal(t, cst.IfStatement, outer.Kind())
	assert.Equal(t, "a", outer.Field(cst.FieldCondition).Text())

	inner := outer.FieldNode(cst.FieldElseBlock)
	require.Equal(t, cst.IfStatement, inner.Kind())
	assert.Equal(t, "b", inner.Field(cst.FieldCondition).Text())
	assert.Equal(t, cst.Block, inner.FieldNode(cst.FieldElseBlock).Kind())
}

func TestDeclarationVersusExpression(t *testing.T) {
	t.Parallel()

	tree := parseValid(t, "module m {\n\tint j = i + 1\n\tresult[j] = 5\n}\n")
	block := tree.Root().FieldNode(cst.FieldItem).FieldNode(cst.FieldBlock)

	var stmts []cst.Node
	for c := range block.FieldAll(cst.FieldItem) {
		stmts = append(stmts, c.AsNode())
	}
	require.Len(t, stmts, 2)

	// int j is a fresh declaration; result[j] writes to an existing
	// array.
	first := stmts[0].FieldNode(cst.FieldAssignLeft).FieldNode(cst.FieldItem)
	assert.Equal(t, cst.Declaration, first.FieldNode(cst.FieldExprOrDecl).Kind())

	second := stmts[1].FieldNode(cst.FieldAssignLeft).FieldNode(cst.FieldItem)
	assert.Equal(t, cst.ArrayOp, second.FieldNode(cst.FieldExprOrDecl).Kind())
}

func TestMultipleAssignTargets(t *testing.T) {
	t.Parallel()

	tree := parseValid(t, "module m {\n\tint q, bool r = divmod(a, b)\n}\n")
	stmt := firstStatement(t, tree)
	require.Equal(t, cst.DeclAssignStatement, stmt.Kind())

	var targets []cst.Node
	for c := range stmt.FieldNode(cst.FieldAssignLeft).FieldAll(cst.FieldItem) {
		targets = append(targets, c.AsNode())
	}
	require.Len(t, targets, 2)
	assert.Equal(t, cst.Declaration, targets[0].FieldNode(cst.FieldExprOrDecl).Kind())
	assert.Equal(t, cst.Declaration, targets[1].FieldNode(cst.FieldExprOrDecl).Kind())
}

func TestWriteModifiers(t *testing.T) {
	t.Parallel()

	tree := parseValid(t, "module m {\n\treg reg x = y\n\tinitial z = 1\n}\n")
	block := tree.Root().FieldNode(cst.FieldItem).FieldNode(cst.FieldBlock)

	var mods []cst.Node
	for c := range block.FieldAll(cst.FieldItem) {
		target := c.AsNode().FieldNode(cst.FieldAssignLeft).FieldNode(cst.FieldItem)
		mods = append(mods, target.FieldNode(cst.FieldWriteModifiers))
	}
	require.Len(t, mods, 2)

	var regs int
	for range mods[0].FieldAll(cst.FieldItem) {
		regs++
	}
	assert.Equal(t, 2, regs)
	assert.Equal(t, "initial", mods[1].Field(cst.FieldItem).Text())
}

func TestModuleHeader(t *testing.T) {
	t.Parallel()

	tree := parseValid(t,
		"module replicatee #(T, int NUM_REPLS) : T data -> T[NUM_REPLS] result {\n}\n")

	mod := tree.Root().FieldNode(cst.FieldItem)
	assert.Equal(t, "replicatee", mod.FieldToken(cst.FieldName).Text())

	var args []cst.Node
	for c := range mod.FieldNode(cst.FieldTemplateDeclArguments).FieldAll(cst.FieldItem) {
		args = append(args, c.AsNode())
	}
	require.Len(t, args, 2)
	assert.Equal(t, cst.TemplateDeclType, args[0].Kind())
	assert.Equal(t, "T", args[0].FieldToken(cst.FieldName).Text())
	require.Equal(t, cst.Declaration, args[1].Kind())
	assert.Equal(t, "NUM_REPLS", args[1].FieldToken(cst.FieldName).Text())

	ports := mod.FieldNode(cst.FieldInterfacePorts)
	input := ports.FieldNode(cst.FieldInputs).FieldNode(cst.FieldItem)
	assert.Equal(t, "data", input.FieldToken(cst.FieldName).Text())

	output := ports.FieldNode(cst.FieldOutputs).FieldNode(cst.FieldItem)
	outType := output.FieldNode(cst.FieldType)
	require.Equal(t, cst.ArrayType, outType.Kind())
	assert.Equal(t, "T", outType.Field(cst.FieldArr).Text())
	assert.Equal(t, "NUM_REPLS",
		outType.FieldNode(cst.FieldArrIdx).Field(cst.FieldContent).Text())
}

func TestLatencySpecifier(t *testing.T) {
	t.Parallel()

	tree := parseValid(t, "module m {\n\tstate int total'3\n}\n")
	target := firstStatement(t, tree).FieldNode(cst.FieldItem)
	decl := target.FieldNode(cst.FieldExprOrDecl)
	require.Equal(t, cst.Declaration, decl.Kind())
	assert.Equal(t, "state", decl.FieldToken(cst.FieldDeclarationModifiers).Text())

	lat := decl.FieldNode(cst.FieldLatencySpecifier)
	require.Equal(t, cst.LatencySpecifier, lat.Kind())
	assert.Equal(t, "3", lat.Field(cst.FieldContent).Text())
}

func TestTemplateTypeParams(t *testing.T) {
	t.Parallel()

	tree := parseValid(t, "module m {\n\tFIFO #(int[4], DEPTH + 1) fifo\n}\n")
	target := firstStatement(t, tree).FieldNode(cst.FieldItem)
	decl := target.FieldNode(cst.FieldExprOrDecl)
	require.Equal(t, cst.Declaration, decl.Kind())

	typ := decl.FieldNode(cst.FieldType)
	require.Equal(t, cst.TemplateType, typ.Kind())

	var params []cst.Node
	for c := range typ.FieldAll(cst.FieldTemplateParams) {
		params = append(params, c.AsNode())
	}
	require.Len(t, params, 2)
	assert.Equal(t, cst.ArrayType, params[0].Kind())
	require.Equal(t, cst.TemplateGenerativeExpression, params[1].Kind())
	assert.Equal(t, "DEPTH + 1", params[1].Field(cst.FieldContent).Text())
}

func TestRecoveryKeepsParsing(t *testing.T) {
	t.Parallel()

	// The stray } closes module m early; the output bool declaration
	// afterwards must still be parsed, inside an error node.
	tree, errs := parse(t, "module m { input int } output bool }\n")
	assert.True(t, errs.HasErrors())
	assert.True(t, tree.HasErrors())

	mod := tree.Root().FieldNode(cst.FieldItem)
	require.Equal(t, cst.Module, mod.Kind())
	assert.Equal(t, "m", mod.FieldToken(cst.FieldName).Text())

	// input int is missing its name; an error node stands in for it.
	decl := firstStatement(t, tree).FieldNode(cst.FieldItem).FieldNode(cst.FieldExprOrDecl)
	require.Equal(t, cst.Declaration, decl.Kind())
	assert.Equal(t, "input", decl.FieldToken(cst.FieldIOPortModifiers).Text())
	assert.Equal(t, cst.Error, decl.FieldNode(cst.FieldName).Kind())

	// The trailing declaration survives somewhere under an error node.
	var found bool
	var walk func(n cst.Node)
	walk = func(n cst.Node) {
		if n.Kind() == cst.Declaration &&
			n.FieldToken(cst.FieldIOPortModifiers).Text() == "output" {
			found = true
		}
		for c := range n.Children() {
			if !c.IsToken() {
				walk(c.AsNode())
			}
		}
	}
	walk(tree.Root())
	assert.True(t, found, "output bool declaration was dropped during recovery")
}

func TestMissingExpression(t *testing.T) {
	t.Parallel()

	tree, errs := parse(t, "module m {\n\tx = \n}\n")
	assert.True(t, errs.HasErrors())

	stmt := firstStatement(t, tree)
	require.Equal(t, cst.DeclAssignStatement, stmt.Kind())
	assert.Equal(t, cst.Error, stmt.FieldNode(cst.FieldAssignValue).Kind())
}

func TestStatementsRequireLineBreaks(t *testing.T) {
	t.Parallel()

	_, errs := parse(t, "module m {\n\tx = 1 y = 2\n}\n")
	require.True(t, errs.HasErrors())
	assert.Equal(t, "statements must be separated by a line break",
		errs.Diagnostics[0].Message())
}

func TestTreeCoversEveryByte(t *testing.T) {
	t.Parallel()

	const text = "module m : int a -> int b {\n\tb = a /* gap */ + 1\n}\n"
	tree := parseValid(t, text)

	// Every node's span is the union of its children's spans.
	var walk func(n cst.Node)
	walk = func(n cst.Node) {
		if n.NumChildren() == 0 {
			return
		}
		var first, last cst.Child
		for c := range n.Children() {
			if first.IsZero() {
				first = c
			}
			last = c
			if !c.IsToken() {
				walk(c.AsNode())
			}
		}
		assert.Equal(t, first.Span().Start, n.Span().Start, "node %v", n)
		assert.Equal(t, last.Span().End, n.Span().End, "node %v", n)
	}
	walk(tree.Root())
}

func TestDeepestAt(t *testing.T) {
	t.Parallel()

	const text = "module m {\n\tx = y + 1\n}\n"
	tree := parseValid(t, text)

	// The y inside the sum.
	y := tree.DeepestAt(strings.Index(text, "y"))
	require.Equal(t, cst.GlobalIdentifier, y.Kind())
	assert.Equal(t, cst.BinaryOp, y.Parent().Kind())

	// The + belongs to the binary_op itself.
	plus := tree.DeepestAt(strings.Index(text, "+"))
	assert.Equal(t, cst.BinaryOp, plus.Kind())

	// The newline after the closing brace is a boundary extra; it
	// belongs to no node.
	assert.True(t, tree.DeepestAt(len(text)-1).IsZero())
}
