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

package cst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IBims1NicerTobi/sus-compiler/cst"
	"github.com/IBims1NicerTobi/sus-compiler/report"
	"github.com/IBims1NicerTobi/sus-compiler/token"
)

// buildDecl hand-assembles the tree for "int foo\n", the way the parser
// would build it.
func buildDecl(t *testing.T) (*cst.Tree, *token.Stream) {
	t.Helper()

	file := report.NewFile("test.sus", "int foo\n")
	stream := token.NewStream(file)
	typ := stream.Push(3, token.Ident)
	stream.Push(1, token.Space)
	name := stream.Push(3, token.Ident)
	stream.Push(1, token.Newline)

	b := cst.NewBuilder(stream)
	path := b.New(cst.GlobalIdentifier, cst.TokenChild(cst.FieldItem, typ))
	named := b.New(cst.NamedType, cst.NodeChild(cst.FieldName, path))
	decl := b.New(cst.Declaration,
		cst.NodeChild(cst.FieldType, named),
		cst.TokenChild(cst.FieldName, name))
	root := b.New(cst.SourceFile, cst.NodeChild(cst.FieldItem, decl))
	return b.Done(root), stream
}

func TestSpans(t *testing.T) {
	t.Parallel()

	tree, _ := buildDecl(t)
	decl := tree.Root().FieldNode(cst.FieldItem)
	require.Equal(t, cst.Declaration, decl.Kind())

	// The declaration runs from the type to the name; the space in the
	// middle is interior, the newline after is not included.
	assert.Equal(t, 0, decl.Span().Start)
	assert.Equal(t, 7, decl.Span().End)
	assert.Equal(t, "int foo", decl.Text())

	named := decl.FieldNode(cst.FieldType)
	assert.Equal(t, "int", named.Text())
	assert.Equal(t, "foo", decl.FieldToken(cst.FieldName).Text())
}

func TestParents(t *testing.T) {
	t.Parallel()

	tree, _ := buildDecl(t)
	decl := tree.Root().FieldNode(cst.FieldItem)
	named := decl.FieldNode(cst.FieldType)
	path := named.FieldNode(cst.FieldName)

	assert.Equal(t, named.ID(), path.Parent().ID())
	assert.Equal(t, decl.ID(), named.Parent().ID())
	assert.Equal(t, tree.Root().ID(), decl.Parent().ID())
	assert.True(t, tree.Root().Parent().IsZero())
}

func TestZeroPartsAreSkipped(t *testing.T) {
	t.Parallel()

	file := report.NewFile("test.sus", "x")
	stream := token.NewStream(file)
	x := stream.Push(1, token.Ident)

	b := cst.NewBuilder(stream)
	n := b.New(cst.GlobalIdentifier,
		cst.TokenChild(cst.FieldNone, token.Zero),
		cst.TokenChild(cst.FieldItem, x),
		cst.NodeChild(cst.FieldName, cst.Built{}))
	tree := b.Done(b.New(cst.SourceFile, cst.NodeChild(cst.FieldItem, n)))

	assert.Equal(t, 1, tree.Root().FieldNode(cst.FieldItem).NumChildren())
}

func TestMissingNode(t *testing.T) {
	t.Parallel()

	file := report.NewFile("test.sus", "int ")
	stream := token.NewStream(file)
	typ := stream.Push(3, token.Ident)
	stream.Push(1, token.Space)

	b := cst.NewBuilder(stream)
	path := b.New(cst.GlobalIdentifier, cst.TokenChild(cst.FieldItem, typ))
	named := b.New(cst.NamedType, cst.NodeChild(cst.FieldName, path))
	decl := b.New(cst.Declaration,
		cst.NodeChild(cst.FieldType, named),
		cst.NodeChild(cst.FieldName, b.Missing(4)))
	tree := b.Done(b.New(cst.SourceFile, cst.NodeChild(cst.FieldItem, decl)))

	require.True(t, tree.HasErrors())
	assert.Equal(t, 1, tree.ErrorCount())

	missing := tree.Root().FieldNode(cst.FieldItem).FieldNode(cst.FieldName)
	assert.Equal(t, cst.Error, missing.Kind())
	assert.Equal(t, 0, missing.Span().Len())
	assert.Equal(t, 4, missing.Span().Start)
}

func TestDoubleParentPanics(t *testing.T) {
	t.Parallel()

	file := report.NewFile("test.sus", "x")
	stream := token.NewStream(file)
	x := stream.Push(1, token.Ident)

	b := cst.NewBuilder(stream)
	n := b.New(cst.GlobalIdentifier, cst.TokenChild(cst.FieldItem, x))
	b.New(cst.NamedType, cst.NodeChild(cst.FieldName, n))
	assert.Panics(t, func() {
		b.New(cst.NamedType, cst.NodeChild(cst.FieldName, n))
	})
}

func TestFieldAll(t *testing.T) {
	t.Parallel()

	file := report.NewFile("test.sus", "a, b")
	stream := token.NewStream(file)
	a := stream.Push(1, token.Ident)
	comma := stream.Push(1, token.Comma)
	stream.Push(1, token.Space)
	c := stream.Push(1, token.Ident)

	b := cst.NewBuilder(stream)
	list := b.New(cst.AssignLeftSide,
		cst.TokenChild(cst.FieldItem, a),
		cst.TokenChild(cst.FieldNone, comma),
		cst.TokenChild(cst.FieldItem, c))
	tree := b.Done(b.New(cst.SourceFile, cst.NodeChild(cst.FieldNone, list)))

	node := tree.Root().Field(cst.FieldNone).AsNode()
	var items []string
	for item := range node.FieldAll(cst.FieldItem) {
		items = append(items, item.Text())
	}
	assert.Equal(t, []string{"a", "b"}, items)

	// Field returns the first item only.
	assert.Equal(t, "a", node.Field(cst.FieldItem).Text())
	assert.True(t, node.Field(cst.FieldName).IsZero())
}

func TestDeepestAtPartition(t *testing.T) {
	t.Parallel()

	tree, _ := buildDecl(t)
	decl := tree.Root().FieldNode(cst.FieldItem)
	path := decl.FieldNode(cst.FieldType).FieldNode(cst.FieldName)

	// Inside "int": the innermost node is the global_identifier.
	assert.Equal(t, path.ID(), tree.DeepestAt(1).ID())

	// The space between type and name belongs to the declaration, the
	// innermost node spanning it.
	assert.Equal(t, decl.ID(), tree.DeepestAt(3).ID())

	// Inside "foo": the name is a token child of the declaration.
	assert.Equal(t, decl.ID(), tree.DeepestAt(5).ID())

	// The trailing newline is outside every node.
	assert.True(t, tree.DeepestAt(7).IsZero())
	assert.True(t, tree.DeepestAt(-1).IsZero())
}
