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

package cst

import (
	"fmt"
	"iter"
	"sync"

	"github.com/IBims1NicerTobi/sus-compiler/internal/arena"
	"github.com/IBims1NicerTobi/sus-compiler/internal/interval"
	"github.com/IBims1NicerTobi/sus-compiler/report"
	"github.com/IBims1NicerTobi/sus-compiler/token"
)

// nodeData is the arena representation of a node.
type nodeData struct {
	kind       Kind
	start, end uint32
	parent     arena.Pointer[nodeData]
	children   []childData
}

// childData is one child slot: either a sub-node or a leaf token,
// optionally carrying a field tag.
type childData struct {
	field Field
	node  arena.Pointer[nodeData]
	tok   token.ID
}

// Tree is the concrete syntax tree for one source file.
//
// A Tree is immutable once built, so it may be shared freely across
// goroutines. All nodes live in the tree's arena; dropping the Tree
// releases the whole parse.
type Tree struct {
	stream *token.Stream
	nodes  arena.Arena[nodeData]
	root   arena.Pointer[nodeData]
	errors int

	// Lazily-built partition of the file's byte range into the
	// innermost node covering each offset. See [Tree.DeepestAt].
	indexOnce sync.Once
	index     interval.Map[uint32, arena.Pointer[nodeData]]
}

// Stream returns the token stream this tree was parsed from.
func (t *Tree) Stream() *token.Stream {
	return t.stream
}

// File returns the source file this tree was parsed from.
func (t *Tree) File() *report.File {
	return t.stream.File()
}

// Root returns the root source_file node.
func (t *Tree) Root() Node {
	return Node{tree: t, ptr: t.root}
}

// ErrorCount returns how many error nodes the tree contains.
func (t *Tree) ErrorCount() int {
	return t.errors
}

// HasErrors returns whether the tree contains any error nodes.
func (t *Tree) HasErrors() bool {
	return t.errors > 0
}

// DeepestAt returns the innermost node whose byte range covers the
// given offset.
//
// Offsets that fall on extras at the very edge of the file (before the
// first or after the last token the grammar consumed) are covered by no
// node; for those, DeepestAt returns the zero Node.
func (t *Tree) DeepestAt(offset int) Node {
	t.indexOnce.Do(t.buildIndex)

	if offset < 0 {
		return Node{}
	}
	got := t.index.Get(uint32(offset))
	if got.Value == nil {
		return Node{}
	}
	return Node{tree: t, ptr: *got.Value}
}

// buildIndex partitions the file's byte range among the nodes. Each
// node claims the parts of its span not claimed by a sub-node, which
// makes the intervals disjoint and point lookup a single tree search.
func (t *Tree) buildIndex() {
	var walk func(ptr arena.Pointer[nodeData])
	walk = func(ptr arena.Pointer[nodeData]) {
		data := ptr.In(&t.nodes)

		pos := data.start
		for _, c := range data.children {
			if c.node.Nil() {
				continue
			}
			sub := c.node.In(&t.nodes)
			t.index.Insert(pos, sub.start, ptr)
			walk(c.node)
			pos = max(pos, sub.end)
		}
		t.index.Insert(pos, data.end, ptr)
	}

	if !t.root.Nil() {
		walk(t.root)
	}
}

// Node is a handle to a single node in a [Tree].
//
// The zero Node is "absent"; all of its accessors return zero values.
type Node struct {
	tree *Tree
	ptr  arena.Pointer[nodeData]
}

// IsZero returns whether this is the zero (absent) node.
func (n Node) IsZero() bool {
	return n.ptr.Nil()
}

// ID returns this node's dense, monotonically increasing ID within its
// tree. IDs are assigned in completion order during the parse; 0 is
// reserved for the zero Node.
func (n Node) ID() uint32 {
	return uint32(n.ptr.Untyped())
}

// Tree returns the tree this node belongs to.
func (n Node) Tree() *Tree {
	return n.tree
}

// Kind returns which production this node represents.
func (n Node) Kind() Kind {
	if n.IsZero() {
		return Error
	}
	return n.data().kind
}

// Span returns the byte range this node covers, from its first to its
// last consumed token. Extras at the boundary belong to no node.
func (n Node) Span() report.Span {
	if n.IsZero() {
		return report.Span{}
	}
	data := n.data()
	return n.tree.File().Span(int(data.start), int(data.end))
}

// Text returns the source text this node covers.
func (n Node) Text() string {
	if n.IsZero() {
		return ""
	}
	return n.Span().Text()
}

// Parent returns this node's parent, or the zero Node for the root.
// The parent reference is non-owning; ownership runs strictly
// parent-to-child.
func (n Node) Parent() Node {
	if n.IsZero() {
		return Node{}
	}
	return Node{tree: n.tree, ptr: n.data().parent}
}

// Children returns an iterator over this node's children, tokens and
// sub-nodes both, in source order.
func (n Node) Children() iter.Seq[Child] {
	return func(yield func(Child) bool) {
		if n.IsZero() {
			return
		}
		for _, c := range n.data().children {
			if !yield(n.child(c)) {
				return
			}
		}
	}
}

// NumChildren returns the number of children of this node.
func (n Node) NumChildren() int {
	if n.IsZero() {
		return 0
	}
	return len(n.data().children)
}

// Field returns the first child tagged with the given field, or the
// zero Child if there is none.
func (n Node) Field(f Field) Child {
	for c := range n.FieldAll(f) {
		return c
	}
	return Child{}
}

// FieldAll returns an iterator over every child tagged with the given
// field. List productions tag each element with [FieldItem], so this is
// how repeated fields are consumed.
func (n Node) FieldAll(f Field) iter.Seq[Child] {
	return func(yield func(Child) bool) {
		if n.IsZero() {
			return
		}
		for _, c := range n.data().children {
			if c.field == f && !yield(n.child(c)) {
				return
			}
		}
	}
}

// FieldNode is shorthand for Field(f).AsNode().
func (n Node) FieldNode(f Field) Node {
	return n.Field(f).AsNode()
}

// FieldToken is shorthand for Field(f).Token().
func (n Node) FieldToken(f Field) token.Token {
	return n.Field(f).Token()
}

// String implements [fmt.Stringer], for debugging.
func (n Node) String() string {
	if n.IsZero() {
		return "Node(<zero>)"
	}
	return fmt.Sprintf("Node(%d, %v)", n.ID(), n.Kind())
}

func (n Node) data() *nodeData {
	return n.ptr.In(&n.tree.nodes)
}

func (n Node) child(c childData) Child {
	return Child{tree: n.tree, field: c.field, node: c.node, tok: c.tok}
}

// Child is one child of a [Node]: either a sub-node or a leaf token,
// with its field tag.
//
// The zero Child is "absent".
type Child struct {
	tree  *Tree
	field Field
	node  arena.Pointer[nodeData]
	tok   token.ID
}

// IsZero returns whether this is the zero (absent) child.
func (c Child) IsZero() bool {
	return c.node.Nil() && c.tok == 0
}

// Field returns this child's field tag, or [FieldNone].
func (c Child) Field() Field {
	return c.field
}

// IsToken returns whether this child is a leaf token rather than a
// sub-node.
func (c Child) IsToken() bool {
	return c.tok != 0
}

// Token returns the leaf token, or the zero token if this child is a
// sub-node or absent.
func (c Child) Token() token.Token {
	if !c.IsToken() {
		return token.Zero
	}
	return c.tok.In(c.tree.stream)
}

// AsNode returns the sub-node, or the zero Node if this child is a
// token or absent.
func (c Child) AsNode() Node {
	if c.node.Nil() {
		return Node{}
	}
	return Node{tree: c.tree, ptr: c.node}
}

// Span returns the byte range of this child, be it a token or a node.
func (c Child) Span() report.Span {
	if c.IsToken() {
		return c.Token().Span()
	}
	return c.AsNode().Span()
}

// Text returns the source text of this child.
func (c Child) Text() string {
	if c.IsToken() {
		return c.Token().Text()
	}
	return c.AsNode().Text()
}
