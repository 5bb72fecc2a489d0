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

	"github.com/IBims1NicerTobi/sus-compiler/internal/arena"
	"github.com/IBims1NicerTobi/sus-compiler/token"
)

// Builder assembles a [Tree] during a parse.
//
// Productions are built bottom-up: a node is created only once all of
// its children exist, so node IDs increase in completion order and a
// node's span can be computed as the union of its parts at construction
// time.
type Builder struct {
	tree *Tree
}

// Built is a handle to a finished node awaiting attachment to its
// parent. The zero Built is "absent" and is skipped when attaching.
type Built struct {
	ptr arena.Pointer[nodeData]
}

// IsZero returns whether this is the zero (absent) handle.
func (b Built) IsZero() bool {
	return b.ptr.Nil()
}

// Part is one prospective child passed to [Builder.New]: a field tag
// plus either a token or a built sub-node.
type Part struct {
	field Field
	node  Built
	tok   token.Token
}

// TokenChild makes a Part out of a token. Zero tokens produce a zero
// Part, which [Builder.New] skips; this is how optional elements stay
// out of the child list.
func TokenChild(f Field, t token.Token) Part {
	if t.IsZero() {
		return Part{}
	}
	return Part{field: f, tok: t}
}

// NodeChild makes a Part out of a built sub-node. Zero handles produce
// a zero Part, which [Builder.New] skips.
func NodeChild(f Field, n Built) Part {
	if n.IsZero() {
		return Part{}
	}
	return Part{field: f, node: n}
}

// NewBuilder returns a builder for a tree over the given token stream.
func NewBuilder(stream *token.Stream) *Builder {
	return &Builder{tree: &Tree{stream: stream}}
}

// New creates a node of the given kind with the given children, in
// order. Zero parts are skipped. The node's span runs from the first
// part's start to the last part's end.
func (b *Builder) New(kind Kind, parts ...Part) Built {
	data := nodeData{kind: kind}

	first := true
	for _, part := range parts {
		var c childData
		var start, end uint32
		switch {
		case !part.node.IsZero():
			sub := part.node.ptr.In(&b.tree.nodes)
			if !sub.parent.Nil() {
				panic(fmt.Sprintf("sus/cst: node %d attached to two parents", part.node.ptr))
			}
			c = childData{field: part.field, node: part.node.ptr}
			start, end = sub.start, sub.end
		case !part.tok.IsZero():
			c = childData{field: part.field, tok: part.tok.ID()}
			start, end = uint32(part.tok.Start()), uint32(part.tok.End())
		default:
			continue // Skipped optional.
		}

		data.children = append(data.children, c)
		if first {
			data.start = start
			first = false
		}
		data.end = max(data.end, end)
	}

	return b.finish(data)
}

// Missing creates an empty error node at the given byte offset, standing
// in for a required element that was not found.
func (b *Builder) Missing(offset int) Built {
	return b.finish(nodeData{
		kind:  Error,
		start: uint32(offset),
		end:   uint32(offset),
	})
}

// Done attaches root as the tree's source_file node and returns the
// finished, immutable tree. The builder must not be used afterwards.
func (b *Builder) Done(root Built) *Tree {
	tree := b.tree
	tree.root = root.ptr
	b.tree = nil
	return tree
}

func (b *Builder) finish(data nodeData) Built {
	if data.kind == Error {
		b.tree.errors++
	}

	ptr := b.tree.nodes.New(data)
	for _, c := range data.children {
		if !c.node.Nil() {
			c.node.In(&b.tree.nodes).parent = ptr
		}
	}
	return Built{ptr: ptr}
}
