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
	"strings"

	"github.com/IBims1NicerTobi/sus-compiler/token"
)

// Sexp renders the tree as an indented S-expression, in the style the
// original grammar's tooling prints: named nodes and leaf
// identifier/number tokens appear, punctuation and keywords do not, and
// field tags prefix their children.
//
// This format is the currency of the golden-test corpus.
func (t *Tree) Sexp() string {
	return t.Root().Sexp()
}

// Sexp renders the subtree rooted at this node. See [Tree.Sexp].
func (n Node) Sexp() string {
	var out strings.Builder
	writeSexp(&out, n, 0, FieldNone)
	return out.String()
}

func writeSexp(out *strings.Builder, n Node, depth int, field Field) {
	writeSexpHead(out, depth, field)
	out.WriteByte('(')
	out.WriteString(n.Kind().String())

	for c := range n.Children() {
		if c.IsToken() {
			kind := c.Token().Kind()
			if kind != token.Ident && kind != token.Number {
				continue
			}
			writeSexpHead(out, depth+1, c.Field())
			if kind == token.Ident {
				out.WriteString("(identifier)")
			} else {
				out.WriteString("(number)")
			}
			continue
		}
		writeSexp(out, c.AsNode(), depth+1, c.Field())
	}

	out.WriteByte(')')
}

func writeSexpHead(out *strings.Builder, depth int, field Field) {
	if depth > 0 {
		out.WriteByte('\n')
		for range depth {
			out.WriteString("  ")
		}
	}
	if field != FieldNone {
		out.WriteString(field.String())
		out.WriteString(": ")
	}
}
