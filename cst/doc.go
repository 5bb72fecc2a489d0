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

// Package cst defines the concrete syntax tree produced by parsing a
// SUS source file.
//
// The tree is concrete: every token the grammar consumed is reachable
// from some node, every node records the exact byte range it covers,
// and nothing is desugared. Downstream tools (type checkers,
// elaborators, formatters, editors) query the tree structurally, by
// node [Kind] and named [Field], without re-lexing the source.
//
// A [Tree] is produced by one parse call, is immutable afterwards, and
// owns all of its nodes in an arena indexed by dense node IDs. [Node]
// and [Child] values are lightweight handles into that arena.
//
// Malformed input parses to a tree containing [Error] nodes rather than
// failing; [Tree.ErrorCount] reports how many. Error nodes may carry
// children of their own when the parser could still make sense of part
// of the skipped input.
package cst
