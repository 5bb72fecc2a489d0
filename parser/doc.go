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

// Package parser turns hardware description source text into a token
// stream and a concrete syntax tree.
//
// Parsing never fails. The lexer covers every byte of the input with a
// token, minting [token.Unrecognized] tokens for garbage, and the
// parser turns anything it cannot match into error nodes in the tree,
// diagnosing as it goes. A file with no diagnostics produces a tree
// with no error nodes, and every tree reproduces the input text
// exactly when its tokens are concatenated.
package parser
