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

import "fmt"

// Kind identifies which grammar production a [Node] represents.
type Kind byte

const (
	// Error is the kind of nodes synthesized during error recovery. An
	// error node spans the tokens that matched no production; it may
	// be empty (a missing element) or contain partially-parsed children.
	Error Kind = iota

	SourceFile
	Module
	InterfacePorts
	TemplateDeclArguments
	TemplateDeclType
	Block
	InterfaceStatement
	DeclAssignStatement
	AssignLeftSide
	AssignTo
	WriteModifiers
	IfStatement
	ForStatement
	DeclarationList
	Declaration
	ArrayType
	NamedType
	TemplateType
	TemplateGenerativeExpression
	LatencySpecifier
	UnaryOp
	BinaryOp
	ArrayOp
	FuncCall
	FieldAccess
	ParenExpression
	ParenExpressionList
	ArrayBracketExpression
	GlobalIdentifier
)

var kindNames = [...]string{
	Error:                        "ERROR",
	SourceFile:                   "source_file",
	Module:                       "module",
	InterfacePorts:               "interface_ports",
	TemplateDeclArguments:        "template_declaration_arguments",
	TemplateDeclType:             "template_declaration_type",
	Block:                        "block",
	InterfaceStatement:           "interface_statement",
	DeclAssignStatement:          "decl_assign_statement",
	AssignLeftSide:               "assign_left_side",
	AssignTo:                     "assign_to",
	WriteModifiers:               "write_modifiers",
	IfStatement:                  "if_statement",
	ForStatement:                 "for_statement",
	DeclarationList:              "declaration_list",
	Declaration:                  "declaration",
	ArrayType:                    "array_type",
	NamedType:                    "named_type",
	TemplateType:                 "template_type",
	TemplateGenerativeExpression: "template_generative_expression",
	LatencySpecifier:             "latency_specifier",
	UnaryOp:                      "unary_op",
	BinaryOp:                     "binary_op",
	ArrayOp:                      "array_op",
	FuncCall:                     "func_call",
	FieldAccess:                  "field_access",
	ParenExpression:              "parenthesis_expression",
	ParenExpressionList:          "parenthesis_expression_list",
	ArrayBracketExpression:       "array_bracket_expression",
	GlobalIdentifier:             "global_identifier",
}

// String implements [fmt.Stringer], rendering the grammar's name for
// this production.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("cst.Kind(%d)", byte(k))
}
