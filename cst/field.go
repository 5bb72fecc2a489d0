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

// Field names a distinguished child of a [Node], so that consumers can
// query children structurally instead of by position.
//
// A child carries at most one field tag. List-like productions tag each
// element with [FieldItem], so "all items" is one [Node.FieldAll] call
// regardless of list length.
type Field byte

const (
	// FieldNone marks an untagged child, such as punctuation.
	FieldNone Field = iota

	FieldArguments
	FieldArr
	FieldArrIdx
	FieldAssignLeft
	FieldAssignValue
	FieldBlock
	FieldCondition
	FieldContent
	FieldDeclarationModifiers
	FieldElseBlock
	FieldExprOrDecl
	FieldForDecl
	FieldFrom
	FieldInputs
	FieldInterfacePorts
	FieldIOPortModifiers
	FieldItem
	FieldLatencySpecifier
	FieldLeft
	FieldName
	FieldOperator
	FieldOutputs
	FieldRight
	FieldTemplateDeclArguments
	FieldTemplateParams
	FieldThenBlock
	FieldTo
	FieldType
	FieldWriteModifiers
)

var fieldNames = [...]string{
	FieldNone:                  "",
	FieldArguments:             "arguments",
	FieldArr:                   "arr",
	FieldArrIdx:                "arr_idx",
	FieldAssignLeft:            "assign_left",
	FieldAssignValue:           "assign_value",
	FieldBlock:                 "block",
	FieldCondition:             "condition",
	FieldContent:               "content",
	FieldDeclarationModifiers:  "declaration_modifiers",
	FieldElseBlock:             "else_block",
	FieldExprOrDecl:            "expr_or_decl",
	FieldForDecl:               "for_decl",
	FieldFrom:                  "from",
	FieldInputs:                "inputs",
	FieldInterfacePorts:        "interface_ports",
	FieldIOPortModifiers:       "io_port_modifiers",
	FieldItem:                  "item",
	FieldLatencySpecifier:      "latency_specifier",
	FieldLeft:                  "left",
	FieldName:                  "name",
	FieldOperator:              "operator",
	FieldOutputs:               "outputs",
	FieldRight:                 "right",
	FieldTemplateDeclArguments: "template_declaration_arguments",
	FieldTemplateParams:        "template_params",
	FieldThenBlock:             "then_block",
	FieldTo:                    "to",
	FieldType:                  "type",
	FieldWriteModifiers:        "write_modifiers",
}

// String implements [fmt.Stringer].
func (f Field) String() string {
	if int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return fmt.Sprintf("cst.Field(%d)", byte(f))
}
