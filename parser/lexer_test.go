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
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/IBims1NicerTobi/sus-compiler/parser"
	"github.com/IBims1NicerTobi/sus-compiler/report"
	"github.com/IBims1NicerTobi/sus-compiler/token"
)

func lex(t *testing.T, text string) (*token.Stream, *report.Report) {
	t.Helper()
	errs := &report.Report{}
	return parser.Lex(report.NewFile("test.sus", text), errs), errs
}

// lexerCase is one entry of testdata/lexer/tokens.yaml.
type lexerCase struct {
	Name   string `yaml:"name"`
	Input  string `yaml:"input"`
	Errors int    `yaml:"errors"`

	Tokens []struct {
		Kind string `yaml:"kind"`
		Text string `yaml:"text"`
	} `yaml:"tokens"`
}

func TestLexCorpus(t *testing.T) {
	t.Parallel()

	raw, err := os.ReadFile("testdata/lexer/tokens.yaml")
	require.NoError(t, err)

	var cases []lexerCase
	require.NoError(t, yaml.Unmarshal(raw, &cases))

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()

			stream, errs := lex(t, tc.Input)

			type flat struct{ Kind, Text string }
			var got, want []flat
			for tok := range stream.All() {
				got = append(got, flat{tok.Kind().String(), tok.Text()})
			}
			for _, tok := range tc.Tokens {
				want = append(want, flat{tok.Kind, tok.Text})
			}

			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("token mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tc.Errors, errs.Count(report.Error))
		})
	}
}

// The stream representation makes the round-trip property structural,
// but the lexer could still mis-split tokens; check the concatenation
// over some nasty inputs anyway.
func TestLexRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"module m {}\n",
		"a'3 + b[1]..c #( /* x */ // y\n",
		"$$$ 🍣🍣 \x80\xff weird",
		"/* unterminated",
		"int j = i+1\n\n\nresult[i] = 5",
	}
	for _, input := range inputs {
		stream, _ := lex(t, input)

		var joined string
		for tok := range stream.All() {
			joined += tok.Text()
		}
		assert.Equal(t, input, joined)
	}
}

func TestLexKeywords(t *testing.T) {
	t.Parallel()

	stream, errs := lex(t, "module interface_thing genvar gen")
	var kinds []token.Kind
	for tok := range stream.All() {
		if tok.Kind() == token.Space {
			continue
		}
		kinds = append(kinds, tok.Kind())
	}

	// A keyword is only ever a complete lexeme, never a prefix.
	assert.Equal(t, []token.Kind{
		token.KwModule, token.Ident, token.Ident, token.KwGen,
	}, kinds)
	assert.False(t, errs.HasErrors())
}

func TestLexUnterminatedComment(t *testing.T) {
	t.Parallel()

	stream, errs := lex(t, "module /* oops")
	require.Equal(t, 1, errs.Count(report.Error))
	assert.Equal(t, "unterminated block comment", errs.Diagnostics[0].Message())

	var last token.Token
	for tok := range stream.All() {
		last = tok
	}
	assert.Equal(t, token.Comment, last.Kind())
	assert.Equal(t, "/* oops", last.Text())
}

func TestLexUnrecognized(t *testing.T) {
	t.Parallel()

	stream, errs := lex(t, "a $$🍣 b")

	var kinds []token.Kind
	for tok := range stream.All() {
		kinds = append(kinds, tok.Kind())
	}
	assert.Equal(t, []token.Kind{
		token.Ident, token.Space, token.Unrecognized, token.Space, token.Ident,
	}, kinds)

	// One maximal garbage run, one diagnostic.
	assert.Equal(t, 1, errs.Count(report.Error))
}
