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

package sus_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sus "github.com/IBims1NicerTobi/sus-compiler"
	"github.com/IBims1NicerTobi/sus-compiler/cst"
	"github.com/IBims1NicerTobi/sus-compiler/report"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tree, errs := sus.Parse("test.sus", "module m {\n\tx = 1\n}\n")
	require.NotNil(t, tree)
	assert.False(t, errs.HasErrors())
	assert.Equal(t, cst.SourceFile, tree.Root().Kind())
	assert.Equal(t, "m", tree.Root().FieldNode(cst.FieldItem).FieldToken(cst.FieldName).Text())

	tree, errs = sus.Parse("bad.sus", "not a module\n")
	require.NotNil(t, tree)
	assert.True(t, errs.HasErrors())
	assert.True(t, tree.HasErrors())
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	tree, errs, err := sus.ParseFile("parser/testdata/cst/simple.sus")
	require.NoError(t, err)
	require.NotNil(t, tree)
	assert.False(t, errs.HasErrors())
	name := tree.Root().FieldNode(cst.FieldItem).FieldToken(cst.FieldName).Text()
	assert.Equal(t, "adder", name)

	_, _, err = sus.ParseFile("parser/testdata/does-not-exist.sus")
	assert.Error(t, err)
}

func TestSessionParseAll(t *testing.T) {
	t.Parallel()

	files := make([]*report.File, 50)
	for i := range files {
		files[i] = report.NewFile(
			fmt.Sprintf("file%d.sus", i),
			fmt.Sprintf("module m%d {\n\tx = %d\n}\n", i, i))
	}

	session := &sus.Session{MaxParallelism: 4}
	results, err := session.ParseAll(context.Background(), files...)
	require.NoError(t, err)
	require.Len(t, results, len(files))

	// Results come back in input order, regardless of scheduling.
	for i, res := range results {
		require.NotNil(t, res.Tree)
		assert.False(t, res.Report.HasErrors())
		name := res.Tree.Root().FieldNode(cst.FieldItem).FieldToken(cst.FieldName).Text()
		assert.Equal(t, fmt.Sprintf("m%d", i), name)
	}
}

func TestSessionCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session := &sus.Session{MaxParallelism: 1}
	_, err := session.ParseAll(ctx, report.NewFile("a.sus", "module a {}\n"))
	assert.ErrorIs(t, err, context.Canceled)
}
