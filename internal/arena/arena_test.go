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

package arena_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IBims1NicerTobi/sus-compiler/internal/arena"
)

func TestArena(t *testing.T) {
	t.Parallel()

	var a arena.Arena[int]
	assert.Equal(t, 0, a.Len())

	// Enough values to force several block growths.
	const n = 1000
	ptrs := make([]arena.Pointer[int], n)
	addrs := make([]*int, n)
	for i := range n {
		ptrs[i] = a.New(i)
		addrs[i] = ptrs[i].In(&a)
	}
	assert.Equal(t, n, a.Len())

	// Pointers are dense and monotonically increasing in allocation
	// order.
	for i, p := range ptrs {
		assert.Equal(t, arena.Untyped(i+1), p.Untyped())
		require.Equal(t, i, *p.In(&a))
	}

	// Values never move, even across growth.
	for i, addr := range addrs {
		require.Same(t, addr, ptrs[i].In(&a))
	}
}

func TestArenaNilPointer(t *testing.T) {
	t.Parallel()

	var a arena.Arena[string]
	var p arena.Pointer[string]
	assert.True(t, p.Nil())
	assert.Panics(t, func() { p.In(&a) })

	q := a.New("hi")
	assert.False(t, q.Nil())
	assert.Panics(t, func() { a.At(arena.Untyped(2)) })
}
