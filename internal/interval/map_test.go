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

package interval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IBims1NicerTobi/sus-compiler/internal/interval"
)

func TestMap(t *testing.T) {
	t.Parallel()

	var m interval.Map[uint32, string]
	m.Insert(0, 5, "a")
	m.Insert(5, 6, "b")
	m.Insert(10, 20, "c")
	m.Insert(7, 7, "empty") // Ignored.
	require.Equal(t, 3, m.Len())

	cases := []struct {
		key   uint32
		want  string
		found bool
	}{
		{0, "a", true},
		{4, "a", true},
		{5, "b", true}, // Half-open: 5 is the start of b, not part of a.
		{6, "", false},
		{7, "", false},
		{9, "", false},
		{10, "c", true},
		{19, "c", true},
		{20, "", false},
		{100, "", false},
	}
	for _, tc := range cases {
		got := m.Get(tc.key)
		if !tc.found {
			assert.Nil(t, got.Value, "key %d", tc.key)
			continue
		}
		require.NotNil(t, got.Value, "key %d", tc.key)
		assert.Equal(t, tc.want, *got.Value, "key %d", tc.key)
	}
}

func TestMapIntervals(t *testing.T) {
	t.Parallel()

	var m interval.Map[int, int]
	m.Insert(30, 40, 3)
	m.Insert(0, 10, 1)
	m.Insert(10, 30, 2)

	type span struct{ start, end, value int }
	var got []span
	for iv := range m.Intervals() {
		got = append(got, span{iv.Start, iv.End, *iv.Value})
	}
	assert.Equal(t, []span{{0, 10, 1}, {10, 30, 2}, {30, 40, 3}}, got)
}

func TestMapInsertPanics(t *testing.T) {
	t.Parallel()

	var m interval.Map[int, int]
	assert.Panics(t, func() { m.Insert(5, 4, 0) })
}
