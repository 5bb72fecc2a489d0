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

// Package interval provides an interval map over integer keys, used for
// point queries against byte ranges of a source file.
package interval

import (
	"fmt"
	"iter"

	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints"
)

// Map maps half-open, pairwise-disjoint intervals [start, end) with
// endpoints in K to values of type V.
//
// A zero Map is empty and ready to use.
type Map[K constraints.Integer, V any] struct {
	// Keys in this map are the exclusive ends of the intervals; each
	// entry remembers its own start.
	tree btree.Map[K, entry[K, V]]
}

type entry[K constraints.Integer, V any] struct {
	start K
	value V
}

// Interval is an entry returned by [Map.Get] and [Map.Intervals].
type Interval[K constraints.Integer, V any] struct {
	// The half-open range for this interval.
	Start, End K

	// The value associated with it. Nil when no interval matched.
	Value *V
}

// Get looks up the interval containing key, if one exists.
//
// If no such interval exists, the Value of the returned [Interval] is
// nil.
func (m *Map[K, V]) Get(key K) Interval[K, V] {
	iter := m.tree.Iter()

	// Seek to the least interval whose end is > key; Seek finds end >= key,
	// so step once more when the end is exactly key (half-open ranges).
	found := iter.Seek(key)
	if found && iter.Key() == key {
		found = iter.Next()
	}
	if !found || key < iter.Value().start {
		return Interval[K, V]{}
	}

	v := iter.Value()
	return Interval[K, V]{
		Start: v.start,
		End:   iter.Key(),
		Value: &v.value,
	}
}

// Intervals returns an iterator over the intervals in this map, in
// ascending order.
func (m *Map[K, V]) Intervals() iter.Seq[Interval[K, V]] {
	return func(yield func(Interval[K, V]) bool) {
		iter := m.tree.Iter()
		for more := iter.First(); more; more = iter.Next() {
			v := iter.Value()
			if !yield(Interval[K, V]{
				Start: v.start,
				End:   iter.Key(),
				Value: &v.value,
			}) {
				return
			}
		}
	}
}

// Insert inserts the interval [start, end) with the given associated
// value.
//
// The caller must ensure that intervals are pairwise disjoint; this is
// not re-verified, since the tree construction that feeds this map
// already guarantees it. Empty intervals are ignored. Panics if
// start > end.
func (m *Map[K, V]) Insert(start, end K, value V) {
	if start > end {
		panic(fmt.Sprintf("interval: start (%v) > end (%v)", start, end))
	}
	if start == end {
		return
	}

	m.tree.Set(end, entry[K, V]{start: start, value: value})
}

// Len returns the number of intervals in this map.
func (m *Map[K, V]) Len() int {
	return m.tree.Len()
}
