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

// Package arena defines an Arena type with compressed pointers.
//
// Syntax trees allocate one value per node, and nodes reference each
// other constantly. Storing those references as 4-byte arena pointers
// instead of 8-byte host pointers halves the at-rest size of the tree
// and keeps node storage contiguous.
package arena

import (
	"fmt"
	"math/bits"
)

// blocksMinLenShift is the log2 of the size of an arena's first block.
const (
	blocksMinLenShift = 4
	blocksMinLen      = 1 << blocksMinLenShift
)

// Untyped is an untyped arena pointer.
//
// The pointer value of a particular value in an arena is one plus the
// number of values allocated before it, so pointers are monotonically
// increasing in allocation order.
type Untyped uint32

// Nil returns whether this pointer is nil.
func (p Untyped) Nil() bool {
	return p == 0
}

// Pointer is a compressed arena pointer.
//
// Cannot be dereferenced directly; see [Pointer.In]. The zero value is
// nil.
type Pointer[T any] Untyped

// Nil returns whether this pointer is nil.
func (p Pointer[T]) Nil() bool {
	return Untyped(p).Nil()
}

// Untyped erases this pointer's type.
func (p Pointer[T]) Untyped() Untyped {
	return Untyped(p)
}

// In looks up this pointer in the given arena.
//
// arena must be the arena that allocated this pointer, otherwise this
// will return an arbitrary value or panic. Panics if p is nil.
func (p Pointer[T]) In(arena *Arena[T]) *T {
	return arena.At(Untyped(p))
}

// Arena is an arena that offers compressed pointers. Internally, it is a
// slice of T that guarantees the Ts never move.
//
// It does this with a table of logarithmically-growing blocks that mimic
// the resizing behavior of an ordinary slice, without ever discarding a
// previous allocation. Lookup remains O(1), at the cost of two pointer
// loads instead of one.
//
// A zero Arena[T] is empty and ready to use.
type Arena[T any] struct {
	// Invariants:
	// 1. cap(blocks[0]) == blocksMinLen.
	// 2. cap(blocks[n]) == 2*cap(blocks[n-1]).
	// 3. cap(blocks[n]) == len(blocks[n]) for n < len(blocks)-1.
	//
	// These invariants are what make lookup O(1).
	blocks [][]T
}

// New allocates a new value on the arena.
func (a *Arena[T]) New(value T) Pointer[T] {
	if a.blocks == nil {
		a.blocks = [][]T{make([]T, 0, blocksMinLen)}
	}

	last := &a.blocks[len(a.blocks)-1]
	if len(*last) == cap(*last) {
		// The last block is full; grow by doubling the next block's size.
		a.blocks = append(a.blocks, make([]T, 0, 2*cap(*last)))
		last = &a.blocks[len(a.blocks)-1]
	}

	*last = append(*last, value)
	return Pointer[T](Untyped(a.Len()))
}

// At dereferences an untyped arena pointer, as if by [Pointer.In].
func (a *Arena[T]) At(ptr Untyped) *T {
	if ptr.Nil() {
		a = nil // Trigger an ordinary nil dereference on purpose.
	}
	block, idx := a.coordinates(int(ptr) - 1)
	return &a.blocks[block][idx]
}

// Len returns how many values have been allocated on this arena.
func (a *Arena[T]) Len() int {
	if len(a.blocks) == 0 {
		return 0
	}

	// Only the last block can be partially filled.
	return a.lenOfFirstNBlocks(len(a.blocks)-1) + len(a.blocks[len(a.blocks)-1])
}

// lenOfNthBlock returns the length of the nth block, even if it isn't
// allocated yet.
func (*Arena[T]) lenOfNthBlock(n int) int {
	return blocksMinLen << n
}

// lenOfFirstNBlocks returns the total length of the first n blocks.
func (a *Arena[T]) lenOfFirstNBlocks(n int) int {
	// 2^m + 2^(m+1) + ... + 2^n == 2^(n+1) - 2^m, so the sum of the first
	// n block lengths telescopes to a subtraction.
	return max(0, a.lenOfNthBlock(n)-a.lenOfNthBlock(0))
}

// coordinates locates the block and offset of the given index, with a
// bounds check.
func (a *Arena[T]) coordinates(idx int) (int, int) {
	if idx >= a.Len() || idx < 0 {
		panic(fmt.Sprintf("arena: pointer out of range: %#x", idx))
	}

	// The cumulative starting index of block n is (2^n - 1) << shift.
	// Adding blocksMinLen maps those starts to powers of two, so the
	// one-indexed high bit recovers n directly.
	block := bits.UintSize - bits.LeadingZeros(uint(idx)+blocksMinLen)
	block -= blocksMinLenShift + 1

	// The offset within the block is what remains after subtracting the
	// lengths of all prior blocks.
	idx -= a.lenOfFirstNBlocks(block)

	return block, idx
}
