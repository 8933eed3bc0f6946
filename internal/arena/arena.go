// Copyright 2024-2025 Cursive Language Authors
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

// Package arena provides a slab allocator with compressed pointers.
//
// The benefits of compressed pointers are:
//
//  1. They are four bytes wide and four-byte aligned, which keeps
//     pointer-heavy tree structures small.
//
//  2. The GC does substantially less work on such structures, because
//     from its perspective a struct full of compressed pointers has no
//     outgoing edges to traverse.
//
//  3. Values allocated together land next to each other in memory, which
//     improves cache locality for tree walks.
package arena

import (
	"fmt"
	"math/bits"
	"strings"
)

// slabMinShift is the log2 of the size of the smallest slab in an Arena.
const (
	slabMinShift = 4
	slabMinLen   = 1 << slabMinShift
)

// Untyped is an arena pointer disassociated from its element type.
//
// The value of a pointer is one plus the number of elements allocated
// before it; the zero value is nil.
type Untyped uint32

// Nil returns a nil arena pointer.
func Nil() Untyped {
	return 0
}

// Nil returns whether this pointer is nil.
func (p Untyped) Nil() bool {
	return p == 0
}

// Pointer is a compressed arena pointer.
//
// It cannot be dereferenced directly; see [Arena.Deref]. The zero value
// is nil.
type Pointer[T any] Untyped

// Nil returns whether this pointer is nil.
func (p Pointer[T]) Nil() bool {
	return Untyped(p).Nil()
}

// Untyped erases this pointer's element type.
func (p Pointer[T]) Untyped() Untyped {
	return Untyped(p)
}

// Arena is a slab allocator that offers compressed pointers. Internally,
// it is a slice of T that guarantees the Ts will never be moved.
//
// It does this by maintaining a table of logarithmically-growing slabs
// that mimic the resizing behavior of an ordinary slice. This trades the
// linear 8-byte overhead of []*T for a logarithmic 24-byte overhead.
// Lookup remains O(1), at the cost of two pointer loads instead of one.
//
// A zero Arena[T] is empty and ready to use.
type Arena[T any] struct {
	// Invariants:
	// 1. cap(slabs[0]) == slabMinLen.
	// 2. cap(slabs[n]) == 2*cap(slabs[n-1]).
	// 3. cap(slabs[n]) == len(slabs[n]) for n < len(slabs)-1.
	//
	// These invariants are needed for lookup to be O(1).
	slabs [][]T
}

// New allocates a new value on the arena, returning a pointer to it.
func (a *Arena[T]) New(value T) Pointer[T] {
	if a.slabs == nil {
		a.slabs = [][]T{make([]T, 0, slabMinLen)}
	}

	last := &a.slabs[len(a.slabs)-1]
	if len(*last) == cap(*last) {
		// The last slab is full; the next one is twice as big.
		a.slabs = append(a.slabs, make([]T, 0, 2*cap(*last)))
		last = &a.slabs[len(a.slabs)-1]
	}

	*last = append(*last, value)
	return Pointer[T](a.Len())
}

// NewCompressed is like [Arena.New], but it also returns an ordinary
// pointer alongside the compressed one, saving a [Arena.Deref] when the
// caller wants to initialize the value further.
func (a *Arena[T]) NewCompressed(value T) (Pointer[T], *T) {
	p := a.New(value)
	return p, a.Deref(p)
}

// Deref looks up the value p points to.
//
// The arena must be the one that allocated p, otherwise this will return
// an arbitrary value or panic. Panics if p is nil.
func (a *Arena[T]) Deref(p Pointer[T]) *T {
	return a.At(Untyped(p))
}

// At dereferences an untyped arena pointer, as if by [Arena.Deref].
func (a *Arena[T]) At(p Untyped) *T {
	if p.Nil() {
		a = nil // Trigger an ordinary nil dereference on purpose.
	}
	slab, idx := a.coordinates(int(p) - 1)
	return &a.slabs[slab][idx]
}

// Len returns the number of values allocated so far.
func (a *Arena[T]) Len() int {
	if len(a.slabs) == 0 {
		return 0
	}

	// Only the last slab can be partially filled.
	return a.lenOfFirstNSlabs(len(a.slabs)-1) + len(a.slabs[len(a.slabs)-1])
}

// String implements [fmt.Stringer].
func (a *Arena[T]) String() string {
	var b strings.Builder
	b.WriteRune('[')
	// Written out by hand to subtly show off the slab boundaries.
	for i, slab := range a.slabs {
		if i != 0 {
			b.WriteRune('|')
		}
		for j, v := range slab {
			if j != 0 {
				b.WriteRune(' ')
			}
			fmt.Fprint(&b, v)
		}
	}
	b.WriteRune(']')
	return b.String()
}

// lenOfNthSlab returns the length of the nth slab, even if it isn't
// allocated yet.
func (*Arena[T]) lenOfNthSlab(n int) int {
	return slabMinLen << n
}

// lenOfFirstNSlabs returns the total length of the first n slabs.
func (a *Arena[T]) lenOfFirstNSlabs(n int) int {
	// 2^m + 2^(m+1) + ... + 2^n == 2^(n+1) - 2^m, so the sum of
	// lenOfNthSlab(i) for i in [0, n) telescopes to the following.
	return max(0, a.lenOfNthSlab(n)-a.lenOfNthSlab(0))
}

// coordinates locates the given index in the slab table, bounds-checking
// it along the way.
func (a *Arena[T]) coordinates(idx int) (int, int) {
	if idx >= a.Len() || idx < 0 {
		panic(fmt.Sprintf("rawtree/arena: pointer out of range: %#x", idx))
	}

	// The cumulative starting index of each slab is
	//
	//   0b0 << s, 0b1 << s, 0b11 << s, 0b111 << s, ...
	//
	// where s == slabMinShift. Adding slabMinLen turns this into
	//
	//   0b1 << s, 0b10 << s, 0b100 << s, ...
	//
	// whose one-indexed high order bit is s+1, s+2, s+3, ..., so
	// subtracting s+1 recovers the slab index.
	slab := bits.UintSize - bits.LeadingZeros(uint(idx)+slabMinLen)
	slab -= slabMinShift + 1

	// The offset within slabs[slab] is whatever remains of idx after
	// the slabs before it.
	idx -= a.lenOfFirstNSlabs(slab)

	return slab, idx
}
