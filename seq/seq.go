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

// Package seq provides an interface for read-only, sequence-like types.
//
// The tree core avoids handing out the slices that back its nodes, both
// to keep them immutable and to leave the storage representation free to
// change. The interfaces in this package are the proxy it returns
// instead.
package seq

import "iter"

// Indexer is a type that can be indexed like a slice.
type Indexer[T any] interface {
	// Len returns the length of this sequence.
	Len() int

	// At returns the element at the given index.
	//
	// Should panic if idx < 0 or idx >= Len().
	At(idx int) T
}

// All returns an iterator over the elements in seq, like [slices.All].
func All[T any](seq Indexer[T]) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		n := seq.Len()
		for i := range n {
			if !yield(i, seq.At(i)) {
				return
			}
		}
	}
}

// Backward returns an iterator over the elements in seq in reverse,
// like [slices.Backward].
func Backward[T any](seq Indexer[T]) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := seq.Len() - 1; i >= 0; i-- {
			if !yield(i, seq.At(i)) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in seq, like
// [slices.Values].
func Values[T any](seq Indexer[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		n := seq.Len()
		for i := range n {
			if !yield(seq.At(i)) {
				return
			}
		}
	}
}

// ToSlice copies an [Indexer] into a freshly allocated slice.
func ToSlice[T any](seq Indexer[T]) []T {
	out := make([]T, seq.Len())
	for i := range out {
		out[i] = seq.At(i)
	}
	return out
}
