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

package catalog

import "strings"

// KindSet is a predicate over kinds: a singleton for a concrete kind,
// or the union of several (a base category).
//
// Sets are interned by the catalog that built them, so two KindSet
// values obtained from the same catalog for the same kind or category
// compare equal with ==. The zero value is the empty set, which no kind
// is a member of.
type KindSet struct {
	impl *kindSet
}

type kindSet struct {
	name string
	bits []uint64
}

// IsZero returns whether this is the zero (empty) set.
func (s KindSet) IsZero() bool {
	return s.impl == nil
}

// Has returns whether k is a member of this set.
func (s KindSet) Has(k Kind) bool {
	if s.impl == nil {
		return false
	}
	word := int(k / 64)
	if word >= len(s.impl.bits) {
		return false
	}
	return s.impl.bits[word]&(1<<(k%64)) != 0
}

// Name returns the kind or category name this set was built from.
func (s KindSet) Name() string {
	if s.impl == nil {
		return ""
	}
	return s.impl.name
}

// String implements [fmt.Stringer].
func (s KindSet) String() string {
	if s.impl == nil {
		return "KindSet()"
	}

	var b strings.Builder
	b.WriteString("KindSet(")
	b.WriteString(s.impl.name)
	b.WriteString(")")
	return b.String()
}

// newSet builds an interned set over the given bits.
func newSet(name string, bits []uint64) KindSet {
	return KindSet{impl: &kindSet{name: name, bits: bits}}
}

// newBits allocates a bit vector wide enough for n kinds.
func newBits(n int) []uint64 {
	return make([]uint64, (n+63)/64)
}
