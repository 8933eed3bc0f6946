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

package syntax

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"github.com/cursivelang/rawtree/catalog"
)

// layoutData is the record backing one layout node.
type layoutData struct {
	// children has exactly the kind's catalog arity entries for
	// fixed-arity kinds. A zero Node is an explicitly absent child.
	children []Node
	byteLen  uint32
	kind     catalog.Kind
	hasError bool
}

// NewLayout constructs a layout node of the given kind over the given
// child slots. A [Zero] child marks an explicitly absent slot.
//
// The node's byte length and recursive error flag are computed here and
// cached; children are referenced, never copied. Children allocated by
// other arenas are retained (see [Arena.Retain]) before the new node is
// returned.
//
// Panics if kind is not a node kind of this arena's catalog, if the
// child count does not match the kind's fixed arity, or if a child's
// kind violates the slot's (or collection's) acceptable-kind set.
func (a *Arena) NewLayout(kind catalog.Kind, children ...Node) Node {
	a.mutate("NewLayout")

	if a.cat.IsToken(kind) {
		panic(fmt.Sprintf("rawtree/syntax: NewLayout() called with token kind %q", a.cat.Name(kind)))
	}

	// Cross-arena embedding is fine; cross-catalog embedding would make
	// the children's kind tags meaningless here.
	for _, child := range children {
		if !child.IsZero() && child.arena.cat != a.cat {
			panic("rawtree/syntax: NewLayout() child is from an arena with a different catalog")
		}
	}

	if a.cat.IsCollection(kind) {
		want := a.cat.Elements(kind)
		for i, child := range children {
			a.checkSlot(kind, i, child, want)
		}
	} else {
		arity := a.cat.Arity(kind)
		if len(children) != arity {
			panic(fmt.Sprintf(
				"rawtree/syntax: NewLayout() arity mismatch for %q: got %d children, kind has %d slots",
				a.cat.Name(kind), len(children), arity,
			))
		}
		for i, child := range children {
			a.checkSlot(kind, i, child, a.cat.Slot(kind, i).Kinds)
		}
	}

	length := 0
	hasError := a.cat.IsUnexpected(kind)
	for _, child := range children {
		if child.IsZero() {
			continue
		}
		length += child.ByteLen()
		hasError = hasError || child.HasError()
		a.Retain(child.arena)
	}

	byteLen, err := safecast.Conv[uint32](length)
	if err != nil {
		panic(fmt.Sprintf("rawtree/syntax: layout length overflow: %v", err))
	}

	ptr := a.layouts.New(layoutData{
		children: slices.Clone(children),
		byteLen:  byteLen,
		kind:     kind,
		hasError: hasError,
	})
	return ID(-int32(ptr)).In(a)
}

// NewEmptyLayout constructs a layout node with zero children, for kinds
// whose catalog arity is zero and for empty collections.
func (a *Arena) NewEmptyLayout(kind catalog.Kind) Node {
	return a.NewLayout(kind)
}

// checkSlot enforces a slot's acceptable-kind set. The zero set means
// the slot is unconstrained.
func (a *Arena) checkSlot(kind catalog.Kind, idx int, child Node, want catalog.KindSet) {
	if child.IsZero() || want.IsZero() || want.Has(child.Kind()) {
		return
	}
	panic(fmt.Sprintf(
		"rawtree/syntax: child %d of %q has kind %q, which slot set %v does not accept",
		idx, a.cat.Name(kind), child.arena.cat.Name(child.Kind()), want,
	))
}
