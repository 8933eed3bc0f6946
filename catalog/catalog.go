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

// Package catalog defines the closed catalog of token and node kinds
// that a raw syntax tree is built over.
//
// A catalog is supplied once at startup, either programmatically via
// [Builder] or from YAML configuration via [Load], and is immutable
// afterwards. It is the sole contract shared between the tree core and
// any wrapper-generating tooling: every kind's arity, default spelling,
// per-slot acceptable kinds, and category membership comes from here and
// is never re-derived at runtime.
package catalog

import (
	"fmt"

	"github.com/tidwall/btree"
)

// Kind identifies a single token or node kind within a catalog.
//
// Kinds are dense indices assigned in declaration order. Kind values
// are only meaningful relative to the catalog that assigned them.
type Kind uint32

// Unrecognized is the reserved kind for garbage tokens. Every catalog
// contains it implicitly as kind zero; it is the kind reported by zero
// nodes and it always carries the recursive error flag.
const Unrecognized Kind = 0

// Variadic is the arity reported for collection kinds, whose child
// count is not fixed.
const Variadic = -1

// Slot describes one fixed child slot of a node kind.
type Slot struct {
	// Name is the slot's label within its node kind.
	Name string

	// Kinds is the set of kinds acceptable in this slot. The zero set
	// means the slot is unconstrained.
	Kinds KindSet
}

// entry is the resolved description of one kind.
type entry struct {
	name       string
	spelling   string
	slots      []Slot
	element    KindSet
	token      bool
	collection bool
	unexpected bool
}

// Catalog is an immutable, closed enumeration of token and node kinds.
type Catalog struct {
	entries    []entry
	byName     btree.Map[string, Kind]
	categories btree.Map[string, KindSet]
	singletons []KindSet
	all        KindSet
}

// Len returns the number of kinds in this catalog, including the
// implicit [Unrecognized] kind.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Lookup finds a kind by name.
func (c *Catalog) Lookup(name string) (Kind, bool) {
	return c.byName.Get(name)
}

// Name returns the name of a kind.
//
// Panics if k is not a kind of this catalog.
func (c *Catalog) Name(k Kind) string {
	return c.entry(k).name
}

// IsToken returns whether k is a token kind (as opposed to a node,
// i.e. layout, kind).
func (c *Catalog) IsToken(k Kind) bool {
	return c.entry(k).token
}

// Spelling returns the default spelling of a token kind, such as "(" for
// a parenthesis kind. Returns "" for kinds without a canonical spelling.
func (c *Catalog) Spelling(k Kind) string {
	return c.entry(k).spelling
}

// Arity returns the fixed child slot count of a node kind, or
// [Variadic] for collection kinds.
//
// Panics if k is a token kind; tokens have no child slots at all, and
// asking is a caller bug.
func (c *Catalog) Arity(k Kind) int {
	e := c.entry(k)
	if e.token {
		panic(fmt.Sprintf("rawtree/catalog: Arity() called with token kind %q", e.name))
	}
	if e.collection {
		return Variadic
	}
	return len(e.slots)
}

// Slot returns the i-th child slot description of a node kind.
//
// Panics if k is not a fixed-arity node kind or i is out of range.
func (c *Catalog) Slot(k Kind, i int) Slot {
	e := c.entry(k)
	if e.token || e.collection {
		panic(fmt.Sprintf("rawtree/catalog: Slot() called with non-fixed-arity kind %q", e.name))
	}
	if i < 0 || i >= len(e.slots) {
		panic(fmt.Sprintf("rawtree/catalog: slot index out of range: %d of %d", i, len(e.slots)))
	}
	return e.slots[i]
}

// IsCollection returns whether k is a collection kind: a node kind
// holding a repeatable list of a single element category.
func (c *Catalog) IsCollection(k Kind) bool {
	return c.entry(k).collection
}

// Elements returns the set of kinds acceptable as elements of a
// collection kind. Returns the zero set for non-collection kinds.
func (c *Catalog) Elements(k Kind) KindSet {
	return c.entry(k).element
}

// IsUnexpected returns whether k carries the "unexpected content"
// marker: nodes of such kinds represent source the parser could not
// place, and contribute to the recursive error flag of every ancestor.
func (c *Catalog) IsUnexpected(k Kind) bool {
	return c.entry(k).unexpected
}

// Only returns the kind set containing exactly k.
//
// The returned set is interned: calling Only twice with the same kind
// returns values that compare equal with ==.
func (c *Catalog) Only(k Kind) KindSet {
	c.entry(k) // Bounds check.
	return c.singletons[k]
}

// Any returns the kind set containing every kind in the catalog.
func (c *Catalog) Any() KindSet {
	return c.all
}

// Category finds a named base category: a union of concrete kinds
// declared in the catalog, such as "any expression".
//
// Like [Catalog.Only], the returned set is interned.
func (c *Catalog) Category(name string) (KindSet, bool) {
	return c.categories.Get(name)
}

func (c *Catalog) entry(k Kind) *entry {
	if int(k) >= len(c.entries) {
		panic(fmt.Sprintf("rawtree/catalog: kind out of range: %d of %d", k, len(c.entries)))
	}
	return &c.entries[k]
}
