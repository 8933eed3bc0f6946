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

import "fmt"

// Builder accumulates kind declarations and assembles them into an
// immutable [Catalog].
//
// Declaration order matters in two ways: kinds are numbered in the
// order they are declared, and a category may only reference kinds and
// categories declared before it.
type Builder struct {
	tokens     []tokenSpec
	nodes      []nodeSpec
	categories []categorySpec
}

type tokenSpec struct {
	name     string
	spelling string
}

type nodeSpec struct {
	name       string
	slots      []SlotSpec
	elements   []string
	collection bool
	unexpected bool
}

type categorySpec struct {
	name    string
	members []string
}

// SlotSpec declares one fixed child slot of a node kind.
type SlotSpec struct {
	// Name is the slot's label, e.g. "condition".
	Name string

	// Kinds names the kinds or categories acceptable in this slot.
	// Empty means the slot is unconstrained.
	Kinds []string
}

// Token declares a token kind. spelling is the kind's canonical default
// spelling ("(", "if", ...), or "" if the kind has none.
func (b *Builder) Token(name, spelling string) {
	b.tokens = append(b.tokens, tokenSpec{name: name, spelling: spelling})
}

// Node declares a fixed-arity node kind with the given child slots.
func (b *Builder) Node(name string, slots ...SlotSpec) {
	b.nodes = append(b.nodes, nodeSpec{name: name, slots: slots})
}

// Collection declares a collection kind: a node kind holding a
// repeatable list of children drawn from the named kinds or categories.
func (b *Builder) Collection(name string, elements ...string) {
	b.nodes = append(b.nodes, nodeSpec{name: name, elements: elements, collection: true})
}

// Unexpected declares a collection kind that carries the "unexpected
// content" marker. Parsers use such nodes to hold source they could not
// place; the marker propagates into the recursive error flag of every
// ancestor.
func (b *Builder) Unexpected(name string, elements ...string) {
	b.nodes = append(b.nodes, nodeSpec{
		name:       name,
		elements:   elements,
		collection: true,
		unexpected: true,
	})
}

// Category declares a base category: a union of previously declared
// kinds and categories, usable as a typed-view predicate and in slot
// constraints.
func (b *Builder) Category(name string, members ...string) {
	b.categories = append(b.categories, categorySpec{name: name, members: members})
}

// Build resolves all declarations into a catalog.
//
// Unlike tree construction, building a catalog is configuration
// processing and can fail recoverably: duplicate names, references to
// undeclared kinds, and the like are reported as errors.
func (b *Builder) Build() (*Catalog, error) {
	c := new(Catalog)

	// Kind 0 is always the implicit unrecognized token kind.
	c.entries = append(c.entries, entry{name: "unrecognized", token: true})
	for _, t := range b.tokens {
		c.entries = append(c.entries, entry{
			name:     t.name,
			spelling: t.spelling,
			token:    true,
		})
	}
	for _, n := range b.nodes {
		c.entries = append(c.entries, entry{
			name:       n.name,
			collection: n.collection,
			unexpected: n.unexpected,
		})
	}

	for i, e := range c.entries {
		if e.name == "" {
			return nil, fmt.Errorf("rawtree/catalog: kind %d has an empty name", i)
		}
		if _, dup := c.byName.Get(e.name); dup {
			return nil, fmt.Errorf("rawtree/catalog: duplicate kind name %q", e.name)
		}
		c.byName.Set(e.name, Kind(i))
	}

	n := len(c.entries)
	c.singletons = make([]KindSet, n)
	all := newBits(n)
	for i := range c.entries {
		k := Kind(i)
		bits := newBits(n)
		bits[k/64] |= 1 << (k % 64)
		all[k/64] |= 1 << (k % 64)
		c.singletons[i] = newSet(c.entries[i].name, bits)
	}
	c.all = newSet("any", all)

	// Categories resolve in declaration order so that a category can
	// union in an earlier one.
	for _, cat := range b.categories {
		if _, dup := c.byName.Get(cat.name); dup {
			return nil, fmt.Errorf("rawtree/catalog: category %q collides with a kind name", cat.name)
		}
		if _, dup := c.categories.Get(cat.name); dup {
			return nil, fmt.Errorf("rawtree/catalog: duplicate category name %q", cat.name)
		}

		bits, err := c.resolve(cat.members)
		if err != nil {
			return nil, fmt.Errorf("rawtree/catalog: category %q: %w", cat.name, err)
		}
		c.categories.Set(cat.name, newSet(cat.name, bits))
	}

	// Slot and element constraints may reference any kind or category,
	// so they resolve last.
	for i, node := range b.nodes {
		k := Kind(1 + len(b.tokens) + i)
		e := &c.entries[k]

		if node.collection {
			if len(node.elements) == 0 {
				continue
			}
			bits, err := c.resolve(node.elements)
			if err != nil {
				return nil, fmt.Errorf("rawtree/catalog: collection %q: %w", node.name, err)
			}
			e.element = newSet(node.name+".element", bits)
			continue
		}

		e.slots = make([]Slot, len(node.slots))
		for j, spec := range node.slots {
			e.slots[j] = Slot{Name: spec.Name}
			if len(spec.Kinds) == 0 {
				continue
			}
			bits, err := c.resolve(spec.Kinds)
			if err != nil {
				return nil, fmt.Errorf("rawtree/catalog: node %q slot %q: %w", node.name, spec.Name, err)
			}
			e.slots[j].Kinds = newSet(fmt.Sprintf("%s.%s", node.name, spec.Name), bits)
		}
	}

	return c, nil
}

// resolve unions the named kinds and categories into a bit vector.
func (c *Catalog) resolve(names []string) ([]uint64, error) {
	bits := newBits(len(c.entries))
	for _, name := range names {
		if k, ok := c.byName.Get(name); ok {
			bits[k/64] |= 1 << (k % 64)
			continue
		}
		if set, ok := c.categories.Get(name); ok {
			for i, word := range set.impl.bits {
				bits[i] |= word
			}
			continue
		}
		return nil, fmt.Errorf("reference to undeclared kind %q", name)
	}
	return bits, nil
}
