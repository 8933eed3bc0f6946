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
)

// ReplaceChild produces a new layout node identical to n except that
// slot idx holds child instead. The new node is allocated in this
// arena; every other slot reuses the original subtree by reference, and
// the new node's byte length and error flag are recomputed from
// scratch. n itself is unaffected.
//
// Replacing a slot of a node embedded deeper in a tree does not touch
// the ancestors; the caller propagates the replacement upward by
// replacing each ancestor's slot the same way, which is how an edit of
// a deeply nested node yields a fully new root that still shares every
// sibling subtree.
//
// Panics unless n is a layout node and 0 <= idx < n.Arity().
func (a *Arena) ReplaceChild(n Node, idx int, child Node) Node {
	a.mutate("ReplaceChild")

	lay := n.layout()
	if lay == nil {
		panic(fmt.Sprintf("rawtree/syntax: ReplaceChild() called on non-layout node %v", n))
	}
	if idx < 0 || idx >= len(lay.children) {
		panic(fmt.Sprintf("rawtree/syntax: child index out of range: %d of %d", idx, len(lay.children)))
	}

	children := slices.Clone(lay.children)
	children[idx] = child
	return a.NewLayout(lay.kind, children...)
}

// AppendElement produces a new collection node with element appended
// after n's existing children, which are reused by reference. n itself
// is unaffected.
//
// Appending to an empty collection is the same as building a fresh
// one-element collection. Insertion at arbitrary positions is not
// provided; callers that need it locate the surrounding nodes and
// rebuild the collection explicitly.
//
// Panics unless n is a layout node of a collection kind.
func (a *Arena) AppendElement(n Node, element Node) Node {
	a.mutate("AppendElement")

	lay := n.layout()
	if lay == nil {
		panic(fmt.Sprintf("rawtree/syntax: AppendElement() called on non-layout node %v", n))
	}
	if !a.cat.IsCollection(lay.kind) {
		panic(fmt.Sprintf("rawtree/syntax: AppendElement() called on non-collection kind %q", a.cat.Name(lay.kind)))
	}

	children := make([]Node, 0, len(lay.children)+1)
	children = append(children, lay.children...)
	children = append(children, element)
	return a.NewLayout(lay.kind, children...)
}
