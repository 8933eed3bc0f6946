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

	"github.com/cursivelang/rawtree/catalog"
)

// View is a kind-checked window onto a raw node: a node paired with the
// kind predicate it was checked against. It owns no state of its own;
// identity and lifetime are entirely those of the underlying node.
//
// Views are what generated (or hand-written) per-kind wrapper types
// embed. A wrapper for a concrete kind uses the kind's singleton set as
// its predicate; a wrapper for a base category such as "any expression"
// uses the category's union set. Because predicates are interned by the
// catalog, views compare with == and wrapping is idempotent.
//
// The zero value is the nil view, which [TryWrap] returns on a kind
// mismatch.
type View struct {
	node Node
	set  catalog.KindSet
}

// TryWrap checks n against the given predicate and returns a view over
// it, sharing the underlying node. Returns the zero view if n is the
// zero node or its kind is not in the set.
func TryWrap(set catalog.KindSet, n Node) View {
	if n.IsZero() || !set.Has(n.Kind()) {
		return View{}
	}
	return View{node: n, set: set}
}

// WrapView re-wraps an existing view with another predicate. A view
// that already carries exactly this predicate is returned as-is, with
// no re-check; anything else goes through [TryWrap] on the underlying
// node. This makes wrapping idempotent for base-category views.
func WrapView(set catalog.KindSet, v View) View {
	if v.set == set {
		return v
	}
	return TryWrap(set, v.node)
}

// Is reports whether n would wrap successfully against set, without
// constructing the view.
func Is(set catalog.KindSet, n Node) bool {
	return !n.IsZero() && set.Has(n.Kind())
}

// IsZero returns whether this is the nil view.
func (v View) IsZero() bool {
	return v.node.IsZero()
}

// Unwrap projects the view back to its untyped raw node. It is total:
// the nil view unwraps to [Zero].
func (v View) Unwrap() Node {
	return v.node
}

// Set returns the predicate this view was checked against.
func (v View) Set() catalog.KindSet {
	return v.set
}

// String implements [fmt.Stringer].
func (v View) String() string {
	if v.IsZero() {
		return "View(<zero>)"
	}
	return fmt.Sprintf("View(%s: %v)", v.set.Name(), v.node)
}
