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

// Package syntax implements the raw syntax tree: an immutable,
// arena-backed representation of every token and grouping node of a
// parsed document.
//
// # Nodes
//
// A [Node] is either a token (a leaf carrying literal text, trivia, and
// presence state) or a layout node (an interior node with an ordered,
// fixed-arity sequence of optional children). Which kinds exist, what
// their arities are, and how they group into categories is determined by
// a [catalog.Catalog] supplied when the arena is created.
//
// Nodes are handles: small values pairing the owning [Arena] with a
// compressed index into its slabs. They are cheap to copy and compare;
// two handles are the same node exactly when they compare equal with ==.
//
// # Immutability and editing
//
// A node never changes after its constructing call returns. "Editing" a
// tree with [Arena.ReplaceChild] or [Arena.AppendElement] allocates a
// new node for each step of the path from the edited slot to the root
// and reuses every other subtree by reference. The old root stays valid;
// this is a persistent data structure, not an in-place mutable tree.
//
// Because published nodes are immutable, any number of goroutines may
// read the same tree without synchronization. The arena is the only
// mutable resource: one goroutine owns construction and editing on an
// arena at a time (the owner is checked), and ownership moves between
// goroutines only via [Arena.Adopt] under external synchronization.
//
// # Errors
//
// Malformed source is data, not failure: a missing token, a node of an
// "unexpected content" kind, or a [report.Diagnostic] annotation. Each
// layout node caches a recursive error flag summarizing whether it or
// any descendant carries such a condition, so consumers never need a
// tree walk to ask. Contract violations (out-of-range indices, arity
// mismatches, wrong-arena text) are caller bugs and panic.
package syntax
