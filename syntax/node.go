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
	"github.com/cursivelang/rawtree/internal/arena"
	"github.com/cursivelang/rawtree/report"
	"github.com/cursivelang/rawtree/seq"
	"github.com/cursivelang/rawtree/source"
)

// Implementation notes:
//
// Let n := int32(id). If n is zero, it is the zero node. If n is
// positive, it is a token whose slab pointer is n. If n is negative, it
// is a layout node whose slab pointer is -n.

// ID is the raw identity of a [Node] separated from its [Arena].
//
// The zero value is reserved as the zero-node representation. All other
// values are opaque. IDs are useful for storing nodes of some ambient
// arena in a compressed form.
type ID int32

// In associates this ID with an arena, yielding a usable node.
//
// No checks are performed to validate that the ID came from this arena;
// the caller is responsible for ensuring that themselves.
func (id ID) In(a *Arena) Node {
	if id == 0 {
		return Zero
	}
	return Node{arena: a, id: id}
}

// Zero is the zero [Node], used to denote the absence of a node. It is
// distinct from a missing token, which is a present-but-synthesized
// placeholder produced during error recovery.
var Zero Node

// Node is a raw syntax node: one token or one grouping of child nodes.
//
// Nodes are immutable once constructed and carry their arena with them,
// so they may be read concurrently and embedded across arenas. The zero
// value is [Zero].
type Node struct {
	arena *Arena
	id    ID
}

// IsZero returns whether this is the zero node.
func (n Node) IsZero() bool {
	return n.id == 0
}

// ID returns this node's raw ID, disassociated from its arena.
func (n Node) ID() ID {
	return n.id
}

// Arena returns the arena that allocated this node, which is nil for
// the zero node.
func (n Node) Arena() *Arena {
	return n.arena
}

// IsToken returns whether this is a non-zero token node.
func (n Node) IsToken() bool {
	return n.id > 0
}

// IsLayout returns whether this is a non-zero layout node.
func (n Node) IsLayout() bool {
	return n.id < 0
}

// Kind returns what kind of node this is.
//
// Returns [catalog.Unrecognized] for the zero node.
func (n Node) Kind() catalog.Kind {
	switch {
	case n.id > 0:
		return n.token().kind
	case n.id < 0:
		return n.layout().kind
	default:
		return catalog.Unrecognized
	}
}

// ByteLen returns this node's total length in bytes: for tokens, core
// text plus both trivia regions; for layout nodes, the cached sum of
// the children's lengths.
func (n Node) ByteLen() int {
	switch {
	case n.id > 0:
		return int(n.token().byteLen)
	case n.id < 0:
		return int(n.layout().byteLen)
	default:
		return 0
	}
}

// HasError returns whether this node or any of its descendants records
// an error condition: a missing or unrecognized token, an
// error-severity diagnostic, or a node of an "unexpected content" kind.
//
// The flag is computed at construction and cached, so this is O(1); no
// tree walk occurs.
func (n Node) HasError() bool {
	switch {
	case n.id > 0:
		return n.token().hasError
	case n.id < 0:
		return n.layout().hasError
	default:
		return false
	}
}

// Text returns a token's core text, excluding trivia.
//
// Returns the zero text for layout nodes and the zero node.
func (n Node) Text() source.Text {
	if tok := n.token(); tok != nil {
		return tok.text
	}
	return source.Text{}
}

// Presence returns whether a token was genuinely found in source or
// synthesized as an error-recovery placeholder.
//
// Returns [Present] for layout nodes and the zero node.
func (n Node) Presence() Presence {
	if tok := n.token(); tok != nil {
		return tok.presence
	}
	return Present
}

// Diagnostic returns the diagnostic annotation attached to a token, or
// nil if there is none (or this is not a token).
func (n Node) Diagnostic() *report.Diagnostic {
	if tok := n.token(); tok != nil {
		return tok.diag
	}
	return nil
}

// LeadingTrivia returns the trivia attached to a token's leading edge.
// The sequence is empty for layout nodes and the zero node.
func (n Node) LeadingTrivia() seq.Indexer[Trivia] {
	if tok := n.token(); tok != nil {
		return triviaSeq{tok.leading}
	}
	return triviaSeq{}
}

// TrailingTrivia returns the trivia attached to a token's trailing
// edge. The sequence is empty for layout nodes and the zero node.
func (n Node) TrailingTrivia() seq.Indexer[Trivia] {
	if tok := n.token(); tok != nil {
		return triviaSeq{tok.trailing}
	}
	return triviaSeq{}
}

// Arity returns the number of child slots of a layout node. Tokens and
// the zero node have no slots.
func (n Node) Arity() int {
	if lay := n.layout(); lay != nil {
		return len(lay.children)
	}
	return 0
}

// Child returns the node in the given child slot, which is [Zero] for
// an explicitly absent child.
//
// Panics unless this is a layout node and 0 <= idx < Arity(); an
// out-of-range index is a caller bug.
func (n Node) Child(idx int) Node {
	lay := n.layout()
	if lay == nil {
		panic(fmt.Sprintf("rawtree/syntax: Child() called on non-layout node %v", n))
	}
	if idx < 0 || idx >= len(lay.children) {
		panic(fmt.Sprintf("rawtree/syntax: child index out of range: %d of %d", idx, len(lay.children)))
	}
	return lay.children[idx]
}

// Children returns an indexable view of a layout node's child slots.
// The sequence is empty for tokens and the zero node.
func (n Node) Children() seq.Indexer[Node] {
	if lay := n.layout(); lay != nil {
		return childSeq{lay.children}
	}
	return childSeq{}
}

// String implements [fmt.Stringer] with a compact debugging form.
func (n Node) String() string {
	switch {
	case n.IsZero():
		return "Node(<zero>)"
	case n.IsToken():
		tok := n.token()
		name := n.arena.cat.Name(tok.kind)
		if tok.presence == Missing {
			return fmt.Sprintf("Node(%s missing)", name)
		}
		return fmt.Sprintf("Node(%s %q)", name, tok.text.String())
	default:
		lay := n.layout()
		return fmt.Sprintf("Node(%s/%d)", n.arena.cat.Name(lay.kind), len(lay.children))
	}
}

func (n Node) token() *tokenData {
	if n.id <= 0 {
		return nil
	}
	return n.arena.tokens.At(arena.Untyped(n.id))
}

func (n Node) layout() *layoutData {
	if n.id >= 0 {
		return nil
	}
	return n.arena.layouts.At(arena.Untyped(-n.id))
}

// childSeq is the [seq.Indexer] view over a layout node's child slots.
type childSeq struct {
	children []Node
}

func (s childSeq) Len() int { return len(s.children) }

func (s childSeq) At(idx int) Node { return s.children[idx] }

// triviaSeq is the [seq.Indexer] view over a token's trivia pieces.
type triviaSeq struct {
	pieces []Trivia
}

func (s triviaSeq) Len() int { return len(s.pieces) }

func (s triviaSeq) At(idx int) Trivia { return s.pieces[idx] }
