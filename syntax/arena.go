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
	"sync/atomic"

	"github.com/petermattis/goid"

	"github.com/cursivelang/rawtree/catalog"
	"github.com/cursivelang/rawtree/internal/arena"
	"github.com/cursivelang/rawtree/source"
)

// generation hands out arena identities process-wide.
var generation atomic.Uint64

// Arena owns the backing storage for one tree construction or editing
// session. Every node is created against an explicit arena and remains
// valid for as long as that arena is reachable; there is no implicit
// global arena and no per-node deallocation.
//
// An arena is owned by the goroutine that created it. All construction
// and editing calls are checked against the owner; hand an arena to
// another goroutine by calling [Arena.Adopt] from the new owner, with
// whatever external synchronization the handoff needs. Reading nodes is
// unrestricted.
type Arena struct {
	cat *catalog.Catalog
	id  uint64

	tokens  arena.Arena[tokenData]
	layouts arena.Arena[layoutData]

	// Arenas whose nodes have been embedded into trees built here.
	// Holding them keeps their slabs reachable at least as long as this
	// arena, which is the lifetime guarantee cross-arena embedding
	// needs.
	retained []*Arena

	// Count of byte-storage allocations (buffers and materializations).
	// Zero-copy operations leave it untouched, which is what the
	// zero-copy tests assert.
	byteAllocs uint64

	owner  int64
	frozen bool
}

// NewArena creates an arena for trees over the given catalog.
func NewArena(cat *catalog.Catalog) *Arena {
	if cat == nil {
		panic("rawtree/syntax: NewArena() called with a nil catalog")
	}
	return &Arena{
		cat:   cat,
		id:    generation.Add(1),
		owner: goid.Get(),
	}
}

// Catalog returns the catalog this arena builds trees over.
func (a *Arena) Catalog() *catalog.Catalog {
	return a.cat
}

// ID returns this arena's identity: a process-unique generation number
// used to test whether two values were allocated together.
func (a *Arena) ID() uint64 {
	return a.id
}

// NewBuffer wraps source text in a buffer owned by this arena. Token
// text sliced from the returned buffer can back zero-copy tokens of
// this arena.
func (a *Arena) NewBuffer(text string) *source.Buffer {
	a.mutate("NewBuffer")
	a.byteAllocs++
	return source.NewBuffer(text, a.id)
}

// Materialize copies text into storage freshly owned by this arena.
// Used when token text cannot reference a parse buffer, such as for
// synthesized or edited tokens.
func (a *Arena) Materialize(text []byte) source.Text {
	a.mutate("Materialize")
	a.byteAllocs++
	return source.NewBuffer(string(text), a.id).All()
}

// ByteAllocs returns the number of byte-storage allocations this arena
// has performed so far.
func (a *Arena) ByteAllocs() uint64 {
	return a.byteAllocs
}

// Retain establishes that other's lifetime must not end before this
// arena's. [Arena.NewLayout] calls it automatically when a child node
// from another arena is embedded; callers only need it when stashing
// foreign nodes somewhere the allocator cannot see.
func (a *Arena) Retain(other *Arena) {
	if other == nil || other == a {
		return
	}
	a.mutate("Retain")
	if !slices.Contains(a.retained, other) {
		a.retained = append(a.retained, other)
	}
}

// Adopt transfers ownership of this arena to the calling goroutine.
//
// The previous owner must have stopped touching the arena before Adopt
// is called; that ordering is the caller's to arrange.
func (a *Arena) Adopt() {
	a.owner = goid.Get()
}

// Freeze marks this arena as complete. All construction and editing
// calls panic afterwards; frozen trees are safe to share freely.
//
// Freezing cannot be checked for or undone; callers should assume any
// arena they did not create has already been frozen.
func (a *Arena) Freeze() {
	if a != nil {
		a.frozen = true
	}
}

// String implements [fmt.Stringer] with a short storage summary.
func (a *Arena) String() string {
	return fmt.Sprintf("syntax.Arena(%d: %d tokens, %d layouts)", a.id, a.tokens.Len(), a.layouts.Len())
}

// mutate asserts that a construction or editing call is permitted.
func (a *Arena) mutate(op string) {
	if a.frozen {
		panic(fmt.Sprintf("rawtree/syntax: %s() called on frozen arena", op))
	}
	if gid := goid.Get(); gid != a.owner {
		panic(fmt.Sprintf("rawtree/syntax: %s() called from goroutine %d, but arena is owned by goroutine %d; see Arena.Adopt", op, gid, a.owner))
	}
}

// owns reports whether text is backed by storage owned by this arena.
// The zero text is ownerless and allowed everywhere.
func (a *Arena) owns(text source.Text) bool {
	return text.IsZero() || text.Buffer().Owner() == a.id
}
