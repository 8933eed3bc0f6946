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

package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cursivelang/rawtree/internal/treetest"
	"github.com/cursivelang/rawtree/seq"
	"github.com/cursivelang/rawtree/syntax"
)

func TestLayout(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	c := testCatalog(t)
	a := syntax.NewArena(c)

	foo := identToken(t, a, "foo")
	bar := identToken(t, a, "bar")
	pair := a.NewLayout(kindOf(t, c, "pair"), foo, bar)

	assert.True(pair.IsLayout())
	assert.Equal(kindOf(t, c, "pair"), pair.Kind())
	assert.Equal(2, pair.Arity())
	assert.Equal(foo, pair.Child(0))
	assert.Equal(bar, pair.Child(1))
	assert.Equal(6, pair.ByteLen())
	assert.False(pair.HasError())

	children := seq.ToSlice(pair.Children())
	assert.Equal([]syntax.Node{foo, bar}, children)
}

func TestNilChildren(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	c := testCatalog(t)
	a := syntax.NewArena(c)

	foo := identToken(t, a, "foo")
	pair := a.NewLayout(kindOf(t, c, "pair"), foo, syntax.Zero)

	// A nil child is an explicit absence: it occupies its slot, does
	// not contribute length, and is not an error by itself. That is
	// what distinguishes it from a missing token.
	assert.Equal(2, pair.Arity())
	assert.True(pair.Child(1).IsZero())
	assert.Equal(3, pair.ByteLen())
	assert.False(pair.HasError())
}

func TestByteLenInvariant(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	c := testCatalog(t)
	a := syntax.NewArena(c)

	list := a.NewEmptyLayout(kindOf(t, c, "expr_list"))
	assert.Zero(list.ByteLen())

	for _, text := range []string{"a", "bb", "ccc"} {
		list = a.AppendElement(list, identToken(t, a, text))
	}

	sum := 0
	for _, child := range seq.All(list.Children()) {
		if !child.IsZero() {
			sum += child.ByteLen()
		}
	}
	assert.Equal(sum, list.ByteLen())
	assert.Equal(6, list.ByteLen())
}

func TestErrorFlagPropagation(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	c := testCatalog(t)
	a := syntax.NewArena(c)

	// A missing token inside a nested layout surfaces on every
	// ancestor without a walk.
	missing := a.NewMissingToken(kindOf(t, c, "semi"), nil)
	inner := a.NewLayout(kindOf(t, c, "pair"), missing, syntax.Zero)
	outer := a.NewLayout(kindOf(t, c, "pair"), identToken(t, a, "x"), inner)

	assert.True(missing.HasError())
	assert.True(inner.HasError())
	assert.True(outer.HasError())

	// Kinds carrying the unexpected-content marker are errors even
	// when their children are clean.
	unexpected := a.NewLayout(kindOf(t, c, "unexpected_nodes"), identToken(t, a, "stray"))
	assert.True(unexpected.HasError())

	clean := a.NewLayout(kindOf(t, c, "pair"), identToken(t, a, "a"), identToken(t, a, "b"))
	assert.False(clean.HasError())
}

func TestSlotConstraints(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	c := testCatalog(t)
	a := syntax.NewArena(c)

	callee := identToken(t, a, "print")
	args := a.NewEmptyLayout(kindOf(t, c, "expr_list"))
	call := a.NewLayout(kindOf(t, c, "call_expr"), callee, args)
	assert.Equal(2, call.Arity())

	// The callee slot only accepts ident tokens.
	paren := a.NewToken(syntax.TokenArgs{
		Kind: kindOf(t, c, "l_paren"),
		Text: a.NewBuffer("(").All(),
	})
	assert.Panics(func() {
		a.NewLayout(kindOf(t, c, "call_expr"), paren, args)
	})

	// A collection's element set constrains appends the same way.
	assert.Panics(func() {
		a.NewLayout(kindOf(t, c, "expr_list"), paren)
	})
}

func TestLayoutContractViolations(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	c := testCatalog(t)
	a := syntax.NewArena(c)
	foo := identToken(t, a, "foo")

	// Arity mismatches.
	assert.Panics(func() { a.NewLayout(kindOf(t, c, "pair"), foo) })
	assert.Panics(func() { a.NewLayout(kindOf(t, c, "pair"), foo, foo, foo) })
	assert.Panics(func() { a.NewEmptyLayout(kindOf(t, c, "pair")) })

	// Token kinds are not layout kinds.
	assert.Panics(func() { a.NewLayout(kindOf(t, c, "ident")) })

	// Out-of-range child access.
	pair := a.NewLayout(kindOf(t, c, "pair"), foo, foo)
	assert.Panics(func() { pair.Child(-1) })
	assert.Panics(func() { pair.Child(2) })
	assert.Panics(func() { foo.Child(0) })
}

func TestRender(t *testing.T) {
	t.Parallel()

	c := testCatalog(t)
	a := syntax.NewArena(c)

	callee := identToken(t, a, "print")
	list := a.NewLayout(kindOf(t, c, "expr_list"), identToken(t, a, "x"))
	call := a.NewLayout(kindOf(t, c, "call_expr"), callee, list)

	treetest.Equal(t, `
		call_expr len=6
		  ident "print"
		  expr_list len=1
		    ident "x"
	`, call)
}

func TestWalk(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	c := testCatalog(t)
	a := syntax.NewArena(c)

	foo := identToken(t, a, "foo")
	inner := a.NewLayout(kindOf(t, c, "pair"), foo, syntax.Zero)
	outer := a.NewLayout(kindOf(t, c, "pair"), inner, identToken(t, a, "bar"))

	var kinds []string
	for n := range syntax.Walk(outer) {
		kinds = append(kinds, c.Name(n.Kind()))
	}
	assert.Equal([]string{"pair", "pair", "ident", "ident"}, kinds)

	// Early exit stops the walk.
	count := 0
	for range syntax.Walk(outer) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(2, count)
}
