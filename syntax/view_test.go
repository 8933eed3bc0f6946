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
	"github.com/stretchr/testify/require"

	"github.com/cursivelang/rawtree/catalog"
	"github.com/cursivelang/rawtree/syntax"
)

func TestTryWrap(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	c := testCatalog(t)
	a := syntax.NewArena(c)

	ident := kindOf(t, c, "ident")
	number := kindOf(t, c, "number")
	foo := identToken(t, a, "foo")

	v := syntax.TryWrap(c.Only(ident), foo)
	assert.False(v.IsZero())
	assert.Equal(foo, v.Unwrap())
	assert.Equal(c.Only(ident), v.Set())

	// Wrong kind and zero node both yield the nil view, matching Is.
	assert.True(syntax.TryWrap(c.Only(number), foo).IsZero())
	assert.True(syntax.TryWrap(c.Only(ident), syntax.Zero).IsZero())
	assert.True(syntax.Is(c.Only(ident), foo))
	assert.False(syntax.Is(c.Only(number), foo))
	assert.False(syntax.Is(c.Only(ident), syntax.Zero))
}

func TestWrapRoundTrip(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	c := testCatalog(t)
	a := syntax.NewArena(c)
	foo := identToken(t, a, "foo")

	set := c.Only(kindOf(t, c, "ident"))
	v := syntax.TryWrap(set, foo)

	// Unwrap then re-wrap with the same predicate is the identity.
	assert.Equal(v, syntax.TryWrap(set, v.Unwrap()))
	assert.Equal(v, syntax.WrapView(set, v))

	// The nil view unwraps to the zero node.
	assert.Equal(syntax.Zero, syntax.View{}.Unwrap())
}

func TestBaseCategoryViews(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	c := testCatalog(t)
	a := syntax.NewArena(c)

	expr, ok := c.Category("expr")
	require.True(t, ok)

	foo := identToken(t, a, "foo")
	args := a.NewEmptyLayout(kindOf(t, c, "expr_list"))
	call := a.NewLayout(kindOf(t, c, "call_expr"), foo, args)

	// Both a concrete token and a concrete layout wrap as the base
	// category, since the category's predicate is the union of theirs.
	assert.False(syntax.TryWrap(expr, foo).IsZero())
	assert.False(syntax.TryWrap(expr, call).IsZero())
	assert.True(syntax.TryWrap(expr, args).IsZero())

	// Widening a concrete view into the category re-checks against the
	// union; widening an already-base view is a no-op.
	concrete := syntax.TryWrap(c.Only(kindOf(t, c, "call_expr")), call)
	base := syntax.WrapView(expr, concrete)
	assert.False(base.IsZero())
	assert.Equal(expr, base.Set())
	assert.Equal(base, syntax.WrapView(expr, base))
}

// callExpr is what a generated wrapper type looks like: a struct
// embedding a View whose predicate is the kind's singleton set, with
// accessors that delegate to the raw child layout. Nothing beyond the
// public capability surface is needed to write one by hand.
type callExpr struct {
	syntax.View
}

func asCallExpr(c *catalog.Catalog, n syntax.Node) (callExpr, bool) {
	k, _ := c.Lookup("call_expr")
	v := syntax.TryWrap(c.Only(k), n)
	return callExpr{v}, !v.IsZero()
}

func (e callExpr) Callee() syntax.Node { return e.Unwrap().Child(0) }
func (e callExpr) Args() syntax.Node   { return e.Unwrap().Child(1) }

func TestHandWrittenWrapper(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	c := testCatalog(t)
	a := syntax.NewArena(c)

	callee := identToken(t, a, "print")
	args := a.NewLayout(kindOf(t, c, "expr_list"), identToken(t, a, "x"))
	call := a.NewLayout(kindOf(t, c, "call_expr"), callee, args)

	wrapped, ok := asCallExpr(c, call)
	assert.True(ok)
	assert.Equal("print", wrapped.Callee().Text().String())
	assert.Equal(1, wrapped.Args().Arity())

	_, ok = asCallExpr(c, callee)
	assert.False(ok)
}
