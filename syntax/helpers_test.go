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

	"github.com/stretchr/testify/require"

	"github.com/cursivelang/rawtree/catalog"
	"github.com/cursivelang/rawtree/syntax"
)

// testCatalog builds the small expression-language catalog shared by
// this package's tests.
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	var b catalog.Builder
	b.Token("ident", "")
	b.Token("number", "")
	b.Token("l_paren", "(")
	b.Token("r_paren", ")")
	b.Token("semi", ";")
	b.Node("pair",
		catalog.SlotSpec{Name: "first"},
		catalog.SlotSpec{Name: "second"},
	)
	b.Node("call_expr",
		catalog.SlotSpec{Name: "callee", Kinds: []string{"ident"}},
		catalog.SlotSpec{Name: "args", Kinds: []string{"expr_list"}},
	)
	b.Collection("expr_list", "expr")
	b.Unexpected("unexpected_nodes")
	b.Category("expr", "ident", "number", "call_expr")

	c, err := b.Build()
	require.NoError(t, err)
	return c
}

// kindOf looks up a kind by name, failing the test if it is undeclared.
func kindOf(t *testing.T, c *catalog.Catalog, name string) catalog.Kind {
	t.Helper()

	k, ok := c.Lookup(name)
	require.True(t, ok, "kind %q not in catalog", name)
	return k
}

// identToken mints a zero-copy ident token over a fresh buffer holding
// exactly text.
func identToken(t *testing.T, a *syntax.Arena, text string) syntax.Node {
	t.Helper()

	buf := a.NewBuffer(text)
	return a.NewToken(syntax.TokenArgs{
		Kind: kindOf(t, a.Catalog(), "ident"),
		Text: buf.All(),
	})
}
