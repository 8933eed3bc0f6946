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

package catalog_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cursivelang/rawtree/catalog"
)

const testYAML = `
tokens:
  - name: ident
  - name: number
  - name: l_paren
    spelling: "("
nodes:
  - name: call_expr
    children:
      - {name: callee, kinds: [ident]}
      - {name: args, kinds: [expr_list]}
  - name: expr_list
    collection: [expr]
  - name: unexpected_nodes
    collection: []
    unexpected: true
categories:
  - name: expr
    members: [ident, number, call_expr]
`

func TestLoad(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	c, err := catalog.Load(strings.NewReader(testYAML))
	require.NoError(t, err)

	// Names in declaration order, unrecognized first.
	var names []string
	for i := range c.Len() {
		names = append(names, c.Name(catalog.Kind(i)))
	}
	want := []string{
		"unrecognized", "ident", "number", "l_paren",
		"call_expr", "expr_list", "unexpected_nodes",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("kind names mismatch (-want +got):\n%s", diff)
	}

	paren, _ := c.Lookup("l_paren")
	assert.Equal("(", c.Spelling(paren))

	call, _ := c.Lookup("call_expr")
	assert.Equal(2, c.Arity(call))
	assert.Equal("callee", c.Slot(call, 0).Name)

	list, _ := c.Lookup("expr_list")
	ident, _ := c.Lookup("ident")
	assert.True(c.Elements(list).Has(ident))

	unexpected, _ := c.Lookup("unexpected_nodes")
	assert.True(c.IsUnexpected(unexpected))
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{"malformed yaml", "tokens: ["},
		{"children and collection", `
nodes:
  - name: both
    children: [{name: x}]
    collection: []
`},
		{"unexpected non-collection", `
nodes:
  - name: odd
    children: [{name: x}]
    unexpected: true
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := catalog.Load(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadFS(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	fsys := fstest.MapFS{
		"kinds/00_tokens.yaml": &fstest.MapFile{Data: []byte(`
tokens:
  - name: ident
  - name: semi
    spelling: ";"
`)},
		"kinds/10_nodes.yaml": &fstest.MapFile{Data: []byte(`
nodes:
  - name: stmt_list
    collection: [ident]
`)},
		"kinds/README.md": &fstest.MapFile{Data: []byte("not a fragment")},
	}

	c, err := catalog.LoadFS(fsys, "kinds/**/*.yaml")
	require.NoError(t, err)

	// Fragments merge in path order, so tokens number before nodes.
	ident, ok := c.Lookup("ident")
	assert.True(ok)
	assert.Equal(catalog.Kind(1), ident)

	list, ok := c.Lookup("stmt_list")
	assert.True(ok)
	assert.True(c.IsCollection(list))
	assert.True(c.Elements(list).Has(ident))

	_, err = catalog.LoadFS(fsys, "nowhere/*.yaml")
	assert.Error(err)
}
