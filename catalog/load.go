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

import (
	"fmt"
	"io"
	"io/fs"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// schema is the YAML shape of a catalog (or catalog fragment).
//
//	tokens:
//	  - name: ident
//	  - name: l_paren
//	    spelling: "("
//	nodes:
//	  - name: call_expr
//	    children:
//	      - {name: callee, kinds: [expr]}
//	      - {name: args, kinds: [expr_list]}
//	  - name: expr_list
//	    collection: [expr]
//	  - name: unexpected_nodes
//	    collection: []
//	    unexpected: true
//	categories:
//	  - name: expr
//	    members: [ident, call_expr]
type schema struct {
	Tokens []struct {
		Name     string `yaml:"name"`
		Spelling string `yaml:"spelling"`
	} `yaml:"tokens"`
	Nodes []struct {
		Name     string `yaml:"name"`
		Children []struct {
			Name  string   `yaml:"name"`
			Kinds []string `yaml:"kinds"`
		} `yaml:"children"`
		Collection *[]string `yaml:"collection"`
		Unexpected bool      `yaml:"unexpected"`
	} `yaml:"nodes"`
	Categories []struct {
		Name    string   `yaml:"name"`
		Members []string `yaml:"members"`
	} `yaml:"categories"`
}

// feed replays one decoded fragment into a builder.
func (s *schema) feed(b *Builder) error {
	for _, t := range s.Tokens {
		b.Token(t.Name, t.Spelling)
	}
	for _, n := range s.Nodes {
		switch {
		case n.Collection != nil && len(n.Children) > 0:
			return fmt.Errorf("rawtree/catalog: node %q declares both children and collection", n.Name)
		case n.Collection != nil && n.Unexpected:
			b.Unexpected(n.Name, *n.Collection...)
		case n.Collection != nil:
			b.Collection(n.Name, *n.Collection...)
		case n.Unexpected:
			return fmt.Errorf("rawtree/catalog: node %q is marked unexpected but is not a collection", n.Name)
		default:
			slots := make([]SlotSpec, len(n.Children))
			for i, c := range n.Children {
				slots[i] = SlotSpec{Name: c.Name, Kinds: c.Kinds}
			}
			b.Node(n.Name, slots...)
		}
	}
	for _, c := range s.Categories {
		b.Category(c.Name, c.Members...)
	}
	return nil
}

// Load reads a complete YAML catalog from r.
func Load(r io.Reader) (*Catalog, error) {
	var s schema
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("rawtree/catalog: decoding catalog: %w", err)
	}

	var b Builder
	if err := s.feed(&b); err != nil {
		return nil, err
	}
	return b.Build()
}

// LoadFS assembles a catalog from every file in fsys matching the given
// [doublestar] pattern, e.g. "kinds/**/*.yaml".
//
// Fragments are applied in lexicographic path order, so kind numbering
// is stable across loads. Each fragment uses the same schema as [Load];
// declaring the same name in two fragments is an error.
//
// [doublestar]: https://github.com/bmatcuk/doublestar
func LoadFS(fsys fs.FS, pattern string) (*Catalog, error) {
	paths, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("rawtree/catalog: globbing %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("rawtree/catalog: no catalog fragments match %q", pattern)
	}
	slices.Sort(paths)

	var b Builder
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("rawtree/catalog: reading fragment %q: %w", path, err)
		}

		var s schema
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("rawtree/catalog: decoding fragment %q: %w", path, err)
		}
		if err := s.feed(&b); err != nil {
			return nil, err
		}
	}

	return b.Build()
}
