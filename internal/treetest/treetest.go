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

// Package treetest provides test helpers for comparing raw syntax trees
// against expected textual dumps.
package treetest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/cursivelang/rawtree/seq"
	"github.com/cursivelang/rawtree/syntax"
)

// Render dumps a tree as indented text, one node per line:
//
//	call_expr len=8
//	  ident "foo" err
//	  expr_list len=5
//	    <nil>
//
// Tokens print their text (or "missing"); every node prints its byte
// length, and nodes with the recursive error flag are marked err.
func Render(n syntax.Node) string {
	var b strings.Builder
	render(&b, n, 0)
	return b.String()
}

func render(b *strings.Builder, n syntax.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.IsZero() {
		fmt.Fprintf(b, "%s<nil>\n", indent)
		return
	}

	name := n.Arena().Catalog().Name(n.Kind())
	switch {
	case n.IsToken() && n.Presence() == syntax.Missing:
		fmt.Fprintf(b, "%s%s missing", indent, name)
	case n.IsToken():
		fmt.Fprintf(b, "%s%s %q", indent, name, n.Text().String())
	default:
		fmt.Fprintf(b, "%s%s len=%d", indent, name, n.ByteLen())
	}
	if n.HasError() {
		b.WriteString(" err")
	}
	b.WriteString("\n")

	for _, child := range seq.All(n.Children()) {
		render(b, child, depth+1)
	}
}

// Equal renders n and compares it against want, reporting a unified
// diff on mismatch. want is dedented: leading newline and common tab
// indentation are stripped, so expectations read naturally in test
// source.
func Equal(t *testing.T, want string, n syntax.Node) {
	t.Helper()

	got := Render(n)
	want = dedent(want)
	if got == want {
		return
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
	if err != nil {
		t.Fatalf("diffing tree dumps: %v", err)
	}
	t.Errorf("tree dump mismatch:\n%s", diff)
}

func dedent(s string) string {
	s = strings.TrimPrefix(s, "\n")
	lines := strings.Split(s, "\n")

	margin := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, "\t"))
		if margin < 0 || indent < margin {
			margin = indent
		}
	}
	if margin <= 0 {
		return s
	}

	for i, line := range lines {
		if len(line) >= margin {
			lines[i] = line[margin:]
		} else {
			lines[i] = strings.TrimLeft(line, "\t")
		}
	}
	return strings.Join(lines, "\n")
}
