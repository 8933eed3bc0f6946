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

	"github.com/cursivelang/rawtree/source"
)

// TriviaKind identifies a piece of non-semantic text attached to a
// token's leading or trailing edge.
//
// Trivia kinds are fixed rather than catalog-driven; whitespace and
// comments mean the same thing in every grammar.
type TriviaKind byte

const (
	// Space is non-newline contiguous whitespace.
	Space TriviaKind = 1 + iota
	// Newline is a line break, possibly a run of them.
	Newline
	// Comment is a single comment, including its delimiters.
	Comment
)

// String implements [fmt.Stringer].
func (k TriviaKind) String() string {
	switch k {
	case Space:
		return "Space"
	case Newline:
		return "Newline"
	case Comment:
		return "Comment"
	default:
		return fmt.Sprintf("syntax.TriviaKind(%d)", byte(k))
	}
}

// Trivia is one piece of non-semantic text: a kind tag plus the literal
// text, which may be a zero-copy slice of a parse buffer or
// materialized bytes, same as token text.
type Trivia struct {
	Kind TriviaKind
	Text source.Text
}

// Len returns the length of this piece in bytes.
func (t Trivia) Len() int {
	return t.Text.Len()
}

// String implements [fmt.Stringer].
func (t Trivia) String() string {
	return fmt.Sprintf("%v(%q)", t.Kind, t.Text.String())
}
