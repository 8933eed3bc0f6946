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

	"fortio.org/safecast"

	"github.com/cursivelang/rawtree/catalog"
	"github.com/cursivelang/rawtree/report"
	"github.com/cursivelang/rawtree/source"
)

// Presence records whether a token was genuinely found in source or
// synthesized during error recovery.
type Presence byte

const (
	// Present tokens were lexed out of real source bytes.
	Present Presence = iota
	// Missing tokens are placeholders a parser inserts where the
	// grammar required a token that was not there.
	Missing
)

// String implements [fmt.Stringer].
func (p Presence) String() string {
	switch p {
	case Present:
		return "Present"
	case Missing:
		return "Missing"
	default:
		return fmt.Sprintf("syntax.Presence(%d)", byte(p))
	}
}

// tokenData is the record backing one token node.
type tokenData struct {
	text     source.Text
	leading  []Trivia
	trailing []Trivia
	diag     *report.Diagnostic
	byteLen  uint32
	kind     catalog.Kind
	presence Presence
	hasError bool
}

// TokenArgs is the arguments to [Arena.NewToken].
type TokenArgs struct {
	// Kind must be a token kind of the arena's catalog.
	Kind catalog.Kind

	// Text is the token's core text. For zero-copy construction it must
	// be a slice of a buffer owned by the constructing arena; the zero
	// text is allowed and yields an empty token.
	Text source.Text

	// Leading and Trailing are the trivia regions. Each piece's text is
	// held to the same ownership contract as Text.
	Leading, Trailing []Trivia

	// Presence distinguishes lexed tokens from recovery placeholders.
	Presence Presence

	// Diagnostic optionally annotates the token with a local lexical or
	// parse problem. At most one per token.
	Diagnostic *report.Diagnostic
}

// NewToken constructs a token node over existing buffer slices. No
// bytes are copied.
//
// Panics if args.Kind is not a token kind of this arena's catalog, or
// if any text involved is backed by a buffer this arena does not own;
// both are caller bugs. Use [Arena.NewMaterializedToken] for text that
// lives outside the arena.
func (a *Arena) NewToken(args TokenArgs) Node {
	a.mutate("NewToken")

	if !a.cat.IsToken(args.Kind) {
		panic(fmt.Sprintf("rawtree/syntax: NewToken() called with non-token kind %q", a.cat.Name(args.Kind)))
	}
	if !a.owns(args.Text) {
		panic("rawtree/syntax: NewToken() text is not owned by this arena")
	}

	length := args.Text.Len()
	for _, region := range [2][]Trivia{args.Leading, args.Trailing} {
		for _, piece := range region {
			if !a.owns(piece.Text) {
				panic("rawtree/syntax: NewToken() trivia is not owned by this arena")
			}
			length += piece.Len()
		}
	}

	byteLen, err := safecast.Conv[uint32](length)
	if err != nil {
		panic(fmt.Sprintf("rawtree/syntax: token length overflow: %v", err))
	}

	ptr := a.tokens.New(tokenData{
		text:     args.Text,
		leading:  slices.Clone(args.Leading),
		trailing: slices.Clone(args.Trailing),
		diag:     args.Diagnostic,
		byteLen:  byteLen,
		kind:     args.Kind,
		presence: args.Presence,
		hasError: args.Presence == Missing ||
			args.Kind == catalog.Unrecognized ||
			args.Diagnostic.IsError(),
	})
	return ID(ptr).In(a)
}

// NewMaterializedToken is like [Arena.NewToken], but copies text into
// storage freshly owned by this arena. Used for synthesized or edited
// tokens whose text cannot reference the original parse buffer.
//
// args.Text must be the zero text; the copied text takes its place.
func (a *Arena) NewMaterializedToken(text []byte, args TokenArgs) Node {
	if !args.Text.IsZero() {
		panic("rawtree/syntax: NewMaterializedToken() called with both text and args.Text")
	}
	args.Text = a.Materialize(text)
	return a.NewToken(args)
}

// NewMissingToken constructs a placeholder token of the given kind with
// presence [Missing], for use during error recovery.
//
// If text is nil, the token spells itself with the kind's canonical
// default spelling from the catalog (empty if the kind has none);
// otherwise text is materialized into this arena.
func (a *Arena) NewMissingToken(kind catalog.Kind, text []byte) Node {
	args := TokenArgs{Kind: kind, Presence: Missing}
	if text == nil {
		if spelling := a.cat.Spelling(kind); spelling != "" {
			args.Text = a.Materialize([]byte(spelling))
		}
		return a.NewToken(args)
	}
	return a.NewMaterializedToken(text, args)
}
