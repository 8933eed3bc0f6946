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

// Package report defines token-level diagnostic annotations.
//
// A diagnostic records a lexical or parse problem local to a single
// token. It is purely data: the tree core never fails an operation
// because of a diagnostic, it only carries them and folds error-severity
// ones into the cached recursive error flag.
package report

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// Level represents the severity of a diagnostic.
type Level int8

const (
	// Yellow. Indicates something that probably should not be ignored.
	Warning Level = 1 + iota
	// Red. Indicates malformed source that required recovery.
	Error
)

// String implements [fmt.Stringer].
func (l Level) String() string {
	switch l {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("report.Level(%d)", int8(l))
	}
}

// Tag is a machine-readable identification for a diagnostic.
//
// Tags should be lowercase identifiers separated by dashes, e.g.
// unterminated-string. A package that generates diagnostics with tags
// should expose those tags as constants.
type Tag string

// Diagnostic is an annotation attached to a single token.
//
// Start and End are byte offsets within the annotated token's own text,
// not within the whole file; the tree core does not know about files.
type Diagnostic struct {
	Level      Level
	Tag        Tag
	Start, End int
	Message    string

	// Detail is optional free-form elaboration, rendered on its own
	// line by [Diagnostic.String].
	Detail string
}

// IsError returns whether this diagnostic has error severity.
func (d *Diagnostic) IsError() bool {
	return d != nil && d.Level == Error
}

// String implements [fmt.Stringer].
func (d *Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v", d.Level)
	if d.Tag != "" {
		fmt.Fprintf(&b, "[%s]", d.Tag)
	}
	fmt.Fprintf(&b, ": %s", d.Message)
	if d.Start != 0 || d.End != 0 {
		fmt.Fprintf(&b, " (bytes %d to %d)", d.Start, d.End)
	}
	if d.Detail != "" {
		fmt.Fprintf(&b, "\n  %s", d.Detail)
	}
	return b.String()
}

// Annotate renders this diagnostic against the text of the token it is
// attached to, underlining the affected byte range:
//
//	error[unterminated-string]: missing closing quote
//	  | "abc
//	  |     ^
//
// Offsets are clamped to the text. The underline is positioned by
// display width rather than byte count, so that tabs and wide
// characters in the token line up with the carets.
func (d *Diagnostic) Annotate(text string) string {
	start := min(max(d.Start, 0), len(text))
	end := min(max(d.End, start), len(text))

	var b strings.Builder
	b.WriteString(d.String())
	b.WriteString("\n  | ")
	b.WriteString(text)
	b.WriteString("\n  | ")
	b.WriteString(strings.Repeat(" ", uniseg.StringWidth(text[:start])))

	carets := uniseg.StringWidth(text[start:end])
	if carets == 0 {
		carets = 1
	}
	b.WriteString(strings.Repeat("^", carets))
	return b.String()
}
