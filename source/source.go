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

// Package source provides read-only, zero-copy views into source text.
//
// A [Buffer] is a contiguous run of immutable bytes, stamped with the
// identity of the arena that owns it. A [Text] is a sub-range of a
// buffer: slicing never copies, and two Texts over the same bytes
// compare as equal regardless of which buffer backs them.
package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Buffer is an immutable run of source bytes owned by a single arena.
//
// Buffers are normally minted by an arena (which stamps its own identity
// on them); constructing one by hand with [NewBuffer] makes the caller
// responsible for the owner value being meaningful.
type Buffer struct {
	text  string
	owner uint64
}

// NewBuffer creates a buffer over text with the given owner identity.
func NewBuffer(text string, owner uint64) *Buffer {
	return &Buffer{text: text, owner: owner}
}

// Owner returns the identity of the arena that owns this buffer.
func (b *Buffer) Owner() uint64 {
	return b.owner
}

// Len returns the length of this buffer in bytes.
func (b *Buffer) Len() int {
	return len(b.text)
}

// Text returns the full contents of this buffer.
func (b *Buffer) Text() string {
	return b.text
}

// Slice returns a zero-copy view of b.text[start:end].
//
// Panics if the range is out of bounds; an invalid range is a caller
// bug, not a recoverable condition.
func (b *Buffer) Slice(start, end int) Text {
	if start < 0 || start > end || end > len(b.text) {
		panic(fmt.Sprintf("rawtree/source: slice out of range: [%d:%d] of %d bytes", start, end, len(b.text)))
	}

	s, err := safecast.Conv[uint32](start)
	if err != nil {
		panic(fmt.Sprintf("rawtree/source: slice offset overflow: %v", err))
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		panic(fmt.Sprintf("rawtree/source: slice offset overflow: %v", err))
	}

	return Text{buf: b, start: s, end: e}
}

// All returns a view of the whole buffer.
func (b *Buffer) All() Text {
	return b.Slice(0, len(b.text))
}

// Text is a read-only view of a contiguous byte range of a [Buffer].
//
// The zero value is the empty text with no backing buffer.
type Text struct {
	buf        *Buffer
	start, end uint32
}

// IsZero returns whether this text has no backing buffer.
func (t Text) IsZero() bool {
	return t.buf == nil
}

// Buffer returns the buffer backing this text, which is nil for the
// zero value.
func (t Text) Buffer() *Buffer {
	return t.buf
}

// Bounds returns the start and end offsets of this text within its
// backing buffer.
func (t Text) Bounds() (start, end int) {
	return int(t.start), int(t.end)
}

// Len returns the length of this text in bytes.
func (t Text) Len() int {
	return int(t.end - t.start)
}

// String returns the bytes this text views. No copy is performed; the
// result aliases the backing buffer.
func (t Text) String() string {
	if t.buf == nil {
		return ""
	}
	return t.buf.text[t.start:t.end]
}

// Equal compares two texts by content, regardless of which buffer backs
// them or how their storage was obtained.
func (t Text) Equal(u Text) bool {
	return t.String() == u.String()
}
