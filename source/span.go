// Copyright 2020-2025 Buf Technologies, Inc.
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

package source

import (
	"cmp"
	"fmt"
)

// Spanner is any type with a [Span].
type Spanner interface {
	// Should return the zero [Span] to indicate that it does not contribute
	// span information.
	Span() Span
}

// Span is a half-open byte range [Start, Start+Len) within some [Unit].
//
// For any span attributed to a file, Start+Len <= file.Len(). A span equal to
// [File.EOF] points at the end-of-text sentinel.
type Span struct {
	Unit Unit

	// The first byte of the span, and the number of bytes it covers.
	Start, Len int
}

// NewSpan returns a span in the [Main] unit.
func NewSpan(start, length int) Span {
	return Span{Start: start, Len: length}
}

// NewSpanIn returns a span in the given unit.
func NewSpanIn(unit Unit, start, length int) Span {
	return Span{Unit: unit, Start: start, Len: length}
}

// SpanOf returns the [Main]-unit span for the byte range [start, end).
func SpanOf(start, end int) Span {
	return NewSpan(start, end-start)
}

// CombineRanges returns the span from the earlier start to the later end of
// a and b, in a's unit.
//
// This is a union of extents: if a and b are disjoint, the gap between them is
// included in the result.
func CombineRanges(a, b Span) Span {
	start := min(a.Start, b.Start)
	end := max(a.End(), b.End())
	return NewSpanIn(a.Unit, start, end-start)
}

// End returns the exclusive end offset of this span.
func (s Span) End() int {
	return s.Start + s.Len
}

// Range returns the start and end offsets of this span, for slicing.
func (s Span) Range() (start, end int) {
	return s.Start, s.End()
}

// IsEmpty returns whether this span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.Len == 0
}

// Contains returns whether offset lies within this span.
func (s Span) Contains(offset int) bool {
	return s.Start <= offset && offset < s.End()
}

// Expand returns this span grown by n bytes at its end.
func (s Span) Expand(n int) Span {
	s.Len += n
	return s
}

// Adjacent returns whether next begins exactly where s ends, in the same unit.
func (s Span) Adjacent(next Span) bool {
	return s.Unit == next.Unit && s.End() == next.Start
}

// Span implements [Spanner].
func (s Span) Span() Span {
	return s
}

// String implements [fmt.Stringer].
func (s Span) String() string {
	return fmt.Sprintf("[%d..%d]", s.Start, s.End())
}

// Compare orders spans by their start offset only, so that diagnostics can be
// sorted by where they begin. Spans with equal starts compare equal even if
// their lengths or units differ.
func Compare(a, b Span) int {
	return cmp.Compare(a.Start, b.Start)
}
