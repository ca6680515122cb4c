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
	"slices"
	"strings"
)

// BufferPath is the path given to files built from in-memory strings.
const BufferPath = "(buffer)"

// File is the text of a single compiled unit.
//
// It records the byte offset of every newline so that offsets can be turned
// into line and column numbers. Files are immutable once created and may be
// shared between goroutines.
//
// A nil *File behaves like an empty file with the path name "".
type File struct {
	unit       Unit
	path, text string

	// The byte offset of every '\n' in text, in ascending order. Offset 0
	// always begins line 1, whether or not it appears here.
	newlines []int
}

// NewFile constructs a new source file.
func NewFile(unit Unit, path, text string) *File {
	f := &File{unit: unit, path: path, text: text}

	for offset := 0; ; {
		nl := strings.IndexByte(text[offset:], '\n')
		if nl == -1 {
			break
		}
		offset += nl
		f.newlines = append(f.newlines, offset)
		offset++
	}

	return f
}

// FromString constructs a file for an in-memory string, in the [Main] unit.
func FromString(text string) *File {
	return NewFile(Main, BufferPath, text)
}

// Unit returns the unit this file's spans are tagged with.
func (f *File) Unit() Unit {
	if f == nil {
		return Main
	}
	return f.unit
}

// Path returns this file's path. It need not be a real filesystem path; it is
// used for diagnostics.
func (f *File) Path() string {
	if f == nil {
		return ""
	}
	return f.path
}

// Text returns this file's textual contents.
func (f *File) Text() string {
	if f == nil {
		return ""
	}
	return f.text
}

// Len returns the length of this file, in bytes.
func (f *File) Len() int {
	return len(f.Text())
}

// Lines returns the number of lines in this file. A trailing newline does not
// start a new line.
func (f *File) Lines() int {
	if f.Len() == 0 {
		return 0
	}
	n := len(f.newlines)
	if f.text[len(f.text)-1] != '\n' {
		n++
	}
	return n
}

// LineCol converts a byte offset into a 1-indexed line and column. Columns
// are measured in bytes.
//
// The newline ending a line belongs to that line. There is no position in an
// empty file, and the end-of-text offset (offset == f.Len()) has no position
// either; see [File.Location] for a variant that handles it.
//
// This operation is O(log n).
func (f *File) LineCol(offset int) (line, col int, ok bool) {
	if f.Len() == 0 || offset < 0 {
		return 0, 0, false
	}

	// Find the first newline at or after offset.
	idx, _ := slices.BinarySearch(f.newlines, offset)
	switch {
	case idx == 0 && len(f.newlines) > 0:
		return 1, offset + 1, true
	case idx < len(f.newlines):
		return idx + 1, offset - f.newlines[idx-1], true
	}

	// The offset is on the final, unterminated line.
	if offset >= f.Len() {
		return 0, 0, false
	}
	if len(f.newlines) == 0 {
		return 1, offset + 1, true
	}
	return len(f.newlines) + 1, offset - f.newlines[len(f.newlines)-1], true
}

// Location is like [File.LineCol], but it also resolves the end-of-text offset,
// placing it just past the final byte of the file.
//
// Returns the zero Location for offsets that are out of bounds.
func (f *File) Location(offset int) Location {
	if offset == f.Len() {
		if offset == 0 {
			return Location{Offset: 0, Line: 1, Column: 1}
		}
		if f.text[offset-1] == '\n' {
			return Location{Offset: offset, Line: len(f.newlines) + 1, Column: 1}
		}
		line, col, _ := f.LineCol(offset - 1)
		return Location{Offset: offset, Line: line, Column: col + 1}
	}

	line, col, ok := f.LineCol(offset)
	if !ok {
		return Location{}
	}
	return Location{Offset: offset, Line: line, Column: col}
}

// Line returns the text of the given 1-indexed line, without its terminating
// newline.
//
// Returns "" for lines that do not exist.
func (f *File) Line(line int) string {
	if line < 1 || line > len(f.newlines)+1 {
		return ""
	}

	start := 0
	if line > 1 {
		start = f.newlines[line-2] + 1
	}
	end := f.Len()
	if line <= len(f.newlines) {
		end = f.newlines[line-1]
	}
	return strings.TrimSuffix(f.text[start:end], "\r")
}

// Slice returns the text covered by span.
//
// Panics if the span is out of bounds; a span produced for this file never is.
func (f *File) Slice(span Span) string {
	return f.Text()[span.Start:span.End()]
}

// Span returns a new span in this file's unit.
func (f *File) Span(start, length int) Span {
	return NewSpanIn(f.Unit(), start, length)
}

// EOF returns the empty span at the end of this file.
func (f *File) EOF() Span {
	return f.Span(f.Len(), 0)
}

// Lookup implements [Resolver]. A file resolves only its own unit.
func (f *File) Lookup(unit Unit) (*File, bool) {
	if f == nil || f.unit != unit {
		return nil, false
	}
	return f, true
}

// Location is a user-displayable position within a [File].
type Location struct {
	// The byte offset for this location.
	Offset int

	// The line and column for this location, 1-indexed. Columns are measured
	// in bytes.
	//
	// Because these are 1-indexed, a zero Line can be used as a sentinel.
	Line, Column int
}

// IsZero returns whether this is the zero Location.
func (l Location) IsZero() bool {
	return l.Line == 0
}

// Resolver turns the unit of a span back into the [File] it came from.
type Resolver interface {
	Lookup(Unit) (*File, bool)
}

// Files is a [Resolver] over a fixed set of files.
type Files []*File

// Lookup implements [Resolver].
func (fs Files) Lookup(unit Unit) (*File, bool) {
	for _, f := range fs {
		if f.Unit() == unit {
			return f, true
		}
	}
	return nil, false
}
