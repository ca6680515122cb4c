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

package lexer

import (
	"fmt"

	"github.com/bufbuild/niamc/report"
	"github.com/bufbuild/niamc/source"
)

// Error is an error produced by the [Lexer].
//
// The set of implementations is closed: it is exactly [UnknownToken],
// [NestedComment] and [UnexpectedEOFInComment].
type Error interface {
	error
	report.Diagnose

	// Span returns the primary span of this error.
	Span() source.Span

	// Fatal returns whether this error stopped the lexer.
	Fatal() bool

	lexerError()
}

var (
	_ Error = UnknownToken{}
	_ Error = NestedComment{}
	_ Error = UnexpectedEOFInComment{}
)

// UnknownToken is a run of one or more adjacent bytes that do not begin any
// token.
type UnknownToken struct {
	At source.Span // The unrecognized bytes.
}

// Span implements [Error].
func (e UnknownToken) Span() source.Span { return e.At }

// Fatal implements [Error].
func (UnknownToken) Fatal() bool { return false }

// Error implements [error].
func (e UnknownToken) Error() string {
	return fmt.Sprintf("unrecognized token at %v", e.At)
}

// Diagnose implements [report.Diagnose].
func (e UnknownToken) Diagnose(d *report.Diagnostic) {
	d.Apply(
		report.Message("unrecognized token"),
		report.Snippet(e.At),
	)
	if e.At.Len > 1 {
		d.Apply(report.Note("%d consecutive bytes could not be lexed", e.At.Len))
	}
}

// NestedComment is a block comment opener found inside another block comment.
type NestedComment struct {
	Outer source.Span // The `/*` that opened the comment.
	Inner source.Span // The `/*` found before the comment was closed.
}

// Span implements [Error].
func (e NestedComment) Span() source.Span { return e.Inner }

// Fatal implements [Error].
func (NestedComment) Fatal() bool { return true }

// Error implements [error].
func (e NestedComment) Error() string {
	return fmt.Sprintf("nested block comment at %v", e.Inner)
}

// Diagnose implements [report.Diagnose].
func (e NestedComment) Diagnose(d *report.Diagnostic) {
	d.Apply(
		report.Message("nested block comment"),
		report.Snippetf(e.Inner, "this `/*` opens a second comment"),
		report.Snippetf(e.Outer, "inside the comment opened here"),
		report.Note("block comments do not nest; the first `*/` closes the outer comment"),
	)
}

// UnexpectedEOFInComment is a block comment that is still open when the
// text ends.
type UnexpectedEOFInComment struct {
	Start source.Span // The `/*` that opened the comment.
}

// Span implements [Error].
func (e UnexpectedEOFInComment) Span() source.Span { return e.Start }

// Fatal implements [Error].
func (UnexpectedEOFInComment) Fatal() bool { return true }

// Error implements [error].
func (e UnexpectedEOFInComment) Error() string {
	return fmt.Sprintf("unterminated block comment at %v", e.Start)
}

// Diagnose implements [report.Diagnose].
func (e UnexpectedEOFInComment) Diagnose(d *report.Diagnostic) {
	d.Apply(
		report.Message("unterminated block comment"),
		report.Snippetf(e.Start, "expected to be closed by `*/`"),
	)
}

func (UnknownToken) lexerError()           {}
func (NestedComment) lexerError()          {}
func (UnexpectedEOFInComment) lexerError() {}
