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

package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bufbuild/niamc/report"
	"github.com/bufbuild/niamc/source"
	"github.com/bufbuild/niamc/token"
)

// Error is an error produced by the parser.
//
// The set of implementations is closed: it is exactly [SyntaxError],
// [UnexpectedEOF], [InvalidNumber] and [ExpectingEOF].
type Error interface {
	error
	report.Diagnose

	// Span returns the primary span of this error.
	Span() source.Span

	parserError()
}

var (
	_ Error = SyntaxError{}
	_ Error = UnexpectedEOF{}
	_ Error = InvalidNumber{}
	_ Error = ExpectingEOF{}
)

// SyntaxError is a token of the wrong kind.
type SyntaxError struct {
	Found    token.Token // The offending token.
	Expected token.Kind
}

// Span implements [Error].
func (e SyntaxError) Span() source.Span { return e.Found.Span }

// Error implements [error].
func (e SyntaxError) Error() string {
	return fmt.Sprintf("unexpected %s at %v, expected %s",
		e.Found.Kind.Describe(), e.Found.Span, e.Expected.Describe())
}

// Diagnose implements [report.Diagnose].
func (e SyntaxError) Diagnose(d *report.Diagnostic) {
	d.Apply(
		report.Message("unexpected %s, expected %s", e.Found.Kind.Describe(), e.Expected.Describe()),
		report.Snippetf(e.Found.Span, "expected %s", e.Expected.Describe()),
	)
}

// UnexpectedEOF is the token sequence ending while a token was still
// expected.
type UnexpectedEOF struct {
	Expected token.Kind
	At       source.Span // The end of the text.
}

// Span implements [Error].
func (e UnexpectedEOF) Span() source.Span { return e.At }

// Error implements [error].
func (e UnexpectedEOF) Error() string {
	return fmt.Sprintf("unexpected end of input, expected %s", e.Expected.Describe())
}

// Diagnose implements [report.Diagnose].
func (e UnexpectedEOF) Diagnose(d *report.Diagnostic) {
	d.Apply(
		report.Message("unexpected end of input, expected %s", e.Expected.Describe()),
		report.Snippetf(e.At, "expected %s", e.Expected.Describe()),
	)
}

// InvalidNumber is a constant whose text cannot be converted to a 64-bit
// signed integer.
type InvalidNumber struct {
	Token token.Token // The offending constant.
	Cause IntParseError
	Text  string // The constant's text.
}

// Span implements [Error].
func (e InvalidNumber) Span() source.Span { return e.Token.Span }

// Error implements [error].
func (e InvalidNumber) Error() string {
	return fmt.Sprintf("invalid integer constant %q: %v", e.Text, e.Cause)
}

// Diagnose implements [report.Diagnose].
func (e InvalidNumber) Diagnose(d *report.Diagnostic) {
	switch e.Cause {
	case PosOverflow:
		d.Apply(
			report.Message("integer constant is too large"),
			report.Snippetf(e.Token.Span, "does not fit in a 64-bit signed integer"),
			report.Help("the largest allowed value is %d", int64(math.MaxInt64)),
		)
	case NegOverflow:
		d.Apply(
			report.Message("integer constant is too small"),
			report.Snippetf(e.Token.Span, "does not fit in a 64-bit signed integer"),
			report.Help("the smallest allowed value is %d", int64(math.MinInt64)),
		)
	case Empty:
		d.Apply(
			report.Message("empty integer constant"),
			report.Snippet(e.Token.Span),
		)
	case InvalidDigit:
		d.Apply(
			report.Message("invalid digit in integer constant"),
			report.Snippetf(e.Token.Span, "expected `0` to `9`"),
		)
	default:
		d.Apply(
			report.Message("invalid integer constant"),
			report.Snippet(e.Token.Span),
		)
	}
}

// ExpectingEOF is input left over after a complete program.
type ExpectingEOF struct {
	Token token.Token // The first token that was not consumed.
	Last  token.Token // The final token of the sequence.
}

// Span implements [Error].
//
// This covers every token from the first unconsumed one through the last.
func (e ExpectingEOF) Span() source.Span {
	return source.CombineRanges(e.Token.Span, e.Last.Span)
}

// Error implements [error].
func (e ExpectingEOF) Error() string {
	return fmt.Sprintf("unexpected %s at %v, expected end of input", e.Token.Kind.Describe(), e.Token.Span)
}

// Diagnose implements [report.Diagnose].
func (e ExpectingEOF) Diagnose(d *report.Diagnostic) {
	d.Apply(
		report.Message("unexpected %s after the end of the program", e.Token.Kind.Describe()),
		report.Snippetf(e.Span(), "expected end of input"),
		report.Note("a program consists of exactly one function"),
	)
}

func (SyntaxError) parserError()   {}
func (UnexpectedEOF) parserError() {}
func (InvalidNumber) parserError() {}
func (ExpectingEOF) parserError()  {}

// IntParseError classifies why a constant could not be converted to an
// integer.
type IntParseError int

const (
	// The constant's text is empty.
	Empty IntParseError = iota
	// The text contains something other than a decimal digit.
	InvalidDigit
	// The value is larger than the largest 64-bit signed integer.
	PosOverflow
	// The value is smaller than the smallest 64-bit signed integer.
	NegOverflow
	// Any other failure.
	Unknown
)

// String implements [fmt.Stringer].
func (e IntParseError) String() string {
	switch e {
	case Empty:
		return "empty"
	case InvalidDigit:
		return "invalid digit"
	case PosOverflow:
		return "positive overflow"
	case NegOverflow:
		return "negative overflow"
	case Unknown:
		return "unknown"
	default:
		return fmt.Sprintf("parser.IntParseError(%d)", int(e))
	}
}

// parseInt converts text to an int64. On failure, the foreign error is
// classified and discarded.
func parseInt(text string) (int64, IntParseError, bool) {
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, classify(text, err), false
	}
	return n, 0, true
}

func classify(text string, err error) IntParseError {
	switch {
	case errors.Is(err, strconv.ErrSyntax):
		if text == "" {
			return Empty
		}
		return InvalidDigit
	case errors.Is(err, strconv.ErrRange):
		if strings.HasPrefix(text, "-") {
			return NegOverflow
		}
		return PosOverflow
	default:
		return Unknown
	}
}
