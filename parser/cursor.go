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
	"github.com/bufbuild/niamc/source"
	"github.com/bufbuild/niamc/token"
)

// Cursor is a forward cursor over a finished token sequence.
//
// The token slice is shared and never mutated, so copying a cursor only
// copies its position.
type Cursor struct {
	tokens []token.Token
	eof    source.Span
	idx    int
}

// CursorMark is the return value of [Cursor.Mark], which marks a position on
// a Cursor for rewinding to.
type CursorMark struct {
	// This contains exactly the values needed to rewind the cursor.
	owner *Cursor
	idx   int
}

// NewCursor returns a new cursor over the given tokens. eof is the span
// reported when a token is expected but none remain; usually this is
// [source.File.EOF].
func NewCursor(tokens []token.Token, eof source.Span) *Cursor {
	return &Cursor{tokens: tokens, eof: eof}
}

// Done returns whether or not there are still tokens left to yield.
func (c *Cursor) Done() bool {
	return c.idx >= len(c.tokens)
}

// Peek returns the next token in the sequence, if there is one.
//
// Returns the zero token if this cursor is at the end of the stream.
func (c *Cursor) Peek() token.Token {
	if c.Done() {
		return token.Token{}
	}
	return c.tokens[c.idx]
}

// Take returns the next token in the sequence and advances the cursor.
//
// Returns the zero token if this cursor is at the end of the stream.
func (c *Cursor) Take() token.Token {
	if c.Done() {
		return token.Token{}
	}
	tok := c.tokens[c.idx]
	c.idx++
	return tok
}

// Expect takes the next token, and checks that it has the given kind.
//
// If the next token is of a different kind, returns a [SyntaxError]; if there
// is no next token, returns an [UnexpectedEOF]. The cursor advances in both
// the success and the mismatch case.
func (c *Cursor) Expect(kind token.Kind) (token.Token, error) {
	if c.Done() {
		return token.Token{}, UnexpectedEOF{Expected: kind, At: c.eof}
	}
	tok := c.Take()
	switch {
	case tok.Kind != kind:
		return tok, SyntaxError{Found: tok, Expected: kind}
	default:
		return tok, nil
	}
}

// Last returns the final token of the underlying sequence, regardless of
// where the cursor is.
//
// Returns the zero token if the sequence is empty.
func (c *Cursor) Last() token.Token {
	if len(c.tokens) == 0 {
		return token.Token{}
	}
	return c.tokens[len(c.tokens)-1]
}

// Rest returns the tokens that have not been taken yet.
func (c *Cursor) Rest() []token.Token {
	return c.tokens[min(c.idx, len(c.tokens)):]
}

// EOF returns the span used for errors at the end of the stream.
func (c *Cursor) EOF() source.Span {
	return c.eof
}

// Clone returns a copy of this cursor at the same position. Advancing the
// copy does not affect this cursor.
func (c *Cursor) Clone() *Cursor {
	clone := *c
	return &clone
}

// Mark makes a mark on this cursor to indicate a place that can be rewound
// to.
func (c *Cursor) Mark() CursorMark {
	return CursorMark{
		owner: c,
		idx:   c.idx,
	}
}

// Rewind moves this cursor back to the position described by mark.
//
// Panics if mark was not created using this cursor's Mark method.
func (c *Cursor) Rewind(mark CursorMark) {
	if c != mark.owner {
		panic("niamc/parser: rewound cursor using the wrong cursor's mark")
	}
	c.idx = mark.idx
}
