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

package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/niamc/parser"
	"github.com/bufbuild/niamc/source"
	"github.com/bufbuild/niamc/token"
)

func TestCursor(t *testing.T) {
	t.Parallel()

	tokens := []token.Token{
		token.New(token.Constant, source.SpanOf(0, 5)),
		token.New(token.Semicolon, source.SpanOf(5, 6)),
	}
	c := parser.NewCursor(tokens, source.SpanOf(6, 6))

	assert.False(t, c.Done())
	assert.Equal(t, tokens[1], c.Last())
	assert.Equal(t, tokens, c.Rest())
	assert.Equal(t, tokens[0], c.Peek())

	tok, err := c.Expect(token.Constant)
	require.NoError(t, err)
	assert.Equal(t, tokens[0], tok)

	assert.Equal(t, tokens[1], c.Take())
	assert.True(t, c.Done())
	assert.Empty(t, c.Rest())
	assert.True(t, c.Take().IsZero())
	assert.True(t, c.Peek().IsZero())

	// The last token does not depend on the cursor's position.
	assert.Equal(t, tokens[1], c.Last())

	_, err = c.Expect(token.Constant)
	assert.Equal(t, parser.UnexpectedEOF{Expected: token.Constant, At: source.SpanOf(6, 6)}, err)
	assert.Equal(t, source.SpanOf(6, 6), c.EOF())
}

func TestCursorMismatch(t *testing.T) {
	t.Parallel()

	found := token.New(token.Identifier, source.SpanOf(0, 4))
	c := parser.NewCursor([]token.Token{found}, source.SpanOf(4, 4))

	_, err := c.Expect(token.IntKeyword)
	assert.Equal(t, parser.SyntaxError{Found: found, Expected: token.IntKeyword}, err)
	assert.True(t, c.Done())
}

func TestCursorZeroToken(t *testing.T) {
	t.Parallel()

	// Position, not token contents, decides where the stream ends.
	tokens := []token.Token{
		{},
		token.New(token.Semicolon, source.SpanOf(1, 2)),
	}
	c := parser.NewCursor(tokens, source.SpanOf(2, 2))

	assert.True(t, c.Take().IsZero())
	assert.False(t, c.Done())
	assert.Equal(t, tokens[1], c.Take())
	assert.True(t, c.Done())

	c = parser.NewCursor(tokens, source.SpanOf(2, 2))
	_, err := c.Expect(token.Semicolon)
	assert.Equal(t, parser.SyntaxError{Found: token.Token{}, Expected: token.Semicolon}, err)
	tok, err := c.Expect(token.Semicolon)
	require.NoError(t, err)
	assert.Equal(t, tokens[1], tok)
}

func TestCursorEmpty(t *testing.T) {
	t.Parallel()

	c := parser.NewCursor(nil, source.Span{})
	assert.True(t, c.Done())
	assert.True(t, c.Last().IsZero())
	assert.Empty(t, c.Rest())
}

func TestCursorBacktrack(t *testing.T) {
	t.Parallel()

	tokens := []token.Token{
		token.New(token.IntKeyword, source.SpanOf(0, 3)),
		token.New(token.Identifier, source.SpanOf(4, 8)),
		token.New(token.OpenParen, source.SpanOf(8, 9)),
	}
	c := parser.NewCursor(tokens, source.SpanOf(9, 9))

	mark := c.Mark()
	c.Take()
	c.Take()
	assert.Equal(t, tokens[2], c.Peek())
	c.Rewind(mark)
	assert.Equal(t, tokens[0], c.Peek())

	clone := c.Clone()
	clone.Take()
	clone.Take()
	assert.Equal(t, tokens[2], clone.Peek())
	assert.Equal(t, tokens[0], c.Peek(), "advancing a clone moved the original")

	assert.Panics(t, func() { clone.Rewind(mark) })
}
