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

package token

import (
	"fmt"

	"github.com/bufbuild/niamc/source"
)

// Token is a single lexeme: its kind and where it occurs.
//
// Tokens are immutable values; only the lexer produces them.
type Token struct {
	Kind Kind
	Span source.Span
}

// New constructs a token. This is primarily useful in tests; real tokens come
// from the lexer.
func New(kind Kind, span source.Span) Token {
	return Token{Kind: kind, Span: span}
}

// IsZero returns whether this is the zero token.
func (t Token) IsZero() bool {
	return t == Token{}
}

// Text returns the lexeme of this token, given the text it was lexed from.
func (t Token) Text(text string) string {
	return text[t.Span.Start:t.Span.End()]
}

// String implements [fmt.Stringer].
func (t Token) String() string {
	return fmt.Sprintf("%v%v", t.Kind, t.Span)
}
