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

import "fmt"

const (
	Invalid Kind = iota // Never produced by the lexer.

	Identifier
	Constant

	IntKeyword
	VoidKeyword
	ReturnKeyword

	OpenParen
	CloseParen
	OpenBrace
	CloseBrace
	Semicolon
)

// Kind identifies what kind of token a particular [Token] is.
type Kind byte

// keywords maps reserved words to their kinds.
var keywords = map[string]Kind{
	"int":    IntKeyword,
	"void":   VoidKeyword,
	"return": ReturnKeyword,
}

// Keyword looks up the keyword kind for a word.
func Keyword(word string) (Kind, bool) {
	k, ok := keywords[word]
	return k, ok
}

// Punct looks up the kind of a single-byte punctuation token.
func Punct(b byte) (Kind, bool) {
	switch b {
	case '(':
		return OpenParen, true
	case ')':
		return CloseParen, true
	case '{':
		return OpenBrace, true
	case '}':
		return CloseBrace, true
	case ';':
		return Semicolon, true
	default:
		return Invalid, false
	}
}

// IsKeyword returns whether this is one of the reserved-word kinds.
func (k Kind) IsKeyword() bool {
	return k >= IntKeyword && k <= ReturnKeyword
}

// IsPunct returns whether this is one of the single-byte punctuation kinds.
func (k Kind) IsPunct() bool {
	return k >= OpenParen && k <= Semicolon
}

// Describe returns a user-facing name for this kind, suitable for use in a
// diagnostic, such as "identifier" or "`;`".
func (k Kind) Describe() string {
	switch k {
	case Identifier:
		return "identifier"
	case Constant:
		return "constant"
	case IntKeyword:
		return "`int`"
	case VoidKeyword:
		return "`void`"
	case ReturnKeyword:
		return "`return`"
	case OpenParen:
		return "`(`"
	case CloseParen:
		return "`)`"
	case OpenBrace:
		return "`{`"
	case CloseBrace:
		return "`}`"
	case Semicolon:
		return "`;`"
	default:
		return "invalid token"
	}
}

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case Identifier:
		return "Identifier"
	case Constant:
		return "Constant"
	case IntKeyword:
		return "IntKeyword"
	case VoidKeyword:
		return "VoidKeyword"
	case ReturnKeyword:
		return "ReturnKeyword"
	case OpenParen:
		return "OpenParen"
	case CloseParen:
		return "CloseParen"
	case OpenBrace:
		return "OpenBrace"
	case CloseBrace:
		return "CloseBrace"
	case Semicolon:
		return "Semicolon"
	default:
		return fmt.Sprintf("token.Kind(%d)", int(k))
	}
}
