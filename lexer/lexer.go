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
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bufbuild/niamc/report"
	"github.com/bufbuild/niamc/source"
	"github.com/bufbuild/niamc/token"
)

// Lexer is a pull-based scanner over the text of a single [source.File].
//
// A Lexer cannot be rewound; to lex the same text again, construct a new one.
type Lexer struct {
	file   *source.File
	cursor int

	// Set once the lexer will produce no more tokens, either because of a
	// fatal error or because a line comment ran to the end of the text.
	stopped bool

	errs  []Error
	fatal Error
}

// New returns a lexer over text, attributed to [source.Main].
func New(text string) *Lexer {
	return NewFile(source.FromString(text))
}

// NewFile returns a lexer over the text of file. Spans it produces carry the
// file's unit.
func NewFile(file *source.File) *Lexer {
	return &Lexer{file: file}
}

// Lex is a helper that lexes all of text and returns the tokens and errors.
func Lex(text string) ([]token.Token, []Error) {
	return New(text).Run()
}

// File returns the file this lexer is scanning.
func (l *Lexer) File() *source.File {
	return l.file
}

// Next scans and returns the next token. Returns false once there are no more
// tokens, either because the text is exhausted or because of a fatal error;
// see [Lexer.Fatal].
func (l *Lexer) Next() (token.Token, bool) {
	mp := l.mustProgress()
	for !l.stopped && !l.done() {
		mp.check()
		start := l.cursor

		if l.takeWhile(unicode.IsSpace) != "" {
			continue
		}

		rest := l.rest()
		switch {
		case strings.HasPrefix(rest, "/*"):
			l.blockComment()
			continue

		case strings.HasPrefix(rest, "//"):
			l.cursor += len("//")
			if _, ok := l.seekInclusive("\n"); !ok {
				// A line comment that runs into the end of the text is not
				// an error; it just ends the token stream.
				l.seekEOF()
				l.stopped = true
			}
			continue
		}

		if kind, ok := token.Punct(rest[0]); ok {
			l.cursor++
			return l.token(kind, start), true
		}

		if tok, ok := l.word(); ok {
			return tok, true
		}
		if l.cursor > start {
			// word() rejected a digit run glued to a word character.
			continue
		}

		l.cursor++
		l.unknown(l.spanFrom(start))
	}
	return token.Token{}, false
}

// All returns an iterator over the remaining tokens.
func (l *Lexer) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			tok, ok := l.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Run lexes all remaining tokens, and returns them along with every error
// recorded so far.
func (l *Lexer) Run() ([]token.Token, []Error) {
	var tokens []token.Token
	for tok := range l.All() {
		tokens = append(tokens, tok)
	}
	return tokens, l.Errors()
}

// Errors returns the errors recorded so far, in the order they were found.
//
// No two [UnknownToken] errors in the result are adjacent.
func (l *Lexer) Errors() []Error {
	return l.errs
}

// Fatal returns the error that stopped this lexer, if any. If it is non-nil,
// the tokens produced are only those found before the failure.
func (l *Lexer) Fatal() Error {
	return l.fatal
}

// ReportTo pushes every error recorded so far into sink.
func (l *Lexer) ReportTo(sink report.Sink) {
	for _, err := range l.errs {
		sink.Error(err)
	}
}

// blockComment skips over a block comment starting at the cursor. If the
// comment is nested or unterminated, the lexer is stopped.
func (l *Lexer) blockComment() {
	start := l.cursor
	l.cursor += len("/*")

	// Whichever marker comes first decides the comment's fate.
	body := l.rest()
	open := strings.Index(body, "/*")
	end := strings.Index(body, "*/")
	switch {
	case open != -1 && (end == -1 || open < end):
		l.fail(NestedComment{
			Outer: l.file.Span(start, 2),
			Inner: l.file.Span(l.cursor+open, 2),
		})
	case end == -1:
		l.fail(UnexpectedEOFInComment{Start: l.file.Span(start, 2)})
	default:
		l.cursor += end + len("*/")
	}
}

// word scans an identifier, keyword or constant at the cursor.
//
// A digit run immediately followed by a letter or underscore is not a
// constant; in that case the digits are recorded as unrecognized, the cursor
// is moved past them, and no token is returned.
func (l *Lexer) word() (token.Token, bool) {
	start := l.cursor
	rest := l.rest()

	switch c := rest[0]; {
	case isIdentStart(c):
		word := l.takeBytes(isWordByte)
		if kind, ok := token.Keyword(word); ok {
			return l.token(kind, start), true
		}
		return l.token(token.Identifier, start), true

	case isDigit(c):
		l.takeBytes(isDigit)
		if !l.done() && isWordByte(l.rest()[0]) {
			l.unknown(l.spanFrom(start))
			return token.Token{}, false
		}
		return l.token(token.Constant, start), true
	}

	return token.Token{}, false
}

// unknown records span as unrecognized, merging it into the previous error
// if that error is an adjacent [UnknownToken].
func (l *Lexer) unknown(span source.Span) {
	if n := len(l.errs); n > 0 {
		if prev, ok := l.errs[n-1].(UnknownToken); ok && prev.At.Adjacent(span) {
			l.errs[n-1] = UnknownToken{At: prev.At.Expand(span.Len)}
			return
		}
	}
	l.errs = append(l.errs, UnknownToken{At: span})
}

// fail records a fatal error and stops the lexer.
func (l *Lexer) fail(err Error) {
	l.errs = append(l.errs, err)
	l.fatal = err
	l.stopped = true
}

func (l *Lexer) token(kind token.Kind, start int) token.Token {
	return token.New(kind, l.spanFrom(start))
}

// rest returns the remaining unlexed text.
func (l *Lexer) rest() string {
	return l.file.Text()[l.cursor:]
}

// done returns whether or not we're done lexing runes.
func (l *Lexer) done() bool {
	return l.rest() == ""
}

// takeWhile consumes runes while they match the given function.
// Returns consumed text.
func (l *Lexer) takeWhile(f func(rune) bool) string {
	start := l.cursor
	for !l.done() {
		r, n := utf8.DecodeRuneInString(l.rest())
		if !f(r) {
			break
		}
		l.cursor += n
	}
	return l.file.Text()[start:l.cursor]
}

// takeBytes is like takeWhile, but for ASCII classes.
func (l *Lexer) takeBytes(f func(byte) bool) string {
	start := l.cursor
	for !l.done() && f(l.rest()[0]) {
		l.cursor++
	}
	return l.file.Text()[start:l.cursor]
}

// seekInclusive seeks until the given needle is found; returns the prefix inclusive of
// needle, and updates the cursor to point after it.
func (l *Lexer) seekInclusive(needle string) (string, bool) {
	if idx := strings.Index(l.rest(), needle); idx != -1 {
		prefix := l.rest()[:idx+len(needle)]
		l.cursor += idx + len(needle)
		return prefix, true
	}
	return "", false
}

// seekEOF seeks the cursor to the end of the file and returns the remaining text.
func (l *Lexer) seekEOF() string {
	rest := l.rest()
	l.cursor += len(rest)
	return rest
}

func (l *Lexer) spanFrom(start int) source.Span {
	return l.file.Span(start, l.cursor-start)
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isWordByte(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
