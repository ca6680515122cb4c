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
	"github.com/bufbuild/niamc/ast"
	"github.com/bufbuild/niamc/source"
	"github.com/bufbuild/niamc/token"
)

// Parser builds an [ast.Program] out of a token sequence.
//
// A Parser is single use: once [Parser.Run] returns, its cursor is spent.
type Parser struct {
	file   *source.File
	cursor *Cursor
}

// New returns a parser over tokens, which must have been lexed from file. The
// file's text is used to slice identifier names and constants.
func New(file *source.File, tokens []token.Token) *Parser {
	return &Parser{
		file:   file,
		cursor: NewCursor(tokens, file.EOF()),
	}
}

// Parse is a helper that parses tokens lexed from file.
func Parse(file *source.File, tokens []token.Token) (*ast.Program, error) {
	return New(file, tokens).Run()
}

// Run parses the whole token sequence as a program.
//
// If parsing fails, the returned error is an [Error] and the program is nil.
func (p *Parser) Run() (*ast.Program, error) {
	fn, err := p.function()
	if err != nil {
		return nil, err
	}

	if !p.cursor.Done() {
		return nil, ExpectingEOF{
			Token: p.cursor.Peek(),
			Last:  p.cursor.Last(),
		}
	}
	return &ast.Program{Function: fn}, nil
}

// function parses
//
//	'int' Identifier '(' 'void' ')' '{' Statement '}'
func (p *Parser) function() (*ast.Function, error) {
	kw, err := p.cursor.Expect(token.IntKeyword)
	if err != nil {
		return nil, err
	}
	name, err := p.cursor.Expect(token.Identifier)
	if err != nil {
		return nil, err
	}
	for _, kind := range []token.Kind{token.OpenParen, token.VoidKeyword, token.CloseParen, token.OpenBrace} {
		if _, err := p.cursor.Expect(kind); err != nil {
			return nil, err
		}
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	end, err := p.cursor.Expect(token.CloseBrace)
	if err != nil {
		return nil, err
	}

	return &ast.Function{
		Name:     name.Text(p.file.Text()),
		NameSpan: name.Span,
		Body:     body,
		At:       source.CombineRanges(kw.Span, end.Span),
	}, nil
}

// statement parses
//
//	'return' Expression ';'
func (p *Parser) statement() (ast.Statement, error) {
	kw, err := p.cursor.Expect(token.ReturnKeyword)
	if err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	semi, err := p.cursor.Expect(token.Semicolon)
	if err != nil {
		return nil, err
	}

	return &ast.Return{
		Value: value,
		At:    source.CombineRanges(kw.Span, semi.Span),
	}, nil
}

// expression parses a Constant.
func (p *Parser) expression() (ast.Expression, error) {
	tok, err := p.cursor.Expect(token.Constant)
	if err != nil {
		return nil, err
	}

	text := tok.Text(p.file.Text())
	value, cause, ok := parseInt(text)
	if !ok {
		return nil, InvalidNumber{Token: tok, Cause: cause, Text: text}
	}
	return &ast.Constant{Value: value, At: tok.Span}, nil
}
