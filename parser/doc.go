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

// Package parser contains the logic for parsing a token sequence produced by
// the lexer into an AST (abstract syntax tree).
//
// The parser is recursive descent with one production per nonterminal and no
// lookahead beyond the current token:
//
//	Program    := Function EOF
//	Function   := 'int' Identifier '(' 'void' ')' '{' Statement '}'
//	Statement  := 'return' Expression ';'
//	Expression := Constant
//
// Parsing is fail-fast: the first error aborts the parse, and no partial tree
// is returned. Every error is an [Error] carrying the spans needed to render
// a diagnostic for it.
package parser
