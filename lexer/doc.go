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

// Package lexer turns the text of a single source buffer into a sequence of
// [token.Token] values.
//
// The lexer is pull-based: each call to [Lexer.Next] does a bounded amount of
// work and returns at most one token. Whitespace and comments are skipped and
// never produce tokens. Bytes that do not begin any token are recorded as
// [UnknownToken] errors, with adjacent bad bytes merged into a single error,
// and lexing continues past them. A nested or unterminated block comment is
// fatal: the lexer records the error and produces no further tokens.
package lexer
