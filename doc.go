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

// Package niamc is the front end of a compiler for a small subset of C.
//
// The front end turns source text into an AST in three phases, each of which
// has its own package:
//
//  1. Preprocessing, which runs an external C preprocessor.
//     Also see: preprocess.Command
//  2. Lexing, which splits text into tokens.
//     Also see: lexer.Lexer
//  3. Parsing, which builds an AST out of tokens.
//     Also see: parser.Parser
//
// Problems in the source are never Go errors. They are recorded as
// diagnostics in a [report.Report], which can be rendered for a human with
// [report.Renderer]. Go errors are reserved for failures of the environment,
// such as a missing file or a preprocessor that cannot be run.
//
// # Compiler
//
// A [Compiler] accepts a list of paths and produces a [Result] for each. A
// minimal Compiler, that reads files from the operating system and does not
// preprocess them, is just the zero value:
//
//	var compiler niamc.Compiler
//	results, err := compiler.Compile(ctx, "return_2.c")
//
// Files are compiled in parallel, up to one per CPU core by default.
package niamc
