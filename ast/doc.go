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

// Package ast defines types for modeling the AST (Abstract Syntax
// Tree) of the C subset accepted by the compiler.
//
// All nodes of the tree implement the [Node] interface. The root of the tree
// for a source file is a [*Program]. The tree is owned and acyclic: nodes do
// not refer back to their parents, or to the tokens they were parsed from.
// Position information is kept as a [source.Span] on every node, which can be
// resolved into a line and column through the [source.File] it points into.
//
// This package defines several interfaces. However, user code should
// not attempt to implement any of them. Most consumers of an AST will
// not work correctly if they encounter concrete implementations other
// than the ones defined in this package.
package ast
