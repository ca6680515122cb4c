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

package ast

import (
	"github.com/bufbuild/niamc/source"
)

// Node is a node in the AST.
type Node interface {
	// Span returns the source code this node was parsed from.
	Span() source.Span

	node()
}

// Statement is a node that can appear as the body of a [Function].
//
// The only implementation is [*Return].
type Statement interface {
	Node
	statement()
}

// Expression is a node that produces a value.
//
// The only implementation is [*Constant].
type Expression interface {
	Node
	expression()
}

var (
	_ Node       = (*Program)(nil)
	_ Node       = (*Function)(nil)
	_ Statement  = (*Return)(nil)
	_ Expression = (*Constant)(nil)
)

// Program is the root of the tree: a translation unit holding exactly one
// function definition.
type Program struct {
	Function *Function
}

// Span implements [Node].
func (p *Program) Span() source.Span {
	if p == nil || p.Function == nil {
		return source.Span{}
	}
	return p.Function.At
}

// Function is a function definition of the form
//
//	int name(void) { body }
type Function struct {
	Name     string
	NameSpan source.Span

	Body Statement

	// From the `int` keyword through the closing brace.
	At source.Span
}

// Span implements [Node].
func (f *Function) Span() source.Span { return f.At }

// Return is a return statement, including its trailing semicolon.
type Return struct {
	Value Expression
	At    source.Span
}

// Span implements [Node].
func (r *Return) Span() source.Span { return r.At }

// Constant is an integer literal.
type Constant struct {
	Value int64
	At    source.Span
}

// Span implements [Node].
func (c *Constant) Span() source.Span { return c.At }

// Children returns the direct children of node, in source order. Nil
// children are omitted.
func Children(node Node) []Node {
	var children []Node
	switch node := node.(type) {
	case *Program:
		if node.Function != nil {
			children = append(children, node.Function)
		}
	case *Function:
		if node.Body != nil {
			children = append(children, node.Body)
		}
	case *Return:
		if node.Value != nil {
			children = append(children, node.Value)
		}
	}
	return children
}

func (*Program) node()  {}
func (*Function) node() {}
func (*Return) node()   {}
func (*Constant) node() {}

func (*Return) statement()    {}
func (*Constant) expression() {}
