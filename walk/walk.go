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

// Package walk provides helper functions for traversing the nodes of an
// [ast.Node] tree.
package walk

import (
	"errors"

	"github.com/bufbuild/niamc/ast"
)

// SkipChildren may be returned by an enter function to skip the children of
// the node being visited. The exit function is still called for that node.
//
//nolint:errname // Not a real error, like fs.SkipDir.
var SkipChildren = errors.New("skip children")

// Nodes walks the tree rooted at root in pre-order, calling fn for every
// node. If fn returns an error, the walk is aborted and that error is
// returned.
func Nodes(root ast.Node, fn func(ast.Node) error) error {
	return NodesEnterAndExit(root, fn, nil)
}

// NodesEnterAndExit walks the tree rooted at root, calling enter for each
// node before its children and exit, if not nil, after them. If either
// function returns an error other than [SkipChildren], the walk is aborted
// and that error is returned.
func NodesEnterAndExit(root ast.Node, enter, exit func(ast.Node) error) error {
	if root == nil {
		return nil
	}
	return walkNode(root, enter, exit)
}

// NodesWithPath is like [Nodes], but also passes fn the ancestors of each
// node, outermost first. The path slice is reused between calls and must not
// be retained.
func NodesWithPath(root ast.Node, fn func(path []ast.Node, node ast.Node) error) error {
	var path []ast.Node
	return NodesEnterAndExit(root,
		func(n ast.Node) error {
			err := fn(path, n)
			if err != nil && !errors.Is(err, SkipChildren) {
				return err
			}
			path = append(path, n)
			return err
		},
		func(ast.Node) error {
			path = path[:len(path)-1]
			return nil
		},
	)
}

func walkNode(n ast.Node, enter, exit func(ast.Node) error) error {
	err := enter(n)
	switch {
	case errors.Is(err, SkipChildren):
	case err != nil:
		return err
	default:
		for _, child := range ast.Children(n) {
			if err := walkNode(child, enter, exit); err != nil {
				return err
			}
		}
	}

	if exit != nil {
		return exit(n)
	}
	return nil
}
