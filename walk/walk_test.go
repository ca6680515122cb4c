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

package walk_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/niamc/ast"
	"github.com/bufbuild/niamc/source"
	"github.com/bufbuild/niamc/walk"
)

func program() *ast.Program {
	return &ast.Program{
		Function: &ast.Function{
			Name: "main",
			Body: &ast.Return{
				Value: &ast.Constant{Value: 42, At: source.SpanOf(24, 26)},
				At:    source.SpanOf(17, 27),
			},
			At: source.SpanOf(0, 29),
		},
	}
}

func name(n ast.Node) string {
	return fmt.Sprintf("%T", n)
}

func TestNodes(t *testing.T) {
	t.Parallel()

	var visited []string
	err := walk.Nodes(program(), func(n ast.Node) error {
		visited = append(visited, name(n))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"*ast.Program", "*ast.Function", "*ast.Return", "*ast.Constant"}, visited)

	require.NoError(t, walk.Nodes(nil, func(ast.Node) error {
		t.Fatal("called for nil root")
		return nil
	}))
}

func TestEnterAndExit(t *testing.T) {
	t.Parallel()

	var events []string
	err := walk.NodesEnterAndExit(program(),
		func(n ast.Node) error {
			events = append(events, "enter "+name(n))
			if _, ok := n.(*ast.Return); ok {
				return walk.SkipChildren
			}
			return nil
		},
		func(n ast.Node) error {
			events = append(events, "exit "+name(n))
			return nil
		},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"enter *ast.Program",
		"enter *ast.Function",
		"enter *ast.Return",
		"exit *ast.Return",
		"exit *ast.Function",
		"exit *ast.Program",
	}, events)
}

func TestAbort(t *testing.T) {
	t.Parallel()

	stop := errors.New("stop")
	var visited int
	err := walk.Nodes(program(), func(n ast.Node) error {
		visited++
		if _, ok := n.(*ast.Function); ok {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, 2, visited)
}

func TestNodesWithPath(t *testing.T) {
	t.Parallel()

	depths := map[string]int{}
	err := walk.NodesWithPath(program(), func(path []ast.Node, n ast.Node) error {
		depths[name(n)] = len(path)
		if c, ok := n.(*ast.Constant); ok {
			require.Len(t, path, 3)
			assert.Equal(t, int64(42), c.Value)
			assert.IsType(t, (*ast.Return)(nil), path[2])
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"*ast.Program":  0,
		"*ast.Function": 1,
		"*ast.Return":   2,
		"*ast.Constant": 3,
	}, depths)
}
