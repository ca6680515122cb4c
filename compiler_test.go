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

package niamc

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/niamc/ast"
	"github.com/bufbuild/niamc/lexer"
	"github.com/bufbuild/niamc/parser"
	"github.com/bufbuild/niamc/preprocess"
	"github.com/bufbuild/niamc/report"
	"github.com/bufbuild/niamc/source"
)

func TestCompile(t *testing.T) {
	t.Parallel()

	comp := Compiler{
		Opener: source.Map{"a.c": "int main(void) { return 2; }\n"},
	}
	results, err := comp.Compile(t.Context(), "a.c")
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, "a.c", res.File.Path())
	assert.Equal(t, source.NamedUnit("a.c"), res.File.Unit())
	assert.Len(t, res.Tokens, 10)
	require.NotNil(t, res.Program)
	assert.Equal(t, "main", res.Program.Function.Name)
	assert.Equal(t, int64(2), res.Program.Function.Body.(*ast.Return).Value.(*ast.Constant).Value)
	require.NoError(t, res.Err())
	assert.Empty(t, results.Report().Diagnostics)
}

func TestCompileNothing(t *testing.T) {
	t.Parallel()

	var comp Compiler
	results, err := comp.Compile(t.Context())
	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestCompileLexOnly(t *testing.T) {
	t.Parallel()

	comp := Compiler{
		Opener: source.Map{"a.c": "int main(void) { return 2 }\n"},
		Stage:  StageLex,
	}
	results, err := comp.Compile(t.Context(), "a.c")
	require.NoError(t, err)
	assert.Len(t, results[0].Tokens, 9)
	assert.Nil(t, results[0].Program)
}

func TestCompileDiagnostics(t *testing.T) {
	t.Parallel()

	comp := Compiler{
		Opener: source.Map{
			"good.c":   "int main(void) { return 0; }",
			"lex.c":    "int main(void) { return @; }",
			"syntax.c": "int main(void) { return 0 }",
		},
	}
	results, err := comp.Compile(t.Context(), "syntax.c", "good.c", "lex.c")
	require.ErrorIs(t, err, ErrInvalidSource)
	require.Len(t, results, 3)

	assert.NotNil(t, results[1].Program)
	assert.NoError(t, results[1].Err())

	// A lexer error keeps the file from being parsed.
	assert.Nil(t, results[2].Program)
	var lerr lexer.UnknownToken
	require.ErrorAs(t, results[2].Err(), &lerr)
	assert.Equal(t, source.NewSpanIn(source.NamedUnit("lex.c"), 24, 1), lerr.At)

	assert.Nil(t, results[0].Program)
	var perr parser.SyntaxError
	require.ErrorAs(t, results[0].Err(), &perr)

	text, errs, _ := report.Renderer{Resolver: results.Files(), Compact: true}.RenderString(results.Report())
	assert.Equal(t, 2, errs)
	assert.Equal(t, "error: lex.c:1:25: unrecognized token\n"+
		"error: syntax.c:1:27: unexpected `}`, expected `;`\n", text)
}

func TestCompileDuplicates(t *testing.T) {
	t.Parallel()

	comp := Compiler{
		Opener: source.Map{"a.c": "int main(void) { return 0 }"},
	}
	results, err := comp.Compile(t.Context(), "a.c", "a.c")
	require.ErrorIs(t, err, ErrInvalidSource)
	require.Len(t, results, 2)
	assert.Same(t, results[0], results[1])
	assert.Len(t, results.Report().Diagnostics, 1)
}

func TestCompileMissingFile(t *testing.T) {
	t.Parallel()

	comp := Compiler{
		Opener: source.Map{"a.c": "int main(void) { return 0; }"},
	}
	results, err := comp.Compile(t.Context(), "a.c", "b.c")
	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.Nil(t, results)
}

func TestCompileMissingFileQueued(t *testing.T) {
	t.Parallel()

	// With one unit at a time, the other files are still queued on the
	// semaphore when the missing one fails and cancels them.
	comp := Compiler{
		Opener: source.Map{
			"a.c": "int main(void) { return 0; }",
			"b.c": "int main(void) { return 1; }",
			"c.c": "int main(void) { return 2; }",
		},
		MaxParallelism: 1,
	}
	for range 100 {
		results, err := comp.Compile(t.Context(), "a.c", "missing.c", "b.c", "c.c")
		require.ErrorIs(t, err, fs.ErrNotExist)
		require.NotErrorIs(t, err, context.Canceled)
		assert.Nil(t, results)
	}
}

func TestCompilePreprocessFailureQueued(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	comp := Compiler{
		Opener: source.Map{
			"a.c": "int main(void) { return 0; }",
			"b.c": "int main(void) { return 1; }",
		},
		Preprocessor: preprocess.Func(func(_ context.Context, file *source.File) (*source.File, error) {
			if file.Path() == "b.c" {
				return nil, boom
			}
			return file, nil
		}),
		MaxParallelism: 1,
	}
	for range 100 {
		_, err := comp.Compile(t.Context(), "a.c", "b.c", "a.c")
		require.ErrorIs(t, err, boom)
		require.NotErrorIs(t, err, context.Canceled)
	}
}

func TestCompilePreprocess(t *testing.T) {
	t.Parallel()

	comp := Compiler{
		Opener: source.Map{"a.c": "int main(void) { RETURN 0; }"},
		Preprocessor: preprocess.Func(func(_ context.Context, file *source.File) (*source.File, error) {
			text := strings.ReplaceAll(file.Text(), "RETURN", "return")
			return source.NewFile(file.Unit(), file.Path(), text), nil
		}),
	}
	results, err := comp.Compile(t.Context(), "a.c")
	require.NoError(t, err)
	assert.NotNil(t, results[0].Program)
	assert.Equal(t, "int main(void) { return 0; }", results[0].File.Text())
}

func TestCompilePreprocessFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	comp := Compiler{
		Opener: source.Map{"a.c": "int main(void) { return 0; }"},
		Preprocessor: preprocess.Func(func(context.Context, *source.File) (*source.File, error) {
			return nil, boom
		}),
	}
	_, err := comp.Compile(t.Context(), "a.c")
	require.ErrorIs(t, err, boom)
}

func TestCompileParallel(t *testing.T) {
	t.Parallel()

	files := source.Map{}
	var paths []string
	for i := range 50 {
		path := fmt.Sprintf("f%d.c", i)
		files[path] = fmt.Sprintf("int f%d(void) { return %d; }", i, i)
		paths = append(paths, path)
	}

	for _, par := range []int{1, 4, 0} {
		comp := Compiler{Opener: files, MaxParallelism: par}
		results, err := comp.Compile(t.Context(), paths...)
		require.NoError(t, err)
		require.Len(t, results, len(paths))
		for i, res := range results {
			assert.Equal(t, fmt.Sprintf("f%d", i), res.Program.Function.Name)
		}
	}
}

func TestCompileCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	comp := Compiler{
		Opener: source.Map{"a.c": "int main(void) { return 0; }"},
	}
	_, err := comp.Compile(ctx, "a.c")
	require.ErrorIs(t, err, context.Canceled)
}

func TestStageString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "parse", StageParse.String())
	assert.Equal(t, "lex", StageLex.String())
	assert.Equal(t, "niamc.Stage(7)", Stage(7).String())
}
