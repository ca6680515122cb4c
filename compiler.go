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
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/bufbuild/niamc/ast"
	"github.com/bufbuild/niamc/lexer"
	"github.com/bufbuild/niamc/parser"
	"github.com/bufbuild/niamc/preprocess"
	"github.com/bufbuild/niamc/report"
	"github.com/bufbuild/niamc/source"
	"github.com/bufbuild/niamc/token"
)

// ErrInvalidSource is returned by [Compiler.Compile] alongside its results
// when at least one file produced an error diagnostic.
var ErrInvalidSource = errors.New("compilation failed: invalid source")

// Stage is the last step a [Compiler] runs on each file.
type Stage int

const (
	// Lex and then parse each file. This is the zero value.
	StageParse Stage = iota
	// Only lex each file.
	StageLex
)

// String implements [fmt.Stringer].
func (s Stage) String() string {
	switch s {
	case StageParse:
		return "parse"
	case StageLex:
		return "lex"
	default:
		return fmt.Sprintf("niamc.Stage(%d)", int(s))
	}
}

// Compiler runs the front end over a set of files.
//
// The compilation process involves three steps for each file:
//  1. Preprocessing the text with an external command.
//  2. Lexing the text into tokens.
//  3. Parsing the tokens into an AST.
//
// Files are independent of each other, so they are compiled in parallel.
type Compiler struct {
	// Loads the files to compile. If nil, files are read from the operating
	// system's filesystem.
	Opener source.Opener
	// Runs before lexing. If nil, files are not preprocessed.
	Preprocessor preprocess.Preprocessor
	// The last step to run.
	Stage Stage
	// The maximum parallelism to use when compiling. If unspecified or set to
	// a non-positive value, then min(runtime.NumCPU(), runtime.GOMAXPROCS(-1))
	// will be used.
	MaxParallelism int
}

// Result is the outcome of compiling a single file.
type Result struct {
	// The file after preprocessing.
	File *source.File
	// Every token the lexer produced, even if it stopped early.
	Tokens []token.Token
	// The parsed program. Nil if parsing did not run or failed.
	Program *ast.Program
	// Diagnostics for this file.
	Report *report.Report
}

// Err returns this result's errors as a single error, or nil if it has none.
func (r *Result) Err() error {
	return r.Report.Err(r.File)
}

// Results is the outcome of a call to [Compiler.Compile], in the order the
// paths were given.
type Results []*Result

// Files returns the file of each result, for resolving diagnostic spans.
func (rs Results) Files() source.Files {
	files := make(source.Files, len(rs))
	for i, r := range rs {
		files[i] = r.File
	}
	return files
}

// Report merges the reports of every result into one. A file that was named
// more than once contributes its diagnostics once.
func (rs Results) Report() *report.Report {
	merged := new(report.Report)
	seen := make(map[*Result]struct{}, len(rs))
	for _, r := range rs {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		merged.Append(r.Report)
	}
	return merged
}

// Compile compiles the files at the given paths.
//
// Diagnostics are not Go errors: a file with a syntax error still has a
// [Result], and Compile returns [ErrInvalidSource] along with all of the
// results. Failing to open or preprocess a file is a Go error, in which case
// no results are returned.
func (c *Compiler) Compile(ctx context.Context, paths ...string) (Results, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	par := c.MaxParallelism
	if par <= 0 {
		par = min(runtime.GOMAXPROCS(-1), runtime.NumCPU())
	}

	e := executor{
		c:       c,
		s:       semaphore.NewWeighted(int64(par)),
		cancel:  cancel,
		results: map[string]*result{},
	}

	pending := make([]*result, len(paths))
	for i, path := range paths {
		pending[i] = e.compile(ctx, path)
	}

	results := make(Results, len(paths))
	var failed bool
	for i, r := range pending {
		select {
		case <-r.ready:
		case <-ctx.Done():
		}
		// A unit that failed cancels ctx, which must not hide its error.
		if err := e.failure(); err != nil {
			return nil, err
		}
		select {
		case <-r.ready:
		default:
			return nil, ctx.Err()
		}
		if r.err != nil {
			return nil, r.err
		}
		results[i] = r.res
		failed = failed || r.res.Report.ErrorCount() > 0
	}

	if failed {
		return results, ErrInvalidSource
	}
	return results, nil
}

type result struct {
	ready chan struct{}
	res   *Result
	err   error
}

func (r *result) fail(err error) {
	r.err = err
	close(r.ready)
}

func (r *result) complete(res *Result) {
	r.res = res
	close(r.ready)
}

type executor struct {
	c      *Compiler
	s      *semaphore.Weighted
	cancel context.CancelFunc

	mu      sync.Mutex
	results map[string]*result
	err     error // The first unit failure.
}

// compile starts compiling path, unless it has been started already.
func (e *executor) compile(ctx context.Context, path string) *result {
	e.mu.Lock()
	defer e.mu.Unlock()
	r := e.results[path]
	if r != nil {
		return r
	}

	r = &result{
		ready: make(chan struct{}),
	}
	e.results[path] = r
	go func() {
		e.doCompile(ctx, path, r)
	}()
	return r
}

func (e *executor) doCompile(ctx context.Context, path string, r *result) {
	if err := e.s.Acquire(ctx, 1); err != nil {
		r.fail(err)
		return
	}
	defer e.s.Release(1)

	file, err := e.c.opener().Open(path)
	if err == nil {
		file, err = e.c.preprocessor().Preprocess(ctx, file)
	}
	if err != nil {
		e.fail(err)
		r.fail(err)
		return
	}

	r.complete(e.c.run(file))
}

// fail records err as the reason the compilation failed, unless another unit
// failed first, and stops the remaining units.
func (e *executor) fail(err error) {
	e.mu.Lock()
	if e.err == nil {
		e.err = err
	}
	e.mu.Unlock()
	e.cancel()
}

// failure returns the first unit failure, if any.
func (e *executor) failure() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// run lexes and parses a single file.
func (c *Compiler) run(file *source.File) *Result {
	res := &Result{File: file, Report: new(report.Report)}

	lex := lexer.NewFile(file)
	res.Tokens, _ = lex.Run()
	lex.ReportTo(res.Report)
	if c.Stage == StageLex || res.Report.ErrorCount() > 0 {
		return res
	}

	program, err := parser.Parse(file, res.Tokens)
	var perr parser.Error
	if errors.As(err, &perr) {
		res.Report.Error(perr)
		return res
	}
	res.Program = program
	return res
}

func (c *Compiler) opener() source.Opener {
	if c.Opener == nil {
		return &source.FS{}
	}
	return c.Opener
}

func (c *Compiler) preprocessor() preprocess.Preprocessor {
	if c.Preprocessor == nil {
		return preprocess.Identity{}
	}
	return c.Preprocessor
}
