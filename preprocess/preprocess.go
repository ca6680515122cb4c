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

// Package preprocess runs source files through a C preprocessor before they
// are lexed.
//
// The preprocessor is an opaque collaborator: it either returns complete
// preprocessed text or fails, and no partial output is ever used.
package preprocess

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bufbuild/niamc/source"
)

const (
	// DefaultCommand is the preprocessor [Command] runs when Name is empty.
	DefaultCommand = "gcc"

	// maxStderrLines is how many lines of a failed preprocessor's stderr are
	// kept in its error.
	maxStderrLines = 10
)

// DefaultArgs are the arguments [Command] uses when Args is empty: preprocess
// C read from stdin, without line markers.
var DefaultArgs = []string{"-E", "-P", "-x", "c", "-"}

// ErrFailed is wrapped by every error a [Command] returns.
var ErrFailed = errors.New("preprocessing failed")

// Preprocessor transforms a file before it is lexed.
type Preprocessor interface {
	// Preprocess returns the preprocessed form of file. The result keeps the
	// file's unit and path.
	Preprocess(ctx context.Context, file *source.File) (*source.File, error)
}

// Func adapts a function into a [Preprocessor].
type Func func(ctx context.Context, file *source.File) (*source.File, error)

// Preprocess implements [Preprocessor].
func (f Func) Preprocess(ctx context.Context, file *source.File) (*source.File, error) {
	return f(ctx, file)
}

// Identity is a [Preprocessor] that returns files unchanged.
type Identity struct{}

// Preprocess implements [Preprocessor].
func (Identity) Preprocess(_ context.Context, file *source.File) (*source.File, error) {
	return file, nil
}

// Command is a [Preprocessor] that runs an external process.
//
// The file's text is written to the process's stdin, and its stdout is taken
// as the result. The file has already been read and checked by a
// [source.Opener], so in-memory files can be preprocessed too.
type Command struct {
	// The program to run. Defaults to [DefaultCommand].
	Name string
	// The program's arguments. If empty, [DefaultArgs] is used.
	Args []string
}

// Preprocess implements [Preprocessor].
func (c Command) Preprocess(ctx context.Context, file *source.File) (*source.File, error) {
	name := c.Name
	if name == "" {
		name = DefaultCommand
	}
	args := c.Args
	if len(args) == 0 {
		args = DefaultArgs
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(file.Text())
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &Error{
			Path:    file.Path(),
			Command: name,
			Stderr:  excerpt(stderr.String()),
			Err:     err,
		}
	}

	text := strings.ToValidUTF8(stdout.String(), "\uFFFD")
	return source.NewFile(file.Unit(), file.Path(), text), nil
}

// Error is a failed preprocessor run.
type Error struct {
	Path    string // The file being preprocessed.
	Command string // The program that was run.
	Stderr  string // The start of the program's stderr, if any.
	Err     error  // Why the process failed.
}

// Error implements [error].
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %v: %s: %v", e.Path, ErrFailed, e.Command, e.Err)
	if e.Stderr != "" {
		msg += "\n" + e.Stderr
	}
	return msg
}

// Unwrap returns [ErrFailed] and the underlying process error.
func (e *Error) Unwrap() []error {
	return []error{ErrFailed, e.Err}
}

// excerpt returns the first few lines of stderr.
func excerpt(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	if len(lines) > maxStderrLines {
		lines = append(lines[:maxStderrLines], "...")
	}
	return strings.Join(lines, "\n")
}
