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

package report

import (
	"fmt"

	"github.com/bufbuild/niamc/source"
)

// Level represents the severity of a diagnostic message.
type Level int8

const (
	// Red. Indicates the compiler will not produce output.
	Error Level = 1 + iota
	// Yellow. Indicates something that probably should not be ignored.
	Warning
	// Cyan. This is the diagnostics version of "info".
	Remark

	noteLevel // Used internally within the diagnostic renderer.
)

// String implements [fmt.Stringer].
func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Remark:
		return "remark"
	case noteLevel:
		return "note"
	default:
		return fmt.Sprintf("report.Level(%d)", int(l))
	}
}

// Diagnose is an error that can be rendered as a diagnostic.
type Diagnose interface {
	// Diagnose writes out this error to the given diagnostic.
	//
	// This function should not set the level; that is set by the
	// diagnostics framework.
	Diagnose(*Diagnostic)
}

// Diagnostic is a type of error that can be rendered as a rich diagnostic.
//
// Not all Diagnostics are "errors", even though a Diagnostic may wrap an
// error; some represent warnings, or perhaps debugging remarks.
//
// To construct a diagnostic, create one using a function like [Report.Error].
// Then, call [Diagnostic.Apply] to apply options to it. You should at minimum
// apply [Message] and either [InFile] or at least one [Snippet].
type Diagnostic struct {
	err     error
	message string
	level   Level

	// The file this diagnostic occurs in, if it has no associated Annotations. This
	// is used for errors like "file not found" that cannot be given a snippet.
	inFile string

	// A list of annotated source code spans in the diagnostic.
	annotations        []Annotation
	notes, help, debug []string
}

// Annotation is an annotated source code snippet within a [Diagnostic].
//
// Snippets render as annotated source code spans that show the context
// around the annotated region. More literally, this is e.g. a red squiggly
// line under some code.
type Annotation struct {
	// The span for this annotation.
	Span source.Span

	// A message to show under this snippet. May be empty.
	Message string

	// Whether this is the "primary" snippet, which is rendered in the same
	// color as the overall diagnostic. Only the first snippet is primary.
	Primary bool
}

// DiagnosticOption is an option that can be applied to a [Diagnostic].
//
// Nil values passed to [Diagnostic.Apply] are ignored.
type DiagnosticOption interface {
	apply(*Diagnostic)
}

// Err returns the error this diagnostic was created from, if any.
func (d *Diagnostic) Err() error {
	return d.err
}

// Level returns this diagnostic's level.
func (d *Diagnostic) Level() Level {
	return d.level
}

// Message returns this diagnostic's main message.
func (d *Diagnostic) Message() string {
	return d.message
}

// InFile returns the file this diagnostic was attributed to with [InFile].
func (d *Diagnostic) InFile() string {
	return d.inFile
}

// Annotations returns this diagnostic's snippets, primary first.
func (d *Diagnostic) Annotations() []Annotation {
	return d.annotations
}

// Notes returns this diagnostic's notes.
func (d *Diagnostic) Notes() []string { return d.notes }

// Help returns this diagnostic's help messages.
func (d *Diagnostic) Help() []string { return d.help }

// Debug returns this diagnostic's debugging information.
func (d *Diagnostic) Debug() []string { return d.debug }

// Primary returns this diagnostic's primary span, if it has one.
func (d *Diagnostic) Primary() (source.Span, bool) {
	for _, annotation := range d.annotations {
		if annotation.Primary {
			return annotation.Span, true
		}
	}
	return source.Span{}, false
}

// Apply applies the given options to this diagnostic.
//
// Nil values are ignored.
func (d *Diagnostic) Apply(options ...DiagnosticOption) *Diagnostic {
	for _, option := range options {
		if option != nil {
			option.apply(d)
		}
	}
	return d
}

// Message returns a DiagnosticOption that sets the main diagnostic message.
func Message(format string, args ...any) DiagnosticOption {
	return message(fmt.Sprintf(format, args...))
}

// InFile is a DiagnosticOption that causes a diagnostic without a primary
// span to mention the given file.
type InFile string

func (f InFile) apply(d *Diagnostic) {
	d.inFile = string(f)
}

// Snippet returns a DiagnosticOption that adds a new snippet to a diagnostic.
//
// The first annotation added is the "primary" annotation, and will be rendered
// differently from the others.
func Snippet(at source.Spanner) DiagnosticOption {
	return Snippetf(at, "")
}

// Snippetf is like [Snippet], but it attaches a message to the snippet.
//
// If at is nil, this function returns nil.
func Snippetf(at source.Spanner, format string, args ...any) DiagnosticOption {
	if at == nil {
		return nil
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return Annotation{Span: at.Span(), Message: msg}
}

// Note returns a DiagnosticOption that provides the user with context about the
// diagnostic, after the annotations.
func Note(format string, args ...any) DiagnosticOption {
	return note(fmt.Sprintf(format, args...))
}

// Help returns a DiagnosticOption that provides the user with a helpful prose
// suggestion for resolving the diagnostic.
func Help(format string, args ...any) DiagnosticOption {
	return help(fmt.Sprintf(format, args...))
}

// Debug returns a DiagnosticOption that appends debugging information to a
// diagnostic that is not intended to be shown to normal users.
func Debug(format string, args ...any) DiagnosticOption {
	return debug(fmt.Sprintf(format, args...))
}

func (a Annotation) apply(d *Diagnostic) {
	a.Primary = len(d.annotations) == 0
	d.annotations = append(d.annotations, a)
}

type (
	message string
	note    string
	help    string
	debug   string
)

func (m message) apply(d *Diagnostic) { d.message = string(m) }
func (n note) apply(d *Diagnostic)    { d.notes = append(d.notes, string(n)) }
func (n help) apply(d *Diagnostic)    { d.help = append(d.help, string(n)) }
func (n debug) apply(d *Diagnostic)   { d.debug = append(d.debug, string(n)) }
