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
	"strings"

	"github.com/tidwall/btree"

	"github.com/bufbuild/niamc/source"
)

// Sink is something that lexer and parser errors can be reported to.
//
// [Report] is the canonical implementation; tests may provide their own.
type Sink interface {
	Error(Diagnose) *Diagnostic
}

// Report is a collection of diagnostics.
//
// Report is not synchronized; in particular, callers that compile several
// units concurrently should give each unit its own Report.
type Report struct {
	// The diagnostics collected so far, in the order they were reported.
	Diagnostics []Diagnostic
}

var _ Sink = (*Report)(nil)

// Error pushes an error diagnostic onto this report.
func (r *Report) Error(err Diagnose) *Diagnostic {
	return r.diagnose(err, Error)
}

// Warn pushes a warning diagnostic onto this report.
func (r *Report) Warn(err Diagnose) *Diagnostic {
	return r.diagnose(err, Warning)
}

// Remark pushes a remark diagnostic onto this report.
func (r *Report) Remark(err Diagnose) *Diagnostic {
	return r.diagnose(err, Remark)
}

// Errorf creates a new error diagnostic with an unspecified error type; analogous to
// [fmt.Errorf].
func (r *Report) Errorf(format string, args ...any) *Diagnostic {
	return r.push(fmt.Errorf(format, args...), Error)
}

// Warnf creates a new warning diagnostic with an unspecified error type; analogous to
// [fmt.Errorf].
func (r *Report) Warnf(format string, args ...any) *Diagnostic {
	return r.push(fmt.Errorf(format, args...), Warning)
}

// Remarkf creates a new remark diagnostic with an unspecified error type; analogous to
// [fmt.Errorf].
func (r *Report) Remarkf(format string, args ...any) *Diagnostic {
	return r.push(fmt.Errorf(format, args...), Remark)
}

// Append copies every diagnostic of other onto the end of this report.
func (r *Report) Append(other *Report) {
	if other == nil {
		return
	}
	r.Diagnostics = append(r.Diagnostics, other.Diagnostics...)
}

// ErrorCount returns the number of error-level diagnostics in this report.
func (r *Report) ErrorCount() int {
	if r == nil {
		return 0
	}
	var n int
	for i := range r.Diagnostics {
		if r.Diagnostics[i].level == Error {
			n++
		}
	}
	return n
}

// Sorted returns pointers to this report's diagnostics, ordered by the unit
// and start offset of their primary span. Diagnostics without a span come
// first. Ties keep the order in which they were reported.
func (r *Report) Sorted() []*Diagnostic {
	if r == nil || len(r.Diagnostics) == 0 {
		return nil
	}

	index := btree.NewBTreeG(func(a, b sortKey) bool { return a.less(b) })
	for i := range r.Diagnostics {
		d := &r.Diagnostics[i]
		key := sortKey{seq: i, diagnostic: d}
		key.span, key.hasSpan = d.Primary()
		index.Set(key)
	}

	sorted := make([]*Diagnostic, 0, index.Len())
	index.Scan(func(key sortKey) bool {
		sorted = append(sorted, key.diagnostic)
		return true
	})
	return sorted
}

// Err converts this report into an error, if it contains any error-level
// diagnostics. Otherwise, returns nil.
//
// The returned error is an [*AsError]; its message is rendered with
// resolver, which may be nil.
func (r *Report) Err(resolver source.Resolver) error {
	if r.ErrorCount() == 0 {
		return nil
	}
	return &AsError{Report: r, Resolver: resolver}
}

// push is the core "make me a diagnostic" function.
func (r *Report) push(err error, level Level) *Diagnostic {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{err: err, level: level})
	d := &r.Diagnostics[len(r.Diagnostics)-1]
	if err != nil {
		d.message = err.Error()
	}
	return d
}

func (r *Report) diagnose(diagnose Diagnose, level Level) *Diagnostic {
	err, _ := diagnose.(error)
	d := r.push(err, level)
	diagnose.Diagnose(d)
	return d
}

type sortKey struct {
	span       source.Span
	hasSpan    bool
	seq        int
	diagnostic *Diagnostic
}

func (k sortKey) less(that sortKey) bool {
	if k.hasSpan != that.hasSpan {
		return !k.hasSpan
	}
	if k.hasSpan {
		if c := strings.Compare(k.span.Unit.Name(), that.span.Unit.Name()); c != 0 {
			return c < 0
		}
		if c := source.Compare(k.span, that.span); c != 0 {
			return c < 0
		}
	}
	return k.seq < that.seq
}

// AsError wraps a [Report] as an [error].
type AsError struct {
	Report   *Report
	Resolver source.Resolver
}

// Error implements [error].
func (e *AsError) Error() string {
	text, _, _ := Renderer{Compact: true, Resolver: e.Resolver}.RenderString(e.Report)
	return strings.TrimSuffix(text, "\n")
}

// Unwrap returns the errors underlying every diagnostic of the report that
// carries one, so that [errors.As] can find them.
func (e *AsError) Unwrap() []error {
	var errs []error
	for i := range e.Report.Diagnostics {
		if err := e.Report.Diagnostics[i].err; err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// ErrInFile wraps an [error] into a diagnostic on the given file.
type ErrInFile struct {
	Err  error
	Path string
}

var _ Diagnose = &ErrInFile{}

// Error implements [error].
func (e *ErrInFile) Error() string {
	return e.Path + ": " + e.Err.Error()
}

// Unwrap implements [errors.Unwrap].
func (e *ErrInFile) Unwrap() error {
	return e.Err
}

// Diagnose implements [Diagnose].
func (e *ErrInFile) Diagnose(d *Diagnostic) {
	d.Apply(
		Message("%v", e.Err),
		InFile(e.Path),
	)
}
