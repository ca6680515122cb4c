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
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/bufbuild/niamc/source"
)

// Renderer configures a diagnostic rendering operation.
type Renderer struct {
	// Used to find the text that annotations point into. If nil, or if a
	// span's unit cannot be resolved, annotations are rendered as raw spans.
	Resolver source.Resolver

	// If set, uses a compact one-line format for each diagnostic.
	Compact bool

	// If set, rendering results are enriched with ANSI color escapes.
	Colorize bool

	// If set, remark diagnostics will be printed.
	//
	// Ignored by [Renderer.Diagnostic].
	ShowRemarks bool

	// If set, rendering a diagnostic will show the debug footer.
	ShowDebug bool
}

// Render renders a diagnostic report.
//
// Diagnostics are rendered in the order given by [Report.Sorted]. In addition
// to returning the rendering result, returns how many errors and warnings the
// report contains.
//
// On the other hand, the actual error-typed return is an error when writing to
// the writer.
func (r Renderer) Render(report *Report, out io.Writer) (errorCount, warningCount int, err error) {
	for _, diagnostic := range report.Sorted() {
		if !r.ShowRemarks && diagnostic.level == Remark {
			continue
		}

		_, err = fmt.Fprintln(out, r.Diagnostic(diagnostic))
		if err != nil {
			return
		}

		if !r.Compact {
			_, err = fmt.Fprintln(out)
			if err != nil {
				return
			}
		}

		switch diagnostic.level {
		case Error:
			errorCount++
		case Warning:
			warningCount++
		}
	}
	if r.Compact {
		return
	}

	c := newStylesheet(r)

	pluralize := func(count int, what string) string {
		if count == 1 {
			return "1 " + what
		}
		return fmt.Sprint(count, " ", what, "s")
	}

	if errorCount > 0 {
		_, err = fmt.Fprint(out, c.bError, "encountered ", pluralize(errorCount, "error"))
		if err != nil {
			return
		}

		if warningCount > 0 {
			_, err = fmt.Fprint(out, " and ", pluralize(warningCount, "warning"))
			if err != nil {
				return
			}
		}
		_, err = fmt.Fprintln(out, c.reset)
	} else if warningCount > 0 {
		_, err = fmt.Fprint(out, c.bWarning, "encountered ", pluralize(warningCount, "warning"), c.reset, "\n")
	}
	return
}

// RenderString is a helper for calling [Renderer.Render] with a [strings.Builder].
func (r Renderer) RenderString(report *Report) (text string, errorCount, warningCount int) {
	var buf strings.Builder
	e, w, _ := r.Render(report, &buf)
	return buf.String(), e, w
}

// Diagnostic renders a single diagnostic to a string.
func (r Renderer) Diagnostic(d *Diagnostic) string {
	level := d.level.String()
	c := newStylesheet(r)

	// For the compact style, we imitate the Go compiler.
	if r.Compact {
		var where string
		if span, ok := d.Primary(); ok {
			where = r.locate(span).String() + ": "
		} else if d.inFile != "" {
			where = d.inFile + ": "
		}

		return fmt.Sprint(c.ColorForLevel(d.level), level, ": ", where, d.message, c.reset)
	}

	// For the rich style, we imitate the Rust compiler. See
	// https://github.com/rust-lang/rustc-dev-guide/blob/master/src/diagnostics.md

	var out strings.Builder
	fmt.Fprint(&out, c.BoldForLevel(d.level), level, ": ", d.message, c.reset)

	snippets := make([]snippet, len(d.annotations))
	for i, annotation := range d.annotations {
		snippets[i] = snippet{Annotation: annotation, place: r.locate(annotation.Span)}
	}

	// Figure out how wide the line bar needs to be. This is given by
	// the width of the largest line value among the annotations.
	var greatestLine int
	for _, snip := range snippets {
		greatestLine = max(greatestLine, snip.place.start.Line)
	}
	lineBarWidth := len(strconv.Itoa(greatestLine)) // Easier than messing with math.Log10()
	lineBarWidth = max(2, lineBarWidth)

	// Render all the diagnostic windows.
	for i, group := range partition(snippets, func(a, b *snippet) bool { return a.Span.Unit != b.Span.Unit }) {
		out.WriteByte('\n')
		out.WriteString(c.nAccent)
		padBy(&out, lineBarWidth)
		if i == 0 {
			out.WriteString("--> ")
		} else {
			out.WriteString("::: ")
		}
		out.WriteString(group[0].place.String())
		out.WriteString(c.reset)

		if group[0].place.file == nil {
			continue
		}

		// Add a blank line after the file. This gives the diagnostic window some
		// visual breathing room.
		out.WriteByte('\n')
		out.WriteString(c.nAccent)
		padBy(&out, lineBarWidth)
		out.WriteString(" |")
		out.WriteString(c.reset)

		renderWindow(d.level, group, lineBarWidth, &c, &out)
	}

	// Render a remedial file name for spanless errors.
	if len(d.annotations) == 0 && d.inFile != "" {
		out.WriteByte('\n')
		out.WriteString(c.nAccent)
		padBy(&out, lineBarWidth-1)
		fmt.Fprintf(&out, "--> %s", d.inFile)
		out.WriteString(c.reset)
	}

	// Render the footers. For simplicity we collect them into an array first.
	footers := make([][3]string, 0, len(d.notes)+len(d.help)+len(d.debug))
	for _, note := range d.notes {
		footers = append(footers, [3]string{c.bRemark, "note", note})
	}
	for _, help := range d.help {
		footers = append(footers, [3]string{c.bRemark, "help", help})
	}
	if r.ShowDebug {
		for _, debug := range d.debug {
			footers = append(footers, [3]string{c.bError, "debug", debug})
		}
	}
	for _, footer := range footers {
		out.WriteByte('\n')
		out.WriteString(c.nAccent)
		padBy(&out, lineBarWidth)
		out.WriteString(" = ")
		fmt.Fprint(&out, footer[0], footer[1], ": ", c.reset)
		for i, line := range strings.Split(footer[2], "\n") {
			if i > 0 {
				out.WriteByte('\n')
				margin := lineBarWidth + 3 + len(footer[1]) + 2
				padBy(&out, margin)
			}
			out.WriteString(line)
		}
	}

	out.WriteString(c.reset)
	return out.String()
}

// place is a span resolved against its file, if the file could be found.
type place struct {
	span       source.Span
	file       *source.File
	start, end source.Location
}

// locate resolves span using this renderer's resolver.
func (r Renderer) locate(span source.Span) place {
	p := place{span: span}
	if r.Resolver == nil {
		return p
	}
	file, ok := r.Resolver.Lookup(span.Unit)
	if !ok || file == nil || span.End() > file.Len() {
		return p
	}
	p.file = file
	p.start = file.Location(span.Start)
	p.end = file.Location(span.End())
	return p
}

// String renders this place as path:line:col, or as the raw span when the
// file is unknown.
func (p place) String() string {
	if p.file == nil {
		return p.span.Unit.Name() + p.span.String()
	}
	return fmt.Sprintf("%s:%d:%d", p.file.Path(), p.start.Line, p.start.Column)
}

type snippet struct {
	Annotation
	place place
}

// renderWindow renders the source lines touched by snippets, which must all
// be in the same resolved file, with an underline for each snippet.
func renderWindow(level Level, snippets []snippet, lineBarWidth int, c *stylesheet, out *strings.Builder) {
	snippets = slices.Clone(snippets)
	slices.SortStableFunc(snippets, func(a, b snippet) int {
		return cmp.Compare(a.place.start.Line, b.place.start.Line)
	})

	file := snippets[0].place.file
	var prev int
	for _, part := range partition(snippets, func(a, b *snippet) bool {
		return a.place.start.Line != b.place.start.Line
	}) {
		lineno := part[0].place.start.Line
		if prev != 0 && lineno > prev+1 {
			out.WriteByte('\n')
			out.WriteString(c.nAccent)
			out.WriteString("...")
			out.WriteString(c.reset)
		}
		prev = lineno

		text := file.Line(lineno)
		out.WriteByte('\n')
		out.WriteString(c.nAccent)
		fmt.Fprintf(out, "%*d |", lineBarWidth, lineno)
		out.WriteString(c.reset)
		if text != "" {
			out.WriteByte(' ')
			stringWidth(0, text, out)
		}

		for _, snip := range part {
			lineStart := snip.Span.Start - (snip.place.start.Column - 1)
			startCol := min(snip.Span.Start-lineStart, len(text))
			endCol := max(startCol, min(snip.Span.End()-lineStart, len(text)))

			prefix := stringWidth(0, text[:startCol], nil)
			width := max(1, stringWidth(0, text[:endCol], nil)-prefix)

			color, mark := c.bAccent, '-'
			if snip.Primary {
				color, mark = c.BoldForLevel(level), '^'
			}

			out.WriteByte('\n')
			out.WriteString(c.nAccent)
			padBy(out, lineBarWidth)
			out.WriteString(" | ")
			out.WriteString(c.reset)
			padBy(out, prefix)
			out.WriteString(color)
			padByRune(out, width, mark)
			if snip.Message != "" {
				out.WriteByte(' ')
				out.WriteString(snip.Message)
			}
			out.WriteString(c.reset)
		}
	}
}

// partition returns an iterator of subslices of s such that each yielded
// slice is delimited according to delimit. Also yields the index of each
// subslice.
//
// In other words, suppose delimit is !=. Then, the slice [a a a b c c] is yielded
// as the subslices [a a a], [b], and [c c].
//
// Will never yield an empty slice.
func partition[T any](s []T, delimit func(a, b *T) bool) func(func(int, []T) bool) {
	return func(yield func(int, []T) bool) {
		var start, n int
		for i := 1; i < len(s); i++ {
			if delimit(&s[i-1], &s[i]) {
				if !yield(n, s[start:i]) {
					return
				}
				start = i
				n++
			}
		}
		rest := s[start:]
		if len(rest) > 0 {
			yield(n, rest)
		}
	}
}
