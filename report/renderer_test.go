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

package report_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/niamc/report"
	"github.com/bufbuild/niamc/source"
)

var ansiEscapePat = regexp.MustCompile("\033\\[([\\d;]*)m")

// ansiToMarkup converts ANSI escapes we care about in `text` into markup that is hopefully
// easier for humans to parse.
func ansiToMarkup(text string) string {
	return ansiEscapePat.ReplaceAllStringFunc(text, func(needle string) string {
		// We only handle a small subset of things we know.
		code := ansiEscapePat.FindStringSubmatch(needle)[1]

		colors := []string{"blk", "red", "grn", "ylw", "blu", "mta", "cyn", "wht"}
		if code == "0" {
			return "⟨reset⟩"
		}

		parts := strings.SplitN(code, ";", 2)
		var name strings.Builder
		if parts[0] == "1" {
			name.WriteString("b.")
		}
		name.WriteString(colors[parts[1][1]-'0'])
		return "⟨" + name.String() + "⟩"
	})
}

func missingSemicolon() (*report.Report, source.Resolver) {
	file := source.NewFile(source.NamedUnit("a.c"), "a.c", "int main(void) { return 0 }\n")

	r := new(report.Report)
	r.Errorf("unexpected `}`, expected `;`").Apply(
		report.Snippetf(file.Span(26, 1), "expected `;`"),
	)
	return r, source.Files{file}
}

func TestRenderMissingSemicolon(t *testing.T) {
	t.Parallel()

	r, files := missingSemicolon()

	text, errors, warnings := report.Renderer{Resolver: files, Compact: true}.RenderString(r)
	assert.Equal(t, "error: a.c:1:27: unexpected `}`, expected `;`\n", text)
	assert.Equal(t, 1, errors)
	assert.Zero(t, warnings)

	text, _, _ = report.Renderer{Resolver: files}.RenderString(r)
	assert.Equal(t, ""+
		"error: unexpected `}`, expected `;`\n"+
		"  --> a.c:1:27\n"+
		"   |\n"+
		" 1 | int main(void) { return 0 }\n"+
		"   | "+strings.Repeat(" ", 26)+"^ expected `;`\n"+
		"\n"+
		"encountered 1 error\n",
		text,
	)
}

func TestRenderColor(t *testing.T) {
	t.Parallel()

	r, files := missingSemicolon()
	text, _, _ := report.Renderer{Resolver: files, Colorize: true}.RenderString(r)
	t.Log("\n" + text)

	text = ansiToMarkup(text)
	assert.True(t, strings.HasPrefix(text, "⟨b.red⟩error: unexpected `}`, expected `;`⟨reset⟩\n"), text)
	assert.Contains(t, text, "⟨blu⟩ 1 |⟨reset⟩ int main(void) { return 0 }\n")
	assert.Contains(t, text, "⟨b.red⟩^ expected `;`⟨reset⟩")
	assert.Contains(t, text, "⟨b.red⟩encountered 1 error⟨reset⟩\n")

	text, _, _ = report.Renderer{Resolver: files, Colorize: true, Compact: true}.RenderString(r)
	assert.Equal(t, "⟨red⟩error: a.c:1:27: unexpected `}`, expected `;`⟨reset⟩\n", ansiToMarkup(text))
}

func TestRenderFooters(t *testing.T) {
	t.Parallel()

	r := new(report.Report)
	r.Errorf("could not open file").Apply(
		report.InFile("x.c"),
		report.Note("first line\nsecond line"),
		report.Help("check the path"),
		report.Debug("errno 2"),
	)

	text, _, _ := report.Renderer{}.RenderString(r)
	assert.Equal(t, ""+
		"error: could not open file\n"+
		" --> x.c\n"+
		"   = note: first line\n"+
		"           second line\n"+
		"   = help: check the path\n"+
		"\n"+
		"encountered 1 error\n",
		text,
	)

	text, _, _ = report.Renderer{ShowDebug: true}.RenderString(r)
	assert.Contains(t, text, "   = debug: errno 2\n")

	text, _, _ = report.Renderer{Compact: true}.RenderString(r)
	assert.Equal(t, "error: x.c: could not open file\n", text)
}

func TestRenderWindow(t *testing.T) {
	t.Parallel()

	file := source.NewFile(source.Main, "t.c", "a\nb\nc\nd\n")
	r := new(report.Report)
	r.Errorf("boom").Apply(
		report.Snippetf(file.Span(6, 1), "second"),
		report.Snippetf(file.Span(0, 1), "first"),
	)
	r.Warnf("at the end").Apply(report.Snippet(file.EOF()))

	text, errors, warnings := report.Renderer{Resolver: file}.RenderString(r)
	assert.Equal(t, 1, errors)
	assert.Equal(t, 1, warnings)
	assert.Equal(t, ""+
		"error: boom\n"+
		"  --> t.c:4:1\n"+
		"   |\n"+
		" 1 | a\n"+
		"   | - first\n"+
		"...\n"+
		" 4 | d\n"+
		"   | ^ second\n"+
		"\n"+
		"warning: at the end\n"+
		"  --> t.c:5:1\n"+
		"   |\n"+
		" 5 |\n"+
		"   | ^\n"+
		"\n"+
		"encountered 1 error and 1 warning\n",
		text,
	)
}

func TestRenderTabs(t *testing.T) {
	t.Parallel()

	file := source.NewFile(source.Main, "tab.c", "\tint é = 1;\n")
	r := new(report.Report)
	// Covers the two-byte é.
	r.Errorf("bad name").Apply(report.Snippet(file.Span(5, 2)))

	text, _, _ := report.Renderer{Resolver: file, Compact: false}.RenderString(r)
	assert.Contains(t, text, " 1 |     int é = 1;\n")
	assert.Contains(t, text, "   | "+strings.Repeat(" ", 8)+"^\n")
}

func TestRenderUnresolved(t *testing.T) {
	t.Parallel()

	r := new(report.Report)
	r.Errorf("lost").Apply(report.Snippet(source.NewSpanIn(source.NamedUnit("gone.c"), 3, 2)))
	r.Remarkf("quiet")

	text, _, _ := report.Renderer{Compact: true}.RenderString(r)
	assert.Equal(t, "error: gone.c[3..5]: lost\n", text)

	text, _, _ = report.Renderer{Compact: true, ShowRemarks: true}.RenderString(r)
	assert.Equal(t, "remark: quiet\nerror: gone.c[3..5]: lost\n", text)

	text, _, _ = report.Renderer{}.RenderString(r)
	assert.Equal(t, "error: lost\n  --> gone.c[3..5]\n\nencountered 1 error\n", text)
}
