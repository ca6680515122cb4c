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

package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/bufbuild/niamc/internal/corpora"
	"github.com/bufbuild/niamc/lexer"
	"github.com/bufbuild/niamc/report"
	"github.com/bufbuild/niamc/source"
)

func TestCorpus(t *testing.T) {
	t.Parallel()

	corpus := corpora.Corpus{
		Root:      "testdata",
		Extension: "c",
		Outputs: []corpora.Output{
			{Extension: "tokens.tsv"},
			{Extension: "errors.txt"},
		},
		Test: func(t *testing.T, path, text string) []string {
			file := source.NewFile(source.NamedUnit(path), path, text)
			lex := lexer.NewFile(file)

			var tokens strings.Builder
			for tok := range lex.All() {
				fmt.Fprintf(&tokens, "%v\t%v\t%q\n", tok.Kind, tok.Span, tok.Text(text))
			}

			r := new(report.Report)
			lex.ReportTo(r)
			errs, _, _ := report.Renderer{Resolver: file, Compact: true}.RenderString(r)

			return []string{tokens.String(), errs}
		},
	}

	corpus.Run(t)
}
