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

package source_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/niamc/source"
)

func TestCombineRanges(t *testing.T) {
	t.Parallel()

	// "0123456789": the "3" and the "7".
	three := source.SpanOf(3, 4)
	seven := source.SpanOf(7, 8)

	combined := source.CombineRanges(three, seven)
	assert.Equal(t, 3, combined.Start)
	assert.Equal(t, 5, combined.Len)

	// Argument order does not matter, and the gap is included.
	assert.Equal(t, combined, source.CombineRanges(seven, three))

	// Nested ranges produce the outer range.
	outer := source.SpanOf(1, 9)
	assert.Equal(t, outer, source.CombineRanges(outer, three))
	assert.Equal(t, outer, source.CombineRanges(three, outer))
}

func TestSpan(t *testing.T) {
	t.Parallel()

	span := source.NewSpan(0, 2)
	start, end := span.Range()
	assert.Equal(t, 0, start)
	assert.Equal(t, 2, end)
	assert.Equal(t, "[0..2]", span.String())
	assert.Equal(t, source.Main, span.Unit)

	assert.True(t, span.Contains(1))
	assert.False(t, span.Contains(2))
	assert.Equal(t, source.NewSpan(0, 5), span.Expand(3))
	assert.Equal(t, source.NewSpan(0, 2), span, "Expand must not modify its receiver")

	assert.True(t, span.Adjacent(source.NewSpan(2, 1)))
	assert.False(t, span.Adjacent(source.NewSpan(3, 1)))
	assert.False(t, span.Adjacent(source.NewSpanIn(source.NamedUnit("x.c"), 2, 1)))
}

func TestCompare(t *testing.T) {
	t.Parallel()

	spans := []source.Span{
		source.NewSpan(9, 1),
		source.NewSpan(2, 7),
		source.NewSpan(5, 0),
		source.NewSpan(2, 1),
	}
	slices.SortStableFunc(spans, source.Compare)

	assert.Equal(t, []source.Span{
		source.NewSpan(2, 7),
		source.NewSpan(2, 1),
		source.NewSpan(5, 0),
		source.NewSpan(9, 1),
	}, spans)

	// Only the start matters.
	assert.Zero(t, source.Compare(source.NewSpan(2, 7), source.NewSpan(2, 1)))
}

func TestUnit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "main", source.Main.String())
	assert.True(t, source.NamedUnit("").IsMain())
	assert.Equal(t, "a.c", source.NamedUnit("a.c").Name())
	assert.NotEqual(t, source.Main, source.NamedUnit("main"))
	assert.Equal(t, `source.NamedUnit("a.c")`, source.NamedUnit("a.c").GoString())
}
