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
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/niamc/source"
)

func TestOpeners(t *testing.T) {
	t.Parallel()

	mem := source.Map{"a.c": "int main(void) { return 1; }"}
	disk := &source.FS{FS: fstest.MapFS{
		"a.c":   {Data: []byte("shadowed")},
		"b.c":   {Data: []byte("int main(void) { return 2; }")},
		"bad.c": {Data: []byte("int \xff main")},
	}}
	openers := source.Openers{mem, disk}

	a, err := openers.Open("a.c")
	require.NoError(t, err)
	assert.Equal(t, "int main(void) { return 1; }", a.Text())
	assert.Equal(t, source.NamedUnit("a.c"), a.Unit())

	b, err := openers.Open("b.c")
	require.NoError(t, err)
	assert.Equal(t, "b.c", b.Path())
	assert.Equal(t, source.NamedUnit("b.c"), b.Unit())

	_, err = openers.Open("c.c")
	require.ErrorIs(t, err, fs.ErrNotExist)

	_, err = openers.Open("bad.c")
	require.ErrorIs(t, err, source.ErrNotUTF8)
	assert.Contains(t, err.Error(), "offset 4")
}

func TestNewFileChecked(t *testing.T) {
	t.Parallel()

	file, err := source.NewFileChecked(source.Main, "ok.c", "/* café */")
	require.NoError(t, err)
	assert.Equal(t, 11, file.Len())

	_, err = source.NewFileChecked(source.Main, "bad.c", "\xc3")
	require.ErrorIs(t, err, source.ErrNotUTF8)
}
