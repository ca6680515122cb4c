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

package source

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"
)

// ErrNotUTF8 is returned by openers when a file's contents are not valid
// UTF-8. It is always wrapped with the path of the offending file.
var ErrNotUTF8 = errors.New("file is not valid UTF-8")

// Opener is a mechanism for opening files.
//
// Opening a file can fail with an I/O error; such errors are reported to
// the caller as-is and are never turned into lexer or parser errors.
//
// A return value of [fs.ErrNotExist] is given special treatment by the
// [Openers] adapter.
type Opener interface {
	Open(path string) (*File, error)
}

// Map implements [Opener] via lookup of in-memory file contents, keyed by
// path. Each file is placed in the unit named after its path.
//
// Missing entries result in [fs.ErrNotExist].
type Map map[string]string

// Open implements [Opener].
func (m Map) Open(path string) (*File, error) {
	text, ok := m[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return NewFile(NamedUnit(path), path, text), nil
}

// FS wraps an [fs.FS] to give it an [Opener] interface.
//
// A nil FS reads from the operating system's filesystem.
type FS struct {
	fs.FS
}

// Open implements [Opener].
func (fsys *FS) Open(path string) (*File, error) {
	var (
		file io.ReadCloser
		err  error
	)
	if fsys == nil || fsys.FS == nil {
		file, err = os.Open(path)
	} else {
		file, err = fsys.FS.Open(path)
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var buf strings.Builder
	if _, err := io.Copy(&buf, file); err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}

	return NewFileChecked(NamedUnit(path), path, buf.String())
}

// NewFileChecked is like [NewFile], but it rejects text that is not valid
// UTF-8 with an error wrapping [ErrNotUTF8].
func NewFileChecked(unit Unit, path, text string) (*File, error) {
	if !utf8.ValidString(text) {
		idx := invalidUTF8(text)
		return nil, fmt.Errorf("%s: %w (invalid byte %#x at offset %d)", path, ErrNotUTF8, text[idx], idx)
	}
	return NewFile(unit, path, text), nil
}

// Openers wraps a sequence of [Opener]s.
//
// When calling Open, it calls each Opener in sequence until one does not return
// [fs.ErrNotExist].
type Openers []Opener

// Open implements [Opener].
func (o Openers) Open(path string) (*File, error) {
	for _, opener := range o {
		file, err := opener.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return file, err
	}
	return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
}

// invalidUTF8 returns the offset of the first byte in s that is not part of a
// valid UTF-8 sequence.
func invalidUTF8(s string) int {
	for i := 0; i < len(s); {
		r, n := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && n == 1 {
			return i
		}
		i += n
	}
	return len(s)
}
