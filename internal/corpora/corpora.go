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

// Package corpora provides a mechanism for managing test corpora, i.e.,
// a collection of files that define some kind of compiler test.
package corpora

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// DefaultRefresh is the environment variable consulted when Corpus.Refresh is
// empty.
const DefaultRefresh = "NIAMC_REFRESH"

// A Corpus describes a test data corpus. This is essentially a way for doing table-driven
// tests where the "table" is in your file system.
type Corpus struct {
	// The root of the test data directory. This path is relative to the file that
	// calls [Corpus.Run].
	Root string

	// An environment variable holding a glob of test cases to refresh. Test
	// cases matching it have their output files rewritten instead of
	// compared. Defaults to [DefaultRefresh].
	Refresh string

	// The file extension (without a dot) of files which define a test case,
	// e.g. "c".
	Extension string

	// Possible outputs of the test, which are found using Outputs.Extension.
	// If the file for a particular output is missing, it is implicitly treated
	// as being expected to be empty (i.e., if the file Output[n].Extension
	// specifies does not exist, then Output[n].Compare is passed the empty string
	// as the "want" value).
	Outputs []Output

	// Test executes the test on one test case from the corpus. Returns a slice
	// of strings corresponding to the elements of Outputs.
	//
	// path is the test case's path relative to the calling test's directory,
	// with forward slashes.
	Test func(t *testing.T, path, text string) []string
}

// Output represents the output of a test case.
type Output struct {
	// The extension of the output. This is a suffix to the name of the
	// testcase's main file; so if Corpus.Extension is "c", and this is
	// "tokens.tsv", for a test "foo.c" the test runner will look for files
	// named "foo.c.tokens.tsv".
	Extension string

	// The comparison function for this output. May be nil, in which case the
	// values will be compared byte-for-byte.
	Compare Compare
}

// Compare is a comparison function between strings, used in [Output].
//
// Returns empty string if the strings match, otherwise returns an error message.
type Compare func(got, want string) string

// Run runs every test case in the corpus as a subtest of t.
func (c Corpus) Run(t *testing.T) {
	t.Helper()

	testDir := callerDir(0)
	root := filepath.Join(testDir, c.Root)
	t.Logf("corpora: searching for files in %q", root)

	// Enumerate the tests to run by globbing the filesystem.
	tests, err := doublestar.Glob(os.DirFS(root), "**/*."+c.Extension, doublestar.WithFilesOnly())
	if err != nil {
		t.Fatal("corpora: error while globbing testdata:", err)
	}
	if len(tests) == 0 {
		t.Fatalf("corpora: no *.%s files found in %q", c.Extension, root)
	}
	slices.Sort(tests)

	// Check if a refresh has been requested.
	env := c.Refresh
	if env == "" {
		env = DefaultRefresh
	}
	refresh := os.Getenv(env)
	if refresh != "" {
		if !doublestar.ValidatePattern(refresh) {
			t.Fatalf("corpora: invalid glob in %s: %q", env, refresh)
		}
		t.Logf("corpora: refreshing test data because %s=%s", env, refresh)
		t.Fail()
	}

	for _, test := range tests {
		name := filepath.ToSlash(filepath.Join(c.Root, test))
		path := filepath.Join(root, filepath.FromSlash(test))

		t.Run(name, func(t *testing.T) {
			bytes, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("corpora: error while loading input file %q: %v", path, err)
			}

			results := c.Test(t, name, string(bytes))
			if len(results) != len(c.Outputs) {
				t.Fatalf("corpora: test returned %d outputs, want %d", len(results), len(c.Outputs))
			}

			shouldRefresh := refresh != "" && doublestar.MatchUnvalidated(refresh, name)
			for i, output := range c.Outputs {
				outPath := fmt.Sprint(path, ".", output.Extension)
				if shouldRefresh {
					if err := write(outPath, results[i]); err != nil {
						t.Errorf("corpora: %v", err)
					}
					continue
				}

				want, err := os.ReadFile(outPath)
				if err != nil && !errors.Is(err, os.ErrNotExist) {
					t.Errorf("corpora: error while loading output file %q: %v", outPath, err)
					continue
				}

				cmp := output.Compare
				if cmp == nil {
					cmp = defaultCompare
				}
				if diff := cmp(results[i], string(want)); diff != "" {
					t.Errorf("output mismatch for %q:\n%s", outPath, diff)
				}
			}
		})
	}
}

// write replaces the output file at path with text; empty outputs are
// represented by a missing file.
func write(path, text string) error {
	if text == "" {
		err := os.Remove(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("error while deleting output file %q: %w", path, err)
		}
		return nil
	}
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		return fmt.Errorf("error while writing output file %q: %w", path, err)
	}
	return nil
}

func defaultCompare(got, want string) string {
	if got == want {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}

	// Colorize the diff so it's easier to read. We're looking for lines that
	// start with a - or a +.
	lines := strings.Split(diff, "\n")
	for i, s := range lines {
		switch {
		case strings.HasPrefix(s, "+"):
			lines[i] = "\033[1;92m" + s + "\033[0m"
		case strings.HasPrefix(s, "-"):
			lines[i] = "\033[1;91m" + s + "\033[0m"
		}
	}

	return strings.Join(lines, "\n")
}

func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		panic("corpora: could not determine test file's directory")
	}
	return filepath.Dir(file)
}
