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

package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/bufbuild/niamc/internal/config"
)

// styles are the colors used for status lines.
type styles struct {
	ok     *color.Color
	failed *color.Color
	path   *color.Color
	detail *color.Color
}

func newStyles(enabled bool) *styles {
	s := &styles{
		ok:     color.New(color.Bold, color.FgHiGreen),
		failed: color.New(color.Bold, color.FgHiRed),
		path:   color.New(color.Bold),
		detail: color.New(color.FgHiBlack),
	}
	for _, c := range []*color.Color{s.ok, s.failed, s.path, s.detail} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// useColor decides whether output to w should be colored under the given
// output.color mode.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}

	// Check if w is a TTY and NO_COLOR is not set.
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
