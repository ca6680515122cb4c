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

package ast

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented, human-readable rendering of the tree rooted at
// node to w. It is intended for debugging and golden tests, and its format
// is not stable.
func Dump(w io.Writer, node Node) error {
	var buf strings.Builder
	dump(&buf, node, 0)
	_, err := io.WriteString(w, buf.String())
	return err
}

// DumpString is like [Dump], but returns a string.
func DumpString(node Node) string {
	var buf strings.Builder
	dump(&buf, node, 0)
	return buf.String()
}

func dump(buf *strings.Builder, node Node, depth int) {
	for range depth {
		buf.WriteString("  ")
	}

	if node == nil {
		buf.WriteString("<nil>\n")
		return
	}

	switch node := node.(type) {
	case *Program:
		buf.WriteString("Program")
	case *Function:
		fmt.Fprintf(buf, "Function %q%v", node.Name, node.NameSpan)
	case *Return:
		buf.WriteString("Return")
	case *Constant:
		fmt.Fprintf(buf, "Constant %d", node.Value)
	default:
		fmt.Fprintf(buf, "%T", node)
	}
	fmt.Fprintf(buf, " @ %v\n", node.Span())

	for _, child := range Children(node) {
		dump(buf, child, depth+1)
	}
}
