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

import "fmt"

// Main is the unit used for a buffer that was not given a name of its own.
//
// It is the zero value of [Unit], so a zero [Span] refers to Main.
var Main Unit

// Unit identifies the compiled unit a [Span] points into.
//
// Units are comparable; two spans with equal units refer to the same [File].
type Unit struct {
	name string
}

// NamedUnit returns the unit with the given name.
//
// NamedUnit("") is [Main].
func NamedUnit(name string) Unit {
	return Unit{name: name}
}

// IsMain returns whether this is the [Main] unit.
func (u Unit) IsMain() bool {
	return u.name == ""
}

// Name returns the name of this unit; Main is named "main".
func (u Unit) Name() string {
	if u.IsMain() {
		return "main"
	}
	return u.name
}

// String implements [fmt.Stringer].
func (u Unit) String() string {
	return u.Name()
}

// GoString implements [fmt.GoStringer].
func (u Unit) GoString() string {
	if u.IsMain() {
		return "source.Main"
	}
	return fmt.Sprintf("source.NamedUnit(%q)", u.name)
}
