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

// Package source provides the source buffer and span types shared by every
// stage of the front end.
//
// [File] is the text of one compiled unit plus an index of its newlines, which
// is used to turn byte offsets into the line and column numbers shown to
// users. [Span] is a byte range within some unit; spans carry a [Unit] tag
// rather than a pointer to their [File], so they stay small, comparable values
// and a [Resolver] is needed to turn them back into text. [Opener] is a common
// interface for loading [File]s.
package source
