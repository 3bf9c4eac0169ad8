// Copyright 2025 The cctt Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tokentree

import "sort"

// buildLineIndex returns the start-of-line offsets: entry 0 is 0, entry i
// (i > 0) is the offset just after the i-th newline, and the final entry is
// len(source) as a sentinel. "\r\n" counts as one newline; a lone "\r"
// counts as one.
func buildLineIndex(source []byte) []int32 {
	index := make([]int32, 1, 64)
	index[0] = 0
	if len(source) == 0 {
		return index
	}
	for i := 0; i < len(source); i++ {
		switch source[i] {
		case '\r':
			if i+1 < len(source) && source[i+1] == '\n' {
				continue // counted at the '\n'
			}
			fallthrough
		case '\n':
			if i+1 < len(source) {
				index = append(index, int32(i+1))
			}
		}
	}
	return append(index, int32(len(source)))
}

// locate maps a byte offset to its 1-based line:column. The line is the
// index of the first line start strictly greater than the offset; the
// column counts from that line's start.
func locate(lines []int32, offset int32) Location {
	i := sort.Search(len(lines), func(k int) bool { return lines[k] > offset })
	if i == len(lines) {
		i-- // offset at source end folds into the last line
	}
	if i == 0 {
		i = 1
	}
	return Location{Line: i, Column: int(offset-lines[i-1]) + 1}
}
