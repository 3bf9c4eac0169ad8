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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLineIndex(t *testing.T) {
	testCases := []struct {
		input    string
		expected []int32
	}{
		{input: "", expected: []int32{0}},
		{input: "ab", expected: []int32{0, 2}},
		{input: "a\nb", expected: []int32{0, 2, 3}},
		{input: "a\n", expected: []int32{0, 2}},
		{input: "\n\n", expected: []int32{0, 1, 2}},
		// \r\n counts once; a lone \r counts once
		{input: "a\r\nb", expected: []int32{0, 3, 4}},
		{input: "a\rb", expected: []int32{0, 2, 3}},
		{input: "a\rb\r\nc\nd", expected: []int32{0, 2, 5, 7, 8}},
	}

	for _, tc := range testCases {
		index := buildLineIndex([]byte(tc.input))
		assert.Equal(t, tc.expected, index, "Input: %q", tc.input)

		for i := 1; i < len(index); i++ {
			assert.Less(t, index[i-1], index[i], "Input: %q", tc.input)
		}
	}
}

func TestLocate(t *testing.T) {
	input := []byte("int x;\nfloat y;\r\nchar z;")
	lines := buildLineIndex(input)

	testCases := []struct {
		offset   int32
		expected Location
	}{
		{offset: 0, expected: Location{Line: 1, Column: 1}},
		{offset: 4, expected: Location{Line: 1, Column: 5}},
		{offset: 7, expected: Location{Line: 2, Column: 1}},
		{offset: 13, expected: Location{Line: 2, Column: 7}},
		{offset: 17, expected: Location{Line: 3, Column: 1}},
		{offset: int32(len(input)), expected: Location{Line: 3, Column: 8}},
	}

	for _, tc := range testCases {
		got := locate(lines, tc.offset)
		assert.Equal(t, tc.expected, got, "Offset: %d", tc.offset)
		assert.GreaterOrEqual(t, got.Line, 1, "Offset: %d", tc.offset)
		assert.GreaterOrEqual(t, got.Column, 1, "Offset: %d", tc.offset)
	}
}

func TestLocateEmptySource(t *testing.T) {
	lines := buildLineIndex(nil)
	assert.Equal(t, Location{Line: 1, Column: 1}, locate(lines, 0))
}

func TestTreeLocationOf(t *testing.T) {
	tree, err := Parse([]byte("int x;\nfloat y;"))
	require.NoError(t, err)

	// tokens: int x ; float y ;
	assert.Equal(t, Location{Line: 1, Column: 1}, tree.LocationOf(0))
	assert.Equal(t, Location{Line: 1, Column: 5}, tree.LocationOf(1))
	assert.Equal(t, Location{Line: 2, Column: 1}, tree.LocationOf(3))
	assert.Equal(t, "2:8", tree.LocationOf(5).String())
}
