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

package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatToOneline(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "", expected: ""},
		{input: "abc", expected: "abc"},
		{input: "a b", expected: "a␣b"},
		{input: "a\tb", expected: `a\tb`},
		{input: "a\nb", expected: `a\nb`},
		{input: "\r\f\v", expected: `\r\f\v`},
		{input: "\x01\x7f", expected: `\x01\x7f`},
		{input: "\xef\xbb\xbf", expected: `\xef\xbb\xbf`},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, FormatToOneline(tc.input), "Input: %q", tc.input)
	}
}

func TestQuote(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "abc", expected: `"abc"`},
		{input: `say "hi"`, expected: `"say␣\"hi\""`},
		{input: `a\b`, expected: `"a\\b"`},
		{input: "new\nline", expected: `"new\nline"`},
		{input: `"`, expected: `"\""`},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, Quote(tc.input), "Input: %q", tc.input)
	}
}
