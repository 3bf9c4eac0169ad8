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

	"github.com/cjxgm/cctt/internal/cc/token"
)

func TestPairLinks(t *testing.T) {
	tree, err := Parse([]byte("f(a[i]{j})"))
	require.NoError(t, err)

	// f ( a [ i ] { j } )
	// 0 1 2 3 4 5 6 7 8 9
	expected := map[int]int32{
		0: token.None,
		1: 9, 9: 1,
		3: 5, 5: 3,
		6: 8, 8: 6,
		2: token.None, 4: token.None, 7: token.None,
	}
	for i, pair := range expected {
		assert.Equal(t, pair, tree.Tokens[i].Pair, "token %d %q", i, tree.Text(i))
	}
}

func TestPairAcceptsSloppyAngleBrackets(t *testing.T) {
	// `<` and `>` may leave the stack without pairing, so comparisons and
	// template brackets coexist.
	inputs := []string{
		"T<U<V>> x;",
		"x<int>=10;",
		"a < b;",
		"b > c;",
		"if (a < b) { }",
		"f(a > b, c < d);",
		"x < y", // still open at EOF: presumed comparison
		">",     // excessive `>`: presumed comparison
		"std::vector<std::pair<int, int>> v;",
	}
	for _, input := range inputs {
		_, err := Parse([]byte(input))
		assert.NoError(t, err, "Input: %q", input)
	}
}

func TestPairTemplateArguments(t *testing.T) {
	tree, err := Parse([]byte("T<U<V>> x;"))
	require.NoError(t, err)

	// T < U < V > > x ;
	// 0 1 2 3 4 5 6 7 8
	assert.Equal(t, int32(5), tree.Tokens[3].Pair)
	assert.Equal(t, int32(3), tree.Tokens[5].Pair)
	assert.Equal(t, int32(6), tree.Tokens[1].Pair)
	assert.Equal(t, int32(1), tree.Tokens[6].Pair)
}

func TestPairComparisonsStayUnpaired(t *testing.T) {
	tree, err := Parse([]byte("a < b; c > d;"))
	require.NoError(t, err)

	for i := range tree.Tokens {
		assert.Equal(t, token.None, tree.Tokens[i].Pair, "token %q", tree.Text(i))
	}
}

func TestPairErrors(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: ")", expected: "excessive closing symbol."},
		{input: "a)", expected: "excessive closing symbol."},
		{input: "]", expected: "excessive closing symbol."},
		{input: "f(x))", expected: "excessive closing symbol."},
		{input: "(]", expected: "unmatching pair."},
		{input: "a{b(}", expected: "unmatching pair."},
		{input: "[)", expected: "unmatching pair."},
		{input: "(", expected: `missing paired ")".`},
		{input: "{", expected: `missing paired "}".`},
		{input: "f(x", expected: `missing paired ")".`},
		{input: "namespace a {", expected: `missing paired "}".`},
	}

	for _, tc := range testCases {
		_, err := Parse([]byte(tc.input))
		require.Error(t, err, "Input: %q", tc.input)
		assert.ErrorContains(t, err, tc.expected, "Input: %q", tc.input)
	}
}

func TestPairErrorCitesBothLocations(t *testing.T) {
	_, err := Parse([]byte("(\n]"))

	var parseErr *Error
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, Location{Line: 1, Column: 1}, parseErr.Location)
	assert.Equal(t, `"("`, parseErr.Snippet)
	assert.Equal(t, Location{Line: 2, Column: 1}, parseErr.RefLocation)
	assert.Equal(t, `"]"`, parseErr.RefSnippet)
}
