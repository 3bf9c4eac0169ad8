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

package introspect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cjxgm/cctt/internal/cc/tokentree"
)

func dump(t *testing.T, input string) (string, error) {
	t.Helper()
	tree, err := tokentree.Parse([]byte(input))
	require.NoError(t, err)
	var sb strings.Builder
	err = Introspect(tree, NewDumper(&sb, tree))
	return sb.String(), err
}

func TestDumperEmpty(t *testing.T) {
	out, err := dump(t, "int x;")
	require.NoError(t, err)
	assert.Equal(t, "Nothing interesting.\n", out)
}

func TestDumperEnum(t *testing.T) {
	out, err := dump(t, "namespace a { CCTT_INTROSPECT() enum E { X, Y = 10, Z }; }")
	require.NoError(t, err)

	expected := strings.Join([]string{
		"Start processing.",
		"  namespace ::a {",
		"  attributes: ()",
		"  enum ::a::E {",
		"      enumerator X",
		"      enumerator Y",
		"      enumerator Z",
		"  } // enum",
		"  attributes: clear",
		"  } // namespace ::a -> ::",
		"All processed.",
		"",
	}, "\n")
	assert.Equal(t, expected, out)
}

func TestDumperStructure(t *testing.T) {
	out, err := dump(t, "namespace a::b { CCTT_INTROSPECT(tag) struct S : public P { int x; }; }")
	require.NoError(t, err)

	expected := strings.Join([]string{
		"Start processing.",
		"  namespace ::a::b {",
		"  attributes: (tag)",
		"  struct ::a::b::S",
		"    parent P",
		"  namespace ::a::b::S {",
		"  var or fn ::a::b::S::x",
		"  } // namespace ::a::b::S -> ::a::b",
		"  attributes: clear",
		"  } // namespace ::a::b -> ::",
		"All processed.",
		"",
	}, "\n")
	assert.Equal(t, expected, out)
}

func TestDumperIntegralConstants(t *testing.T) {
	out, err := dump(t, "namespace n { CCTT_INTROSPECT() enum : int { K1, K2 = 5 }; }")
	require.NoError(t, err)

	assert.Contains(t, out, "  int constant ::n::K1\n")
	assert.Contains(t, out, "  int constant ::n::K2\n")
	assert.NotContains(t, out, "enum ::n")
}

func TestDumperAbort(t *testing.T) {
	out, err := dump(t, "namespace { CCTT_INTROSPECT() int x; }")
	require.ErrorContains(t, err, "anonymous namespaces cannot be introspected.")

	assert.Equal(t, "Start processing.\nAborted.\n", out)
}
