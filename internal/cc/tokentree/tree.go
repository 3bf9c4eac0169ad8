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

// Package tokentree turns C++ source bytes into a flat token array
// augmented with bracket-pair links and a parent tree.
//
// Construction is four single passes: the start-of-line index is built
// first in a pass of its own (the scanner does not build it), the scanner
// emits the tokens, the pair builder links matching brackets, the tree
// builder links every token to its nearest enclosing open bracket.
// After Parse the tree is immutable.
package tokentree

import (
	"github.com/cjxgm/cctt/internal/cc/token"
)

// Tree owns the token slice and the line index. Tokens reference the
// source buffer by byte offsets; the buffer must not be mutated while the
// tree is in use.
type Tree struct {
	Source []byte
	Tokens []token.Token
	lines  []int32
}

// Parse scans source and builds the pair links and the parent tree.
func Parse(source []byte) (*Tree, error) {
	lines := buildLineIndex(source)
	s := scanner{source: source, lines: lines, tokens: make([]token.Token, 0, estimateTokenCount(source))}
	if err := s.scan(); err != nil {
		return nil, err
	}
	if err := buildPairs(source, s.tokens, lines); err != nil {
		return nil, err
	}
	buildParents(s.tokens)
	return &Tree{Source: source, Tokens: s.tokens, lines: lines}, nil
}

func estimateTokenCount(source []byte) int {
	const leastTokenCount = 1024
	const lengthCountRatio = 4
	if n := len(source) / lengthCountRatio; n > leastTokenCount {
		return n
	}
	return leastTokenCount
}

// buildParents links every token to its nearest enclosing open bracket.
// Single forward pass with a stack seeded with the top-level sentinel.
func buildParents(tokens []token.Token) {
	stack := []int32{token.None}
	for i := range tokens {
		tk := &tokens[i]
		switch {
		case tk.Pair == token.None:
			tk.Parent = stack[len(stack)-1]
		case tk.Pair > int32(i): // open bracket
			tk.Parent = stack[len(stack)-1]
			stack = append(stack, int32(i))
		default: // close bracket
			stack = stack[:len(stack)-1]
			tk.Parent = stack[len(stack)-1]
		}
	}
}

// End returns the index of the end sentinel, which is also the number of
// real tokens.
func (t *Tree) End() int { return len(t.Tokens) - 1 }

// Text returns the source text of token i.
func (t *Tree) Text(i int) string {
	tk := t.Tokens[i]
	return string(t.Source[tk.First:tk.Last])
}

// Next returns the index just past token i, skipping over the whole block
// when i is an open bracket.
func (t *Tree) Next(i int) int {
	if tk := t.Tokens[i]; tk.Pair > int32(i) {
		return int(tk.Pair) + 1
	}
	return i + 1
}

// Child returns the index of the first token inside the block opened at i,
// or -1 when i is not an open bracket or the block is empty.
func (t *Tree) Child(i int) int {
	tk := t.Tokens[i]
	if tk.Pair <= int32(i) {
		return -1
	}
	if tk.Pair == int32(i)+1 {
		return -1
	}
	return i + 1
}

// Is reports whether token i has all the given tags and exactly the given
// source text. Out-of-range indices report false.
func (t *Tree) Is(i int, text string, tags ...token.Tag) bool {
	if i < 0 || i >= len(t.Tokens) {
		return false
	}
	tk := t.Tokens[i]
	if !tk.Tags.HasAllOf(token.SetOf(tags...)) {
		return false
	}
	if tk.Len() != len(text) {
		return false
	}
	return string(t.Source[tk.First:tk.Last]) == text
}

// HasTags reports whether token i carries all the given tags.
func (t *Tree) HasTags(i int, tags ...token.Tag) bool {
	if i < 0 || i >= len(t.Tokens) {
		return false
	}
	return t.Tokens[i].Tags.HasAllOf(token.SetOf(tags...))
}

// Location maps a byte offset into the source to its line:column.
func (t *Tree) Location(offset int32) Location { return locate(t.lines, offset) }

// LocationOf returns the line:column of the start of token i.
func (t *Tree) LocationOf(i int) Location { return t.Location(t.Tokens[i].First) }
