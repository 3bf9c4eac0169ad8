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
	"fmt"

	"github.com/cjxgm/cctt/internal/cc/token"
	"github.com/cjxgm/cctt/internal/text"
)

// `<` and `>` are ambiguous: they may open and close a template argument
// list, or they may be comparison operators. A `<` still on the stack when
// a `;`, `)`, `]` or `}` arrives is presumed to be a comparison and is
// discarded; an unmatched `>` is silently ignored for the same reason.
// This accepts sloppy constructs like `x<int>=10`.

func pairedOpenOf(b byte) byte {
	switch b {
	case '>':
		return '<'
	case ')':
		return '('
	case ']':
		return '['
	case '}':
		return '{'
	}
	return 0
}

func pairedCloseOf(b byte) byte {
	switch b {
	case '<':
		return '>'
	case '(':
		return ')'
	case '[':
		return ']'
	case '{':
		return '}'
	}
	return 0
}

func isOpenSymbol(b byte) bool  { return b == '(' || b == '[' || b == '{' || b == '<' }
func isCloseSymbol(b byte) bool { return b == ')' || b == ']' || b == '}' || b == '>' }

func isDisambiguatingSymbol(b byte) bool { return b == ';' || b == ')' || b == ']' || b == '}' }

// buildPairs links matching open/close brackets by index. Single forward
// pass over the single-character symbol tokens with a stack of pending
// opens.
func buildPairs(source []byte, tokens []token.Token, lines []int32) error {
	errorAtToken := func(tk token.Token, reason string) error {
		return errorAtSpan(source, lines, int(tk.First), int(tk.Last), reason)
	}
	errorOfUnpaired := func(open, closing token.Token) error {
		return &Error{
			Location:    locate(lines, open.First),
			Snippet:     text.Quote(string(source[open.First:open.Last])),
			RefLocation: locate(lines, closing.First),
			RefSnippet:  text.Quote(string(source[closing.First:closing.Last])),
			Reason:      "unmatching pair.",
		}
	}

	symbolOf := func(i int32) byte { return source[tokens[i].First] }

	var pending []int32
	for i := range tokens {
		tk := &tokens[i]
		if tk.Tags.HasNoneOf(token.SetOf(token.Symbol)) || tk.Len() != 1 {
			continue
		}
		sym := source[tk.First]

		if isOpenSymbol(sym) {
			pending = append(pending, int32(i))
		}

		if isDisambiguatingSymbol(sym) {
			for len(pending) > 0 && symbolOf(pending[len(pending)-1]) == '<' {
				pending = pending[:len(pending)-1]
			}
		}

		if isCloseSymbol(sym) {
			if len(pending) == 0 {
				if sym == '>' {
					continue // a comparison, not a closing bracket
				}
				return errorAtToken(*tk, "excessive closing symbol.")
			}
			open := pending[len(pending)-1]
			if symbolOf(open) == pairedOpenOf(sym) {
				pending = pending[:len(pending)-1]
				tokens[open].Pair = int32(i)
				tk.Pair = open
			} else if sym != '>' {
				return errorOfUnpaired(tokens[open], *tk)
			}
		}
	}

	for len(pending) > 0 && symbolOf(pending[len(pending)-1]) == '<' {
		pending = pending[:len(pending)-1]
	}
	if len(pending) > 0 {
		open := tokens[pending[len(pending)-1]]
		missing := pairedCloseOf(source[open.First])
		return errorAtToken(open, fmt.Sprintf("missing paired %s.", text.Quote(string(missing))))
	}
	return nil
}
