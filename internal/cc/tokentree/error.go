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

	"github.com/cjxgm/cctt/internal/text"
)

// Location is a 1-based line:column position in the scanned source.
type Location struct {
	Line, Column int
}

func (l Location) String() string { return fmt.Sprintf("%d:%d", l.Line, l.Column) }

// Error is a scanning or parsing diagnostic. It points at the offending
// source span, quoted and escaped for single-line terminal output, and may
// reference a second span (e.g. the two halves of an unmatching pair).
type Error struct {
	Location    Location
	Snippet     string // quoted offending span
	RefLocation Location
	RefSnippet  string // quoted second span, empty when absent
	Reason      string
}

func (e *Error) Error() string {
	if e.RefSnippet != "" {
		return fmt.Sprintf("%v %s and %v %s: %s", e.Location, e.Snippet, e.RefLocation, e.RefSnippet, e.Reason)
	}
	return fmt.Sprintf("%v %s: %s", e.Location, e.Snippet, e.Reason)
}

func errorAtSpan(source []byte, lines []int32, first, last int, reason string) error {
	return &Error{
		Location: locate(lines, int32(first)),
		Snippet:  text.Quote(string(source[first:last])),
		Reason:   reason,
	}
}

func errorOfMissingPair(source []byte, lines []int32, first, last int, pair string) error {
	return errorAtSpan(source, lines, first, last, fmt.Sprintf("missing paired %s.", text.Quote(pair)))
}

// ErrorAt builds a parsing error pointing at token i.
func (t *Tree) ErrorAt(i int, reason string) error {
	tk := t.Tokens[i]
	return errorAtSpan(t.Source, t.lines, int(tk.First), int(tk.Last), reason)
}

// ErrorAt2 builds a parsing error pointing at token i with a reference to
// token ref.
func (t *Tree) ErrorAt2(i, ref int, reason string) error {
	tk, rtk := t.Tokens[i], t.Tokens[ref]
	return &Error{
		Location:    t.Location(tk.First),
		Snippet:     text.Quote(string(t.Source[tk.First:tk.Last])),
		RefLocation: t.Location(rtk.First),
		RefSnippet:  text.Quote(string(t.Source[rtk.First:rtk.Last])),
		Reason:      reason,
	}
}
