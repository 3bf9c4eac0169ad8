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

// Package token defines the lexical unit produced by the token-tree scanner.
//
// A Token carries a byte range into the scanned source, a set of
// classification tags, and two structural links: Pair connects matching
// open/close brackets, Parent points at the nearest enclosing open bracket.
// Links are indices into the owning token slice; the token itself never owns
// memory, which keeps it well under a cache line.
package token

import "strings"

// Tag classifies a token. A token carries a set of tags, e.g. a raw string
// literal is {Literal, String, Block}.
type Tag uint8

const (
	End Tag = iota // zero-width sentinel at source end
	Identifier
	Symbol
	Literal
	Number
	String
	Character
	Block
	Line

	tagCount
)

var tagNames = [...]string{
	End:        "end",
	Identifier: "identifier",
	Symbol:     "symbol",
	Literal:    "literal",
	Number:     "number",
	String:     "string",
	Character:  "character",
	Block:      "block",
	Line:       "line",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}

// TagSet is a fixed-size bitset over Tag. The zero value is the empty set.
type TagSet uint16

// SetOf builds a TagSet from individual tags.
func SetOf(tags ...Tag) TagSet {
	var s TagSet
	for _, t := range tags {
		s |= 1 << t
	}
	return s
}

// With returns the union of s and the given tags.
func (s TagSet) With(tags ...Tag) TagSet { return s | SetOf(tags...) }

// HasAllOf reports whether every tag of other is present in s.
func (s TagSet) HasAllOf(other TagSet) bool { return s&other == other }

// HasNoneOf reports whether no tag of other is present in s.
func (s TagSet) HasNoneOf(other TagSet) bool { return s&other == 0 }

func (s TagSet) String() string {
	var names []string
	for t := Tag(0); t < tagCount; t++ {
		if s.HasAllOf(SetOf(t)) {
			names = append(names, t.String())
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}

// None marks an absent Pair or Parent link.
const None int32 = -1

// Token is a single lexical unit. First and Last delimit the half-open byte
// range [First, Last) in the source buffer. Pair and Parent are indices into
// the token slice the token lives in, or None.
//
// The source buffer must outlive every Token referencing it.
type Token struct {
	First  int32
	Last   int32
	Tags   TagSet
	Pair   int32
	Parent int32
}

// IsEnd reports whether the token is the sentinel at source end.
func (t Token) IsEnd() bool { return t.Tags.HasAllOf(SetOf(End)) }

// IsLeaf reports whether the token is not a paired bracket.
func (t Token) IsLeaf() bool { return t.Pair == None }

// Len returns the token length in bytes.
func (t Token) Len() int { return int(t.Last - t.First) }
