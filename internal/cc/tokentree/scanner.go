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
	"bytes"
	"fmt"

	"github.com/cjxgm/cctt/internal/cc/token"
)

// The scanner is deliberately sloppy. It accepts constructs the C++
// Standard forbids, because the downstream tree parser only needs balanced
// brackets and recognizable declaration shapes:
//
//   - `>` never combines into `>>` or `>=`, so `T<U<V>>` closes two
//     template openers; `<` still combines into `<<` and `<=`.
//   - `[` and `]` never combine, so `x[y[i]]` works.
//   - `$` is accepted in identifiers; "`" and "@" are accepted as symbols.
//   - numbers take digit separators and at most one interior dot, so
//     `1..2` scans as the two numbers `1.` and `.2`.
//
// Comments, preprocessor directives and whitespace produce no tokens.

const rawStringDelimiterMax = 16 // defined by the C++ Standard

var bomUTF8 = []byte{0xef, 0xbb, 0xbf}

func isWhitespace(b byte) bool {
	switch b {
	case '\x20', '\t', '\f', '\v', '\r', '\n':
		return true
	}
	return false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentFirst(b byte) bool {
	return b == '_' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentRest(b byte) bool { return isIdentFirst(b) || isDigit(b) }

// single-character symbols, including the sloppy "`" and "@"
func isSingleSymbol(b byte) bool {
	switch b {
	case '>', '(', ')', '[', ']', '{', '}', ',', '?', ';', '~', '%', '\\', '`', '@':
		return true
	}
	return false
}

// may be followed by itself or '=': ++ += && &= || |= << <=
func isDoubleOrAssignFirst(b byte) bool {
	switch b {
	case '+', '&', '|', '<':
		return true
	}
	return false
}

// may be followed by '=': == != *= ^=
func isAssignFirst(b byte) bool {
	switch b {
	case '=', '!', '*', '^':
		return true
	}
	return false
}

func isRawStringDelimiterByte(b byte) bool {
	return !isWhitespace(b) && b != ')' && b != '\\'
}

type scanner struct {
	source []byte
	lines  []int32
	pos    int
	tokens []token.Token
}

// peek returns the byte at offset from the current position, or 0 past the
// source end.
func (s *scanner) peek(offset int) byte {
	if i := s.pos + offset; i < len(s.source) {
		return s.source[i]
	}
	return 0
}

func (s *scanner) commit(first int, tags token.TagSet) {
	s.tokens = append(s.tokens, token.Token{
		First:  int32(first),
		Last:   int32(s.pos),
		Tags:   tags,
		Pair:   token.None,
		Parent: token.None,
	})
}

func (s *scanner) errorAt(first int, reason string) error {
	return errorAtSpan(s.source, s.lines, first, s.pos, reason)
}

// scan tokenizes the whole source and appends the zero-width end sentinel.
func (s *scanner) scan() error {
	if bytes.HasPrefix(s.source, bomUTF8) {
		s.pos = len(bomUTF8)
	}

	for s.pos < len(s.source) {
		first := s.pos
		b := s.source[s.pos]
		s.pos++

		switch {
		case isWhitespace(b):

		case isSingleSymbol(b):
			s.commit(first, token.SetOf(token.Symbol))

		case isDoubleOrAssignFirst(b):
			if n := s.peek(0); n == '=' || n == b {
				s.pos++
			}
			s.commit(first, token.SetOf(token.Symbol))

		case isAssignFirst(b):
			if s.peek(0) == '=' {
				s.pos++
			}
			s.commit(first, token.SetOf(token.Symbol))

		case b == ':':
			if s.peek(0) == ':' {
				s.pos++
			}
			s.commit(first, token.SetOf(token.Symbol))

		case b == '-':
			if n := s.peek(0); n == '-' || n == '=' || n == '>' {
				s.pos++
			}
			s.commit(first, token.SetOf(token.Symbol))

		case b == '.':
			if isDigit(s.peek(0)) {
				s.skipDigits()
				s.commit(first, token.SetOf(token.Literal, token.Number))
			} else {
				if s.peek(0) == '.' && s.peek(1) == '.' {
					s.pos += 2
				}
				s.commit(first, token.SetOf(token.Symbol))
			}

		case b == '#':
			s.skipToLineEnd()
			// no commit: directives are ignored

		case b == '/':
			switch s.peek(0) {
			case '/':
				s.skipToLineEnd()
				// no commit: single-line comments are ignored
			case '*':
				s.pos++
				if !s.skipPast("*/") {
					return errorOfMissingPair(s.source, s.lines, first, s.pos, "*/")
				}
				// no commit: multi-line comments are ignored
			default:
				if s.peek(0) == '=' {
					s.pos++
				}
				s.commit(first, token.SetOf(token.Symbol))
			}

		case b == '"':
			if err := s.skipQuoted(first, '"'); err != nil {
				return err
			}
			s.commit(first, token.SetOf(token.Literal, token.String, token.Line))

		case b == '\'':
			if err := s.skipQuoted(first, '\''); err != nil {
				return err
			}
			s.commit(first, token.SetOf(token.Literal, token.Character))

		case isDigit(b):
			s.skipDigits()
			if s.peek(0) == '.' {
				s.pos++
			}
			s.skipDigits()
			s.commit(first, token.SetOf(token.Literal, token.Number))

		case isIdentFirst(b):
			for isIdentRest(s.peek(0)) {
				s.pos++
			}
			// raw strings start with an identifier ending in R:
			//     R"  u8R"  uR"  UR"  LR"
			if s.peek(0) == '"' && s.source[s.pos-1] == 'R' {
				s.pos++
				if err := s.scanRawString(first); err != nil {
					return err
				}
				s.commit(first, token.SetOf(token.Literal, token.String, token.Block))
			} else {
				s.commit(first, token.SetOf(token.Identifier))
			}

		default:
			return s.errorAt(first, fmt.Sprintf("unknown character 0x%02x.", b))
		}
	}

	first := s.pos
	s.commit(first, token.SetOf(token.End))
	return nil
}

// skipDigits consumes digits and ' separators, requiring a leading digit.
func (s *scanner) skipDigits() bool {
	if !isDigit(s.peek(0)) {
		return false
	}
	s.pos++
	for {
		if b := s.peek(0); isDigit(b) || b == '\'' {
			s.pos++
			continue
		}
		return true
	}
}

// skipToLineEnd advances to the next line boundary, honoring line escapes:
// a backslash right before the newline continues the logical line. The
// newline itself is left unconsumed.
func (s *scanner) skipToLineEnd() {
	for s.pos < len(s.source) {
		switch s.source[s.pos] {
		case '\r', '\n':
			return
		case '\\':
			s.pos++
			if s.pos < len(s.source) {
				if s.source[s.pos] == '\r' {
					s.pos++
					if s.pos < len(s.source) && s.source[s.pos] == '\n' {
						s.pos++
					}
				} else {
					s.pos++
				}
			}
		default:
			s.pos++
		}
	}
}

// skipQuoted advances past the next unescaped delimiter.
func (s *scanner) skipQuoted(first int, delimiter byte) error {
	for p := s.pos; p < len(s.source); p++ {
		switch s.source[p] {
		case '\\':
			p++
		case delimiter:
			s.pos = p + 1
			return nil
		}
	}
	s.pos = len(s.source)
	return errorOfMissingPair(s.source, s.lines, first, s.pos, string(delimiter))
}

// skipPast advances just past the next occurrence of target.
func (s *scanner) skipPast(target string) bool {
	if i := bytes.Index(s.source[s.pos:], []byte(target)); i >= 0 {
		s.pos += i + len(target)
		return true
	}
	s.pos = len(s.source)
	return false
}

// scanRawString is entered with the position just past the opening quote of
// R"DELIMITER( ... )DELIMITER". It validates the user-chosen delimiter and
// advances past the whole literal.
func (s *scanner) scanRawString(first int) error {
	delimiterFirst := s.pos
	for {
		if s.pos-delimiterFirst > rawStringDelimiterMax {
			return s.errorAt(first, "raw string delimiter is too long.")
		}
		if s.pos >= len(s.source) {
			return s.errorAt(first, `raw string requires R"DELIMITER( )DELIMITER".`)
		}
		b := s.source[s.pos]
		if b == '(' {
			break
		}
		if !isRawStringDelimiterByte(b) {
			s.pos++
			return s.errorAt(first, "invalid raw string delimiter.")
		}
		s.pos++
	}

	delimiter := s.source[delimiterFirst:s.pos]
	s.pos++ // the '('

	closing := make([]byte, 0, len(delimiter)+2)
	closing = append(closing, ')')
	closing = append(closing, delimiter...)
	closing = append(closing, '"')

	if !s.skipPast(string(closing)) {
		return errorOfMissingPair(s.source, s.lines, first, s.pos, string(closing))
	}
	return nil
}
