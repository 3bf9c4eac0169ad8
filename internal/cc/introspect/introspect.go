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

// Package introspect walks a token tree and reports the declarations
// marked with the CCTT_INTROSPECT attribute to a Handler.
//
// The walker recognizes declaration shapes by local pattern matching: it
// is not a C++ parser. It understands namespace headings (including the
// C++17 a::b::c form), enum headings and bodies, class/struct/union
// headings with base lists and access-specifier state, and
// variable-or-function shapes including operator overloads, decltype, and
// constructor member-initializer lists.
package introspect

import (
	"github.com/cjxgm/cctt/internal/cc/token"
	"github.com/cjxgm/cctt/internal/cc/tokentree"
	"github.com/cjxgm/cctt/internal/collections"
)

// Marker is the source-level attribute identifier. Its parenthesized
// arguments are not interpreted here; they are handed to the Handler as a
// token range.
const Marker = "CCTT_INTROSPECT"

var (
	headingKeywords = collections.SetOf("namespace", "enum", "struct", "class", "union")
	baseModifiers   = collections.SetOf("virtual", "public", "private", "protected")
)

// Introspect walks the tree and drives h. When the source contains no
// attribute marker at all, h.Empty is the only call made. Otherwise the
// events are bracketed by h.Start and either h.Finish (success) or
// h.Abort (the returned error).
func Introspect(tree *tokentree.Tree, h Handler) error {
	if !hasMarker(tree) {
		return h.Empty()
	}
	w := walker{tree: tree, h: h}
	if err := w.run(); err != nil {
		h.Abort()
		return err
	}
	return h.Finish()
}

func hasMarker(tree *tokentree.Tree) bool {
	for i, end := 0, tree.End(); i < end; i++ {
		if tree.Is(i, Marker, token.Identifier) {
			return true
		}
	}
	return false
}

type walker struct {
	tree *tokentree.Tree
	h    Handler
	pos  int
}

func (w *walker) run() error {
	if err := w.h.Start(); err != nil {
		return err
	}
	if err := w.checkAllMarkers(); err != nil {
		return err
	}
	t := w.tree
	for end := t.End(); w.pos < end; {
		if t.Is(w.pos, "}", token.Symbol) {
			if err := w.h.LeaveNamespace(); err != nil {
				return err
			}
			w.pos++
			continue
		}

		if first, last, ok := w.namespaceHeading(); ok {
			if err := w.h.EnterNamespace(first, last); err != nil {
				return err
			}
			continue
		}

		matched, err := w.attributedBlockItem()
		if err != nil {
			return err
		}
		if matched {
			continue
		}

		w.pos = t.Next(w.pos)
	}
	return nil
}

// checkAllMarkers validates the placement of every attribute marker in the
// source, including markers in blocks the walk itself never descends into.
func (w *walker) checkAllMarkers() error {
	t := w.tree
	for i, end := 0, t.End(); i < end; i++ {
		if !t.Is(i, Marker, token.Identifier) {
			continue
		}
		if err := w.checkMarker(i); err != nil {
			return err
		}
	}
	return nil
}

// checkMarker ensures that the marker at the given index is followed by a
// parenthesized argument list and appears at a legal place: every
// enclosing bracket must be the brace of a named namespace, an enum or a
// class-like body.
func (w *walker) checkMarker(marker int) error {
	t := w.tree
	open := marker + 1
	if !t.Is(open, "(", token.Symbol) {
		return t.ErrorAt2(open, marker, "missing parenthesis `()`. CCTT_INTROSPECT() or CCTT_INTROSPECT(arguments) expected.")
	}

	for p := t.Tokens[marker].Parent; p != token.None; p = t.Tokens[p].Parent {
		brace := int(p)
		if !t.Is(brace, "{", token.Symbol) {
			return t.ErrorAt2(brace, marker, "introspection must be directly inside namespace/struct/class/union.")
		}
		if t.Is(brace-1, "namespace", token.Identifier) {
			return t.ErrorAt(brace-1, "anonymous namespaces cannot be introspected.")
		}
		if err := w.checkBlockHeading(brace, marker); err != nil {
			return err
		}
	}
	return nil
}

// Parse this pattern:
//
//	CCTT_INTROSPECT ( .... ) ....
//	                ^        ^
//	                |        `-- pos will be here if it succeeds.
//	                `----------- content will be this if it succeeds.
//
// If the pattern does not start here, ok is false and pos is not moved.
// The pattern appearing at an illegal place is an error.
func (w *walker) introspectAttribute() (content int, ok bool, err error) {
	t := w.tree
	if !t.Is(w.pos, Marker, token.Identifier) {
		return 0, false, nil
	}
	marker := w.pos
	if err := w.checkMarker(marker); err != nil {
		return 0, false, err
	}

	open := marker + 1
	w.pos = t.Next(open)
	return open, true, nil
}

// checkBlockHeading verifies that the block opened at brace is headed by
// one of the introspectable keywords. The heading starts right after the
// previous `;`, `{`, `}` or attribute marker; nested groups in it (base
// lists, alignas, the marker's arguments) are stepped over backwards
// through their pair links.
func (w *walker) checkBlockHeading(brace, marker int) error {
	t := w.tree
	head := -1
	for j := brace - 1; j >= 0; j-- {
		if pair := t.Tokens[j].Pair; pair != token.None && pair < int32(j) {
			j = int(pair)
			continue
		}
		if t.Is(j, ";", token.Symbol) || t.Is(j, "{", token.Symbol) || t.Is(j, "}", token.Symbol) ||
			t.Is(j, Marker, token.Identifier) {
			break
		}
		head = j
	}
	if head >= 0 && t.HasTags(head, token.Identifier) && headingKeywords.Contains(t.Text(head)) {
		return nil
	}
	return t.ErrorAt2(brace, marker, "introspection must be directly inside namespace/struct/class/union.")
}

// Parse this pattern:
//
//	namespace @name [:: @name] { ....
//	            ^              ^ ^
//	            |              | `-- pos will be here if it succeeds.
//	            |              `---- last (exclusive)
//	            `------------------- first
//
// Arbitrary repeats of ":: @name" allow the C++17 nested form.
func (w *walker) namespaceHeading() (first, last int, ok bool) {
	t := w.tree
	if !t.Is(w.pos, "namespace", token.Identifier) {
		return 0, 0, false
	}
	if !t.HasTags(w.pos+1, token.Identifier) {
		return 0, 0, false
	}

	j := w.pos + 2
	for t.Is(j, "::", token.Symbol) && t.HasTags(j+1, token.Identifier) {
		j += 2
	}
	if !t.Is(j, "{", token.Symbol) {
		return 0, 0, false
	}

	first, last = w.pos+1, j
	w.pos = j + 1
	return first, last, true
}

// attributedBlockItem consumes one or more consecutive attributes followed
// by exactly one block item. If pos is not at an attribute, it reports
// false and does not move; an attribute not followed by a block item is an
// error.
func (w *walker) attributedBlockItem() (bool, error) {
	attribs, ok, err := w.introspectAttribute()
	if err != nil || !ok {
		return false, err
	}
	if err := w.h.AddAttributes(attribs); err != nil {
		return false, err
	}
	for {
		attribs, ok, err = w.introspectAttribute()
		if err != nil {
			return false, err
		}
		if !ok {
			break
		}
		if err := w.h.AddAttributes(attribs); err != nil {
			return false, err
		}
	}

	matched, err := w.blockItem()
	if err != nil {
		return false, err
	}
	if !matched {
		return false, w.tree.ErrorAt(w.pos, "not introspectable.")
	}
	return true, w.h.ClearAttributes()
}

// blockItem parses one of the block-level items: an enum, a
// class/struct/union, or a variable-or-function declaration. On a match
// pos is moved past the item; otherwise pos stays.
func (w *walker) blockItem() (bool, error) {
	name, anonymous, matched, err := w.enumHeading()
	if err != nil {
		return false, err
	}
	if matched {
		if anonymous {
			return true, w.enumBody(w.h.IntegralConstant)
		}
		if err := w.h.EnterEnum(name); err != nil {
			return false, err
		}
		if err := w.enumBody(w.h.Enumerator); err != nil {
			return false, err
		}
		return true, w.h.LeaveEnum()
	}

	heading, matched, err := w.structHeading()
	if err != nil {
		return false, err
	}
	if matched {
		switch {
		case heading.forward:
			// ignore forward declarations
		case heading.name < 0:
			return true, w.structBody(heading.public)
		default:
			if err := w.h.Structure(heading.name); err != nil {
				return false, err
			}
			if heading.bases >= 0 {
				if err := w.structBases(heading.bases, heading.public); err != nil {
					return false, err
				}
			}
			if err := w.h.EnterNamespace(heading.name, heading.name+1); err != nil {
				return false, err
			}
			if err := w.structBody(heading.public); err != nil {
				return false, err
			}
			return true, w.h.LeaveNamespace()
		}
		return true, nil
	}

	name, matched, err = w.variableOrFunction()
	if err != nil {
		return false, err
	}
	if matched {
		if !w.tree.Is(name, "operator", token.Identifier) {
			return true, w.h.VariableOrFunction(name)
		}
		return true, nil
	}

	return false, nil
}

// Parse these patterns:
//
//	enum [struct|class] @name [: ....] { ....
//	                      ^                ^
//	                      |                `-- pos will be here on success.
//	                      `------------------- name
//
//	enum [struct|class] [: ....] { ....     (anonymous)
//
// An enum with only a declaration (a `;` before the body) is an error.
func (w *walker) enumHeading() (name int, anonymous, matched bool, err error) {
	t := w.tree
	p := w.pos
	if !t.Is(p, "enum", token.Identifier) {
		return 0, false, false, nil
	}
	p++

	if t.Is(p, "struct", token.Identifier) || t.Is(p, "class", token.Identifier) {
		p++
	}

	name = -1
	if t.HasTags(p, token.Identifier) {
		name = p
		p++
	}

	if t.Is(p, ":", token.Symbol) {
		p++
		for end := t.End(); p < end; p = t.Next(p) {
			if t.Is(p, "{", token.Symbol) {
				break
			}
			if t.Is(p, ";", token.Symbol) {
				return 0, false, false, t.ErrorAt(p, "enum declaration cannot be introspected.")
			}
		}
	}

	if !t.Is(p, "{", token.Symbol) {
		return 0, false, false, t.ErrorAt(p, "failed to introspect enum.")
	}

	w.pos = p + 1
	return name, name < 0, true, nil
}

// enumBody reports each enumerator between pos and the closing brace via
// report, honoring nested attributes that attach to a single enumerator.
func (w *walker) enumBody(report func(int) error) error {
	t := w.tree
	for !t.Is(w.pos, "}", token.Symbol) {
		attribs, ok, err := w.introspectAttribute()
		if err != nil {
			return err
		}
		if !ok {
			if err := w.enumerator(report); err != nil {
				return err
			}
			continue
		}

		if err := w.h.AddAttributes(attribs); err != nil {
			return err
		}
		for {
			attribs, ok, err = w.introspectAttribute()
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			if err := w.h.AddAttributes(attribs); err != nil {
				return err
			}
		}
		if err := w.enumerator(report); err != nil {
			return err
		}
		if err := w.h.ClearAttributes(); err != nil {
			return err
		}
	}
	w.pos++
	return nil
}

// enumerator reports the name at pos and skips to just past the next
// top-level comma, or to the closing brace.
func (w *walker) enumerator(report func(int) error) error {
	t := w.tree
	if !t.HasTags(w.pos, token.Identifier) {
		return t.ErrorAt(w.pos, "unrecognized enum item.")
	}
	if err := report(w.pos); err != nil {
		return err
	}
	w.pos++

	for {
		if t.Is(w.pos, ",", token.Symbol) {
			w.pos++
			return nil
		}
		if t.Is(w.pos, "}", token.Symbol) {
			return nil
		}
		w.pos = t.Next(w.pos)
	}
}

type structHeading struct {
	name    int  // token index, or -1 when anonymous
	public  bool // default member visibility
	bases   int  // first token of the base list, or -1
	forward bool // only a declaration, no body
}

// Parse these patterns:
//
//	[struct|class|union] ... @name [final] [: ....] { ....
//	[struct|class|union] ... [final] [: ....] { ....          (anonymous)
//	[struct|class|union] ... [@name] [final] [: ....] ;       (forward)
//
// "alignas(...)" and bracketed attribute groups after the keyword are
// stepped over. Default visibility is public except for `class`.
func (w *walker) structHeading() (structHeading, bool, error) {
	t := w.tree
	p := w.pos
	h := structHeading{name: -1, bases: -1}

	if !t.Is(p, "struct", token.Identifier) && !t.Is(p, "class", token.Identifier) && !t.Is(p, "union", token.Identifier) {
		return h, false, nil
	}
	kind := p
	h.public = t.Text(p) != "class"
	p++
	for !t.Tokens[p].IsEnd() && (t.Tokens[p].Pair != token.None || t.Is(p, "alignas", token.Identifier)) {
		p = t.Next(p)
	}

	if t.HasTags(p, token.Identifier) {
		h.name = p
		p++
	}

	if t.Is(p, "final", token.Identifier) {
		p++
	}

	if t.Is(p, ":", token.Symbol) {
		p++
		h.bases = p
		for end := t.End(); p < end; p = t.Next(p) {
			if t.Is(p, "{", token.Symbol) || t.Is(p, ";", token.Symbol) {
				break
			}
		}
	}

	if t.Is(p, ";", token.Symbol) {
		h.forward = true
		w.pos = p + 1
		return h, true, nil
	}

	if !t.Is(p, "{", token.Symbol) {
		return h, false, t.ErrorAt2(kind, p, "failed to introspect item.")
	}

	w.pos = p + 1
	return h, true, nil
}

// Parse this pattern, emitting Parent for every publicly visible base:
//
//	[virtual|public|private|protected]* .... [, [virtual|...]* ....] {
//
// Visibility starts at the class default; each leading modifier updates
// it for the one base it precedes.
func (w *walker) structBases(p int, defaultPublic bool) error {
	t := w.tree
	for cont := true; cont; {
		isPublic := defaultPublic
		for t.HasTags(p, token.Identifier) && baseModifiers.Contains(t.Text(p)) {
			switch t.Text(p) {
			case "public":
				isPublic = true
			case "private", "protected":
				isPublic = false
			}
			p++
		}

		first := p
		for {
			if t.Is(p, ",", token.Symbol) {
				break
			}
			if t.Is(p, "{", token.Symbol) {
				cont = false
				break
			}
			p = t.Next(p)
		}

		if isPublic {
			if err := w.h.Parent(first, p); err != nil {
				return err
			}
		}
		p++
	}
	return nil
}

// skipAfterPublic skips items until a `public :` section begins or the
// body ends; pos lands just past the `:` or on the closing brace.
func (w *walker) skipAfterPublic() {
	t := w.tree
	for ; ; w.pos = t.Next(w.pos) {
		if t.Is(w.pos, "}", token.Symbol) || t.Tokens[w.pos].IsEnd() {
			return
		}
		if t.Is(w.pos, "public", token.Identifier) && t.Is(w.pos+1, ":", token.Symbol) {
			w.pos += 2
			return
		}
	}
}

// structBody parses the members between pos and the closing brace,
// tracking access-specifier state. Only members in public regions are
// reported. `using` and `typedef` members are skipped wholesale.
func (w *walker) structBody(public bool) error {
	t := w.tree
	if !public {
		w.skipAfterPublic()
	}

	for {
		if (t.Is(w.pos, "private", token.Identifier) || t.Is(w.pos, "protected", token.Identifier)) && t.Is(w.pos+1, ":", token.Symbol) {
			w.pos += 2
			w.skipAfterPublic()
		}

		if t.Is(w.pos, "using", token.Identifier) || t.Is(w.pos, "typedef", token.Identifier) {
			for !t.Is(w.pos, ";", token.Symbol) && !t.Is(w.pos, "}", token.Symbol) {
				w.pos = t.Next(w.pos)
			}
		}

		if t.Is(w.pos, "}", token.Symbol) {
			break
		}

		matched, err := w.attributedBlockItem()
		if err != nil {
			return err
		}
		if matched {
			continue
		}

		matched, err = w.blockItem()
		if err != nil {
			return err
		}
		if matched {
			continue
		}

		w.pos = t.Next(w.pos)
	}
	w.pos++
	return nil
}

// Parse these patterns:
//
//	identifier .... name { .... } .... [; | , | { .... }] ....
//	identifier .... name [ .... ] .... [; | , | { .... }] ....
//	identifier .... name ( .... ) .... [; | , | { .... }] ....
//	identifier .... name = ....   .... [; | , | { .... }] ....
//	identifier .... name [; | ,]                          ....
//
// `decltype(...)` and `alignas(...)` are transparent; `operator` followed
// by a symbol captures `operator` as the name. A `:` after the declarator
// introduces a constructor member-initializer list.
func (w *walker) variableOrFunction() (int, bool, error) {
	t := w.tree
	if !t.HasTags(w.pos, token.Identifier) {
		return 0, false, nil
	}

	p := w.pos
	name := -1
	for {
		if (t.Is(p, "decltype", token.Identifier) || t.Is(p, "alignas", token.Identifier)) && t.Is(p+1, "(", token.Symbol) {
			p = t.Next(p + 1)
			continue
		}

		if t.Is(p, "operator", token.Identifier) && t.HasTags(p+1, token.Symbol) {
			name = p
			p = t.Next(p + 1)
			continue
		}

		if t.Tokens[p].IsEnd() {
			return 0, false, nil
		}
		if t.Is(p, "}", token.Symbol) {
			return 0, false, nil
		}

		if t.Is(p, ";", token.Symbol) || t.Is(p, ",", token.Symbol) ||
			t.Is(p, "{", token.Symbol) || t.Is(p, "[", token.Symbol) ||
			t.Is(p, "(", token.Symbol) || t.Is(p, "=", token.Symbol) {
			break
		}

		p = t.Next(p)
	}

	if name < 0 {
		name = p - 1
	}
	w.pos = t.Next(p)
	if t.Is(p, ";", token.Symbol) || t.Is(p, ",", token.Symbol) {
		return name, true, nil
	}

	for {
		if t.Tokens[w.pos].IsEnd() {
			return 0, false, t.ErrorAt(name, "unexpected eof.")
		}
		if t.Is(w.pos, "}", token.Symbol) {
			return 0, false, t.ErrorAt2(name, w.pos, "unexpected symbol.")
		}

		if t.Is(w.pos, ";", token.Symbol) || t.Is(w.pos, ",", token.Symbol) {
			w.pos++
			break
		}
		if t.Is(w.pos, "{", token.Symbol) {
			w.pos = t.Next(w.pos)
			break
		}

		// constructor's member initialization list
		if t.Is(w.pos, ":", token.Symbol) {
			w.pos++
			for {
				if t.Tokens[w.pos].IsEnd() {
					return 0, false, t.ErrorAt(name, "unexpected eof.")
				}
				if t.Is(w.pos, "{", token.Symbol) || t.Is(w.pos, "(", token.Symbol) || t.Is(w.pos, "...", token.Symbol) {
					w.pos = t.Next(w.pos)
					if t.Is(w.pos, ",", token.Symbol) {
						w.pos++
						continue
					}
					break
				}
				w.pos = t.Next(w.pos)
			}
			continue
		}

		w.pos = t.Next(w.pos)
	}

	return name, true, nil
}
