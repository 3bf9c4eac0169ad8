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

// Package pretty renders a token tree one block per line, breadth first.
// Nested blocks print as a link made of the open bracket, the index of the
// block's first token, and the close bracket; the linked block is printed
// on its own later line. Empty blocks print inline.
package pretty

import (
	"fmt"
	"io"

	"github.com/cjxgm/cctt/internal/cc/tokentree"
	"github.com/cjxgm/cctt/internal/style"
	"github.com/cjxgm/cctt/internal/text"
)

type block struct {
	first, last int
	link        string
}

// Fprint writes the whole tree to w.
func Fprint(w io.Writer, tree *tokentree.Tree) error {
	root := block{
		first: 0,
		last:  tree.End(),
		link:  style.Link + "*0*" + style.Normal,
	}

	queue := []block{root}
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]

		if _, err := fmt.Fprintf(w, "%s:", b.link); err != nil {
			return err
		}

		for p := b.first; p < b.last; p = tree.Next(p) {
			tk := tree.Tokens[p]
			if tk.IsLeaf() {
				if _, err := fmt.Fprintf(w, " %s", text.FormatToOneline(tree.Text(p))); err != nil {
					return err
				}
				continue
			}

			open, close := tree.Text(p), tree.Text(int(tk.Pair))
			if child := tree.Child(p); child < 0 {
				if _, err := fmt.Fprintf(w, " %s%s%s%s", style.Block, open, close, style.Normal); err != nil {
					return err
				}
			} else {
				link := fmt.Sprintf("%s%s%d%s%s", style.Link, open, child, close, style.Normal)
				queue = append(queue, block{first: child, last: int(tk.Pair), link: link})
				if _, err := fmt.Fprintf(w, " %s", link); err != nil {
					return err
				}
			}
		}

		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
