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
	"fmt"
	"io"
	"strings"

	"github.com/cjxgm/cctt/internal/cc/token"
	"github.com/cjxgm/cctt/internal/cc/tokentree"
	"github.com/cjxgm/cctt/internal/collections"
)

// Dumper is the reference Handler: it prints one line per event and keeps
// track of the ::-joined namespace path.
type Dumper struct {
	tree  *tokentree.Tree
	out   io.Writer
	path  string
	marks []int // path length before each entered namespace
}

var _ Handler = (*Dumper)(nil)

func NewDumper(out io.Writer, tree *tokentree.Tree) *Dumper {
	return &Dumper{tree: tree, out: out}
}

func (d *Dumper) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(d.out, format, args...)
	return err
}

func (d *Dumper) qualified(name int) string {
	return d.path + "::" + d.tree.Text(name)
}

func (d *Dumper) Empty() error  { return d.printf("Nothing interesting.\n") }
func (d *Dumper) Start() error  { return d.printf("Start processing.\n") }
func (d *Dumper) Finish() error { return d.printf("All processed.\n") }

func (d *Dumper) Abort() { d.printf("Aborted.\n") }

func (d *Dumper) AddAttributes(attribs int) error {
	open := d.tree.Tokens[attribs]
	close := d.tree.Tokens[open.Pair]
	return d.printf("  attributes: %s\n", d.tree.Source[open.First:close.Last])
}

func (d *Dumper) ClearAttributes() error {
	return d.printf("  attributes: clear\n")
}

func (d *Dumper) EnterNamespace(first, last int) error {
	var names []int
	for i := first; i < last; i++ {
		if d.tree.HasTags(i, token.Identifier) {
			names = append(names, i)
		}
	}
	d.marks = append(d.marks, len(d.path))
	d.path += "::" + strings.Join(collections.MapSlice(names, d.tree.Text), "::")
	return d.printf("  namespace %s {\n", d.path)
}

func (d *Dumper) LeaveNamespace() error {
	err := d.printf("  } // namespace %s -> ", d.path)
	if err != nil {
		return err
	}
	if n := len(d.marks); n > 0 {
		d.path = d.path[:d.marks[n-1]]
		d.marks = d.marks[:n-1]
	}
	if d.path == "" {
		return d.printf("::\n")
	}
	return d.printf("%s\n", d.path)
}

func (d *Dumper) EnterEnum(name int) error {
	return d.printf("  enum %s {\n", d.qualified(name))
}

func (d *Dumper) LeaveEnum() error {
	return d.printf("  } // enum\n")
}

func (d *Dumper) Enumerator(name int) error {
	return d.printf("      enumerator %s\n", d.tree.Text(name))
}

func (d *Dumper) IntegralConstant(name int) error {
	return d.printf("  int constant %s\n", d.qualified(name))
}

func (d *Dumper) Structure(name int) error {
	return d.printf("  struct %s\n", d.qualified(name))
}

func (d *Dumper) Parent(first, last int) error {
	words := make([]string, 0, last-first)
	for i := first; i < last; i++ {
		words = append(words, d.tree.Text(i))
	}
	return d.printf("    parent %s\n", strings.Join(words, " "))
}

func (d *Dumper) VariableOrFunction(name int) error {
	return d.printf("  var or fn %s\n", d.qualified(name))
}
