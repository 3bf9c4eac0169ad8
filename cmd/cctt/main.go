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

// cctt locates CCTT_INTROSPECT-marked declarations in C++ sources and
// dumps what it finds. Arguments are file paths or doublestar glob
// patterns; with no arguments the source is read from stdin.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/cjxgm/cctt/internal/cc/introspect"
	"github.com/cjxgm/cctt/internal/cc/pretty"
	"github.com/cjxgm/cctt/internal/cc/tokentree"
	"github.com/cjxgm/cctt/internal/collections"
	"github.com/cjxgm/cctt/internal/sourcefile"
	"github.com/cjxgm/cctt/internal/style"
)

var (
	printTree  = flag.Bool("pretty", false, "print the token tree instead of the introspection report")
	printCount = flag.Bool("count", false, "print the token count only")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("cctt: ")
	flag.Parse()

	paths, err := expandArgs(flag.Args())
	if err != nil {
		log.Fatal(err)
	}

	failed := false
	if len(paths) == 0 {
		source, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal(err)
		}
		failed = !process("<stdin>", source)
	}
	for _, path := range paths {
		source, err := sourcefile.Slurp(path)
		if err != nil {
			log.Print(err)
			failed = true
			continue
		}
		if !process(path, source) {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// process runs the selected mode over one source and reports any error to
// stderr. Returns false on failure.
func process(path string, source []byte) bool {
	if err := run(path, source); err != nil {
		fmt.Fprintf(os.Stderr, "%sError%s parsing %s%s%s at %v\n",
			style.Error, style.Normal, style.Path, path, style.Normal, err)
		return false
	}
	return true
}

func run(path string, source []byte) error {
	tree, err := tokentree.Parse(source)
	if err != nil {
		return err
	}

	switch {
	case *printCount:
		fmt.Printf("%s: token count = %d\n", path, tree.End())
		return nil
	case *printTree:
		return pretty.Fprint(os.Stdout, tree)
	default:
		return introspect.Introspect(tree, introspect.NewDumper(os.Stdout, tree))
	}
}

// expandArgs resolves glob patterns and removes duplicates while keeping
// the command-line order.
func expandArgs(args []string) ([]string, error) {
	var paths []string
	seen := collections.Set[string]{}
	for _, arg := range args {
		matches := []string{arg}
		if strings.ContainsAny(arg, "*?[{") {
			var err error
			matches, err = doublestar.FilepathGlob(arg)
			if err != nil {
				return nil, fmt.Errorf("bad pattern %q: %v", arg, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("pattern %q matched no files", arg)
			}
		}
		for _, path := range matches {
			if seen.Contains(path) {
				continue
			}
			seen.Add(path)
			paths = append(paths, path)
		}
	}
	return paths, nil
}
