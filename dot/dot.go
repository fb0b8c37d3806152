// Copyright 2025 Arcbreak Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package dot renders digraphs in Graphviz DOT syntax for debugging solver
// output.
package dot

import (
	"fmt"
	"io"
	"strings"

	"github.com/pacekit/arcbreak/graph"
)

// Options controls rendering.
type Options struct {
	// Name of the digraph; defaults to "g".
	Name string
	// Highlight marks edges drawn in red, e.g. a feedback arc set.
	Highlight map[graph.Edge]bool
}

// Write renders g to w. Vertices and edges come out in ascending order so
// output is deterministic.
func Write(w io.Writer, g *graph.Digraph, opts Options) error {
	name := opts.Name
	if name == "" {
		name = "g"
	}
	if _, err := fmt.Fprintf(w, "digraph %s {\n", name); err != nil {
		return err
	}
	for _, v := range g.Vertices() {
		if _, err := fmt.Fprintf(w, "  %d;\n", v); err != nil {
			return err
		}
	}
	for _, e := range g.AllEdges() {
		attr := ""
		if opts.Highlight[e] {
			attr = " [color=red]"
		}
		if _, err := fmt.Fprintf(w, "  %d -> %d%s;\n", e.From, e.To, attr); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

// String renders g with default options.
func String(g *graph.Digraph) string {
	var sb strings.Builder
	_ = Write(&sb, g, Options{})
	return sb.String()
}
