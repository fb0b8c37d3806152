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

// Package fas implements feedback arc set heuristics. A feedback arc set of
// a digraph is an edge set whose removal leaves the graph acyclic; both
// solvers here derive one from a vertex ordering by taking all leftward arcs.
package fas

import (
	"fmt"

	"github.com/pacekit/arcbreak/graph"
)

// Solver computes a feedback arc set of g.
type Solver interface {
	Name() string
	Solve(g *graph.Digraph) []graph.Edge
}

// ByName returns the solver registered under name.
func ByName(name string) (Solver, error) {
	switch name {
	case "greedy", "":
		return Greedy{}, nil
	case "dc", "divide-and-conquer":
		return DivideAndConquer{}, nil
	}
	return nil, fmt.Errorf("unknown algorithm %q (want greedy or dc)", name)
}

// LeftwardEdges returns all arcs (u, v) whose head precedes its tail in
// order, plus every self-loop: no ordering can break a self-loop, so each one
// belongs to every feedback arc set. Removing the result leaves only forward
// arcs, so the rest is acyclic.
func LeftwardEdges(g *graph.Digraph, order []graph.VertexID) []graph.Edge {
	pos := make(map[graph.VertexID]int, len(order))
	for i, v := range order {
		pos[v] = i
	}
	var out []graph.Edge
	for _, v := range order {
		for _, e := range g.Edges(v, graph.Outbound) {
			if e.To == v {
				out = append(out, e)
				continue
			}
			if p, ok := pos[e.To]; ok && p < pos[v] {
				out = append(out, e)
			}
		}
	}
	return out
}

// Remove returns a copy of g with the given edges deleted.
func Remove(g *graph.Digraph, edges []graph.Edge) *graph.Digraph {
	out := g.Clone()
	for _, e := range edges {
		out.RemoveEdge(e)
	}
	return out
}

// Verify reports whether edges is a feedback arc set of g, i.e. whether
// deleting them leaves g acyclic.
func Verify(g *graph.Digraph, edges []graph.Edge) bool {
	return !Remove(g, edges).IsCyclic()
}
