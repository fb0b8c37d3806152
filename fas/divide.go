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

package fas

import "github.com/pacekit/arcbreak/graph"

// DivideAndConquer is the Eades, Smyth and Lin (1989) divide-and-conquer
// ordering heuristic:
//
//	order(G)
//	    if G has no arcs then
//	        S := any vertex sequence
//	    else if G has an odd number of arcs then
//	        let v be a vertex of minimal indegree in G;
//	        remove v and all arcs incident to it from G;
//	        S1 := order(G);
//	        prepend v to S1 to form S
//	    else
//	        sort vertices of G into non-decreasing indegree order v1, ..., vn;
//	        G1 := subgraph of G induced by v1, ..., vn/2;
//	        G2 := subgraph of G induced by vn/2+1, ..., vn;
//	        S := order(G1) concatenated with order(G2)
//	    return S
//
// The feedback arc set is the set of leftward arcs of the ordering.
type DivideAndConquer struct{}

// Name implements Solver.
func (DivideAndConquer) Name() string { return "divide-and-conquer" }

// Solve implements Solver.
func (DivideAndConquer) Solve(g *graph.Digraph) []graph.Edge {
	return LeftwardEdges(g, dcOrder(g.Clone()))
}

func dcOrder(g *graph.Digraph) []graph.VertexID {
	size := g.Size()
	switch {
	case size == 0:
		return g.Vertices()
	case size%2 == 1:
		v, _ := g.MinIndegreeVertex()
		g.RemoveVertex(v)
		return append([]graph.VertexID{v}, dcOrder(g)...)
	default:
		sorted := g.SortByIndegreeAsc()
		half := len(sorted) / 2
		s1 := dcOrder(g.Induced(sorted[:half]))
		s2 := dcOrder(g.Induced(sorted[half:]))
		return append(s1, s2...)
	}
}
