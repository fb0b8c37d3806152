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

// Greedy is the Eades, Lin and Smyth greedy ordering heuristic (GR): peel
// sinks to the back and sources to the front; when neither exists, move the
// vertex maximizing outdegree-indegree to the front. The feedback arc set is
// the set of leftward arcs of the resulting sequence. Guarantees at most
// m/2 - n/6 arcs.
type Greedy struct{}

// Name implements Solver.
func (Greedy) Name() string { return "greedy" }

// Solve implements Solver.
func (Greedy) Solve(g *graph.Digraph) []graph.Edge {
	return LeftwardEdges(g, greedyOrder(g))
}

func greedyOrder(g *graph.Digraph) []graph.VertexID {
	work := g.Clone()
	var front, back []graph.VertexID

	for work.Order() > 0 {
		for {
			v, ok := pickSink(work)
			if !ok {
				break
			}
			back = append(back, v)
			work.RemoveVertex(v)
		}
		for {
			v, ok := pickSource(work)
			if !ok {
				break
			}
			front = append(front, v)
			work.RemoveVertex(v)
		}
		if work.Order() == 0 {
			break
		}
		front = append(front, pickMaxDelta(work))
		work.RemoveVertex(front[len(front)-1])
	}

	// Sinks were collected in removal order; the sequence prepends each new
	// sink, which is the reverse.
	for i, j := 0, len(back)-1; i < j; i, j = i+1, j-1 {
		back[i], back[j] = back[j], back[i]
	}
	return append(front, back...)
}

// pickSink returns the smallest vertex with no outgoing edges.
func pickSink(g *graph.Digraph) (graph.VertexID, bool) {
	for _, v := range g.Vertices() {
		if len(g.Neighborhood(v)) == 0 {
			return v, true
		}
	}
	return 0, false
}

// pickSource returns the smallest vertex with no incoming edges.
func pickSource(g *graph.Digraph) (graph.VertexID, bool) {
	for _, v := range g.Vertices() {
		if g.Indegree(v) == 0 {
			return v, true
		}
	}
	return 0, false
}

// pickMaxDelta returns the vertex maximizing outdegree-indegree, smallest id
// on ties. Caller guarantees a non-empty graph.
func pickMaxDelta(g *graph.Digraph) graph.VertexID {
	var best graph.VertexID
	bestDelta := 0
	first := true
	for _, v := range g.Vertices() {
		delta := len(g.Neighborhood(v)) - g.Indegree(v)
		if first || delta > bestDelta {
			best, bestDelta = v, delta
			first = false
		}
	}
	return best
}
