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

package graph

import "sort"

// SortByIndegreeAsc returns the vertices sorted by non-decreasing indegree,
// ties broken by ascending id.
func (g *Digraph) SortByIndegreeAsc() []VertexID {
	indeg := g.indegrees()
	out := g.Vertices()
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if indeg[a] != indeg[b] {
			return indeg[a] < indeg[b]
		}
		return a < b
	})
	return out
}

// TopoSort returns a topological ordering via Kahn's algorithm. ok is false
// when g is cyclic; the partial order then covers only the acyclic prefix.
// Ready vertices are consumed in ascending id order, so the result is stable.
func (g *Digraph) TopoSort() (order []VertexID, ok bool) {
	indeg := g.indegrees()
	var ready []VertexID
	for _, v := range g.Vertices() {
		if indeg[v] == 0 {
			ready = append(ready, v)
		}
	}
	for len(ready) > 0 {
		v := ready[0]
		ready = ready[1:]
		order = append(order, v)
		for _, w := range g.adj[v] {
			indeg[w]--
			if indeg[w] == 0 {
				// Insert keeping ascending order.
				i := sort.Search(len(ready), func(i int) bool { return ready[i] >= w })
				ready = append(ready, 0)
				copy(ready[i+1:], ready[i:])
				ready[i] = w
			}
		}
	}
	return order, len(order) == len(g.adj)
}

// MinIndegreeVertex returns the vertex with minimal indegree (smallest id on
// ties). The second return is false for the empty graph.
func (g *Digraph) MinIndegreeVertex() (VertexID, bool) {
	indeg := g.indegrees()
	first := true
	var best VertexID
	for _, v := range g.Vertices() {
		if first || indeg[v] < indeg[best] {
			best = v
			first = false
		}
	}
	return best, !first
}

func (g *Digraph) indegrees() map[VertexID]int {
	indeg := make(map[VertexID]int, len(g.adj))
	for v := range g.adj {
		indeg[v] = 0
	}
	for _, ns := range g.adj {
		for _, w := range ns {
			indeg[w]++
		}
	}
	return indeg
}
