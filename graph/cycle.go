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

const (
	white = 0 // unvisited
	gray  = 1 // on the current DFS path
	black = 2 // finished
)

// IsCyclic reports whether g contains a directed cycle.
func (g *Digraph) IsCyclic() bool {
	return len(g.FindCycle()) > 0
}

// FindCycle returns one directed cycle as a vertex sequence (first vertex
// repeated at the end), or nil if g is acyclic. The DFS visits vertices in
// ascending id order, so the witness is stable for a given graph.
func (g *Digraph) FindCycle() []VertexID {
	color := make(map[VertexID]int, len(g.adj))
	parent := make(map[VertexID]VertexID, len(g.adj))

	var cycleFrom, cycleTo VertexID
	found := false

	var visit func(v VertexID) bool
	visit = func(v VertexID) bool {
		color[v] = gray
		for _, w := range g.adj[v] {
			switch color[w] {
			case white:
				parent[w] = v
				if visit(w) {
					return true
				}
			case gray:
				cycleFrom, cycleTo = v, w
				found = true
				return true
			}
		}
		color[v] = black
		return false
	}

	for _, v := range g.Vertices() {
		if color[v] == white && visit(v) {
			break
		}
	}
	if !found {
		return nil
	}

	// Walk parents back from the closing edge, then reverse into forward
	// direction and close the loop.
	var path []VertexID
	for v := cycleFrom; v != cycleTo; v = parent[v] {
		path = append(path, v)
	}
	path = append(path, cycleTo)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return append(path, cycleTo)
}
