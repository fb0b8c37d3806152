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

import (
	"fmt"
	"math/rand"
)

// Random returns a G(n, p) digraph: every ordered pair (u, v), u != v, gets
// an edge with probability p.
func Random(n int, p float64, rng *rand.Rand) (*Digraph, error) {
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("edge probability %v out of [0, 1]", p)
	}
	g := New()
	for u := 0; u < n; u++ {
		g.addVertex(VertexID(u))
		for v := 0; v < n; v++ {
			if u == v {
				continue
			}
			if rng.Float64() < p {
				g.AddEdge(Edge{From: VertexID(u), To: VertexID(v)})
			}
		}
	}
	return g, nil
}

// Complete returns the acyclic orientation of a clique on n vertices: every
// edge (u, v) with u < v.
func Complete(n int) *Digraph {
	g := New()
	for u := 0; u < n; u++ {
		g.addVertex(VertexID(u))
		for v := u + 1; v < n; v++ {
			g.AddEdge(Edge{From: VertexID(u), To: VertexID(v)})
		}
	}
	return g
}

// RandomVertex returns a uniformly chosen vertex of g.
func (g *Digraph) RandomVertex(rng *rand.Rand) (VertexID, bool) {
	vs := g.Vertices()
	if len(vs) == 0 {
		return 0, false
	}
	return vs[rng.Intn(len(vs))], true
}
