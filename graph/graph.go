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

// Package graph provides the directed graph store used by the feedback arc
// set heuristics. Vertices are plain uint32 ids; edges are kept as an
// adjacency map from vertex to its out-neighbors in insertion order.
package graph

import (
	"fmt"
	"sort"
)

// VertexID identifies a vertex.
type VertexID uint32

// Edge is the directed arc From -> To.
type Edge struct {
	From VertexID
	To   VertexID
}

// Direction selects which incident edges of a vertex to enumerate.
type Direction int

const (
	Outbound Direction = iota
	Inbound
)

// Digraph is a directed graph. The zero value is not usable; use New or one
// of the From* constructors.
type Digraph struct {
	adj map[VertexID][]VertexID
}

// New returns an empty directed graph.
func New() *Digraph {
	return &Digraph{adj: make(map[VertexID][]VertexID)}
}

// FromEdges builds a graph containing the given edges and their endpoints.
func FromEdges(edges []Edge) *Digraph {
	g := New()
	for _, e := range edges {
		g.AddEdge(e)
	}
	return g
}

// FromVerticesAndEdges builds a graph with the given vertex set plus the
// endpoints of the given edges. Isolated vertices survive.
func FromVerticesAndEdges(vertices []VertexID, edges []Edge) *Digraph {
	g := New()
	for _, v := range vertices {
		g.addVertex(v)
	}
	for _, e := range edges {
		g.AddEdge(e)
	}
	return g
}

// Induced returns the subgraph induced by keep: all kept vertices and every
// edge whose both endpoints are kept.
func (g *Digraph) Induced(keep []VertexID) *Digraph {
	in := make(map[VertexID]bool, len(keep))
	for _, v := range keep {
		in[v] = true
	}
	var edges []Edge
	for _, e := range g.AllEdges() {
		if in[e.From] && in[e.To] {
			edges = append(edges, e)
		}
	}
	return FromVerticesAndEdges(keep, edges)
}

// Clone returns a deep copy of g.
func (g *Digraph) Clone() *Digraph {
	out := &Digraph{adj: make(map[VertexID][]VertexID, len(g.adj))}
	for v, ns := range g.adj {
		out.adj[v] = append([]VertexID(nil), ns...)
	}
	return out
}

// Order returns the number of vertices.
func (g *Digraph) Order() int {
	return len(g.adj)
}

// Size returns the number of edges.
func (g *Digraph) Size() int {
	n := 0
	for _, ns := range g.adj {
		n += len(ns)
	}
	return n
}

// Degree returns the out-degree of u. Unknown vertices are an error.
func (g *Digraph) Degree(u VertexID) (int, error) {
	ns, ok := g.adj[u]
	if !ok {
		return 0, fmt.Errorf("unknown vertex %d", u)
	}
	return len(ns), nil
}

// Indegree returns the number of edges ending in v.
func (g *Digraph) Indegree(v VertexID) int {
	n := 0
	for _, ns := range g.adj {
		for _, w := range ns {
			if w == v {
				n++
			}
		}
	}
	return n
}

// Vertices returns all vertices in ascending id order.
func (g *Digraph) Vertices() []VertexID {
	out := make([]VertexID, 0, len(g.adj))
	for v := range g.adj {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Has reports whether v is a vertex of g.
func (g *Digraph) Has(v VertexID) bool {
	_, ok := g.adj[v]
	return ok
}

// Edges returns the incident edges of v in the given direction. Outbound
// edges come back in insertion order; inbound edges in ascending source order.
func (g *Digraph) Edges(v VertexID, d Direction) []Edge {
	switch d {
	case Outbound:
		ns := g.adj[v]
		out := make([]Edge, 0, len(ns))
		for _, w := range ns {
			out = append(out, Edge{From: v, To: w})
		}
		return out
	default:
		var out []Edge
		for _, u := range g.Vertices() {
			for _, w := range g.adj[u] {
				if w == v {
					out = append(out, Edge{From: u, To: v})
				}
			}
		}
		return out
	}
}

// AllEdges returns every edge, grouped by source in ascending vertex order.
func (g *Digraph) AllEdges() []Edge {
	var out []Edge
	for _, v := range g.Vertices() {
		out = append(out, g.Edges(v, Outbound)...)
	}
	return out
}

// Neighborhood returns the out-neighbors of v in insertion order. The
// returned slice is owned by the graph and must not be mutated.
func (g *Digraph) Neighborhood(v VertexID) []VertexID {
	return g.adj[v]
}

// HasEdge reports whether the edge (u, v) exists.
func (g *Digraph) HasEdge(u, v VertexID) bool {
	for _, w := range g.adj[u] {
		if w == v {
			return true
		}
	}
	return false
}

func (g *Digraph) addVertex(v VertexID) {
	if _, ok := g.adj[v]; !ok {
		g.adj[v] = nil
	}
}

// AddEdge inserts the directed edge e. Both endpoints are registered as
// vertices; duplicate edges are ignored.
func (g *Digraph) AddEdge(e Edge) {
	if !g.HasEdge(e.From, e.To) {
		g.adj[e.From] = append(g.adj[e.From], e.To)
	}
	g.addVertex(e.To)
}

// RemoveVertex deletes v and every edge incident to it.
func (g *Digraph) RemoveVertex(v VertexID) {
	for u, ns := range g.adj {
		for i, w := range ns {
			if w == v {
				g.adj[u] = append(ns[:i:i], ns[i+1:]...)
				break
			}
		}
	}
	delete(g.adj, v)
}

// RemoveEdge deletes e if present.
func (g *Digraph) RemoveEdge(e Edge) {
	ns := g.adj[e.From]
	for i, w := range ns {
		if w == e.To {
			g.adj[e.From] = append(ns[:i:i], ns[i+1:]...)
			return
		}
	}
}

// EdgesFromTo returns all edges starting in from and ending in to.
func (g *Digraph) EdgesFromTo(from, to map[VertexID]bool) map[Edge]bool {
	out := make(map[Edge]bool)
	for v := range from {
		for _, e := range g.Edges(v, Outbound) {
			if to[e.To] {
				out[e] = true
			}
		}
	}
	return out
}
