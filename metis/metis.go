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

// Package metis reads and writes directed graphs in the METIS-like input
// format of the PACE 2022 feedback arc set tracks
// (https://pacechallenge.org/2022/tracks/): a header line "n m", then line i
// (1-based) lists the out-neighbors of vertex i. Lines starting with '%' are
// comments and may appear anywhere.
package metis

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/pacekit/arcbreak/graph"
)

// Instance is a parsed PACE instance. Vertex ids are 1-based as in the file.
type Instance struct {
	VertexCount int
	EdgeCount   int
	Edges       []graph.Edge
}

// Parse reads an instance from r.
func Parse(r io.Reader) (*Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)

	inst := &Instance{}
	sawHeader := false
	vertex := 0 // 1-based id of the next content line

	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "%") {
			continue
		}
		if !sawHeader {
			if err := inst.parseHeader(line); err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNo)
			}
			sawHeader = true
			continue
		}
		vertex++
		if vertex > inst.VertexCount {
			if line == "" {
				continue
			}
			return nil, errors.Errorf("line %d: more content lines than the %d declared vertices", lineNo, inst.VertexCount)
		}
		for _, tok := range strings.Fields(line) {
			target, err := strconv.Atoi(tok)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: bad neighbor %q", lineNo, tok)
			}
			if target < 1 || target > inst.VertexCount {
				return nil, errors.Errorf("line %d: neighbor %d out of range [1, %d]", lineNo, target, inst.VertexCount)
			}
			inst.Edges = append(inst.Edges, graph.Edge{
				From: graph.VertexID(vertex),
				To:   graph.VertexID(target),
			})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read instance")
	}
	if !sawHeader {
		return nil, errors.New("empty input: missing header line")
	}
	return inst, nil
}

func (inst *Instance) parseHeader(line string) error {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return errors.Errorf("bad header %q: want \"<vertices> <edges>\"", line)
	}
	n, err := strconv.Atoi(parts[0])
	if err != nil {
		return errors.Wrapf(err, "bad vertex count %q", parts[0])
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return errors.Wrapf(err, "bad edge count %q", parts[1])
	}
	if n < 0 || m < 0 {
		return errors.Errorf("negative counts in header %q", line)
	}
	inst.VertexCount = n
	inst.EdgeCount = m
	return nil
}

// Graph materializes the instance as a Digraph, including isolated vertices.
func (inst *Instance) Graph() *graph.Digraph {
	vertices := make([]graph.VertexID, 0, inst.VertexCount)
	for v := 1; v <= inst.VertexCount; v++ {
		vertices = append(vertices, graph.VertexID(v))
	}
	return graph.FromVerticesAndEdges(vertices, inst.Edges)
}

// GraphFromReader parses r and materializes the graph.
func GraphFromReader(r io.Reader) (*graph.Digraph, error) {
	inst, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return inst.Graph(), nil
}

// GraphFromFile parses the instance file at path.
func GraphFromFile(path string) (*graph.Digraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open instance")
	}
	defer f.Close()
	g, err := GraphFromReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return g, nil
}

// Write emits g in the instance format. Vertices must be numbered 1..n; the
// header is derived from the graph.
func Write(w io.Writer, g *graph.Digraph) error {
	vs := g.Vertices()
	n := len(vs)
	for i, v := range vs {
		if int(v) != i+1 {
			return errors.Errorf("graph is not 1..n numbered: vertex %d at position %d", v, i+1)
		}
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", n, g.Size())
	for _, v := range vs {
		ns := g.Neighborhood(v)
		for i, t := range ns {
			if i > 0 {
				bw.WriteByte(' ')
			}
			fmt.Fprintf(bw, "%d", t)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
