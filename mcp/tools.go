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

package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"

	"github.com/pacekit/arcbreak/fas"
	"github.com/pacekit/arcbreak/graph"
	"github.com/pacekit/arcbreak/internal/log"
	"github.com/pacekit/arcbreak/internal/utils"
	"github.com/pacekit/arcbreak/metis"
)

const (
	ToolListGraphs   = "list_graphs"
	DescListGraphs   = "list all loaded graph instances"
	ToolGetGraphInfo = "get_graph_info"
	DescGetGraphInfo = "get order, size and cyclicity of a graph instance"
	ToolSolveFAS     = "solve_fas"
	DescSolveFAS     = "compute a feedback arc set of a graph instance with the given algorithm (greedy or dc)"
	ToolVerifyFAS    = "verify_fas"
	DescVerifyFAS    = "check whether an edge set is a feedback arc set of a graph instance"
)

var (
	SchemaListGraphs   = GetJSONSchema(ListGraphsReq{})
	SchemaGetGraphInfo = GetJSONSchema(GetGraphInfoReq{})
	SchemaSolveFAS     = GetJSONSchema(SolveFASReq{})
	SchemaVerifyFAS    = GetJSONSchema(VerifyFASReq{})
)

// GetJSONSchema reflects the JSON schema of a request type.
func GetJSONSchema(v interface{}) json.RawMessage {
	r := &jsonschema.Reflector{DoNotReference: true}
	data, err := json.Marshal(r.Reflect(v))
	if err != nil {
		panic("reflect tool schema failed: " + err.Error())
	}
	return data
}

// GraphToolsOptions configures the graph tool set.
type GraphToolsOptions struct {
	// InstancesDir holds *.gr instance files in PACE format.
	InstancesDir string
}

// GraphTools serves solver operations over every instance in a directory.
// The directory is watched so that added or changed files are picked up
// without a restart.
type GraphTools struct {
	opts   GraphToolsOptions
	graphs sync.Map // name -> *graph.Digraph
}

// NewGraphTools loads all instances from opts.InstancesDir (a load error on
// startup panics, matching strict server start) and installs the watch.
func NewGraphTools(opts GraphToolsOptions) *GraphTools {
	ret := &GraphTools{opts: opts}

	if err := ret.loadAll(); err != nil {
		panic("load graph instances failed: " + err.Error())
	}

	if err := utils.WatchDir(opts.InstancesDir, func(op fsnotify.Op, file string) {
		if !strings.HasSuffix(file, ".gr") {
			return
		}
		name := instanceName(file)
		if op&(fsnotify.Remove|fsnotify.Rename) != 0 {
			ret.graphs.Delete(name)
			log.Info("instance %s removed", name)
			return
		}
		g, err := metis.GraphFromFile(file)
		if err != nil {
			log.Error("reload %s: %v", file, err)
			return
		}
		ret.graphs.Store(name, g)
		log.Info("instance %s reloaded", name)
	}); err != nil {
		log.Error("watch %s: %v", opts.InstancesDir, err)
	}

	return ret
}

func (t *GraphTools) loadAll() error {
	entries, err := os.ReadDir(t.opts.InstancesDir)
	if err != nil {
		return errors.Wrap(err, "read instances dir")
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".gr") {
			continue
		}
		path := filepath.Join(t.opts.InstancesDir, e.Name())
		g, err := metis.GraphFromFile(path)
		if err != nil {
			return err
		}
		t.graphs.Store(instanceName(path), g)
	}
	return nil
}

func instanceName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".gr")
}

func (t *GraphTools) graph(name string) (*graph.Digraph, error) {
	v, ok := t.graphs.Load(name)
	if !ok {
		return nil, errors.Errorf("unknown graph %q", name)
	}
	return v.(*graph.Digraph), nil
}

type ListGraphsReq struct{}

type ListGraphsResp struct {
	Graphs []string `json:"graphs"`
}

// ListGraphs returns the names of all loaded instances.
func (t *GraphTools) ListGraphs(ctx context.Context, req ListGraphsReq) (*ListGraphsResp, error) {
	var names []string
	t.graphs.Range(func(k, _ any) bool {
		names = append(names, k.(string))
		return true
	})
	return &ListGraphsResp{Graphs: names}, nil
}

type GetGraphInfoReq struct {
	Graph string `json:"graph" jsonschema:"description=instance name as returned by list_graphs"`
}

type GetGraphInfoResp struct {
	Order  int  `json:"order"`
	Size   int  `json:"size"`
	Cyclic bool `json:"cyclic"`
}

// GetGraphInfo returns order, size and cyclicity of one instance.
func (t *GraphTools) GetGraphInfo(ctx context.Context, req GetGraphInfoReq) (*GetGraphInfoResp, error) {
	g, err := t.graph(req.Graph)
	if err != nil {
		return nil, err
	}
	return &GetGraphInfoResp{Order: g.Order(), Size: g.Size(), Cyclic: g.IsCyclic()}, nil
}

type SolveFASReq struct {
	Graph     string `json:"graph" jsonschema:"description=instance name as returned by list_graphs"`
	Algorithm string `json:"algorithm,omitempty" jsonschema:"description=greedy (default) or dc"`
}

type SolveFASResp struct {
	Algorithm string      `json:"algorithm"`
	Edges     [][2]uint32 `json:"edges"`
}

// SolveFAS computes a feedback arc set of one instance.
func (t *GraphTools) SolveFAS(ctx context.Context, req SolveFASReq) (*SolveFASResp, error) {
	g, err := t.graph(req.Graph)
	if err != nil {
		return nil, err
	}
	solver, err := fas.ByName(req.Algorithm)
	if err != nil {
		return nil, err
	}
	set := solver.Solve(g)
	resp := &SolveFASResp{Algorithm: solver.Name(), Edges: make([][2]uint32, 0, len(set))}
	for _, e := range set {
		resp.Edges = append(resp.Edges, [2]uint32{uint32(e.From), uint32(e.To)})
	}
	return resp, nil
}

type VerifyFASReq struct {
	Graph string      `json:"graph" jsonschema:"description=instance name as returned by list_graphs"`
	Edges [][2]uint32 `json:"edges" jsonschema:"description=candidate feedback arc set as [from,to] pairs"`
}

type VerifyFASResp struct {
	Ok bool `json:"ok"`
}

// VerifyFAS checks a feedback arc set certificate against one instance.
func (t *GraphTools) VerifyFAS(ctx context.Context, req VerifyFASReq) (*VerifyFASResp, error) {
	g, err := t.graph(req.Graph)
	if err != nil {
		return nil, err
	}
	set := make([]graph.Edge, 0, len(req.Edges))
	for _, e := range req.Edges {
		set = append(set, graph.Edge{From: graph.VertexID(e[0]), To: graph.VertexID(e[1])})
	}
	return &VerifyFASResp{Ok: fas.Verify(g, set)}, nil
}

func getGraphTools(opts GraphToolsOptions) []Tool {
	t := NewGraphTools(opts)
	return []Tool{
		NewTool(ToolListGraphs, DescListGraphs, SchemaListGraphs, t.ListGraphs),
		NewTool(ToolGetGraphInfo, DescGetGraphInfo, SchemaGetGraphInfo, t.GetGraphInfo),
		NewTool(ToolSolveFAS, DescSolveFAS, SchemaSolveFAS, t.SolveFAS),
		NewTool(ToolVerifyFAS, DescVerifyFAS, SchemaVerifyFAS, t.VerifyFAS),
	}
}
