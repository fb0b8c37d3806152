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
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"
)

func newTestTools(t *testing.T) *GraphTools {
	t.Helper()
	dir := t.TempDir()
	// A directed triangle and a two-vertex DAG.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "triangle.gr"), []byte("3 3\n2\n3\n1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chain.gr"), []byte("2 1\n2\n\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	return NewGraphTools(GraphToolsOptions{InstancesDir: dir})
}

func TestListGraphs(t *testing.T) {
	tools := newTestTools(t)
	resp, err := tools.ListGraphs(context.Background(), ListGraphsReq{})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"triangle", "chain"}, resp.Graphs)
}

func TestGetGraphInfo(t *testing.T) {
	tools := newTestTools(t)

	resp, err := tools.GetGraphInfo(context.Background(), GetGraphInfoReq{Graph: "triangle"})
	require.NoError(t, err)
	require.Equal(t, &GetGraphInfoResp{Order: 3, Size: 3, Cyclic: true}, resp)

	resp, err = tools.GetGraphInfo(context.Background(), GetGraphInfoReq{Graph: "chain"})
	require.NoError(t, err)
	require.Equal(t, &GetGraphInfoResp{Order: 2, Size: 1, Cyclic: false}, resp)

	_, err = tools.GetGraphInfo(context.Background(), GetGraphInfoReq{Graph: "nope"})
	require.Error(t, err)
}

func TestSolveAndVerifyFAS(t *testing.T) {
	tools := newTestTools(t)

	solved, err := tools.SolveFAS(context.Background(), SolveFASReq{Graph: "triangle"})
	require.NoError(t, err)
	require.Equal(t, "greedy", solved.Algorithm)
	require.Len(t, solved.Edges, 1)

	verified, err := tools.VerifyFAS(context.Background(), VerifyFASReq{Graph: "triangle", Edges: solved.Edges})
	require.NoError(t, err)
	require.True(t, verified.Ok)

	verified, err = tools.VerifyFAS(context.Background(), VerifyFASReq{Graph: "triangle", Edges: nil})
	require.NoError(t, err)
	require.False(t, verified.Ok)

	_, err = tools.SolveFAS(context.Background(), SolveFASReq{Graph: "triangle", Algorithm: "simplex"})
	require.Error(t, err)
}

func TestNewToolHandler(t *testing.T) {
	tools := newTestTools(t)
	tool := NewTool(ToolGetGraphInfo, DescGetGraphInfo, SchemaGetGraphInfo, tools.GetGraphInfo)
	require.Equal(t, ToolGetGraphInfo, tool.Tool.Name)

	req := mcp.CallToolRequest{}
	req.Params.Name = ToolGetGraphInfo
	req.Params.Arguments = map[string]any{"graph": "triangle"}

	result, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	var info GetGraphInfoResp
	require.NoError(t, json.Unmarshal([]byte(text.Text), &info))
	require.Equal(t, GetGraphInfoResp{Order: 3, Size: 3, Cyclic: true}, info)

	// Unknown graph surfaces as a tool error, not a protocol error.
	req.Params.Arguments = map[string]any{"graph": "nope"}
	result, err = tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.True(t, result.IsError)
}

func TestToolSchemas(t *testing.T) {
	for name, schema := range map[string]json.RawMessage{
		ToolListGraphs:   SchemaListGraphs,
		ToolGetGraphInfo: SchemaGetGraphInfo,
		ToolSolveFAS:     SchemaSolveFAS,
		ToolVerifyFAS:    SchemaVerifyFAS,
	} {
		var s map[string]interface{}
		require.NoError(t, json.Unmarshal(schema, &s), "schema of %s", name)
	}
}
