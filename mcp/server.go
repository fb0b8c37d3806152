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

// Package mcp serves the solver's operations as MCP tools over stdio, so
// that agents can inspect and solve PACE instances from a directory.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/pacekit/arcbreak/internal/log"
)

// ServerOptions configures the MCP server.
type ServerOptions struct {
	ServerName    string
	ServerVersion string
	Verbose       bool
	GraphToolsOptions
}

// Server wraps an MCP server with the graph tool set installed.
type Server struct {
	Server *server.MCPServer
}

// NewServer builds the server and registers all graph tools.
func NewServer(opts ServerOptions) *Server {
	if opts.Verbose {
		log.SetLogLevel(log.DebugLevel)
	}
	svr := server.NewMCPServer(
		opts.ServerName,
		opts.ServerVersion,
		server.WithToolCapabilities(true),
	)
	for _, t := range getGraphTools(opts.GraphToolsOptions) {
		svr.AddTool(t.Tool, t.Handler)
	}
	return &Server{Server: svr}
}

// ServeStdio blocks serving the MCP protocol on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.Server)
}
