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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	svr := NewServer(ServerOptions{
		ServerName:        "arcbreak-test",
		ServerVersion:     "v0.0.0",
		GraphToolsOptions: GraphToolsOptions{InstancesDir: t.TempDir()},
	})
	require.NotNil(t, svr)
	require.NotNil(t, svr.Server)
}

func TestNewGraphToolsBadDir(t *testing.T) {
	require.Panics(t, func() {
		NewGraphTools(GraphToolsOptions{InstancesDir: "/no/such/dir"})
	})
}
