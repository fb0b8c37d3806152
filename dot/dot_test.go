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

package dot

import (
	"strings"
	"testing"

	"github.com/pacekit/arcbreak/graph"
)

func TestString(t *testing.T) {
	g := graph.FromEdges([]graph.Edge{{From: 2, To: 1}, {From: 1, To: 2}})
	want := `digraph g {
  1;
  2;
  1 -> 2;
  2 -> 1;
}
`
	if got := String(g); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestWriteHighlight(t *testing.T) {
	g := graph.FromEdges([]graph.Edge{{From: 1, To: 2}, {From: 2, To: 1}})
	var sb strings.Builder
	err := Write(&sb, g, Options{
		Name:      "fas",
		Highlight: map[graph.Edge]bool{{From: 2, To: 1}: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	if !strings.HasPrefix(out, "digraph fas {") {
		t.Errorf("missing graph name in %q", out)
	}
	if !strings.Contains(out, "2 -> 1 [color=red];") {
		t.Errorf("highlighted edge missing in %q", out)
	}
	if strings.Contains(out, "1 -> 2 [color=red];") {
		t.Errorf("unhighlighted edge drawn red in %q", out)
	}
}
