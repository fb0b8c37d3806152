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

import "testing"

func TestIsCyclic(t *testing.T) {
	tests := []struct {
		name  string
		edges []Edge
		want  bool
	}{
		{"empty", nil, false},
		{"single edge", []Edge{{1, 2}}, false},
		{"self loop", []Edge{{1, 1}}, true},
		{"triangle", []Edge{{1, 2}, {2, 3}, {3, 1}}, true},
		{"diamond dag", []Edge{{1, 2}, {1, 3}, {2, 4}, {3, 4}}, false},
		{"two components one cyclic", []Edge{{1, 2}, {3, 4}, {4, 5}, {5, 3}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromEdges(tt.edges).IsCyclic(); got != tt.want {
				t.Errorf("IsCyclic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindCycle(t *testing.T) {
	g := FromEdges([]Edge{{1, 2}, {2, 3}, {3, 4}, {4, 2}, {1, 5}})
	cycle := g.FindCycle()
	if cycle == nil {
		t.Fatal("no cycle found")
	}
	if len(cycle) < 3 {
		t.Fatalf("cycle too short: %v", cycle)
	}
	if cycle[0] != cycle[len(cycle)-1] {
		t.Fatalf("cycle %v is not closed", cycle)
	}
	for i := 0; i+1 < len(cycle); i++ {
		if !g.HasEdge(cycle[i], cycle[i+1]) {
			t.Errorf("cycle uses missing edge (%d, %d)", cycle[i], cycle[i+1])
		}
	}
}

func TestFindCycleAcyclic(t *testing.T) {
	g := FromEdges([]Edge{{1, 2}, {2, 3}, {1, 3}})
	if cycle := g.FindCycle(); cycle != nil {
		t.Errorf("found cycle %v in a DAG", cycle)
	}
}

func TestFindCycleSelfLoop(t *testing.T) {
	g := FromEdges([]Edge{{7, 7}})
	cycle := g.FindCycle()
	if cycle == nil {
		t.Fatal("self-loop not detected")
	}
	if len(cycle) != 2 || cycle[0] != 7 || cycle[1] != 7 {
		t.Errorf("cycle = %v, want [7 7]", cycle)
	}
}
