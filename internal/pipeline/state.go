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

package pipeline

import (
	"time"

	"github.com/pacekit/arcbreak/graph"
)

// RunState is the single source of truth a run mutates. Steps read it and
// publish their results back into it; the engine only appends history.
type RunState struct {
	RunID string

	InputPath  string // instance file ("" or "-" means stdin)
	OutputPath string // result destination ("" means stdout)
	Algorithm  string // solver name for SolveStep

	Env map[string]string // extra environment for command steps

	Graph  *graph.Digraph // after ParseStep
	ArcSet []graph.Edge   // after SolveStep

	History []StepRecord
}

// StepRecord is an immutable log entry for one step execution.
type StepRecord struct {
	StepName string     `json:"step_name"`
	Attempt  int        `json:"attempt"`
	Status   StepStatus `json:"status"`
	Error    string     `json:"error,omitempty"`
	Time     time.Time  `json:"time"`
}

// StepStatus is the outcome of a step run.
type StepStatus string

const (
	StepOK      StepStatus = "ok"
	StepFailed  StepStatus = "failed"
	StepSkipped StepStatus = "skipped"
)

// NewRunState returns an initial state with the given run id.
func NewRunState(runID string) *RunState {
	return &RunState{
		RunID: runID,
		Env:   make(map[string]string),
	}
}
