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

package steps

import (
	"context"
	"fmt"

	"github.com/pacekit/arcbreak/fas"
	"github.com/pacekit/arcbreak/internal/pipeline"
)

// SolveStep computes a feedback arc set of st.Graph with the solver named by
// st.Algorithm and stores it in st.ArcSet.
type SolveStep struct{}

// Name implements pipeline.Step.
func (SolveStep) Name() string { return "solve" }

// Run implements pipeline.Step.
func (SolveStep) Run(ctx context.Context, st *pipeline.RunState) (*pipeline.StepResult, error) {
	if st.Graph == nil {
		return &pipeline.StepResult{Status: pipeline.StepFailed}, fmt.Errorf("no graph parsed")
	}
	solver, err := fas.ByName(st.Algorithm)
	if err != nil {
		return &pipeline.StepResult{Status: pipeline.StepFailed}, err
	}
	st.ArcSet = solver.Solve(st.Graph)
	return &pipeline.StepResult{
		Status: pipeline.StepOK,
		Output: fmt.Sprintf("%s: %d arcs", solver.Name(), len(st.ArcSet)),
	}, nil
}

// VerifyStep checks that st.ArcSet really is a feedback arc set: removing it
// must leave the graph acyclic. A failed certificate is not recoverable.
type VerifyStep struct{}

// Name implements pipeline.Step.
func (VerifyStep) Name() string { return "verify" }

// Run implements pipeline.Step.
func (VerifyStep) Run(ctx context.Context, st *pipeline.RunState) (*pipeline.StepResult, error) {
	if st.Graph == nil {
		return &pipeline.StepResult{Status: pipeline.StepFailed}, fmt.Errorf("no graph parsed")
	}
	if !fas.Verify(st.Graph, st.ArcSet) {
		return &pipeline.StepResult{Status: pipeline.StepFailed}, fmt.Errorf("arc set of size %d leaves the graph cyclic", len(st.ArcSet))
	}
	return &pipeline.StepResult{Status: pipeline.StepOK}, nil
}
