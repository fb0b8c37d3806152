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

// Package steps contains the built-in steps of the solve pipeline.
package steps

import (
	"context"
	"fmt"
	"os"

	"github.com/pacekit/arcbreak/internal/pipeline"
	"github.com/pacekit/arcbreak/metis"
)

// ParseStep reads the instance from InputPath (or stdin when empty or "-")
// into st.Graph. Parse failures are not recoverable.
type ParseStep struct{}

// Name implements pipeline.Step.
func (ParseStep) Name() string { return "parse" }

// Run implements pipeline.Step.
func (ParseStep) Run(ctx context.Context, st *pipeline.RunState) (*pipeline.StepResult, error) {
	var err error
	if st.InputPath == "" || st.InputPath == "-" {
		st.Graph, err = metis.GraphFromReader(os.Stdin)
	} else {
		st.Graph, err = metis.GraphFromFile(st.InputPath)
	}
	if err != nil {
		return &pipeline.StepResult{Status: pipeline.StepFailed}, err
	}
	return &pipeline.StepResult{
		Status: pipeline.StepOK,
		Output: fmt.Sprintf("%d vertices, %d edges", st.Graph.Order(), st.Graph.Size()),
	}, nil
}
