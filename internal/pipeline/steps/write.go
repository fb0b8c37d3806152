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
	"io"
	"os"
	"strings"

	"github.com/pacekit/arcbreak/dot"
	"github.com/pacekit/arcbreak/graph"
	"github.com/pacekit/arcbreak/internal/pipeline"
	"github.com/pacekit/arcbreak/internal/utils"
)

// WriteStep emits the arc set to OutputPath (stdout when empty), either as a
// "from to" edge list or, when Dot is set, as the whole graph in DOT syntax
// with the arc set highlighted.
type WriteStep struct {
	Dot bool
}

// Name implements pipeline.Step.
func (WriteStep) Name() string { return "write" }

// Run implements pipeline.Step.
func (s WriteStep) Run(ctx context.Context, st *pipeline.RunState) (*pipeline.StepResult, error) {
	var sb strings.Builder
	if s.Dot {
		highlight := make(map[graph.Edge]bool, len(st.ArcSet))
		for _, e := range st.ArcSet {
			highlight[e] = true
		}
		if err := dot.Write(&sb, st.Graph, dot.Options{Highlight: highlight}); err != nil {
			return &pipeline.StepResult{Status: pipeline.StepFailed}, err
		}
	} else {
		for _, e := range st.ArcSet {
			fmt.Fprintf(&sb, "%d %d\n", e.From, e.To)
		}
	}

	if st.OutputPath == "" {
		if _, err := io.WriteString(os.Stdout, sb.String()); err != nil {
			return &pipeline.StepResult{Status: pipeline.StepFailed, Recoverable: true}, err
		}
	} else if err := utils.MustWriteFile(st.OutputPath, []byte(sb.String())); err != nil {
		return &pipeline.StepResult{Status: pipeline.StepFailed, Recoverable: true}, err
	}
	return &pipeline.StepResult{Status: pipeline.StepOK}, nil
}
