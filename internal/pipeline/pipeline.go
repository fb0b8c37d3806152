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

// Package pipeline is a sequential step engine with fail-fast semantics.
// Both the solve pipeline (parse, solve, verify, write) and the workflow
// runner execute on it.
package pipeline

import (
	"context"
	"fmt"
	"time"
)

// Pipeline runs steps in order. A step returning StepFailed halts the run
// unless the Agent decides to retry it.
type Pipeline struct {
	Steps []Step
	Agent Agent
}

// Run executes all steps against st. It returns the first error encountered;
// st.History holds one record per attempt either way.
func (p *Pipeline) Run(ctx context.Context, st *RunState) error {
	if p.Agent == nil {
		p.Agent = &DefaultAgent{MaxRetry: 1}
	}
	for _, step := range p.Steps {
		if err := p.runStep(ctx, step, st); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) runStep(ctx context.Context, step Step, st *RunState) error {
	attempt := 0
	for {
		attempt++
		if err := ctx.Err(); err != nil {
			return err
		}
		result, err := step.Run(ctx, st)
		if result == nil {
			result = &StepResult{Status: StepFailed}
			if err == nil {
				result.Status = StepOK
			}
		}
		if err == nil && result.Status != StepFailed {
			st.History = append(st.History, StepRecord{
				StepName: step.Name(),
				Attempt:  attempt,
				Status:   result.Status,
				Time:     time.Now(),
			})
			return nil
		}

		st.History = append(st.History, StepRecord{
			StepName: step.Name(),
			Attempt:  attempt,
			Status:   StepFailed,
			Error:    errStr(err),
			Time:     time.Now(),
		})

		if p.Agent.OnStepFailure(ctx, step, st, result, attempt) == DecisionRetry {
			continue
		}
		if err != nil {
			return fmt.Errorf("step %s: %w", step.Name(), err)
		}
		return fmt.Errorf("step %s failed", step.Name())
	}
}

func errStr(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
