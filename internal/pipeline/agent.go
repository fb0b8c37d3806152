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

import "context"

// Agent decides what to do when a step fails: retry it or abort the run.
// The Agent only schedules; it never edits state.
type Agent interface {
	OnStepFailure(ctx context.Context, step Step, st *RunState, result *StepResult, attempt int) Decision
}

// Decision is the action to take after a step failure.
type Decision string

const (
	DecisionRetry Decision = "retry"
	DecisionAbort Decision = "abort"
)

// DefaultAgent aborts on unrecoverable failures and retries recoverable ones
// up to MaxRetry attempts. MaxRetry of 1 means fail-fast: the first failing
// step halts the run.
type DefaultAgent struct {
	MaxRetry int
}

// OnStepFailure implements Agent.
func (a *DefaultAgent) OnStepFailure(ctx context.Context, step Step, st *RunState, result *StepResult, attempt int) Decision {
	if result != nil && !result.Recoverable {
		return DecisionAbort
	}
	if attempt >= a.MaxRetry {
		return DecisionAbort
	}
	return DecisionRetry
}
