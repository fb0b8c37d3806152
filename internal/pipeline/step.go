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

// Step is one unit of work. Each step reads the current state and reports a
// result; it must not append to the history itself.
type Step interface {
	Name() string
	Run(ctx context.Context, st *RunState) (*StepResult, error)
}

// StepResult is what a step reports back to the engine.
type StepResult struct {
	Status      StepStatus
	Recoverable bool   // a retry might succeed (e.g. transient I/O)
	Output      string // optional human-readable summary
}
