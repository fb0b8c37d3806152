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

// Package workflow models a declarative pipeline file: trigger events scoped
// to branch patterns, process-wide environment variables, and an ordered list
// of named steps. Each step is either a reference to a reusable action or a
// literal shell command. Execution is strictly sequential and fail-fast.
package workflow

// Definition is a parsed workflow file.
type Definition struct {
	// Name of the workflow.
	Name string `yaml:"name" json:"name"`
	// On declares the trigger conditions.
	On On `yaml:"on" json:"on"`
	// Env is the process-wide environment applied to every step.
	Env map[string]string `yaml:"env,omitempty" json:"env,omitempty"`
	// Steps run in declaration order; the first failure halts the run.
	Steps []Step `yaml:"steps" json:"steps"`
}

// On holds the supported trigger events. A nil event is not a trigger.
type On struct {
	Push        *Trigger `yaml:"push,omitempty" json:"push,omitempty"`
	PullRequest *Trigger `yaml:"pull_request,omitempty" json:"pull_request,omitempty"`
}

// Trigger scopes an event to a set of branches. An empty list matches every
// branch.
type Trigger struct {
	Branches []string `yaml:"branches,omitempty" json:"branches,omitempty"`
}

// Step is one entry in the ordered command sequence: either Uses (a reusable
// action by name) or Run (a literal command line executed in a shell).
type Step struct {
	Name string `yaml:"name" json:"name"`
	Uses string `yaml:"uses,omitempty" json:"uses,omitempty"`
	Run  string `yaml:"run,omitempty" json:"run,omitempty"`
	// If is an optional condition expression over the environment; when it
	// evaluates to false the step is recorded as skipped.
	If string `yaml:"if,omitempty" json:"if,omitempty"`
	// Env is merged over the workflow-level environment for this step only.
	Env map[string]string `yaml:"env,omitempty" json:"env,omitempty"`
}

// Count returns the number of declared trigger conditions.
func (o *On) Count() int {
	n := 0
	if o.Push != nil {
		n++
	}
	if o.PullRequest != nil {
		n++
	}
	return n
}

// Matches reports whether the given event ("push" or "pull_request") on the
// given branch would trigger this workflow.
func (o *On) Matches(event, branch string) bool {
	var t *Trigger
	switch event {
	case "push":
		t = o.Push
	case "pull_request":
		t = o.PullRequest
	}
	if t == nil {
		return false
	}
	if len(t.Branches) == 0 {
		return true
	}
	for _, b := range t.Branches {
		if b == branch {
			return true
		}
	}
	return false
}
