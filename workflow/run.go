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

package workflow

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/Knetic/govaluate"
	"github.com/pkg/errors"

	"github.com/pacekit/arcbreak/internal/log"
	"github.com/pacekit/arcbreak/internal/pipeline"
)

// Options configures a workflow run.
type Options struct {
	// Dir is the working directory for command steps. Empty means the
	// current directory.
	Dir string
	// Env is merged over the definition-level environment.
	Env map[string]string
	// Stdout and Stderr receive step output; nil means the process streams.
	Stdout io.Writer
	Stderr io.Writer
	// Agent overrides the failure policy. Default is fail-fast (no retries).
	Agent pipeline.Agent
}

// Run validates def, lowers its steps onto the pipeline engine and executes
// them sequentially. The first failing step halts the remaining steps; the
// returned state carries one history record per step attempt.
func Run(ctx context.Context, def *Definition, opts Options) (*pipeline.RunState, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	steps, err := Compile(def, opts)
	if err != nil {
		return nil, err
	}

	st := pipeline.NewRunState(fmt.Sprintf("%d", time.Now().UnixNano()))
	for k, v := range def.Env {
		st.Env[k] = v
	}
	for k, v := range opts.Env {
		st.Env[k] = v
	}

	p := &pipeline.Pipeline{Steps: steps, Agent: opts.Agent}
	runErr := p.Run(ctx, st)
	return st, runErr
}

// Compile lowers every workflow step to a pipeline.Step. Uses references are
// resolved against the built-in action registry; unknown actions fail here
// rather than at run time.
func Compile(def *Definition, opts Options) ([]pipeline.Step, error) {
	out := make([]pipeline.Step, 0, len(def.Steps))
	for _, s := range def.Steps {
		if s.Uses != "" {
			action, ok := builtinAction(s.Uses)
			if !ok {
				return nil, errors.Errorf("step %q: unsupported action %q", s.Name, s.Uses)
			}
			out = append(out, &wfStep{step: s, opts: opts, action: action})
			continue
		}
		out = append(out, &wfStep{step: s, opts: opts})
	}
	return out, nil
}

// actionFunc is a built-in replacement for a reusable external action.
type actionFunc func(ctx context.Context, opts Options) error

// builtinAction resolves a uses reference. Version suffixes (after '@') are
// accepted and ignored.
func builtinAction(uses string) (actionFunc, bool) {
	name := uses
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	switch name {
	case "checkout", "actions/checkout":
		return actionCheckout, true
	}
	return nil, false
}

// actionCheckout stands in for the hosted checkout action: locally the
// sources are already on disk, so it only asserts the working tree exists.
func actionCheckout(ctx context.Context, opts Options) error {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	info, err := os.Stat(dir)
	if err != nil {
		return errors.Wrap(err, "checkout")
	}
	if !info.IsDir() {
		return errors.Errorf("checkout: %s is not a directory", dir)
	}
	return nil
}

// wfStep adapts one workflow step to the pipeline engine.
type wfStep struct {
	step   Step
	opts   Options
	action actionFunc // set for uses steps
}

// Name implements pipeline.Step.
func (w *wfStep) Name() string { return w.step.Name }

// Run implements pipeline.Step.
func (w *wfStep) Run(ctx context.Context, st *pipeline.RunState) (*pipeline.StepResult, error) {
	if w.step.If != "" {
		ok, err := w.evalCondition(st)
		if err != nil {
			return &pipeline.StepResult{Status: pipeline.StepFailed}, err
		}
		if !ok {
			log.Debug("step %s: condition %q is false, skipping", w.step.Name, w.step.If)
			return &pipeline.StepResult{Status: pipeline.StepSkipped}, nil
		}
	}

	if w.action != nil {
		if err := w.action(ctx, w.opts); err != nil {
			return &pipeline.StepResult{Status: pipeline.StepFailed}, err
		}
		return &pipeline.StepResult{Status: pipeline.StepOK}, nil
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", w.step.Run)
	cmd.Dir = w.opts.Dir
	cmd.Env = w.mergedEnv(st)
	cmd.Stdout = w.opts.Stdout
	cmd.Stderr = w.opts.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	log.Debug("step %s: sh -c %q", w.step.Name, w.step.Run)
	if err := cmd.Run(); err != nil {
		return &pipeline.StepResult{Status: pipeline.StepFailed}, errors.Wrapf(err, "run %q", w.step.Run)
	}
	return &pipeline.StepResult{Status: pipeline.StepOK}, nil
}

// evalCondition evaluates the step's if expression against the run
// environment. The expression must yield a boolean.
func (w *wfStep) evalCondition(st *pipeline.RunState) (bool, error) {
	expr, err := govaluate.NewEvaluableExpression(w.step.If)
	if err != nil {
		return false, errors.Wrapf(err, "step %q: bad condition", w.step.Name)
	}
	params := make(map[string]interface{}, len(st.Env)+len(w.step.Env))
	for k, v := range st.Env {
		params[k] = v
	}
	for k, v := range w.step.Env {
		params[k] = v
	}
	res, err := expr.Evaluate(params)
	if err != nil {
		return false, errors.Wrapf(err, "step %q: evaluate condition", w.step.Name)
	}
	b, ok := res.(bool)
	if !ok {
		return false, errors.Errorf("step %q: condition %q is not boolean", w.step.Name, w.step.If)
	}
	return b, nil
}

// mergedEnv layers the run environment and the per-step environment over the
// parent process environment.
func (w *wfStep) mergedEnv(st *pipeline.RunState) []string {
	env := os.Environ()
	for k, v := range st.Env {
		env = append(env, k+"="+v)
	}
	for k, v := range w.step.Env {
		env = append(env, k+"="+v)
	}
	return env
}
