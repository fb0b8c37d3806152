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
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pacekit/arcbreak/internal/pipeline"
)

func TestRunSequential(t *testing.T) {
	var out bytes.Buffer
	def := &Definition{
		Name: "demo",
		On:   On{Push: &Trigger{}},
		Steps: []Step{
			{Name: "first", Run: "echo one"},
			{Name: "second", Run: "echo two"},
		},
	}
	st, err := Run(context.Background(), def, Options{Stdout: &out, Stderr: &out})
	require.NoError(t, err)
	require.Equal(t, "one\ntwo\n", out.String())

	require.Len(t, st.History, 2)
	require.Equal(t, "first", st.History[0].StepName)
	require.Equal(t, pipeline.StepOK, st.History[0].Status)
	require.Equal(t, "second", st.History[1].StepName)
}

// TestRunFailFast checks that the first failing step halts the run: the
// steps after it never execute and leave no history record.
func TestRunFailFast(t *testing.T) {
	var out bytes.Buffer
	def := &Definition{
		Name: "demo",
		On:   On{Push: &Trigger{}},
		Steps: []Step{
			{Name: "first", Run: "echo one"},
			{Name: "boom", Run: "exit 3"},
			{Name: "after", Run: "echo never"},
		},
	}
	st, err := Run(context.Background(), def, Options{Stdout: &out, Stderr: &out})
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom")

	require.NotContains(t, out.String(), "never")
	require.Len(t, st.History, 2)
	require.Equal(t, pipeline.StepFailed, st.History[1].Status)
}

func TestRunEnvLayering(t *testing.T) {
	var out bytes.Buffer
	def := &Definition{
		Name: "demo",
		On:   On{Push: &Trigger{}},
		Env:  map[string]string{"GREETING": "hello", "TARGET": "world"},
		Steps: []Step{
			{
				Name: "greet",
				Run:  `echo "$GREETING $TARGET"`,
				Env:  map[string]string{"TARGET": "go"},
			},
		},
	}
	_, err := Run(context.Background(), def, Options{Stdout: &out, Stderr: &out})
	require.NoError(t, err)
	require.Equal(t, "hello go\n", out.String())
}

func TestRunConditionSkips(t *testing.T) {
	var out bytes.Buffer
	def := &Definition{
		Name: "demo",
		On:   On{Push: &Trigger{}},
		Env:  map[string]string{"MODE": "fast"},
		Steps: []Step{
			{Name: "skipped", Run: "echo never", If: "MODE == 'slow'"},
			{Name: "taken", Run: "echo yes", If: "MODE == 'fast'"},
		},
	}
	st, err := Run(context.Background(), def, Options{Stdout: &out, Stderr: &out})
	require.NoError(t, err)
	require.Equal(t, "yes\n", out.String())
	require.Equal(t, pipeline.StepSkipped, st.History[0].Status)
	require.Equal(t, pipeline.StepOK, st.History[1].Status)
}

func TestRunBadCondition(t *testing.T) {
	def := &Definition{
		Name: "demo",
		On:   On{Push: &Trigger{}},
		Steps: []Step{
			{Name: "bad", Run: "true", If: "MODE =="},
		},
	}
	_, err := Run(context.Background(), def, Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad condition")
}

func TestRunNonBooleanCondition(t *testing.T) {
	def := &Definition{
		Name: "demo",
		On:   On{Push: &Trigger{}},
		Steps: []Step{
			{Name: "bad", Run: "true", If: "1 + 1"},
		},
	}
	_, err := Run(context.Background(), def, Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "not boolean")
}

func TestRunCheckoutAction(t *testing.T) {
	def := &Definition{
		Name: "demo",
		On:   On{Push: &Trigger{}},
		Steps: []Step{
			{Name: "checkout", Uses: "actions/checkout@v4"},
		},
	}
	_, err := Run(context.Background(), def, Options{Dir: t.TempDir()})
	require.NoError(t, err)

	_, err = Run(context.Background(), def, Options{Dir: "/no/such/dir"})
	require.Error(t, err)
}

func TestCompileUnknownAction(t *testing.T) {
	def := &Definition{
		Name: "demo",
		On:   On{Push: &Trigger{}},
		Steps: []Step{
			{Name: "deploy", Uses: "actions/deploy-pages@v4"},
		},
	}
	_, err := Run(context.Background(), def, Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported action")
}

func TestRunRejectsInvalidDefinition(t *testing.T) {
	def := &Definition{Name: "demo"}
	_, err := Run(context.Background(), def, Options{})
	require.Error(t, err)
	require.IsType(t, &ValidationError{}, err)
}
