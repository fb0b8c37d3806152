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
	"context"
	"errors"
	"testing"
)

type mockStep struct {
	name string
	runs int
	fn   func(attempt int) (*StepResult, error)
}

func (m *mockStep) Name() string { return m.name }

func (m *mockStep) Run(ctx context.Context, st *RunState) (*StepResult, error) {
	m.runs++
	return m.fn(m.runs)
}

func stepOK(name string) *mockStep {
	return &mockStep{name: name, fn: func(int) (*StepResult, error) {
		return &StepResult{Status: StepOK}, nil
	}}
}

func stepFail(name string, recoverable bool) *mockStep {
	return &mockStep{name: name, fn: func(int) (*StepResult, error) {
		return &StepResult{Status: StepFailed, Recoverable: recoverable}, errors.New("boom")
	}}
}

func TestRunAllOK(t *testing.T) {
	st := NewRunState("t1")
	p := &Pipeline{Steps: []Step{stepOK("a"), stepOK("b")}}
	if err := p.Run(context.Background(), st); err != nil {
		t.Fatal(err)
	}
	if len(st.History) != 2 {
		t.Fatalf("history = %v, want 2 records", st.History)
	}
	for i, name := range []string{"a", "b"} {
		rec := st.History[i]
		if rec.StepName != name || rec.Status != StepOK || rec.Attempt != 1 {
			t.Errorf("record %d = %+v", i, rec)
		}
	}
}

func TestRunFailFast(t *testing.T) {
	after := stepOK("c")
	st := NewRunState("t2")
	p := &Pipeline{Steps: []Step{stepOK("a"), stepFail("b", false), after}}

	err := p.Run(context.Background(), st)
	if err == nil {
		t.Fatal("expected error")
	}
	if after.runs != 0 {
		t.Error("step after the failure still ran")
	}
	if len(st.History) != 2 {
		t.Fatalf("history = %v, want 2 records", st.History)
	}
	last := st.History[1]
	if last.StepName != "b" || last.Status != StepFailed || last.Error != "boom" {
		t.Errorf("failure record = %+v", last)
	}
}

func TestRunRetriesRecoverable(t *testing.T) {
	flaky := &mockStep{name: "flaky", fn: func(attempt int) (*StepResult, error) {
		if attempt < 3 {
			return &StepResult{Status: StepFailed, Recoverable: true}, errors.New("transient")
		}
		return &StepResult{Status: StepOK}, nil
	}}
	st := NewRunState("t3")
	p := &Pipeline{
		Steps: []Step{flaky},
		Agent: &DefaultAgent{MaxRetry: 3},
	}
	if err := p.Run(context.Background(), st); err != nil {
		t.Fatal(err)
	}
	if flaky.runs != 3 {
		t.Errorf("runs = %d, want 3", flaky.runs)
	}
	if len(st.History) != 3 || st.History[2].Status != StepOK || st.History[2].Attempt != 3 {
		t.Errorf("history = %+v", st.History)
	}
}

func TestRunAbortsUnrecoverable(t *testing.T) {
	hard := stepFail("hard", false)
	st := NewRunState("t4")
	p := &Pipeline{
		Steps: []Step{hard},
		Agent: &DefaultAgent{MaxRetry: 5},
	}
	if err := p.Run(context.Background(), st); err == nil {
		t.Fatal("expected error")
	}
	if hard.runs != 1 {
		t.Errorf("unrecoverable step retried %d times", hard.runs)
	}
}

func TestRunRetryLimitExhausted(t *testing.T) {
	soft := stepFail("soft", true)
	st := NewRunState("t5")
	p := &Pipeline{
		Steps: []Step{soft},
		Agent: &DefaultAgent{MaxRetry: 2},
	}
	if err := p.Run(context.Background(), st); err == nil {
		t.Fatal("expected error")
	}
	if soft.runs != 2 {
		t.Errorf("runs = %d, want 2", soft.runs)
	}
}

func TestRunSkippedStep(t *testing.T) {
	skip := &mockStep{name: "skip", fn: func(int) (*StepResult, error) {
		return &StepResult{Status: StepSkipped}, nil
	}}
	st := NewRunState("t6")
	p := &Pipeline{Steps: []Step{skip, stepOK("after")}}
	if err := p.Run(context.Background(), st); err != nil {
		t.Fatal(err)
	}
	if st.History[0].Status != StepSkipped {
		t.Errorf("record = %+v, want skipped", st.History[0])
	}
	if len(st.History) != 2 {
		t.Errorf("history = %+v, want the step after the skip to run", st.History)
	}
}

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	st := NewRunState("t7")
	p := &Pipeline{Steps: []Step{stepOK("a")}}
	if err := p.Run(ctx, st); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if len(st.History) != 0 {
		t.Errorf("history = %+v, want empty", st.History)
	}
}

func TestRunNilResult(t *testing.T) {
	quiet := &mockStep{name: "quiet", fn: func(int) (*StepResult, error) {
		return nil, nil
	}}
	st := NewRunState("t8")
	p := &Pipeline{Steps: []Step{quiet}}
	if err := p.Run(context.Background(), st); err != nil {
		t.Fatal(err)
	}
	if st.History[0].Status != StepOK {
		t.Errorf("record = %+v, want ok", st.History[0])
	}
}
