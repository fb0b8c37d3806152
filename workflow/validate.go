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
	"fmt"
	"strings"
)

// ValidationError collects every structural issue so callers see all of them
// at once.
type ValidationError struct {
	Errs []string
}

func (e *ValidationError) Error() string {
	if len(e.Errs) == 0 {
		return "validation failed"
	}
	if len(e.Errs) == 1 {
		return e.Errs[0]
	}
	return fmt.Sprintf("validation failed (%d errors): %s", len(e.Errs), strings.Join(e.Errs, "; "))
}

// Validate checks that the definition is structurally sound: a name, at
// least one trigger, and named steps that declare exactly one of uses/run.
func (d *Definition) Validate() error {
	var errs []string

	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, "workflow name is empty")
	}
	if d.On.Count() == 0 {
		errs = append(errs, "workflow declares no trigger")
	}
	if len(d.Steps) == 0 {
		errs = append(errs, "workflow declares no steps")
	}

	seen := make(map[string]bool, len(d.Steps))
	for i, s := range d.Steps {
		label := s.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
			errs = append(errs, fmt.Sprintf("step %s has no name", label))
		}
		if seen[s.Name] && s.Name != "" {
			errs = append(errs, fmt.Sprintf("duplicate step name %q", s.Name))
		}
		seen[s.Name] = true
		switch {
		case s.Uses == "" && s.Run == "":
			errs = append(errs, fmt.Sprintf("step %s declares neither uses nor run", label))
		case s.Uses != "" && s.Run != "":
			errs = append(errs, fmt.Sprintf("step %s declares both uses and run", label))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errs: errs}
	}
	return nil
}
