/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/onsi/gomega"
	"github.com/spjmurray/go-util/pkg/set"
)

var (
	// ErrMissingStoryID marks a scenario skipped because create produced no story.
	ErrMissingStoryID = errors.New("no story ID captured by the create scenario")

	// ErrUnknownScenario is returned when selecting a scenario that does not exist.
	ErrUnknownScenario = errors.New("unknown scenario")
)

// Status is the outcome of a single scenario.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
	StatusNotRun  Status = "not-run"
)

// Outcome records how a scenario went.
type Outcome struct {
	Scenario string
	Status   Status
	Err      error
	Duration time.Duration
}

// Report is the result of a run. Aborted is set when setup failed and the
// remaining scenarios were not run.
type Report struct {
	Outcomes []Outcome
	Aborted  error
}

// Failed is true when any scenario failed or the run was aborted.
func (r *Report) Failed() bool {
	if r.Aborted != nil {
		return true
	}

	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			return true
		}
	}

	return false
}

// Count returns the number of outcomes with the given status.
func (r *Report) Count(status Status) int {
	var n int

	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}

	return n
}

// Runner executes scenarios strictly in order, one at a time.
type Runner struct {
	connect ConnectFunc
	log     logr.Logger
}

func NewRunner(connect ConnectFunc, log logr.Logger) *Runner {
	return &Runner{
		connect: connect,
		log:     log,
	}
}

// Run executes the scenarios in order with a fresh State. A setup failure
// aborts the run; an assertion failure only fails its own scenario.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) *Report {
	report := &Report{
		Outcomes: make([]Outcome, 0, len(scenarios)),
	}

	state := &State{}

	for i, scenario := range scenarios {
		outcome, err := r.runScenario(ctx, scenario, state)
		if err != nil {
			r.log.Error(err, "setup failed, aborting run", "scenario", scenario.Name)

			report.Aborted = err

			for _, rest := range scenarios[i:] {
				report.Outcomes = append(report.Outcomes, Outcome{Scenario: rest.Name, Status: StatusNotRun})
			}

			return report
		}

		r.logOutcome(outcome)

		report.Outcomes = append(report.Outcomes, outcome)
	}

	return report
}

func (r *Runner) logOutcome(outcome Outcome) {
	switch outcome.Status {
	case StatusFailed:
		r.log.Error(outcome.Err, "scenario failed", "scenario", outcome.Scenario, "duration", outcome.Duration)
	case StatusSkipped:
		r.log.Info("scenario skipped", "scenario", outcome.Scenario, "reason", outcome.Err.Error())
	default:
		r.log.Info("scenario passed", "scenario", outcome.Scenario, "duration", outcome.Duration)
	}
}

// runScenario performs setup, the scenario itself and teardown. Only a
// setup failure is returned as an error.
func (r *Runner) runScenario(ctx context.Context, scenario Scenario, state *State) (Outcome, error) {
	outcome := Outcome{
		Scenario: scenario.Name,
	}

	if scenario.RequiresStory && state.StoryID == "" {
		outcome.Status = StatusSkipped
		outcome.Err = ErrMissingStoryID

		return outcome, nil
	}

	api, err := r.connect(ctx)
	if err != nil {
		return outcome, fmt.Errorf("setting up scenario %s: %w", scenario.Name, err)
	}

	defer api.Close()

	start := time.Now()
	err = execute(ctx, scenario, api, state)
	outcome.Duration = time.Since(start)

	if err != nil {
		outcome.Status = StatusFailed
		outcome.Err = err

		return outcome, nil
	}

	outcome.Status = StatusPassed

	return outcome, nil
}

// assertionFailure carries a Gomega failure message out of a scenario.
type assertionFailure struct {
	message string
}

func (f assertionFailure) Error() string {
	return f.message
}

// execute runs the scenario with a Gomega whose failures stop the scenario
// the same way Ginkgo's Fail does, by panicking.
func execute(ctx context.Context, scenario Scenario, api StoryAPI, state *State) (err error) {
	defer func() {
		if v := recover(); v != nil {
			if failure, ok := v.(assertionFailure); ok {
				err = failure
				return
			}

			err = fmt.Errorf("scenario %s panicked: %v", scenario.Name, v)
		}
	}()

	g := gomega.NewGomega(func(message string, _ ...int) {
		panic(assertionFailure{message: message})
	})

	scenario.Run(ctx, g, api, state)

	return nil
}

// SelectScenarios returns the named scenarios in execution order, adding
// the create scenario when a selected one depends on its story. No names
// selects everything.
func SelectScenarios(all []Scenario, names []string) ([]Scenario, error) {
	if len(names) == 0 {
		return all, nil
	}

	known := make([]string, len(all))
	for i := range all {
		known[i] = all[i].Name
	}

	requested := set.New[string](names...)

	var unknown []string

	for name := range requested.Difference(set.New[string](known...)).All() {
		unknown = append(unknown, name)
	}

	if len(unknown) > 0 {
		slices.Sort(unknown)

		return nil, fmt.Errorf("%w: %s (known: %s)", ErrUnknownScenario, strings.Join(unknown, ", "), strings.Join(known, ", "))
	}

	selected := map[string]bool{}

	for name := range requested.All() {
		selected[name] = true
	}

	for _, scenario := range all {
		if selected[scenario.Name] && scenario.RequiresStory {
			selected[ScenarioCreate] = true
		}
	}

	var out []Scenario

	for _, scenario := range all {
		if selected[scenario.Name] {
			out = append(out, scenario)
		}
	}

	return out, nil
}
