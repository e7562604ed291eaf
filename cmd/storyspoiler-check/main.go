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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/storyspoiler/apitest/test/api"
)

const (
	exitFailed = 1
	exitUsage  = 2
)

type options struct {
	run              []string
	list             bool
	baseURL          string
	validateContract bool
}

func (o *options) addFlags(f *pflag.FlagSet) {
	f.StringSliceVar(&o.run, "run", nil, "Scenarios to run, in any order. Dependencies are added automatically.")
	f.BoolVar(&o.list, "list", false, "List the scenarios and exit.")
	f.StringVar(&o.baseURL, "base-url", "", "Service base URL, overrides API_BASE_URL.")
	f.BoolVar(&o.validateContract, "validate-contract", false, "Validate every response against the API description.")
}

func newLogger(debug bool) (logr.Logger, func(), error) {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = true

	logger, err := config.Build()
	if err != nil {
		return logr.Discard(), nil, err
	}

	return zapr.NewLogger(logger), func() { _ = logger.Sync() }, nil
}

func printScenarios(w io.Writer, scenarios []api.Scenario) {
	for _, s := range scenarios {
		requires := ""
		if s.RequiresStory {
			requires = " (requires " + api.ScenarioCreate + ")"
		}

		fmt.Fprintf(w, "%d. %-22s %s%s\n", s.Order, s.Name, s.Description, requires)
	}
}

func printReport(w io.Writer, report *api.Report) {
	for _, o := range report.Outcomes {
		switch o.Status {
		case api.StatusPassed:
			fmt.Fprintf(w, "PASS %-22s %s\n", o.Scenario, o.Duration)
		case api.StatusFailed:
			fmt.Fprintf(w, "FAIL %-22s %s\n     %v\n", o.Scenario, o.Duration, o.Err)
		case api.StatusSkipped:
			fmt.Fprintf(w, "SKIP %-22s %v\n", o.Scenario, o.Err)
		default:
			fmt.Fprintf(w, "---- %-22s not run\n", o.Scenario)
		}
	}

	if report.Aborted != nil {
		fmt.Fprintf(w, "\naborted: %v\n", report.Aborted)
	}

	fmt.Fprintf(w, "\n%d passed, %d failed, %d skipped, %d not run\n",
		report.Count(api.StatusPassed), report.Count(api.StatusFailed), report.Count(api.StatusSkipped), report.Count(api.StatusNotRun))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var o options

	flags := pflag.NewFlagSet("storyspoiler-check", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	o.addFlags(flags)

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}

		return exitUsage
	}

	scenarios, err := api.SelectScenarios(api.Scenarios(), o.run)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	if o.list {
		printScenarios(stdout, scenarios)
		return 0
	}

	config, err := api.LoadTestConfig()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	if flags.Changed("base-url") {
		config.BaseURL = o.baseURL
	}

	if flags.Changed("validate-contract") {
		config.ValidateContract = o.validateContract
	}

	log, sync, err := newLogger(config.DebugLogging)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	defer sync()

	log.Info("checking service", "baseURL", config.BaseURL, "scenarios", len(scenarios))

	report := api.NewRunner(api.Connector(config, log), log).Run(ctx, scenarios)

	printReport(stdout, report)

	if report.Failed() {
		return exitFailed
	}

	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}
