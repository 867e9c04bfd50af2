package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/omopgraph/omopgraph/client"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration and connectivity",
		Long:  "Run diagnostic checks against config, server health, and readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

type checkResult struct {
	Name   string
	Passed bool
	Detail string
	Hint   string
}

func runDoctor(ctx context.Context, out io.Writer) error {
	fmt.Fprintln(out, "\nomopgraph doctor")
	fmt.Fprintln(out, "================")

	results := doctorChecks(ctx)

	fmt.Fprintln(out)
	allPassed := true
	for _, r := range results {
		mark := "ok  "
		if !r.Passed {
			mark = "FAIL"
			allPassed = false
		}
		if r.Detail != "" {
			fmt.Fprintf(out, "[%s] %s: %s\n", mark, r.Name, r.Detail)
		} else {
			fmt.Fprintf(out, "[%s] %s\n", mark, r.Name)
		}
		if !r.Passed && r.Hint != "" {
			fmt.Fprintf(out, "       Hint: %s\n", r.Hint)
		}
	}

	fmt.Fprintln(out)
	if !allPassed {
		fmt.Fprintln(out, "Some checks failed.")
		return fmt.Errorf("doctor found issues")
	}
	fmt.Fprintln(out, "All checks passed.")
	return nil
}

func doctorChecks(ctx context.Context) []checkResult {
	var results []checkResult

	// Config file is optional; report where it was looked for.
	cfgPath, _, cfgErr := loadConfigFile()
	if cfgErr != nil {
		results = append(results, checkResult{Name: "Config file", Passed: true, Detail: "not found, using flags/env (" + cfgPath + ")"})
	} else {
		results = append(results, checkResult{Name: "Config file", Passed: true, Detail: cfgPath})
	}

	results = append(results, checkResult{Name: "Server URL", Passed: flagURL != "", Detail: flagURL, Hint: "Set --url, OMOPGRAPH_URL, or run omopgraph init"})
	if flagURL == "" {
		return results
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	health, err := apiClient.Health(ctx)
	if err != nil {
		return append(results, checkResult{
			Name: "Server reachable", Passed: false, Detail: flagURL,
			Hint: fmt.Sprintf("Is the omopgraph server running? Error: %v", err),
		})
	}
	results = append(results, checkResult{Name: "Server reachable", Passed: true, Detail: "v" + health.Version})
	results = append(results, checkResult{
		Name: "Database", Passed: health.Database == "connected", Detail: health.Database,
		Hint: "Check DATABASE_URL on the server",
	})

	ready, err := apiClient.Ready(ctx)
	if err != nil {
		detail := err.Error()
		if client.IsNotFound(err) {
			detail = "readiness endpoint missing"
		}
		return append(results, checkResult{
			Name: "Concept schema", Passed: false, Detail: detail,
			Hint: "Check OMOP_SCHEMA on the server and that concept and concept_relationship are loaded",
		})
	}
	results = append(results, checkResult{Name: "Concept schema", Passed: ready.Checks["schema"] == "ok", Detail: ready.Checks["schema"]})

	return results
}
