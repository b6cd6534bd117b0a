package core

import (
	"errors"
	"fmt"
	"os"

	"github.com/arcadecab/cabcheck/internal/contract"
	"github.com/arcadecab/cabcheck/schema"
)

// ErrThresholdFailed is returned by ExecuteCheck when the minimum status gate fails.
var ErrThresholdFailed = errors.New("status threshold not met")

// ThresholdReport is the outcome of the minimum status gate.
type ThresholdReport struct {
	MinStatus  schema.OverallStatus
	Checked    int
	Passed     bool
	Violations []schema.GameCompatibility
}

// EvaluateThreshold checks the known overall status of every result against minStatus.
// UNKNOWN never passes.
func EvaluateThreshold(results []schema.GameCompatibility, minStatus schema.OverallStatus) ThresholdReport {
	report := ThresholdReport{MinStatus: minStatus, Checked: len(results)}
	for _, r := range results {
		if !schema.IsKnown(r.KnownOverallStatus) || schema.CompareStatus(r.KnownOverallStatus, minStatus) < 0 {
			report.Violations = append(report.Violations, r)
		}
	}
	report.Passed = len(report.Violations) == 0
	return report
}

// printThresholdReport prints the gate outcome to stderr so that it never mixes with
// structured output on stdout.
func printThresholdReport(report ThresholdReport, useColors bool) {
	if report.Passed {
		fmt.Fprintf(os.Stderr, "✅ All %d games are at least %s\n", report.Checked, report.MinStatus)
		return
	}
	fmt.Fprintf(os.Stderr, "❌ %d of %d games are below %s:\n", len(report.Violations), report.Checked, report.MinStatus)
	for _, v := range report.Violations {
		label := contract.GetLabel(v.KnownOverallStatus.String(), v.KnownOverallStatus, useColors)
		fmt.Fprintf(os.Stderr, "  %s: %s\n", v.GameNameInput, label)
	}
}
