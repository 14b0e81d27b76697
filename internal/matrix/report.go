package matrix

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mrz1836/runmatrix/internal/constants"
	"github.com/mrz1836/runmatrix/internal/domain"
	"github.com/mrz1836/runmatrix/internal/logging"
)

// RenderReportText writes the final run report in a human-readable form:
// each environment's terminal status, per-step verdicts, and for any
// failed step the failing command with its captured diagnostic output.
func RenderReportText(w io.Writer, report *domain.Report) error {
	for i := range report.Results {
		if err := renderResultText(w, &report.Results[i]); err != nil {
			return err
		}
	}

	verdict := "FAILED"
	if report.Success {
		verdict = "SUCCEEDED"
	}
	_, err := fmt.Fprintf(w, "\nmatrix %s (run %s, %dms)\n", verdict, report.RunID, report.DurationMs)
	return err
}

func renderResultText(w io.Writer, result *domain.RunResult) error {
	_, err := fmt.Fprintf(w, "%-12s %-9s bootstrap=%s install=%s test=%s (%dms)\n",
		result.Environment,
		strings.ToUpper(result.Status.String()),
		result.Bootstrap, result.Install, result.Test,
		result.DurationMs)
	if err != nil {
		return err
	}

	if result.Status != constants.PipelineStatusFailed {
		return nil
	}

	if _, err = fmt.Fprintf(w, "  failed command: %s (exit code %d)\n",
		logging.FilterSensitiveValue(result.FailedCommand), result.ExitCode); err != nil {
		return err
	}

	diag := failingStep(result)
	if diag == nil {
		return nil
	}
	if out := strings.TrimSpace(diag.Stdout); out != "" {
		if _, err = fmt.Fprintf(w, "  stdout:\n%s\n", indent(logging.FilterSensitiveValue(out))); err != nil {
			return err
		}
	}
	if out := strings.TrimSpace(diag.Stderr); out != "" {
		if _, err = fmt.Fprintf(w, "  stderr:\n%s\n", indent(logging.FilterSensitiveValue(out))); err != nil {
			return err
		}
	}
	return nil
}

// failingStep returns the step result of the command that failed, if any.
func failingStep(result *domain.RunResult) *domain.StepResult {
	for i := range result.Steps {
		if result.Steps[i].Status == constants.StepStatusFailed {
			return &result.Steps[i]
		}
	}
	return nil
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "    " + line
	}
	return strings.Join(lines, "\n")
}

// RenderJSON writes any report or plan value as indented JSON.
func RenderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
