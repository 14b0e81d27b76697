package domain

import (
	"time"

	"github.com/mrz1836/runmatrix/internal/constants"
)

// StepResult captures the outcome of a single executed command within a
// pipeline step. Bootstrap may produce several of these, install and test
// at most one each.
type StepResult struct {
	// Step names the pipeline step this command belongs to.
	Step StepName `json:"step"`

	// Command is the shell command that was invoked.
	Command string `json:"command"`

	// Status is the outcome of this command.
	Status constants.StepStatus `json:"status"`

	// ExitCode is the process exit code (0 on success).
	ExitCode int `json:"exit_code"`

	// Stdout and Stderr are the captured output streams, kept for
	// diagnostics in the final report.
	Stdout string `json:"stdout,omitempty"`
	Stderr string `json:"stderr,omitempty"`

	// DurationMs is the wall-clock duration of the command.
	DurationMs int64 `json:"duration_ms"`

	// StartedAt is when the command was launched.
	StartedAt time.Time `json:"started_at"`

	// CompletedAt is when the command exited.
	CompletedAt time.Time `json:"completed_at"`

	// Error holds a short failure description (empty on success).
	Error string `json:"error,omitempty"`
}

// RunResult is the recorded terminal outcome of one environment pipeline.
// It is created when the pipeline starts and finalized when the pipeline
// terminates, whether by success, failure, or cancellation.
type RunResult struct {
	// Environment is the descriptor name this result belongs to.
	Environment string `json:"environment"`

	// Status is the pipeline's terminal state.
	Status constants.PipelineStatus `json:"status"`

	// Bootstrap, Install, and Test hold the per-step verdicts.
	Bootstrap constants.StepStatus `json:"bootstrap_status"`
	Install   constants.StepStatus `json:"install_status"`
	Test      constants.StepStatus `json:"test_status"`

	// ExitCode is the exit code of the failing command, or 0 when every
	// executed command succeeded.
	ExitCode int `json:"exit_code"`

	// FailedCommand is the command that caused the failure, if any.
	FailedCommand string `json:"failed_command,omitempty"`

	// DurationMs is the wall-clock duration of the whole pipeline.
	DurationMs int64 `json:"duration_ms"`

	// Steps holds every executed command's result in execution order.
	Steps []StepResult `json:"steps,omitempty"`
}

// Succeeded reports whether this pipeline reached a full verdict: the
// test step, and therefore every step before it, succeeded.
func (r *RunResult) Succeeded() bool {
	return r.Test == constants.StepStatusSucceeded
}

// Report aggregates the Run Results of one matrix invocation.
type Report struct {
	// RunID uniquely identifies this matrix invocation.
	RunID string `json:"run_id"`

	// Results holds one entry per selected environment, in declaration order.
	Results []RunResult `json:"results"`

	// Success is true iff every result's test status is succeeded.
	Success bool `json:"success"`

	// StartedAt and CompletedAt bound the whole run.
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`

	// DurationMs is the wall-clock duration of the whole run.
	DurationMs int64 `json:"duration_ms"`
}

// Finalize computes the aggregate verdict and timing fields.
// The overall verdict is succeeded iff every pipeline's test step
// succeeded; skipped or canceled pipelines therefore fail the run.
func (rep *Report) Finalize(completedAt time.Time) {
	rep.CompletedAt = completedAt
	rep.DurationMs = completedAt.Sub(rep.StartedAt).Milliseconds()
	rep.Success = true
	for i := range rep.Results {
		if !rep.Results[i].Succeeded() {
			rep.Success = false
			return
		}
	}
	if len(rep.Results) == 0 {
		rep.Success = false
	}
}

// Result returns the RunResult for the named environment, or nil.
func (rep *Report) Result(name string) *RunResult {
	for i := range rep.Results {
		if rep.Results[i].Environment == name {
			return &rep.Results[i]
		}
	}
	return nil
}
