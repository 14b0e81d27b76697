package constants

// StepStatus represents the outcome of a single pipeline step
// (bootstrap, install, or test). Status values use snake_case for
// JSON serialization compatibility.
type StepStatus string

// Step status constants define the valid outcomes of a pipeline step.
const (
	// StepStatusPending indicates the step has not run yet.
	StepStatusPending StepStatus = "pending"

	// StepStatusSucceeded indicates every command of the step exited zero.
	StepStatusSucceeded StepStatus = "succeeded"

	// StepStatusFailed indicates a command of the step exited non-zero.
	StepStatusFailed StepStatus = "failed"

	// StepStatusSkipped indicates the step did not run: either its command
	// list was empty (bootstrap with no pre-install commands is vacuously
	// successful), an earlier required step did not succeed, or a
	// cancellation was requested before the step started.
	StepStatusSkipped StepStatus = "skipped"
)

// String returns the string representation of the StepStatus.
// This implements fmt.Stringer for convenient logging and debugging.
func (s StepStatus) String() string {
	return string(s)
}

// PipelineStatus represents the state of one environment pipeline in the
// run-matrix state machine. Status values use snake_case for JSON
// serialization compatibility.
type PipelineStatus string

// Pipeline status constants define the valid states a pipeline can be in.
// These follow the state machine:
//
//	Pending → Bootstrapping
//	Bootstrapping → Installing, Failed, Canceled
//	Installing → Testing, Failed, Canceled
//	Testing → Succeeded, Failed, Canceled
const (
	// PipelineStatusPending indicates the pipeline is declared but not started.
	PipelineStatusPending PipelineStatus = "pending"

	// PipelineStatusBootstrapping indicates pre-install commands are running.
	PipelineStatusBootstrapping PipelineStatus = "bootstrapping"

	// PipelineStatusInstalling indicates the install command is running.
	PipelineStatusInstalling PipelineStatus = "installing"

	// PipelineStatusTesting indicates the test command is running.
	PipelineStatusTesting PipelineStatus = "testing"

	// PipelineStatusSucceeded indicates bootstrap, install, and test all
	// completed with exit code zero (bootstrap may be skipped-empty).
	PipelineStatusSucceeded PipelineStatus = "succeeded"

	// PipelineStatusFailed indicates a step command exited non-zero.
	// Later steps are recorded as skipped, never failed.
	PipelineStatusFailed PipelineStatus = "failed"

	// PipelineStatusCanceled indicates a cooperative cancellation stopped
	// the pipeline before it reached a verdict. Remaining steps are
	// recorded as skipped; cancellation is not a failure, but a canceled
	// pipeline still prevents an overall succeeded verdict.
	PipelineStatusCanceled PipelineStatus = "canceled"
)

// String returns the string representation of the PipelineStatus.
// This implements fmt.Stringer for convenient logging and debugging.
func (s PipelineStatus) String() string {
	return string(s)
}
