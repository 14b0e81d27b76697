// Package matrix implements the build-and-test orchestrator: it drives the
// Bootstrap → Install → Test pipeline for each environment descriptor and
// aggregates the per-environment verdicts into a single run report.
//
// This file implements the pipeline state machine, which enforces valid
// state transitions. There are no transitions back to an earlier state:
// a failing command is a deterministic configuration defect and is
// reported, never retried.
package matrix

import (
	"github.com/mrz1836/runmatrix/internal/constants"
	rmerrors "github.com/mrz1836/runmatrix/internal/errors"
)

// ValidTransitions defines all allowed state transitions in the pipeline
// lifecycle. Format: from_status -> []to_statuses
//
// The state machine follows this flow:
//
//	Pending → Bootstrapping
//	Bootstrapping → Installing, Failed, Canceled
//	Installing → Testing, Failed, Canceled
//	Testing → Succeeded, Failed, Canceled
//
// Bootstrapping advances to Installing on bootstrap success or skip (an
// empty pre-install sequence is vacuously successful).
//
//nolint:gochecknoglobals // Exported for testing and read-only lookup table
var ValidTransitions = map[constants.PipelineStatus][]constants.PipelineStatus{
	constants.PipelineStatusPending: {constants.PipelineStatusBootstrapping},
	constants.PipelineStatusBootstrapping: {
		constants.PipelineStatusInstalling,
		constants.PipelineStatusFailed,
		constants.PipelineStatusCanceled,
	},
	constants.PipelineStatusInstalling: {
		constants.PipelineStatusTesting,
		constants.PipelineStatusFailed,
		constants.PipelineStatusCanceled,
	},
	constants.PipelineStatusTesting: {
		constants.PipelineStatusSucceeded,
		constants.PipelineStatusFailed,
		constants.PipelineStatusCanceled,
	},
}

// terminalStatuses defines states where no further transitions are allowed.
// Terminal states are those NOT present as keys in ValidTransitions.
//
//nolint:gochecknoglobals // Read-only lookup table for terminal state checks
var terminalStatuses = map[constants.PipelineStatus]bool{
	constants.PipelineStatusSucceeded: true,
	constants.PipelineStatusFailed:    true,
	constants.PipelineStatusCanceled:  true,
}

// IsValidTransition checks if a transition from one status to another is
// allowed. Returns false for transitions from terminal states or to the
// same state.
func IsValidTransition(from, to constants.PipelineStatus) bool {
	if from == to {
		return false
	}

	validTargets, exists := ValidTransitions[from]
	if !exists {
		return false // Terminal state or unknown state
	}
	for _, target := range validTargets {
		if target == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus returns true for states where no further transitions
// are allowed. Terminal states: Succeeded, Failed, Canceled.
func IsTerminalStatus(status constants.PipelineStatus) bool {
	return terminalStatuses[status]
}

// transition validates and applies a state transition to a pipeline.
// Returns a wrapped ErrInvalidTransition when the transition is not
// allowed; the pipeline driver treats that as a programming error.
func transition(p *pipeline, to constants.PipelineStatus) error {
	if !IsValidTransition(p.status, to) {
		return rmerrors.Wrapf(rmerrors.ErrInvalidTransition,
			"cannot transition from %s to %s", p.status, to)
	}
	p.status = to
	return nil
}
