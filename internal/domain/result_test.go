package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/runmatrix/internal/constants"
	"github.com/mrz1836/runmatrix/internal/domain"
)

func succeededResult(name string) domain.RunResult {
	return domain.RunResult{
		Environment: name,
		Status:      constants.PipelineStatusSucceeded,
		Bootstrap:   constants.StepStatusSkipped,
		Install:     constants.StepStatusSucceeded,
		Test:        constants.StepStatusSucceeded,
	}
}

func TestRunResultSucceeded(t *testing.T) {
	tests := []struct {
		name string
		test constants.StepStatus
		want bool
	}{
		{"test succeeded", constants.StepStatusSucceeded, true},
		{"test failed", constants.StepStatusFailed, false},
		{"test skipped", constants.StepStatusSkipped, false},
		{"test pending", constants.StepStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := domain.RunResult{Test: tt.test}
			assert.Equal(t, tt.want, r.Succeeded())
		})
	}
}

func TestReportFinalize(t *testing.T) {
	t.Run("success when every test succeeded", func(t *testing.T) {
		started := time.Now().Add(-2 * time.Second)
		rep := &domain.Report{
			StartedAt: started,
			Results:   []domain.RunResult{succeededResult("Linux"), succeededResult("macOS")},
		}

		rep.Finalize(time.Now())

		assert.True(t, rep.Success)
		assert.GreaterOrEqual(t, rep.DurationMs, int64(2000))
	})

	t.Run("failure when any test did not succeed", func(t *testing.T) {
		failed := succeededResult("Windows")
		failed.Test = constants.StepStatusSkipped
		failed.Status = constants.PipelineStatusFailed

		rep := &domain.Report{
			StartedAt: time.Now(),
			Results:   []domain.RunResult{succeededResult("Linux"), failed},
		}

		rep.Finalize(time.Now())

		assert.False(t, rep.Success)
	})

	t.Run("failure for empty result set", func(t *testing.T) {
		rep := &domain.Report{StartedAt: time.Now()}
		rep.Finalize(time.Now())
		assert.False(t, rep.Success)
	})
}

func TestReportResult(t *testing.T) {
	rep := &domain.Report{
		Results: []domain.RunResult{succeededResult("Linux"), succeededResult("macOS")},
	}

	got := rep.Result("macOS")
	require.NotNil(t, got)
	assert.Equal(t, "macOS", got.Environment)

	assert.Nil(t, rep.Result("Windows"))
}
