package matrix_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/runmatrix/internal/constants"
	"github.com/mrz1836/runmatrix/internal/domain"
	"github.com/mrz1836/runmatrix/internal/matrix"
	"github.com/mrz1836/runmatrix/internal/testutil"
)

func sampleReport(success bool) *domain.Report {
	report := &domain.Report{
		RunID:   "11111111-2222-3333-4444-555555555555",
		Success: success,
		Results: []domain.RunResult{
			{
				Environment: "Linux",
				Status:      constants.PipelineStatusSucceeded,
				Bootstrap:   constants.StepStatusSucceeded,
				Install:     constants.StepStatusSucceeded,
				Test:        constants.StepStatusSucceeded,
				DurationMs:  1200,
			},
		},
	}
	if !success {
		report.Results = append(report.Results, domain.RunResult{
			Environment:   "Windows",
			Status:        constants.PipelineStatusFailed,
			Bootstrap:     constants.StepStatusSkipped,
			Install:       constants.StepStatusFailed,
			Test:          constants.StepStatusSkipped,
			FailedCommand: "pip install windows-pkg",
			ExitCode:      1,
			Steps: []domain.StepResult{
				{
					Step:     domain.StepInstall,
					Command:  "pip install windows-pkg",
					Status:   constants.StepStatusFailed,
					ExitCode: 1,
					Stdout:   "Collecting windows-pkg\n",
					Stderr:   "ERROR: No matching distribution found\n",
				},
			},
		})
	}
	return report
}

func TestRenderReportText_Success(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, matrix.RenderReportText(&buf, sampleReport(true)))

	out := buf.String()
	assert.Contains(t, out, "Linux")
	assert.Contains(t, out, "SUCCEEDED")
	assert.Contains(t, out, "bootstrap=succeeded install=succeeded test=succeeded")
	assert.Contains(t, out, "matrix SUCCEEDED")
	assert.NotContains(t, out, "failed command")
}

func TestRenderReportText_Failure(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, matrix.RenderReportText(&buf, sampleReport(false)))

	out := buf.String()
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "bootstrap=skipped install=failed test=skipped")
	assert.Contains(t, out, "failed command: pip install windows-pkg (exit code 1)")
	assert.Contains(t, out, "ERROR: No matching distribution found")
	assert.Contains(t, out, "matrix FAILED")
}

func TestRenderReportText_WriterFailure(t *testing.T) {
	err := matrix.RenderReportText(testutil.FailingWriter{}, sampleReport(true))

	require.Error(t, err)
	assert.ErrorIs(t, err, testutil.ErrMockWriteFailed)
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, matrix.RenderJSON(&buf, sampleReport(false)))

	var decoded domain.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "11111111-2222-3333-4444-555555555555", decoded.RunID)
	require.Len(t, decoded.Results, 2)
	assert.Equal(t, "pip install windows-pkg", decoded.Results[1].FailedCommand)
	assert.Equal(t, constants.StepStatusFailed, decoded.Results[1].Install)
}
