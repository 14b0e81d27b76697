package matrix_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/runmatrix/internal/clock"
	"github.com/mrz1836/runmatrix/internal/constants"
	"github.com/mrz1836/runmatrix/internal/domain"
	"github.com/mrz1836/runmatrix/internal/errors"
	"github.com/mrz1836/runmatrix/internal/matrix"
)

// scriptedExecutor fakes command execution: commands listed in fail return
// a failed step result, everything else succeeds. Safe for concurrent use.
type scriptedExecutor struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
}

func (s *scriptedExecutor) RunCommand(_ context.Context, step domain.StepName, env *domain.Environment, command string) (*domain.StepResult, error) {
	s.mu.Lock()
	s.calls = append(s.calls, env.Name+": "+command)
	s.mu.Unlock()

	result := &domain.StepResult{
		Step:    step,
		Command: command,
		Status:  constants.StepStatusSucceeded,
	}
	if s.fail[command] {
		result.Status = constants.StepStatusFailed
		result.ExitCode = 1
		result.Stderr = "command failed\n"
		return result, errors.Wrapf(errors.ErrCommandFailed, "%s", command)
	}
	return result, nil
}

func (s *scriptedExecutor) callsFor(env string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var got []string
	for _, call := range s.calls {
		if strings.HasPrefix(call, env+": ") {
			got = append(got, call)
		}
	}
	return got
}

func matrixEnvironments() []domain.Environment {
	return []domain.Environment{
		{
			Name:           "Linux",
			OS:             "linux",
			Runtime:        "python",
			PreInstall:     []string{"apt-get update", "apt-get install -y libomp-dev"},
			InstallCommand: "pip install linux-pkg",
			TestCommand:    "pytest linux",
			Env:            map[string]string{"OMP_NUM_THREADS": "1"},
		},
		{
			Name:           "Windows",
			OS:             "windows",
			Runtime:        "python",
			InstallCommand: "pip install windows-pkg",
			TestCommand:    "pytest windows",
		},
	}
}

func newTestEngine(exec matrix.StepExecutor, opts matrix.Options) *matrix.Engine {
	return matrix.NewEngine(exec, zerolog.Nop(), opts)
}

func TestEngineRun_AllSucceed(t *testing.T) {
	exec := &scriptedExecutor{}
	engine := newTestEngine(exec, matrix.Options{})

	report, err := engine.Run(context.Background(), matrixEnvironments())
	require.NoError(t, err)

	assert.True(t, report.Success)
	assert.NotEmpty(t, report.RunID)
	require.Len(t, report.Results, 2)

	linux := report.Results[0]
	assert.Equal(t, "Linux", linux.Environment)
	assert.Equal(t, constants.PipelineStatusSucceeded, linux.Status)
	assert.Equal(t, constants.StepStatusSucceeded, linux.Bootstrap)
	assert.Equal(t, constants.StepStatusSucceeded, linux.Install)
	assert.Equal(t, constants.StepStatusSucceeded, linux.Test)

	windows := report.Results[1]
	assert.Equal(t, "Windows", windows.Environment)
	assert.Equal(t, constants.PipelineStatusSucceeded, windows.Status)
	assert.Equal(t, constants.StepStatusSkipped, windows.Bootstrap, "empty pre-install sequence is skipped")
	assert.Equal(t, constants.StepStatusSucceeded, windows.Test)
}

func TestEngineRun_BootstrapRunsInDeclaredOrder(t *testing.T) {
	exec := &scriptedExecutor{}
	engine := newTestEngine(exec, matrix.Options{MaxParallel: 1})

	_, err := engine.Run(context.Background(), matrixEnvironments())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Linux: apt-get update",
		"Linux: apt-get install -y libomp-dev",
		"Linux: pip install linux-pkg",
		"Linux: pytest linux",
	}, exec.callsFor("Linux"))
}

func TestEngineRun_InstallFailureSkipsTest(t *testing.T) {
	exec := &scriptedExecutor{fail: map[string]bool{"pip install windows-pkg": true}}
	engine := newTestEngine(exec, matrix.Options{})

	report, err := engine.Run(context.Background(), matrixEnvironments())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMatrixFailed)
	assert.False(t, report.Success)

	windows := report.Results[1]
	assert.Equal(t, constants.PipelineStatusFailed, windows.Status)
	assert.Equal(t, constants.StepStatusFailed, windows.Install)
	assert.Equal(t, constants.StepStatusSkipped, windows.Test)
	assert.Equal(t, "pip install windows-pkg", windows.FailedCommand)
	assert.Equal(t, 1, windows.ExitCode)
	assert.NotContains(t, exec.callsFor("Windows"), "Windows: pytest windows")

	// The sibling pipeline is unaffected.
	linux := report.Results[0]
	assert.Equal(t, constants.PipelineStatusSucceeded, linux.Status)
	assert.True(t, linux.Succeeded())
}

func TestEngineRun_BootstrapFailureShortCircuits(t *testing.T) {
	exec := &scriptedExecutor{fail: map[string]bool{"apt-get update": true}}
	engine := newTestEngine(exec, matrix.Options{})

	report, err := engine.Run(context.Background(), matrixEnvironments())
	require.Error(t, err)

	linux := report.Results[0]
	assert.Equal(t, constants.PipelineStatusFailed, linux.Status)
	assert.Equal(t, constants.StepStatusFailed, linux.Bootstrap)
	assert.Equal(t, constants.StepStatusSkipped, linux.Install)
	assert.Equal(t, constants.StepStatusSkipped, linux.Test)

	// The remaining bootstrap command never runs.
	assert.Equal(t, []string{"Linux: apt-get update"}, exec.callsFor("Linux"))
}

func TestEngineRun_TestFailureRecorded(t *testing.T) {
	exec := &scriptedExecutor{fail: map[string]bool{"pytest linux": true}}
	engine := newTestEngine(exec, matrix.Options{})

	report, err := engine.Run(context.Background(), matrixEnvironments())
	require.Error(t, err)

	linux := report.Results[0]
	assert.Equal(t, constants.PipelineStatusFailed, linux.Status)
	assert.Equal(t, constants.StepStatusSucceeded, linux.Bootstrap)
	assert.Equal(t, constants.StepStatusSucceeded, linux.Install)
	assert.Equal(t, constants.StepStatusFailed, linux.Test)
	assert.False(t, linux.Succeeded())
}

func TestEngineRun_FailFastCancelsRemaining(t *testing.T) {
	// MaxParallel 1 serializes pipeline launches, so the failing first
	// environment deterministically cancels the second before it starts.
	exec := &scriptedExecutor{fail: map[string]bool{"pip install linux-pkg": true}}
	engine := newTestEngine(exec, matrix.Options{MaxParallel: 1, FailFast: true})

	report, err := engine.Run(context.Background(), matrixEnvironments())
	require.Error(t, err)
	assert.False(t, report.Success)

	assert.Equal(t, constants.PipelineStatusFailed, report.Results[0].Status)

	windows := report.Results[1]
	assert.Equal(t, constants.PipelineStatusCanceled, windows.Status)
	assert.Equal(t, constants.StepStatusSkipped, windows.Bootstrap)
	assert.Equal(t, constants.StepStatusSkipped, windows.Install)
	assert.Equal(t, constants.StepStatusSkipped, windows.Test)
	assert.Empty(t, exec.callsFor("Windows"))
}

func TestEngineRun_WithoutFailFastAllRun(t *testing.T) {
	exec := &scriptedExecutor{fail: map[string]bool{"pip install linux-pkg": true}}
	engine := newTestEngine(exec, matrix.Options{MaxParallel: 1})

	report, err := engine.Run(context.Background(), matrixEnvironments())
	require.Error(t, err)

	assert.Equal(t, constants.PipelineStatusFailed, report.Results[0].Status)
	assert.Equal(t, constants.PipelineStatusSucceeded, report.Results[1].Status)
}

func TestEngineRun_CanceledBeforeStart(t *testing.T) {
	exec := &scriptedExecutor{}
	engine := newTestEngine(exec, matrix.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := engine.Run(ctx, matrixEnvironments())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMatrixFailed)
	assert.False(t, report.Success)

	for _, result := range report.Results {
		assert.Equal(t, constants.PipelineStatusCanceled, result.Status)
		assert.Equal(t, constants.StepStatusSkipped, result.Bootstrap)
		assert.Equal(t, constants.StepStatusSkipped, result.Install)
		assert.Equal(t, constants.StepStatusSkipped, result.Test)
	}
	assert.Empty(t, exec.calls)
}

func TestEngineRun_DurationsFromClock(t *testing.T) {
	start := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	clk := clock.NewStubClock(start, time.Second)
	engine := newTestEngine(&scriptedExecutor{}, matrix.Options{MaxParallel: 1, Clock: clk})

	report, err := engine.Run(context.Background(), matrixEnvironments())
	require.NoError(t, err)

	// Serialized clock reads: engine start, two reads per pipeline, finalize.
	assert.Equal(t, start, report.StartedAt)
	assert.Equal(t, int64(1000), report.Results[0].DurationMs)
	assert.Equal(t, int64(1000), report.Results[1].DurationMs)
	assert.Equal(t, int64(5000), report.DurationMs)
}

func TestEngineRun_Idempotent(t *testing.T) {
	// A failing matrix reports the same verdicts on every run: failures
	// are configuration defects, never retried.
	for run := 0; run < 2; run++ {
		exec := &scriptedExecutor{fail: map[string]bool{"pytest windows": true}}
		engine := newTestEngine(exec, matrix.Options{MaxParallel: 1})

		report, err := engine.Run(context.Background(), matrixEnvironments())
		require.Error(t, err)
		assert.Equal(t, constants.PipelineStatusSucceeded, report.Results[0].Status)
		assert.Equal(t, constants.PipelineStatusFailed, report.Results[1].Status)
		assert.Equal(t, "pytest windows", report.Results[1].FailedCommand)
	}
}
