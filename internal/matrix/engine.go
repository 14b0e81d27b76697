package matrix

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/runmatrix/internal/clock"
	"github.com/mrz1836/runmatrix/internal/constants"
	"github.com/mrz1836/runmatrix/internal/ctxutil"
	"github.com/mrz1836/runmatrix/internal/domain"
	rmerrors "github.com/mrz1836/runmatrix/internal/errors"
)

// Engine sequences the environment pipelines and aggregates their Run
// Results into a report. Pipelines are independent units of work with no
// shared mutable state, so they run concurrently up to MaxParallel.
type Engine struct {
	exec        StepExecutor
	logger      zerolog.Logger
	clk         clock.Clock
	maxParallel int
	failFast    bool
}

// Options configures an Engine.
type Options struct {
	// MaxParallel bounds concurrent pipelines. Values below 1 mean the
	// default.
	MaxParallel int

	// FailFast cancels not-yet-started pipelines once any pipeline fails.
	// In-flight pipelines finish their current command; nothing is killed.
	FailFast bool

	// Clock overrides the time source used for report timestamps and
	// durations. Nil means the system clock.
	Clock clock.Clock
}

// NewEngine creates an orchestration engine.
func NewEngine(exec StepExecutor, logger zerolog.Logger, opts Options) *Engine {
	maxParallel := opts.MaxParallel
	if maxParallel < 1 {
		maxParallel = constants.DefaultMaxParallel
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Engine{
		exec:        exec,
		logger:      logger,
		clk:         clk,
		maxParallel: maxParallel,
		failFast:    opts.FailFast,
	}
}

// Run executes every environment pipeline and returns the aggregated
// report. The report always contains one Run Result per environment, in
// declaration order, regardless of outcome: no partial successes are
// silently dropped.
//
// The returned error is ErrMatrixFailed when the aggregate verdict is
// failed; per-environment detail lives in the report. Context
// cancellation (user interrupt) stops launching new pipelines and lets
// in-flight commands finish.
func (e *Engine) Run(ctx context.Context, envs []domain.Environment) (*domain.Report, error) {
	report := &domain.Report{
		RunID:     uuid.NewString(),
		Results:   make([]domain.RunResult, len(envs)),
		StartedAt: e.clk.Now(),
	}

	log := e.logger.With().Str("run_id", report.RunID).Logger()
	ctx = log.WithContext(ctx)

	log.Info().
		Int("environments", len(envs)).
		Int("max_parallel", e.maxParallel).
		Bool("fail_fast", e.failFast).
		Msg("starting matrix run")

	// runCtx gates pipeline launches. Fail-fast and user cancellation
	// cancel it; a pipeline that has not started then records an
	// all-skipped canceled result instead of running.
	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	var g errgroup.Group
	g.SetLimit(e.maxParallel)

	for i := range envs {
		i := i
		g.Go(func() error {
			env := envs[i]

			if ctxutil.Canceled(runCtx) != nil {
				report.Results[i] = canceledResult(env)
				return nil
			}

			result := newPipeline(env, e.exec, e.clk).run(runCtx)
			report.Results[i] = result

			if e.failFast && result.Status == constants.PipelineStatusFailed {
				log.Warn().
					Str("environment", env.Name).
					Msg("pipeline failed, canceling remaining pipelines (fail-fast)")
				cancelRun()
			}
			return nil
		})
	}

	// Goroutines never return errors; failures live in the Run Results.
	_ = g.Wait()

	report.Finalize(e.clk.Now())

	log.Info().
		Bool("success", report.Success).
		Int64("duration_ms", report.DurationMs).
		Msg("matrix run finished")

	if !report.Success {
		return report, rmerrors.ErrMatrixFailed
	}
	return report, nil
}

// canceledResult records a pipeline that was never launched because the
// run was canceled first. Every step is skipped; skipped is not a
// failure, but it still prevents an overall succeeded verdict.
func canceledResult(env domain.Environment) domain.RunResult {
	return domain.RunResult{
		Environment: env.Name,
		Status:      constants.PipelineStatusCanceled,
		Bootstrap:   constants.StepStatusSkipped,
		Install:     constants.StepStatusSkipped,
		Test:        constants.StepStatusSkipped,
	}
}
