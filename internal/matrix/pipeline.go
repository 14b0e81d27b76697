package matrix

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mrz1836/runmatrix/internal/clock"
	"github.com/mrz1836/runmatrix/internal/constants"
	"github.com/mrz1836/runmatrix/internal/ctxutil"
	"github.com/mrz1836/runmatrix/internal/domain"
)

// pipeline drives one environment descriptor through the
// Bootstrap → Install → Test sequence. Each pipeline owns its result and
// shares no mutable state with sibling pipelines.
type pipeline struct {
	env    domain.Environment
	exec   StepExecutor
	clk    clock.Clock
	log    zerolog.Logger
	status constants.PipelineStatus
	result domain.RunResult
}

// StepExecutor runs one command of a pipeline step. Satisfied by
// execute.Executor; tests substitute scripted implementations.
type StepExecutor interface {
	RunCommand(ctx context.Context, step domain.StepName, env *domain.Environment, command string) (*domain.StepResult, error)
}

func newPipeline(env domain.Environment, exec StepExecutor, clk clock.Clock) *pipeline {
	return &pipeline{
		env:    env,
		exec:   exec,
		clk:    clk,
		status: constants.PipelineStatusPending,
		result: domain.RunResult{
			Environment: env.Name,
			Status:      constants.PipelineStatusPending,
			Bootstrap:   constants.StepStatusPending,
			Install:     constants.StepStatusPending,
			Test:        constants.StepStatusPending,
		},
	}
}

// run executes the pipeline and returns its finalized Run Result.
// Failures are recorded in the result, never returned: a failing
// environment must not disturb its siblings.
func (p *pipeline) run(ctx context.Context) domain.RunResult {
	log := zerolog.Ctx(ctx).With().Str("environment", p.env.Name).Logger()
	ctx = log.WithContext(ctx)
	p.log = log

	startedAt := p.clk.Now()
	log.Info().
		Str("os", p.env.OS).
		Str("runtime", p.env.Runtime).
		Int("pre_install_commands", len(p.env.PreInstall)).
		Msg("starting pipeline")

	p.advance(constants.PipelineStatusBootstrapping)
	p.runBootstrap(ctx)

	if p.result.Bootstrap == constants.StepStatusSucceeded ||
		(p.result.Bootstrap == constants.StepStatusSkipped && p.status == constants.PipelineStatusBootstrapping) {
		p.advance(constants.PipelineStatusInstalling)
		p.runSingle(ctx, domain.StepInstall)
	} else {
		p.result.Install = constants.StepStatusSkipped
	}

	if p.result.Install == constants.StepStatusSucceeded {
		p.advance(constants.PipelineStatusTesting)
		p.runSingle(ctx, domain.StepTest)
	} else {
		p.result.Test = constants.StepStatusSkipped
	}

	if p.result.Test == constants.StepStatusSucceeded {
		p.advance(constants.PipelineStatusSucceeded)
	}

	p.result.Status = p.status
	p.result.DurationMs = p.clk.Now().Sub(startedAt).Milliseconds()

	log.Info().
		Stringer("status", p.status).
		Stringer("bootstrap", p.result.Bootstrap).
		Stringer("install", p.result.Install).
		Stringer("test", p.result.Test).
		Int64("duration_ms", p.result.DurationMs).
		Msg("pipeline finished")

	return p.result
}

// runBootstrap executes the pre-install command sequence strictly in
// declared order, stopping at the first non-zero exit. An empty sequence
// is recorded as skipped and the pipeline proceeds to install.
// Cancellation is checked before each command; the command in flight is
// never killed.
func (p *pipeline) runBootstrap(ctx context.Context) {
	if len(p.env.PreInstall) == 0 {
		p.result.Bootstrap = constants.StepStatusSkipped
		return
	}

	for _, command := range p.env.PreInstall {
		if ctxutil.Canceled(ctx) != nil {
			p.markCanceled(&p.result.Bootstrap)
			return
		}

		result, err := p.exec.RunCommand(ctx, domain.StepBootstrap, &p.env, command)
		p.record(result)
		if err != nil {
			p.fail(result)
			p.result.Bootstrap = constants.StepStatusFailed
			return
		}
	}

	p.result.Bootstrap = constants.StepStatusSucceeded
}

// runSingle executes the install or test command.
func (p *pipeline) runSingle(ctx context.Context, step domain.StepName) {
	target := p.stepStatus(step)

	if ctxutil.Canceled(ctx) != nil {
		p.markCanceled(target)
		return
	}

	command := p.env.InstallCommand
	if step == domain.StepTest {
		command = p.env.TestCommand
	}

	result, err := p.exec.RunCommand(ctx, step, &p.env, command)
	p.record(result)
	if err != nil {
		p.fail(result)
		*target = constants.StepStatusFailed
		return
	}

	*target = constants.StepStatusSucceeded
}

// stepStatus returns the result field for the named step.
func (p *pipeline) stepStatus(step domain.StepName) *constants.StepStatus {
	switch step {
	case domain.StepBootstrap:
		return &p.result.Bootstrap
	case domain.StepInstall:
		return &p.result.Install
	default:
		return &p.result.Test
	}
}

// record appends a command result to the pipeline's step history.
func (p *pipeline) record(result *domain.StepResult) {
	if result != nil {
		p.result.Steps = append(p.result.Steps, *result)
	}
}

// fail marks the pipeline failed and captures the failing command's
// diagnostics for the final report.
func (p *pipeline) fail(result *domain.StepResult) {
	p.advance(constants.PipelineStatusFailed)
	if result != nil {
		p.result.FailedCommand = result.Command
		p.result.ExitCode = result.ExitCode
	}
}

// markCanceled records a cooperative cancellation: the current step and
// everything after it stay skipped, and the pipeline terminates in the
// canceled state. Cancellation is not a failure status.
func (p *pipeline) markCanceled(step *constants.StepStatus) {
	*step = constants.StepStatusSkipped
	p.advance(constants.PipelineStatusCanceled)
}

// advance applies a state transition. Transitions are driven only by this
// file against the ValidTransitions table, so a rejected transition is a
// bug; it is logged and ignored rather than propagated.
func (p *pipeline) advance(to constants.PipelineStatus) {
	if err := transition(p, to); err != nil {
		p.log.Error().Err(err).Msg("pipeline state machine violation")
	}
}
