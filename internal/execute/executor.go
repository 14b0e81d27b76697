package execute

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/runmatrix/internal/clock"
	"github.com/mrz1836/runmatrix/internal/constants"
	"github.com/mrz1836/runmatrix/internal/domain"
	rmerrors "github.com/mrz1836/runmatrix/internal/errors"
	"github.com/mrz1836/runmatrix/internal/logging"
)

// Executor runs matrix commands with a per-command timeout and captures
// their outcome as domain.StepResult values.
type Executor struct {
	runner  CommandRunner
	clk     clock.Clock
	timeout time.Duration
}

// NewExecutor creates an executor with the default command runner.
func NewExecutor(timeout time.Duration, shell string) *Executor {
	return NewExecutorWithRunner(timeout, &DefaultCommandRunner{Shell: shell})
}

// NewExecutorWithRunner creates an executor with a custom runner (for testing).
func NewExecutorWithRunner(timeout time.Duration, runner CommandRunner) *Executor {
	if timeout <= 0 {
		timeout = constants.DefaultCommandTimeout
	}
	return &Executor{
		runner:  runner,
		clk:     clock.RealClock{},
		timeout: timeout,
	}
}

// WithClock replaces the executor's time source. Used by tests to make
// recorded durations deterministic.
func (e *Executor) WithClock(clk clock.Clock) *Executor {
	e.clk = clk
	return e
}

// RunCommand executes one command of a pipeline step and returns its result.
//
// The timeout context is derived from context.WithoutCancel(ctx): a
// cooperative cancellation of the run never kills an in-flight command.
// Cancellation is observed by the pipeline between commands; the timeout
// is the only thing that terminates a running process early.
func (e *Executor) RunCommand(ctx context.Context, step domain.StepName, env *domain.Environment, command string) (*domain.StepResult, error) {
	log := zerolog.Ctx(ctx)

	log.Info().
		Str("environment", env.Name).
		Str("step", step.String()).
		Str("command", logging.FilterSensitiveValue(command)).
		Msg("executing command")

	startedAt := e.clk.Now()

	cmdCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.timeout)
	defer cancel()

	stdout, stderr, exitCode, runErr := e.runner.Run(cmdCtx, "", command, MergedEnv(env.Env))

	completedAt := e.clk.Now()
	duration := completedAt.Sub(startedAt)

	result := &domain.StepResult{
		Step:        step,
		Command:     command,
		ExitCode:    exitCode,
		Stdout:      stdout,
		Stderr:      stderr,
		DurationMs:  duration.Milliseconds(),
		StartedAt:   startedAt,
		CompletedAt: completedAt,
	}

	if errors.Is(cmdCtx.Err(), context.DeadlineExceeded) {
		result.Status = constants.StepStatusFailed
		result.Error = "command timed out"

		log.Error().
			Str("environment", env.Name).
			Str("step", step.String()).
			Str("command", logging.FilterSensitiveValue(command)).
			Dur("duration", duration).
			Msg("command timed out")

		return result, rmerrors.ErrCommandTimeout
	}

	if runErr != nil || exitCode != 0 {
		result.Status = constants.StepStatusFailed
		if exitCode != 0 {
			result.Error = fmt.Sprintf("exit code %d", exitCode)
		} else {
			result.Error = runErr.Error()
		}

		log.Error().
			Str("environment", env.Name).
			Str("step", step.String()).
			Str("command", logging.FilterSensitiveValue(command)).
			Int("exit_code", exitCode).
			Dur("duration", duration).
			Str("stderr", logging.FilterSensitiveValue(stderr)).
			Msg("command failed")

		return result, rmerrors.Wrapf(rmerrors.ErrCommandFailed, "%s", command)
	}

	result.Status = constants.StepStatusSucceeded

	log.Info().
		Str("environment", env.Name).
		Str("step", step.String()).
		Str("command", logging.FilterSensitiveValue(command)).
		Int("exit_code", exitCode).
		Dur("duration", duration).
		Msg("command completed")

	return result, nil
}
