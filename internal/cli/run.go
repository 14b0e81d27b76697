package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrz1836/runmatrix/internal/config"
	"github.com/mrz1836/runmatrix/internal/domain"
	"github.com/mrz1836/runmatrix/internal/execute"
	"github.com/mrz1836/runmatrix/internal/matrix"
	"github.com/mrz1836/runmatrix/internal/signal"
)

// runMatrix is the root command's RunE: load the matrix, select
// environments, and either print the dry-run plan or execute the run.
func runMatrix(ctx context.Context, cmd *cobra.Command, flags *GlobalFlags, rf *runFlags) error {
	logger := GetLogger()
	ctx = logger.WithContext(ctx)

	cfg, err := config.Load(ctx, rf.ConfigPath)
	if err != nil {
		logger.Error().Err(err).Msg("configuration load failed")
		return err
	}

	envs, err := config.Select(cfg, rf.Envs)
	if err != nil {
		logger.Error().Err(err).Msg("environment selection failed")
		return err
	}

	if rf.DryRun {
		return renderPlan(cmd.OutOrStdout(), flags.Output, envs)
	}

	maxParallel := cfg.Runner.MaxParallel
	if rf.MaxParallel > 0 {
		maxParallel = rf.MaxParallel
	}

	executor := execute.NewExecutor(cfg.Runner.CommandTimeout, cfg.Runner.Shell)
	engine := matrix.NewEngine(executor, logger, matrix.Options{
		MaxParallel: maxParallel,
		FailFast:    rf.FailFast,
	})

	// First SIGINT/SIGTERM cancels the run cooperatively: no new
	// pipelines launch and in-flight commands finish.
	h := signal.NewHandler(ctx)
	defer h.Stop()

	report, runErr := engine.Run(h.Context(), envs)

	if h.WasInterrupted() {
		fmt.Fprintln(os.Stderr, "run interrupted, in-flight commands were allowed to finish")
	}

	if renderErr := renderReport(cmd.OutOrStdout(), flags.Output, report); renderErr != nil {
		return renderErr
	}

	return runErr
}

// renderPlan prints the resolved dry-run plan.
func renderPlan(w io.Writer, format string, envs []domain.Environment) error {
	plan := matrix.BuildPlan(envs)
	if format == OutputJSON {
		return matrix.RenderJSON(w, plan)
	}
	return plan.RenderText(w)
}

// renderReport prints the final run report.
func renderReport(w io.Writer, format string, report *domain.Report) error {
	if report == nil {
		return nil
	}
	if format == OutputJSON {
		return matrix.RenderJSON(w, report)
	}
	return matrix.RenderReportText(w, report)
}
