package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/runmatrix/internal/errors"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// globalLogger stores the initialized logger for use by subcommands.
// Set during PersistentPreRunE; access via GetLogger.
var (
	globalLogger   zerolog.Logger //nolint:gochecknoglobals // CLI logger requires global access
	globalLoggerMu sync.RWMutex   //nolint:gochecknoglobals // Protects globalLogger
)

// GetLogger returns the initialized logger for use by subcommands.
//
// IMPORTANT: This function MUST only be called after the root command's
// PersistentPreRunE has executed. This function is safe for concurrent use.
func GetLogger() zerolog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

// runFlags holds the flags of the root (run) command.
type runFlags struct {
	ConfigPath  string
	Envs        []string
	FailFast    bool
	DryRun      bool
	MaxParallel int
}

// newRootCmd creates and returns the root command for the run-matrix CLI.
// Unlike a multi-tool CLI, the root command itself runs the matrix; the
// subcommands are helpers around the same configuration.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	v := viper.New()
	rf := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run-matrix",
		Short: "Run a package's build-and-test matrix across environments",
		Long: `run-matrix reads a declarative matrix of environment descriptors and
drives the Bootstrap → Install → Test pipeline for each of them,
reporting one pass/fail verdict per environment.

Environments are independent: a failure in one never aborts another.
The overall verdict succeeds only when every environment's test step
succeeds.

Examples:
  run-matrix
  run-matrix --env Linux --env macOS
  run-matrix --fail-fast
  run-matrix --dry-run --output json
  run-matrix --config ci/matrix.yaml`,
		Version: formatVersion(info),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMatrix(cmd.Context(), cmd, flags, rf)
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}

			if !IsValidOutputFormat(flags.Output) {
				return fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats())
			}

			globalLoggerMu.Lock()
			globalLogger = InitLogger(flags.Verbose, flags.Quiet)
			globalLoggerMu.Unlock()

			return nil
		},
		// SilenceUsage prevents printing usage on error
		// (we handle our own error messages)
		SilenceUsage: true,
	}

	AddGlobalFlags(cmd, flags)
	addRunFlags(cmd, rf)

	AddInitCommand(cmd)
	AddValidateCommand(cmd)
	AddListCommand(cmd)

	return cmd
}

// addRunFlags registers the root command's matrix execution flags.
func addRunFlags(cmd *cobra.Command, rf *runFlags) {
	cmd.Flags().StringVarP(&rf.ConfigPath, "config", "c", "", "matrix file path (default matrix.yaml)")
	cmd.Flags().StringArrayVarP(&rf.Envs, "env", "e", nil, "restrict the run to the named environment (repeatable)")
	cmd.Flags().BoolVar(&rf.FailFast, "fail-fast", false, "cancel not-yet-started pipelines once any pipeline fails")
	cmd.Flags().BoolVar(&rf.DryRun, "dry-run", false, "print the resolved command sequence per environment without executing")
	cmd.Flags().IntVar(&rf.MaxParallel, "max-parallel", 0, "maximum concurrent environment pipelines (default from config)")
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info)
	return cmd.ExecuteContext(ctx)
}
