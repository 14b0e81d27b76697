// Package constants provides centralized constant values used throughout run-matrix.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// File names used by run-matrix for configuration discovery.
const (
	// MatrixFileName is the default name of the matrix definition file,
	// looked up in the current working directory when --config is not given.
	MatrixFileName = "matrix.yaml"

	// GlobalConfigFileName is the name of the optional global config file
	// inside the run-matrix home directory.
	GlobalConfigFileName = "config.yaml"
)

// Directory names and paths used by run-matrix for organizing data.
const (
	// RunMatrixHome is the hidden directory name where run-matrix stores
	// its data. Created in the user's home directory unless overridden by
	// the RUNMATRIX_HOME environment variable.
	RunMatrixHome = ".runmatrix"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// CLILogFileName is the rotating log file for the CLI.
	CLILogFileName = "runmatrix.log"
)

// EnvPrefix is the prefix for environment variable configuration
// overrides (e.g. RUNMATRIX_RUNNER_COMMAND_TIMEOUT).
const EnvPrefix = "RUNMATRIX"

// Timeout and concurrency defaults for matrix execution.
const (
	// DefaultCommandTimeout is the default maximum duration for a single
	// bootstrap, install, or test command.
	DefaultCommandTimeout = 30 * time.Minute

	// DefaultMaxParallel is the default number of environment pipelines
	// allowed to run concurrently.
	DefaultMaxParallel = 4
)

// Log rotation settings for the CLI log file.
const (
	// LogMaxSizeMB is the maximum size in megabytes before rotation.
	LogMaxSizeMB = 10

	// LogMaxBackups is the maximum number of rotated files to retain.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum age in days of a rotated file.
	LogMaxAgeDays = 30

	// LogCompress controls gzip compression of rotated files.
	LogCompress = true
)
