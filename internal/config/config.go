// Package config provides configuration management for run-matrix with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (RUNMATRIX_* prefix)
//  3. Matrix file (matrix.yaml or --config path)
//  4. Global config (~/.runmatrix/config.yaml, runner settings only)
//  5. Built-in defaults
//
// The matrix file is the single source of environment descriptors; the
// global config may only tune runner settings (timeout, parallelism,
// shell), never declare environments.
//
// IMPORTANT: This package may import internal/constants, internal/domain,
// and internal/errors, but MUST NOT import other internal packages.
package config

import (
	"time"

	"github.com/mrz1836/runmatrix/internal/domain"
)

// Config is the root configuration structure for run-matrix.
type Config struct {
	// Environments is the ordered, immutable set of environment
	// descriptors making up the matrix. Order is declaration order and
	// is preserved through selection, execution, and reporting.
	Environments []domain.Environment `yaml:"environments" mapstructure:"environments"`

	// Runner contains settings for command execution.
	Runner RunnerConfig `yaml:"runner" mapstructure:"runner"`
}

// RunnerConfig contains settings for command execution.
type RunnerConfig struct {
	// CommandTimeout is the maximum duration for a single bootstrap,
	// install, or test command.
	// Default: 30 minutes
	CommandTimeout time.Duration `yaml:"command_timeout" mapstructure:"command_timeout"`

	// MaxParallel is the number of environment pipelines allowed to run
	// concurrently. Pipelines share no mutable state, so this is purely
	// a resource limit.
	// Default: 4
	MaxParallel int `yaml:"max_parallel" mapstructure:"max_parallel"`

	// Shell overrides the shell used to run commands.
	// Default: "sh" on Unix, "cmd" on Windows.
	Shell string `yaml:"shell,omitempty" mapstructure:"shell"`
}
