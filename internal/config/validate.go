package config

import (
	"strings"

	"github.com/mrz1836/runmatrix/internal/errors"
)

// Validate checks a loaded configuration for the invariants the
// orchestrator relies on: at least one environment, unique names, and a
// non-empty install and test command per descriptor. Violations are
// configuration defects surfaced before any execution.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.Wrap(errors.ErrConfigInvalid, "config is nil")
	}

	if len(cfg.Environments) == 0 {
		return errors.Wrap(errors.ErrNoEnvironments, "matrix declares no environments")
	}

	seen := make(map[string]struct{}, len(cfg.Environments))
	for i := range cfg.Environments {
		env := &cfg.Environments[i]

		name := strings.TrimSpace(env.Name)
		if name == "" {
			return errors.Wrapf(errors.ErrConfigInvalid, "environment %d has no name", i)
		}
		if _, dup := seen[name]; dup {
			return errors.Wrapf(errors.ErrDuplicateEnvironment, "%q declared twice", name)
		}
		seen[name] = struct{}{}

		if strings.TrimSpace(env.InstallCommand) == "" {
			return errors.Wrapf(errors.ErrMissingCommand, "environment %q has no install_command", name)
		}
		if strings.TrimSpace(env.TestCommand) == "" {
			return errors.Wrapf(errors.ErrMissingCommand, "environment %q has no test_command", name)
		}
	}

	if cfg.Runner.MaxParallel < 1 {
		return errors.Wrapf(errors.ErrConfigInvalid, "runner.max_parallel must be at least 1, got %d", cfg.Runner.MaxParallel)
	}
	if cfg.Runner.CommandTimeout <= 0 {
		return errors.Wrap(errors.ErrConfigInvalid, "runner.command_timeout must be positive")
	}

	return nil
}
