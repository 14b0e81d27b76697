package config

import (
	"github.com/mrz1836/runmatrix/internal/domain"
	"github.com/mrz1836/runmatrix/internal/errors"
)

// Select returns the environments named by the --env flags, preserving
// declaration order regardless of flag order. An empty selection means
// "all environments". A name that does not exist in the matrix is a
// configuration error (CLI exit code 2), never a silent no-op.
func Select(cfg *Config, names []string) ([]domain.Environment, error) {
	if len(names) == 0 {
		return cfg.Environments, nil
	}

	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[name] = struct{}{}
	}

	// Verify every requested name exists before selecting anything.
	declared := make(map[string]struct{}, len(cfg.Environments))
	for i := range cfg.Environments {
		declared[cfg.Environments[i].Name] = struct{}{}
	}
	for _, name := range names {
		if _, ok := declared[name]; !ok {
			return nil, errors.NewExitCode2Error(
				errors.Wrapf(errors.ErrUnknownEnvironment, "%q is not declared in the matrix", name))
		}
	}

	selected := make([]domain.Environment, 0, len(wanted))
	for i := range cfg.Environments {
		if _, ok := wanted[cfg.Environments[i].Name]; ok {
			selected = append(selected, cfg.Environments[i])
		}
	}
	return selected, nil
}
