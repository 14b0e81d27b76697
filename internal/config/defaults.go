package config

import (
	"github.com/spf13/viper"

	"github.com/mrz1836/runmatrix/internal/constants"
)

// DefaultConfig returns a new Config with sensible default values.
// These defaults are used as the base layer that can be overridden by
// the matrix file, environment variables, and CLI flags.
func DefaultConfig() *Config {
	return &Config{
		Runner: RunnerConfig{
			// CommandTimeout: 30 minutes covers slow dependency installs
			// (native numerical libraries compile on some platforms).
			CommandTimeout: constants.DefaultCommandTimeout,

			// MaxParallel: 4 pipelines at once. Pipelines are independent,
			// so this only bounds local resource usage.
			MaxParallel: constants.DefaultMaxParallel,
		},
	}
}

// setDefaults configures all default values on the Viper instance.
// Keys use dot notation matching the Config struct's mapstructure tags.
func setDefaults(v *viper.Viper) {
	v.SetDefault("runner.command_timeout", constants.DefaultCommandTimeout)
	v.SetDefault("runner.max_parallel", constants.DefaultMaxParallel)
	v.SetDefault("runner.shell", "")
}
