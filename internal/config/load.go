package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/runmatrix/internal/constants"
	"github.com/mrz1836/runmatrix/internal/errors"
)

// newViperInstance creates a new Viper instance with standard run-matrix
// configuration: defaults, RUNMATRIX_ env prefix, and key replacer.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file
// not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// Load reads the matrix definition and runner settings with proper precedence.
// The path names the matrix file; when empty, matrix.yaml in the current
// directory is used. A missing matrix file is a configuration error:
// run-matrix has nothing to orchestrate without one.
//
// All load and validation failures map to CLI exit code 2, so every error
// returned here is wrapped in ExitCode2Error.
func Load(ctx context.Context, path string) (*Config, error) {
	cfg, err := load(ctx, path)
	if err != nil {
		return nil, errors.NewExitCode2Error(err)
	}
	return cfg, nil
}

func load(ctx context.Context, path string) (*Config, error) {
	v := newViperInstance()

	// Global config first (lower precedence): runner settings only.
	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}

	// Matrix file (higher precedence, declares the environments).
	if path == "" {
		path = DefaultMatrixPath()
	}
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(errors.ErrConfigNotFound, "cannot read %s", path)
	}
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read matrix file %s", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal matrix configuration")
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Str("matrix_file", path).
		Int("environments", len(cfg.Environments)).
		Dur("runner.command_timeout", cfg.Runner.CommandTimeout).
		Int("runner.max_parallel", cfg.Runner.MaxParallel).
		Msg("configuration loaded and unmarshaled")

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadGlobalConfig attempts to load the global config file
// (~/.runmatrix/config.yaml). Returns nil if the file doesn't exist or the
// home directory cannot be determined: the global config is optional.
func loadGlobalConfig(v *viper.Viper) error {
	globalPath, err := GlobalConfigPath()
	if err != nil {
		return nil //nolint:nilerr // home dir unavailable, global config is optional
	}
	if _, err := os.Stat(globalPath); err != nil {
		return nil //nolint:nilerr // global config doesn't exist, skip silently
	}

	v.SetConfigFile(globalPath)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read global config file")
	}
	return nil
}

// viperDecoderOption returns the decoder options for Viper unmarshal.
// The duration hook lets runner.command_timeout be written as "10m".
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	)
}
