package config

import (
	"os"
	"path/filepath"

	"github.com/mrz1836/runmatrix/internal/constants"
	"github.com/mrz1836/runmatrix/internal/errors"
)

// HomeDir returns the run-matrix home directory.
// If the RUNMATRIX_HOME environment variable is set, it is used as-is;
// otherwise ~/.runmatrix.
func HomeDir() (string, error) {
	if home := os.Getenv("RUNMATRIX_HOME"); home != "" {
		return home, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.RunMatrixHome), nil
}

// GlobalConfigPath returns the full path to the global configuration file,
// typically ~/.runmatrix/config.yaml.
func GlobalConfigPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.GlobalConfigFileName), nil
}

// DefaultMatrixPath returns the default matrix file path relative to the
// current working directory.
func DefaultMatrixPath() string {
	return constants.MatrixFileName
}
