package cli

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/runmatrix/internal/config"
	"github.com/mrz1836/runmatrix/internal/domain"
	"github.com/mrz1836/runmatrix/internal/errors"
)

// AddInitCommand adds the init command to the root command.
func AddInitCommand(root *cobra.Command) {
	root.AddCommand(newInitCmd())
}

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter matrix.yaml to the current directory",
		Long: `Write a starter matrix file declaring the canonical three-environment
matrix (Linux, macOS, Windows). The macOS environment carries a native
numerical dependency bootstrap as an example of pre-install commands.

Examples:
  run-matrix init
  run-matrix init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing matrix file")

	return cmd
}

func runInit(cmd *cobra.Command, force bool) error {
	logger := GetLogger()
	path := config.DefaultMatrixPath()

	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.Wrapf(errors.ErrFileExists, "%s (use --force to overwrite)", path)
		}
	}

	// Only the environments section is written; runner settings fall back
	// to defaults at load time (a raw time.Duration would serialize as
	// nanoseconds, which is not what a human wants to edit).
	starter := struct {
		Environments []domain.Environment `yaml:"environments"`
	}{Environments: starterEnvironments()}

	data, err := yaml.Marshal(starter)
	if err != nil {
		return errors.Wrap(err, "failed to marshal starter matrix")
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}

	logger.Info().Str("path", path).Msg("wrote starter matrix file")
	cmd.Printf("wrote %s\n", path)
	return nil
}

// starterEnvironments returns the canonical three-environment matrix:
// one environment per major OS, with a native numerical dependency
// bootstrap on macOS.
func starterEnvironments() []domain.Environment {
	return []domain.Environment{
		{
			Name:           "Linux",
			OS:             "linux",
			Runtime:        "python",
			InstallCommand: "pip install -e .",
			TestCommand:    "python -m pytest",
		},
		{
			Name:    "macOS",
			OS:      "macos",
			Runtime: "python",
			PreInstall: []string{
				"brew install libomp",
			},
			InstallCommand: "pip install -e .",
			TestCommand:    "python -m pytest",
			Env: map[string]string{
				"OMP_NUM_THREADS": "1",
			},
		},
		{
			Name:           "Windows",
			OS:             "windows",
			Runtime:        "python",
			InstallCommand: "pip install -e .",
			TestCommand:    "python -m pytest",
		},
	}
}
