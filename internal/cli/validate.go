package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrz1836/runmatrix/internal/config"
)

// AddValidateCommand adds the validate command to the root command.
func AddValidateCommand(root *cobra.Command) {
	root.AddCommand(newValidateCmd())
}

func newValidateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load and validate the matrix file without running anything",
		Long: `Load the matrix file and check its invariants: unique environment
names, a non-empty install and test command per environment, and sane
runner settings. Exits 2 on any configuration problem.

Examples:
  run-matrix validate
  run-matrix validate --config ci/matrix.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := GetLogger()
			ctx := logger.WithContext(cmd.Context())

			cfg, err := config.Load(ctx, configPath)
			if err != nil {
				logger.Error().Err(err).Msg("matrix validation failed")
				return err
			}

			cmd.Printf("matrix valid: %d environment(s)\n", len(cfg.Environments))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "matrix file path (default matrix.yaml)")

	return cmd
}
