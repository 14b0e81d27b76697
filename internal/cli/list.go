package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/runmatrix/internal/config"
	"github.com/mrz1836/runmatrix/internal/domain"
	"github.com/mrz1836/runmatrix/internal/matrix"
)

// AddListCommand adds the list command to the root command.
func AddListCommand(root *cobra.Command) {
	root.AddCommand(newListCmd())
}

func newListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the environments declared in the matrix",
		Long: `List the environment descriptors declared in the matrix file, in
declaration order.

Examples:
  run-matrix list
  run-matrix list --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := GetLogger()
			ctx := logger.WithContext(cmd.Context())

			cfg, err := config.Load(ctx, configPath)
			if err != nil {
				return err
			}

			format := cmd.Flag("output").Value.String()
			return renderEnvironments(cmd.OutOrStdout(), format, cfg.Environments)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "matrix file path (default matrix.yaml)")

	return cmd
}

// renderEnvironments prints the environment set in the requested format.
func renderEnvironments(w io.Writer, format string, envs []domain.Environment) error {
	if format == OutputJSON {
		return matrix.RenderJSON(w, envs)
	}

	for i := range envs {
		env := &envs[i]
		if _, err := fmt.Fprintf(w, "%-12s os=%-8s runtime=%-8s pre_install=%d\n",
			env.Name, env.OS, env.Runtime, len(env.PreInstall)); err != nil {
			return err
		}
	}
	return nil
}
