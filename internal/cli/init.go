package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration file and the store tables",
		Long: "Write a default config.yaml if none exists, connect to the configured store\n" +
			"and create the departments, roles and employees tables when missing.\n" +
			"Existing tables are left untouched.",
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			if err := repo.Bootstrap(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "orgchart initialized (%s store)\n", repo.Driver())
			return nil
		},
	}
}
