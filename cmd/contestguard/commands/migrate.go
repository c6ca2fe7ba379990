package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yigit/contestguard/internal/bootstrap"
)

// NewMigrateCommand creates the migrate subcommand.
func NewMigrateCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openEnvironment(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer env.Close()

			if err := bootstrap.RunMigrations(cmd.Context(), env.pool, env.logger); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations up to date")
			return nil
		},
	}
}
