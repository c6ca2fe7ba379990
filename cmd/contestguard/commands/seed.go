package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yigit/contestguard/internal/bootstrap"
	"github.com/yigit/contestguard/internal/seed"
)

// NewSeedCommand creates the seed subcommand.
func NewSeedCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the demo contest and print its test id",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openEnvironment(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer env.Close()

			if err := bootstrap.RunMigrations(cmd.Context(), env.pool, env.logger); err != nil {
				return err
			}
			testID, err := seed.CreateDemoData(cmd.Context(), env.pool, env.logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "demo test id: %d\n", testID)
			return nil
		},
	}
}
