// Package main provides the contestguard operator CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yigit/contestguard/cmd/contestguard/commands"
	"github.com/yigit/contestguard/internal/bootstrap"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "contestguard",
		Short: "ContestGuard - cheat-detection analytics for programming tests",
		Long: `ContestGuard computes per-taker suspicion signals for a test.

Commands:
  analyze   Compute and print the cheat report of a test
  migrate   Apply database migrations
  seed      Create the demo contest
  token     Issue an access token for the HTTP API`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", bootstrap.ConfigPath(), "path to the YAML configuration file")

	rootCmd.AddCommand(commands.NewAnalyzeCommand(&configPath))
	rootCmd.AddCommand(commands.NewMigrateCommand(&configPath))
	rootCmd.AddCommand(commands.NewSeedCommand(&configPath))
	rootCmd.AddCommand(commands.NewTokenCommand(&configPath))
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "contestguard %s\n", bootstrap.Version)
		},
	}
}
