package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yigit/contestguard/internal/analysis"
	appRepos "github.com/yigit/contestguard/internal/app/repositories"
	"github.com/yigit/contestguard/internal/app/services"
	"github.com/yigit/contestguard/internal/bootstrap"
)

// ErrNoTest is returned when --test is missing.
var ErrNoTest = errors.New("test id is required (use --test)")

// NewAnalyzeCommand creates the analyze subcommand.
func NewAnalyzeCommand(configPath *string) *cobra.Command {
	var (
		testID int64
		format string
		sortBy string
		desc   bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute and print the cheat report of a test",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if testID <= 0 {
				return ErrNoTest
			}
			renderer, err := rendererFor(format)
			if err != nil {
				return err
			}
			field := analysis.SortField("")
			if sortBy != "" {
				if field, err = analysis.ParseSortField(sortBy); err != nil {
					return err
				}
			}

			env, err := openEnvironment(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer env.Close()

			svc := bootstrap.NewCheatService(env.cfg, appRepos.NewRepositories(env.pool), env.logger)
			report, err := svc.AnalyzeTest(cmd.Context(), testID, services.ReportOptions{Sort: field, Desc: desc})
			if err != nil {
				return fmt.Errorf("analyze test %d: %w", testID, err)
			}

			return renderer(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().Int64VarP(&testID, "test", "t", 0, "id of the test to analyze")
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table, json or csv")
	cmd.Flags().StringVarP(&sortBy, "sort", "s", "", "sort column, e.g. p_speed or paste_count")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")

	return cmd
}
