package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yigit/contestguard/internal/app/models"
	"github.com/yigit/contestguard/internal/bootstrap"
)

// NewTokenCommand creates the token subcommand. It needs no database.
func NewTokenCommand(configPath *string) *cobra.Command {
	var (
		subject string
		role    string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			roleType, err := parseRole(role)
			if err != nil {
				return err
			}
			if strings.TrimSpace(subject) == "" {
				return fmt.Errorf("subject is required (use --subject)")
			}

			cfg, _, err := bootstrap.LoadConfigAndSetupLogger(*configPath)
			if err != nil {
				return err
			}
			if cfg.JWT.Secret == "" {
				return fmt.Errorf("jwt secret is not configured")
			}

			token, expiresAt, err := bootstrap.NewJWTService(cfg).GenerateToken(subject, roleType)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expiresAt.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "operator the token is issued to")
	cmd.Flags().StringVar(&role, "role", string(models.RoleOrganizer), "ORGANIZER or ADMIN")

	return cmd
}

func parseRole(s string) (models.RoleType, error) {
	switch r := models.RoleType(strings.ToUpper(s)); r {
	case models.RoleOrganizer, models.RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("role %q cannot read reports (want ORGANIZER or ADMIN)", s)
	}
}
