package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/contestguard/internal/app/models"
)

// TeamRepository handles database operations for teams and their rosters
type TeamRepository struct {
	db *pgxpool.Pool
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{db: db}
}

// ListMemberships retrieves the team memberships of participants within one event
func (r *TeamRepository) ListMemberships(ctx context.Context, participantIDs []int64, eventID int64) ([]models.TeamMembership, error) {
	if len(participantIDs) == 0 {
		return nil, nil
	}

	query := psql.Select("participant_id", "team_id", "display_code").
		From("team_members").
		Where("event_id = ?", eventID).
		Where("participant_id = ANY(?)", participantIDs).
		OrderBy("participant_id")

	var memberships []models.TeamMembership
	err := queryRows(ctx, r.db, query, func(rows pgx.Rows) error {
		var m models.TeamMembership
		if err := rows.Scan(&m.ParticipantID, &m.TeamID, &m.DisplayCode); err != nil {
			return err
		}
		memberships = append(memberships, m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

// ListByIDs retrieves the teams with the given IDs
func (r *TeamRepository) ListByIDs(ctx context.Context, ids []int64) ([]models.Team, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := psql.Select("id", "event_id", "name").
		From("teams").
		Where("id = ANY(?)", ids).
		OrderBy("id")

	var teams []models.Team
	err := queryRows(ctx, r.db, query, func(rows pgx.Rows) error {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.EventID, &t.Name); err != nil {
			return err
		}
		teams = append(teams, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return teams, nil
}
