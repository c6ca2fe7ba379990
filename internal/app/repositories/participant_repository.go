package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/contestguard/internal/app/models"
)

// ParticipantRepository handles database operations for participants
type ParticipantRepository struct {
	db *pgxpool.Pool
}

// NewParticipantRepository creates a new ParticipantRepository
func NewParticipantRepository(db *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

// ListByIDs retrieves the participants with the given IDs
func (r *ParticipantRepository) ListByIDs(ctx context.Context, ids []int64) ([]models.Participant, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := psql.Select("id", "first_name", "last_name").
		From("participants").
		Where("id = ANY(?)", ids).
		OrderBy("id")

	var participants []models.Participant
	err := queryRows(ctx, r.db, query, func(rows pgx.Rows) error {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName); err != nil {
			return err
		}
		participants = append(participants, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return participants, nil
}
