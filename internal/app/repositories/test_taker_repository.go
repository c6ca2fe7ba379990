package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/contestguard/internal/app/models"
)

// TestTakerRepository handles database operations for test takers
type TestTakerRepository struct {
	db *pgxpool.Pool
}

// NewTestTakerRepository creates a new TestTakerRepository
func NewTestTakerRepository(db *pgxpool.Pool) *TestTakerRepository {
	return &TestTakerRepository{db: db}
}

// ListByTest retrieves every taker slot of a test
func (r *TestTakerRepository) ListByTest(ctx context.Context, testID int64) ([]models.TestTaker, error) {
	query := psql.Select("id", "test_id", "participant_id").
		From("test_takers").
		Where("test_id = ?", testID).
		OrderBy("id")

	var takers []models.TestTaker
	err := queryRows(ctx, r.db, query, func(rows pgx.Rows) error {
		var t models.TestTaker
		if err := rows.Scan(&t.ID, &t.TestID, &t.ParticipantID); err != nil {
			return err
		}
		takers = append(takers, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return takers, nil
}
