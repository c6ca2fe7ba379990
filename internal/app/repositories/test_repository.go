package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/contestguard/internal/app/models"
)

// TestRepository handles database operations for tests
type TestRepository struct {
	db *pgxpool.Pool
}

// NewTestRepository creates a new TestRepository
func NewTestRepository(db *pgxpool.Pool) *TestRepository {
	return &TestRepository{db: db}
}

// GetByID retrieves a test by ID. It returns nil without error when the test does not exist.
func (r *TestRepository) GetByID(ctx context.Context, id int64) (*models.Test, error) {
	sql, args, err := psql.Select("id", "event_id", "title", "starts_at", "ends_at", "created_at").
		From("tests").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var test models.Test
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&test.ID,
		&test.EventID,
		&test.Title,
		&test.StartsAt,
		&test.EndsAt,
		&test.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &test, nil
}
