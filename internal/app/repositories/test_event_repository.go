package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/contestguard/internal/app/models"
)

// TestEventRepository handles database operations for the test telemetry log
type TestEventRepository struct {
	db *pgxpool.Pool
}

// NewTestEventRepository creates a new TestEventRepository
func NewTestEventRepository(db *pgxpool.Pool) *TestEventRepository {
	return &TestEventRepository{db: db}
}

// ListPastesByTakers retrieves the clipboard paste events of the given takers
func (r *TestEventRepository) ListPastesByTakers(ctx context.Context, takerIDs []int64) ([]models.TestEvent, error) {
	return r.listByType(ctx, takerIDs, models.EventTypePaste)
}

// listByType retrieves events of one type for the given takers
func (r *TestEventRepository) listByType(ctx context.Context, takerIDs []int64, eventType models.EventType) ([]models.TestEvent, error) {
	if len(takerIDs) == 0 {
		return nil, nil
	}

	query := psql.Select("taker_id", "event_type", "occurred_at").
		From("test_events").
		Where("event_type = ?", string(eventType)).
		Where("taker_id = ANY(?)", takerIDs).
		OrderBy("id")

	var events []models.TestEvent
	err := queryRows(ctx, r.db, query, func(rows pgx.Rows) error {
		var e models.TestEvent
		var eventTypeStr string
		if err := rows.Scan(&e.TakerID, &eventTypeStr, &e.OccurredAt); err != nil {
			return err
		}
		e.EventType = models.EventType(eventTypeStr)
		events = append(events, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}
