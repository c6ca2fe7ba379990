package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/contestguard/internal/app/models"
)

// AnswerRepository handles database operations for submitted answers
type AnswerRepository struct {
	db *pgxpool.Pool
}

// NewAnswerRepository creates a new AnswerRepository
func NewAnswerRepository(db *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{db: db}
}

// ListByTakers retrieves every answer of the given takers in arrival order
func (r *AnswerRepository) ListByTakers(ctx context.Context, takerIDs []int64) ([]models.Answer, error) {
	if len(takerIDs) == 0 {
		return nil, nil
	}

	query := psql.Select("taker_id", "question_id", "content", "updated_at").
		From("answers").
		Where("taker_id = ANY(?)", takerIDs).
		OrderBy("id")

	var answers []models.Answer
	err := queryRows(ctx, r.db, query, func(rows pgx.Rows) error {
		var a models.Answer
		if err := rows.Scan(&a.TakerID, &a.QuestionID, &a.Content, &a.UpdatedAt); err != nil {
			return err
		}
		answers = append(answers, a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return answers, nil
}
