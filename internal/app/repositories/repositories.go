package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	TestRepository        *TestRepository
	TestTakerRepository   *TestTakerRepository
	ParticipantRepository *ParticipantRepository
	TeamRepository        *TeamRepository
	AnswerRepository      *AnswerRepository
	TestEventRepository   *TestEventRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		TestRepository:        NewTestRepository(db),
		TestTakerRepository:   NewTestTakerRepository(db),
		ParticipantRepository: NewParticipantRepository(db),
		TeamRepository:        NewTeamRepository(db),
		AnswerRepository:      NewAnswerRepository(db),
		TestEventRepository:   NewTestEventRepository(db),
	}
}

// psql is the statement builder shared by all repositories
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// queryRows builds and runs a select, handing each row to scan
func queryRows(ctx context.Context, db *pgxpool.Pool, query squirrel.SelectBuilder, scan func(pgx.Rows) error) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating rows: %w", err)
	}
	return nil
}
