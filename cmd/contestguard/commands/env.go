package commands

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/yigit/contestguard/internal/bootstrap"
	"github.com/yigit/contestguard/internal/config"
)

// environment is what database-backed commands share
type environment struct {
	cfg    *config.Config
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// openEnvironment loads configuration and connects to the database.
// Callers must Close the returned environment.
func openEnvironment(ctx context.Context, configPath string) (*environment, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, err
	}
	pool, err := bootstrap.SetupDatabase(ctx, cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return &environment{cfg: cfg, pool: pool, logger: lgr}, nil
}

func (e *environment) Close() {
	e.pool.Close()
}
