package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	schema "github.com/yigit/contestguard/migrations"

	appControllers "github.com/yigit/contestguard/internal/app/controllers"
	appMigrations "github.com/yigit/contestguard/internal/app/migrations"
	appRepos "github.com/yigit/contestguard/internal/app/repositories"
	appRoutes "github.com/yigit/contestguard/internal/app/routes"
	appServices "github.com/yigit/contestguard/internal/app/services"
	"github.com/yigit/contestguard/internal/config"
	"github.com/yigit/contestguard/internal/db"
	"github.com/yigit/contestguard/internal/metrics"
	appMiddleware "github.com/yigit/contestguard/internal/middleware"
	pkgAuth "github.com/yigit/contestguard/internal/pkg/auth"
	"github.com/yigit/contestguard/internal/pkg/helpers"
	"github.com/yigit/contestguard/internal/pkg/logger"
	"github.com/yigit/contestguard/internal/seed"
)

// Version is set at build time with -ldflags "-X .../bootstrap.Version=..."
var Version = "dev"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos            *appRepos.Repositories
	JWTService       *pkgAuth.JWTService
	AuthMiddleware   *appMiddleware.AuthMiddleware
	CheatService     appServices.CheatDetectionService // Interface type
	CheatController  *appControllers.CheatController
	HealthController *appControllers.HealthController
	Logger           zerolog.Logger
}

// ConfigPath returns the configuration file location, overridable with CONFIG_PATH
func ConfigPath() string {
	return config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger // Get the configured global logger
	lgr.Debug().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection pool.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")
	return database.Pool, nil
}

// RunMigrations applies the embedded schema files.
func RunMigrations(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	lgr.Info().Msg("Running database migrations...")
	applied, err := appMigrations.NewMigrator(dbPool, lgr).Migrate(ctx, schema.FS)
	if err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Strs("applied", applied).Msg("Database migrations up to date.")
	return nil
}

// SeedIfEnabled creates the demo contest when configured to.
func SeedIfEnabled(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) {
	if !cfg.Seed.DemoData {
		return
	}
	if _, err := seed.CreateDemoData(ctx, dbPool, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
	}
}

// NewJWTService builds the token service from configuration.
func NewJWTService(cfg *config.Config) *pkgAuth.JWTService {
	return pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.DurationSetting("jwt.token_expiration", cfg.JWT.TokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)
	deps.JWTService = NewJWTService(cfg)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.CheatService = NewCheatService(cfg, deps.Repos, lgr)

	deps.CheatController = appControllers.NewCheatController(deps.CheatService)
	deps.HealthController = appControllers.NewHealthController(dbPool, Version)

	return deps
}

// NewCheatService wires the analysis service over a snapshot source.
func NewCheatService(cfg *config.Config, source appServices.SnapshotSource, lgr zerolog.Logger) appServices.CheatDetectionService {
	return appServices.NewCheatDetectionService(
		appServices.NewSnapshotLoader(source),
		cfg.AnalysisParams(),
		lgr,
	)
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch strings.ToLower(cfg.Server.Mode) {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	lgr.Debug().Str("ginMode", gin.Mode()).Msg("Gin mode set")

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestID(), appMiddleware.RequestLogger(lgr))

	if cfg.Metrics.Enabled {
		router.Use(metrics.Middleware())
		router.GET(cfg.Metrics.Path, metrics.Handler())
	}

	appRoutes.SetupRouter(router,
		deps.CheatController,
		deps.HealthController,
		deps.AuthMiddleware,
	)

	return router
}
