package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yigit/contestguard/internal/analysis"
	"github.com/yigit/contestguard/internal/pkg/helpers"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port         string `yaml:"port" env:"SERVER_PORT" validate:"required"`
		Mode         string `yaml:"mode" env:"SERVER_MODE" validate:"oneof=development production test"`
		ReadTimeout  string `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout string `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST" validate:"required"`
		Port            string `yaml:"port" env:"DB_PORT" validate:"required"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME" validate:"required"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" validate:"gte=0"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" validate:"gt=0"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		QueryTimeout    string `yaml:"query_timeout" env:"DB_QUERY_TIMEOUT"`
	} `yaml:"database"`

	JWT struct {
		Secret          string `yaml:"secret" env:"JWT_SECRET"`
		Issuer          string `yaml:"issuer" env:"JWT_ISSUER"`
		TokenExpiration string `yaml:"token_expiration" env:"JWT_TOKEN_EXPIRATION"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL" validate:"oneof=debug info warn error fatal"`
		Format string `yaml:"format" env:"LOG_FORMAT" validate:"oneof=json text"`
	} `yaml:"logging"`

	Analysis struct {
		GlobalTimingDecay float64 `yaml:"k_global_timing" env:"ANALYSIS_K_GLOBAL_TIMING" validate:"gt=0"`
		GlobalMIADecay    float64 `yaml:"k_global_mia" env:"ANALYSIS_K_GLOBAL_MIA" validate:"gt=0"`
		TeamRapidWindow   string  `yaml:"team_rapid_window" env:"ANALYSIS_TEAM_RAPID_WINDOW"`
		TeamMIAThreshold  float64 `yaml:"team_mia_threshold" env:"ANALYSIS_TEAM_MIA_THRESHOLD" validate:"gt=0,lte=1"`
	} `yaml:"analysis"`

	Metrics struct {
		Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED"`
		Path    string `yaml:"path" env:"METRICS_PATH" validate:"startswith=/"`
	} `yaml:"metrics"`

	Seed struct {
		DemoData bool `yaml:"demo_data" env:"SEED_DEMO_DATA"`
	} `yaml:"seed"`
}

var validate = validator.New()

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load default config with sane defaults
	config := &Config{}
	setDefaults(config)

	// A .env file next to the binary is optional
	_ = godotenv.Load()

	// Try to read config file if it exists
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Parse YAML into Config structure
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	// Validate config
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.ReadTimeout = "10s"
	config.Server.WriteTimeout = "30s"

	// Database defaults
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "contestguard"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"
	config.Database.QueryTimeout = "20s"

	// JWT defaults
	config.JWT.Issuer = "contestguard"
	config.JWT.TokenExpiration = "12h"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"

	// Analysis defaults
	config.Analysis.GlobalTimingDecay = analysis.DefaultGlobalTimingDecay
	config.Analysis.GlobalMIADecay = analysis.DefaultGlobalMIADecay
	config.Analysis.TeamRapidWindow = analysis.DefaultTeamRapidWindow.String()
	config.Analysis.TeamMIAThreshold = analysis.DefaultTeamMIAThreshold

	// Metrics defaults
	config.Metrics.Enabled = true
	config.Metrics.Path = "/metrics"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	// Recursively process the config structure and look for env tags
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if err := validate.Struct(config); err != nil {
		return err
	}

	durations := map[string]string{
		"server read timeout":        config.Server.ReadTimeout,
		"server write timeout":       config.Server.WriteTimeout,
		"database conn max lifetime": config.Database.ConnMaxLifetime,
		"database query timeout":     config.Database.QueryTimeout,
		"jwt token expiration":       config.JWT.TokenExpiration,
		"analysis team rapid window": config.Analysis.TeamRapidWindow,
	}
	for name, value := range durations {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}

	// The secret can only be omitted outside production
	if config.JWT.Secret == "" && config.Server.Mode == "production" {
		return fmt.Errorf("JWT secret is required in production mode")
	}

	return nil
}

// AnalysisParams maps the analysis section onto engine parameters
func (c *Config) AnalysisParams() analysis.Params {
	return analysis.Params{
		GlobalTimingDecay: c.Analysis.GlobalTimingDecay,
		GlobalMIADecay:    c.Analysis.GlobalMIADecay,
		TeamRapidWindow:   helpers.DurationSetting("analysis.team_rapid_window", c.Analysis.TeamRapidWindow, analysis.DefaultTeamRapidWindow),
		TeamMIAThreshold:  c.Analysis.TeamMIAThreshold,
	}
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
