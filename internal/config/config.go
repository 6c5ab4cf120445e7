package config

import (
	"os"
	"strconv"

	"goeval/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Paths    PathConfig
	Scoring  ScoringConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// PathConfig holds file system paths
type PathConfig struct {
	IndicatorFile string
}

// ScoringConfig holds scoring engine settings
type ScoringConfig struct {
	DefaultLevel   string
	BatchWorkers   int
	CohortMinCount int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Paths: PathConfig{
			IndicatorFile: os.Getenv("INDICATOR_FILE"),
		},
		Scoring: ScoringConfig{
			DefaultLevel:   getEnvOrDefault("DEFAULT_LEVEL", "advanced"),
			BatchWorkers:   getEnvIntOrDefault("BATCH_WORKERS", 4),
			CohortMinCount: getEnvIntOrDefault("COHORT_MIN_COUNT", 5),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	if cfg.Paths.IndicatorFile == "" {
		return errors.ConfigInvalid("INDICATOR_FILE is required")
	}
	if cfg.Scoring.BatchWorkers < 1 {
		return errors.ConfigInvalid("BATCH_WORKERS must be at least 1")
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
