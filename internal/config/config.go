// Package config loads application configuration from the environment, with
// optional .env file support for local development. Engine tuning constants
// are surfaced here so operators can recalibrate the heuristics without a
// rebuild; the compiled defaults stay authoritative.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the application configuration.
type Config struct {
	Server  ServerConfig  `json:"server"`
	Store   StoreConfig   `json:"store"`
	Engine  EngineConfig  `json:"engine"`
	Logging LoggingConfig `json:"logging"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Host         string `json:"host"`
	Port         int    `json:"port"`
	ReadTimeout  int    `json:"read_timeout_seconds"`
	WriteTimeout int    `json:"write_timeout_seconds"`
}

// StoreConfig configures the artifact store.
type StoreConfig struct {
	// Path points at the JSON document holding the artifact collection.
	Path string `json:"path"`
	// MaxArtifacts caps how many entries the analysis endpoints will load.
	// The engine is O(n²) pairwise and intended for tens to low hundreds of
	// records, not unbounded collections.
	MaxArtifacts int `json:"max_artifacts"`
}

// EngineConfig tunes the analysis heuristics. Defaults mirror the named
// constants in the intelligence package.
type EngineConfig struct {
	SimilarityThreshold float64 `json:"similarity_threshold"`
	DateConflictDays    int     `json:"date_conflict_days"`
	MaxConflicts        int     `json:"max_conflicts"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "localhost",
			Port:         8085,
			ReadTimeout:  30,
			WriteTimeout: 30,
		},
		Store: StoreConfig{
			Path:         "artifacts.json",
			MaxArtifacts: 500,
		},
		Engine: EngineConfig{
			SimilarityThreshold: 0.6,
			DateConflictDays:    2,
			MaxConflicts:        20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadConfig builds configuration from defaults, an optional .env file, and
// environment variable overrides, then validates the result.
func LoadConfig() (*Config, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	cfg.Server.Host = getEnvString("TLI_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnvInt("TLI_PORT", cfg.Server.Port)
	cfg.Server.ReadTimeout = getEnvInt("TLI_READ_TIMEOUT", cfg.Server.ReadTimeout)
	cfg.Server.WriteTimeout = getEnvInt("TLI_WRITE_TIMEOUT", cfg.Server.WriteTimeout)

	cfg.Store.Path = getEnvString("TLI_STORE_PATH", cfg.Store.Path)
	cfg.Store.MaxArtifacts = getEnvInt("TLI_MAX_ARTIFACTS", cfg.Store.MaxArtifacts)

	cfg.Engine.SimilarityThreshold = getEnvFloat("TLI_SIMILARITY_THRESHOLD", cfg.Engine.SimilarityThreshold)
	cfg.Engine.DateConflictDays = getEnvInt("TLI_DATE_CONFLICT_DAYS", cfg.Engine.DateConflictDays)
	cfg.Engine.MaxConflicts = getEnvInt("TLI_MAX_CONFLICTS", cfg.Engine.MaxConflicts)

	cfg.Logging.Level = getEnvString("TLI_LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnvString("TLI_LOG_FORMAT", cfg.Logging.Format)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks invariants that would otherwise surface as confusing
// runtime behavior.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store path cannot be empty")
	}
	if c.Store.MaxArtifacts <= 0 {
		return fmt.Errorf("max artifacts must be positive, got %d", c.Store.MaxArtifacts)
	}
	if c.Engine.SimilarityThreshold < 0 || c.Engine.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity threshold must be in [0,1], got %g", c.Engine.SimilarityThreshold)
	}
	if c.Engine.DateConflictDays < 0 {
		return fmt.Errorf("date conflict days cannot be negative, got %d", c.Engine.DateConflictDays)
	}
	if c.Engine.MaxConflicts <= 0 {
		return fmt.Errorf("max conflicts must be positive, got %d", c.Engine.MaxConflicts)
	}
	return nil
}

func getEnvString(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
