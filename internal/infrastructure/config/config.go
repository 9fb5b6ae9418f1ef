// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv()
//	dbPath := cfg.Storage.DatabasePath
//	detectorCfg := cfg.Duplicates.DetectorConfig()
package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/robpaolella/personal-finance-sub000/internal/domain/duplicates"
)

// Config represents the entire application configuration
type Config struct {
	Storage       StorageConfig       `yaml:"storage"`
	Server        ServerConfig        `yaml:"server"`
	Duplicates    DuplicatesConfig    `yaml:"duplicates"`
	Import        ImportConfig        `yaml:"import"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// StorageConfig holds database configuration
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DuplicatesConfig holds duplicate detection thresholds
type DuplicatesConfig struct {
	AmountEpsilon  float64 `yaml:"amount_epsilon"`
	ExactThreshold float64 `yaml:"exact_threshold"`
}

// ImportConfig holds CSV import settings
type ImportConfig struct {
	DateFormat string `yaml:"date_format"` // Go layout; empty = auto-detect
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" (default) or "json"
}

// DetectorConfig converts to the detector's config, falling back to
// defaults for unset values
func (d DuplicatesConfig) DetectorConfig() duplicates.Config {
	cfg := duplicates.DefaultConfig()
	if d.AmountEpsilon > 0 {
		cfg.AmountEpsilon = d.AmountEpsilon
	}
	if d.ExactThreshold > 0 {
		cfg.ExactThreshold = d.ExactThreshold
	}
	return cfg
}

// Load reads and parses the config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${LEDGER_DB_PATH})
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() *Config {
	cfg := &Config{
		Storage: StorageConfig{
			DatabasePath: getEnv("LEDGER_DB_PATH", "ledger.db"),
		},
		Server: ServerConfig{
			Port:           getEnvInt("LEDGER_PORT", 8080),
			AllowedOrigins: getEnvList("LEDGER_ALLOWED_ORIGINS"),
		},
		Duplicates: DuplicatesConfig{
			AmountEpsilon:  getEnvFloat("DUPLICATE_AMOUNT_EPSILON", 0),
			ExactThreshold: getEnvFloat("DUPLICATE_EXACT_THRESHOLD", 0),
		},
		Import: ImportConfig{
			DateFormat: getEnv("IMPORT_DATE_FORMAT", ""),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "text"),
			},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// LoadOrEnv tries to load from config.yaml, falls back to environment variables
func LoadOrEnv() *Config {
	return LoadOrEnvWithPath("config.yaml")
}

// LoadOrEnvWithPath tries to load from specified path, falls back to environment variables
func LoadOrEnvWithPath(path string) *Config {
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

// applyDefaults fills zero values left by a partial YAML file
func (c *Config) applyDefaults() {
	if c.Storage.DatabasePath == "" {
		c.Storage.DatabasePath = "ledger.db"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if c.Duplicates.AmountEpsilon == 0 {
		c.Duplicates.AmountEpsilon = duplicates.DefaultConfig().AmountEpsilon
	}
	if c.Duplicates.ExactThreshold == 0 {
		c.Duplicates.ExactThreshold = duplicates.DefaultConfig().ExactThreshold
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "info"
	}
	if c.Observability.Logging.Format == "" {
		c.Observability.Logging.Format = "text"
	}
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

// getEnvFloat retrieves a float environment variable with a fallback default
func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}

// getEnvList splits a comma-separated environment variable
func getEnvList(key string) []string {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
