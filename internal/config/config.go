package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Dataset source
	DatasetBackend string
	DatasetPath    string
	SQLiteDBPath   string

	// Dashboard view cache
	CacheTTL time.Duration
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8081"),

		DatasetBackend: getEnv("DATASET_BACKEND", "csv"),
		DatasetPath:    getEnv("DATASET_PATH", "./data/transactions.csv"),
		SQLiteDBPath:   getEnv("SQLITE_DB_PATH", "./data/txdash.db"),

		CacheTTL: getEnvDuration("CACHE_TTL", 5*time.Minute),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validBackends := []string{"csv", "sqlite", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DatasetBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid dataset backend '%s': must be one of %v", c.DatasetBackend, validBackends))
	}

	if c.DatasetBackend == "csv" && c.DatasetPath == "" {
		errors = append(errors, "dataset path cannot be empty when using the csv backend")
	}
	if c.DatasetBackend == "sqlite" && c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty when using the sqlite backend")
	}

	if c.CacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must be at least 1 second", c.CacheTTL))
	} else if c.CacheTTL > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must be at most 24 hours", c.CacheTTL))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
