// Package backend selects and constructs the dataset source the dashboard
// renders from.
package backend

import (
	"context"
	"fmt"

	"txdash/internal/config"
	"txdash/internal/dataset"
)

// SourceType names a dataset backend.
type SourceType string

const (
	CSVSource    SourceType = "csv"
	SQLiteSource SourceType = "sqlite"
	MemorySource SourceType = "memory"
)

func (st SourceType) String() string { return string(st) }

// IsValid reports whether the backend type is one this build knows.
func (st SourceType) IsValid() bool {
	switch st {
	case CSVSource, SQLiteSource, MemorySource:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources (e.g. the SQLite handle).
type CleanupFunc func() error

// Result couples a constructed source with its optional cleanup.
type Result struct {
	Source  dataset.Source
	Cleanup CleanupFunc
}

// Factory creates dataset sources from configuration.
type Factory interface {
	Create(ctx context.Context, cfg Config) (*Result, error)
}

// Config is the backend-facing slice of the application config.
type Config struct {
	Type         SourceType
	DatasetPath  string
	SQLiteDBPath string
}

// FromAppConfig extracts the backend config from the application config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}
	st := SourceType(appConfig.DatasetBackend)
	if !st.IsValid() {
		return Config{}, fmt.Errorf("invalid dataset backend in config: %s", appConfig.DatasetBackend)
	}
	return Config{
		Type:         st,
		DatasetPath:  appConfig.DatasetPath,
		SQLiteDBPath: appConfig.SQLiteDBPath,
	}, nil
}

// Validate checks the per-type requirements.
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid dataset backend: %s", c.Type)
	}
	switch c.Type {
	case CSVSource:
		if c.DatasetPath == "" {
			return fmt.Errorf("dataset path is required for the csv backend")
		}
	case SQLiteSource:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("database path is required for the sqlite backend")
		}
	case MemorySource:
		// Nothing to configure.
	}
	return nil
}
