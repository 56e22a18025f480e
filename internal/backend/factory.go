package backend

import (
	"context"
	"fmt"
	"log/slog"

	"txdash/internal/dataset/csvfile"
	"txdash/internal/dataset/memory"
	"txdash/internal/dataset/sqlite"
)

// DefaultFactory implements Factory.
type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

func (f *DefaultFactory) Create(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Type {
	case CSVSource:
		f.logger.Info("Initialized csv dataset source", "path", cfg.DatasetPath)
		return &Result{Source: csvfile.New(cfg.DatasetPath)}, nil
	case SQLiteSource:
		store, err := sqlite.Open(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite dataset source: %w", err)
		}
		f.logger.Info("Initialized sqlite dataset source", "db_path", cfg.SQLiteDBPath)
		return &Result{Source: store, Cleanup: store.Close}, nil
	case MemorySource:
		f.logger.Info("Initialized memory dataset source")
		return &Result{Source: memory.NewSample()}, nil
	default:
		return nil, fmt.Errorf("unsupported dataset backend: %s", cfg.Type)
	}
}
