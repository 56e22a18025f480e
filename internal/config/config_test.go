package config

import (
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid csv backend config",
			config: Config{
				Port:           "8081",
				DatasetBackend: "csv",
				DatasetPath:    "./data/transactions.csv",
				SQLiteDBPath:   "./data/txdash.db",
				CacheTTL:       5 * time.Minute,
			},
			wantErr: false,
		},
		{
			name: "valid sqlite backend config",
			config: Config{
				Port:           "9000",
				DatasetBackend: "sqlite",
				SQLiteDBPath:   "./data/txdash.db",
				CacheTTL:       time.Minute,
			},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			config: Config{
				Port:           "abc",
				DatasetBackend: "csv",
				DatasetPath:    "./x.csv",
				CacheTTL:       time.Minute,
			},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name: "invalid port - out of range",
			config: Config{
				Port:           "70000",
				DatasetBackend: "csv",
				DatasetPath:    "./x.csv",
				CacheTTL:       time.Minute,
			},
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name: "invalid backend",
			config: Config{
				Port:           "8081",
				DatasetBackend: "sheets",
				CacheTTL:       time.Minute,
			},
			wantErr:     true,
			errorString: "invalid dataset backend 'sheets'",
		},
		{
			name: "csv backend without path",
			config: Config{
				Port:           "8081",
				DatasetBackend: "csv",
				DatasetPath:    "",
				CacheTTL:       time.Minute,
			},
			wantErr:     true,
			errorString: "dataset path cannot be empty",
		},
		{
			name: "sqlite backend without db path",
			config: Config{
				Port:           "8081",
				DatasetBackend: "sqlite",
				SQLiteDBPath:   "",
				CacheTTL:       time.Minute,
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name: "cache TTL too small",
			config: Config{
				Port:           "8081",
				DatasetBackend: "memory",
				CacheTTL:       time.Millisecond,
			},
			wantErr:     true,
			errorString: "must be at least 1 second",
		},
		{
			name: "cache TTL too large",
			config: Config{
				Port:           "8081",
				DatasetBackend: "memory",
				CacheTTL:       48 * time.Hour,
			},
			wantErr:     true,
			errorString: "must be at most 24 hours",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr && tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
				t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8081" {
		t.Fatalf("default port = %s", cfg.Port)
	}
	if cfg.DatasetBackend != "csv" {
		t.Fatalf("default backend = %s", cfg.DatasetBackend)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Fatalf("default TTL = %v", cfg.CacheTTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_TTL", "90s")
	if d := getEnvDuration("TEST_TTL", time.Minute); d != 90*time.Second {
		t.Fatalf("parsed %v", d)
	}
	t.Setenv("TEST_TTL", "bogus")
	if d := getEnvDuration("TEST_TTL", time.Minute); d != time.Minute {
		t.Fatalf("fallback %v", d)
	}
}
