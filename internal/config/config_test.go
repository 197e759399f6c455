package config

import (
	"errors"
	"testing"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/input", "/models/md.toml", "/out/result.json")

	if cfg.InputDir != "/input" {
		t.Errorf("expected InputDir=/input, got %s", cfg.InputDir)
	}
	if cfg.ModelConfigPath != "/models/md.toml" {
		t.Errorf("expected ModelConfigPath=/models/md.toml, got %s", cfg.ModelConfigPath)
	}
	if cfg.BatchSize != DefaultBatchSize {
		t.Errorf("expected BatchSize=%d, got %d", DefaultBatchSize, cfg.BatchSize)
	}
	if len(cfg.Accelerators) != 1 {
		t.Fatalf("expected one default accelerator, got %d", len(cfg.Accelerators))
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name         string
		modify       func(*Config)
		wantErr      bool
		wantSentinel error
	}{
		{name: "default config is valid", modify: func(c *Config) {}, wantErr: false},
		{
			name:         "missing input dir",
			modify:       func(c *Config) { c.InputDir = "" },
			wantErr:      true,
			wantSentinel: ErrMissingInputDir,
		},
		{
			name:         "zero checkpoint interval",
			modify:       func(c *Config) { c.CheckpointEvery = 0 },
			wantErr:      true,
			wantSentinel: ErrInvalidCheckpoint,
		},
		{
			name:         "zero batch size",
			modify:       func(c *Config) { c.BatchSize = 0 },
			wantErr:      true,
			wantSentinel: ErrInvalidBatchSize,
		},
		{
			name:         "no accelerators",
			modify:       func(c *Config) { c.Accelerators = nil },
			wantErr:      true,
			wantSentinel: ErrNoAccelerators,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig("/input", "/models/md.toml", "/out/result.json")
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantSentinel != nil && !errors.Is(err, tt.wantSentinel) {
				t.Errorf("expected error %v, got %v", tt.wantSentinel, err)
			}
		})
	}
}
