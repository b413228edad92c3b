package cliconfig

import (
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"empty role", func(c *Config) { c.Role = "" }, true},
		{"negative interval", func(c *Config) { c.Interval = -time.Second }, true},
		{"zero interval disables pacing", func(c *Config) { c.Interval = 0 }, false},
		{"negative iterations", func(c *Config) { c.Iterations = -1 }, true},
		{"unknown log level", func(c *Config) { c.LogLevel = "trace" }, true},
		{"debug log level", func(c *Config) { c.LogLevel = "debug" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Role != "loop" {
		t.Errorf("Role = %q, want loop", cfg.Role)
	}
	if cfg.Interval != time.Second {
		t.Errorf("Interval = %v, want 1s", cfg.Interval)
	}
	if cfg.Iterations != 0 {
		t.Errorf("Iterations = %d, want 0", cfg.Iterations)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}
