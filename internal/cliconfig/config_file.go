package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Role       string `toml:"role"`
	Interval   string `toml:"interval"`
	Iterations int    `toml:"iterations"`
	PauseFile  string `toml:"pause_file"`
	LogLevel   string `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.loopengine/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".loopengine", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("role", fc.Role, &cfg.Role)
	s.setString("pause-file", fc.PauseFile, &cfg.PauseFile)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("interval", fc.Interval, &cfg.Interval); err != nil {
		return err
	}

	s.setInt("iterations", fc.Iterations, &cfg.Iterations)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
