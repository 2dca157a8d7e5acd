package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// FileName is the configuration file looked up when no path is given.
const FileName = ".filehistory.json"

// Config is the root configuration structure.
type Config struct {
	Output  OutputConfig  `json:"output"`
	Filters FilterConfig  `json:"filters"`
	Logging LoggingConfig `json:"logging"`
}

// OutputConfig holds report defaults.
type OutputConfig struct {
	Format       string `json:"format"`       // Default: "console"
	DateLayout   string `json:"dateLayout"`   // Default: "2 January 2006"
	Top          int    `json:"top"`          // Default: 0 (all edits)
	ShowMessages bool   `json:"showMessages"` // Default: false
}

// FilterConfig holds file path filtering options for directory indexing.
type FilterConfig struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// LoggingConfig holds logging options.
type LoggingConfig struct {
	Level string `json:"level"` // Default: "warning"
}

// ParseLevel returns the configured logrus level.
func (l LoggingConfig) ParseLevel() (logrus.Level, error) {
	if l.Level == "" {
		return logrus.WarnLevel, nil
	}
	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		return logrus.WarnLevel, fmt.Errorf("invalid log level %q: %w", l.Level, err)
	}
	return level, nil
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format:     "console",
			DateLayout: "2 January 2006",
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{"**/.git/**"},
		},
		Logging: LoggingConfig{
			Level: "warning",
		},
	}
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{FileName}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, FileName))
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			candidates = append(candidates, filepath.Join(envHome, FileName))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
