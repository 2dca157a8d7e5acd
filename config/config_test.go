package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Output.Format != "console" {
		t.Errorf("Output.Format = %q, expected %q", cfg.Output.Format, "console")
	}
	if cfg.Output.DateLayout != "2 January 2006" {
		t.Errorf("Output.DateLayout = %q, expected %q", cfg.Output.DateLayout, "2 January 2006")
	}
	if cfg.Output.Top != 0 {
		t.Errorf("Output.Top = %d, expected 0", cfg.Output.Top)
	}
	if len(cfg.Filters.Exclude) != 1 {
		t.Errorf("Filters.Exclude length = %d, expected 1", len(cfg.Filters.Exclude))
	}
	if cfg.Logging.Level != "warning" {
		t.Errorf("Logging.Level = %q, expected %q", cfg.Logging.Level, "warning")
	}
}

func TestLoadConfig_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	body := `{"output": {"format": "json", "top": 5}, "logging": {"level": "debug"}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Output.Format != "json" || cfg.Output.Top != 5 {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.Output.DateLayout != "2 January 2006" {
		t.Errorf("DateLayout lost default: %q", cfg.Output.DateLayout)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, expected debug", cfg.Logging.Level)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Output.Format != "console" {
		t.Errorf("Output.Format = %q, expected console", cfg.Output.Format)
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	cfg := DefaultConfig()
	cfg.Filters.Include = []string{"content/**/*.md"}

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(loaded.Filters.Include) != 1 || loaded.Filters.Include[0] != "content/**/*.md" {
		t.Errorf("Filters.Include = %q", loaded.Filters.Include)
	}
}

func TestLoggingConfig_ParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		want    logrus.Level
		wantErr bool
	}{
		{name: "Default", level: "", want: logrus.WarnLevel},
		{name: "Debug", level: "debug", want: logrus.DebugLevel},
		{name: "Info", level: "info", want: logrus.InfoLevel},
		{name: "Invalid", level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoggingConfig{Level: tt.level}.ParseLevel()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, expected %v", tt.level, got, tt.want)
			}
		})
	}
}
