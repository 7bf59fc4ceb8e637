// Package config loads the application configuration from a YAML file,
// falling back to defaults for anything not set.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the global application settings.
type Config struct {
	// Listen is the address the HTTP API binds to in serve mode.
	Listen string `yaml:"listen"`

	// LogLevel controls verbosity: "debug", "info", "warn" or "error".
	LogLevel string `yaml:"log_level"`

	// MaxUploadFiles bounds how many decoded text files one run may
	// contain (zip members count individually).
	MaxUploadFiles int `yaml:"max_upload_files"`

	// MaxUploadBytes bounds the total raw upload size per run.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`

	Export ExportConfig `yaml:"export"`
}

// ExportConfig holds the report export settings.
type ExportConfig struct {
	// BOM prepends a UTF-8 byte order mark to CSV output so Excel
	// renders accented product descriptions correctly.
	BOM bool `yaml:"bom"`

	// XLSX additionally writes an XLSX workbook next to the CSVs in
	// convert mode.
	XLSX bool `yaml:"xlsx"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Listen:         ":8080",
		LogLevel:       "info",
		MaxUploadFiles: 12,
		MaxUploadBytes: 64 << 20,
		Export: ExportConfig{
			BOM: true,
		},
	}
}

// Load reads the configuration from path, layered over the defaults.
// An empty path returns the defaults; a path that does not exist is an
// error so a typo in --config does not silently run on defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %q: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	if c.MaxUploadFiles < 0 {
		return fmt.Errorf("max_upload_files must not be negative")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("max_upload_bytes must not be negative")
	}
	return nil
}
