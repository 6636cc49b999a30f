package main

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/imgextract"
	"github.com/goccy/go-yaml"
)

// Config holds user defaults read from the config file.
// Command-line flags take precedence over every field.
type Config struct {
	LazyLoad     *bool         `yaml:"lazyLoad"`     // Lazy loading for <img> records (default: true)
	OutputDir    string        `yaml:"outputDir"`    // Default for extract --dir
	Timeout      time.Duration `yaml:"timeout"`      // Default for --timeout
	Browser      bool          `yaml:"browser"`      // Default for --browser
	MaxInputSize int           `yaml:"maxInputSize"` // Bytes (default: 50 MiB)
}

// LoadConfig reads the config file at path. A missing or empty file yields
// the zero Config. Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return cfg, nil
	}

	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, imgextract.Errorf(imgextract.EINVALID, "invalid config %s: %s", path, yaml.FormatError(err, false, false))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that numeric settings are in range.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return imgextract.Errorf(imgextract.EINVALID, "timeout must not be negative")
	}
	if c.MaxInputSize < 0 {
		return imgextract.Errorf(imgextract.EINVALID, "maxInputSize must not be negative")
	}
	return nil
}

func (c *Config) maxInputSize() int {
	if c == nil || c.MaxInputSize == 0 {
		return imgextract.DefaultMaxInputSize
	}
	return c.MaxInputSize
}

func defaultConfigPath() string {
	if path := os.Getenv("IMGEXTRACT_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "imgextract", "config.yaml")
}
