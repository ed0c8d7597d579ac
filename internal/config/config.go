// Package config handles extractor configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Faultbox/xbsa-extractor/pkg/encoding"
)

// Config holds all extractor settings.
type Config struct {
	Decode  DecodeConfig  `yaml:"decode"`
	Data    DataConfig    `yaml:"data"`
	Logging LoggingConfig `yaml:"logging"`

	// Source is the file the config was read from, empty for defaults.
	Source string `yaml:"-"`
}

// DecodeConfig holds decoder settings.
type DecodeConfig struct {
	NameEncoding string `yaml:"name_encoding"` // codec for terrain map names
	Workers      int    `yaml:"workers"`       // concurrent map decodes
}

// DataConfig holds asset file locations.
type DataConfig struct {
	Root string `yaml:"root"` // relative asset paths resolve against this
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Decode: DecodeConfig{
			NameEncoding: encoding.DefaultName,
			Workers:      4,
		},
		Data: DataConfig{
			Root: ".",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks that the settings can be used.
func (c *Config) Validate() error {
	var errs []error
	if _, err := encoding.Lookup(c.Decode.NameEncoding); err != nil {
		errs = append(errs, fmt.Errorf("decode.name_encoding: %w", err))
	}
	if c.Decode.Workers < 1 {
		errs = append(errs, fmt.Errorf("decode.workers: must be at least 1, got %d", c.Decode.Workers))
	}
	return errors.Join(errs...)
}

// Resolve returns path joined to the data root unless it is absolute.
func (c *Config) Resolve(path string) string {
	if filepath.IsAbs(path) || c.Data.Root == "" {
		return path
	}
	return filepath.Join(c.Data.Root, path)
}
