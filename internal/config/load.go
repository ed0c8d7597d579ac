package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name searched in standard locations.
const FileName = "xbsatool.yaml"

// EnvConfig names the environment variable that may point at a config file.
const EnvConfig = "XBSATOOL_CONFIG"

// Load builds the effective configuration: defaults, then the config file
// (if any), then command-line flags. The result is validated.
func Load() (*Config, error) {
	cfg := Default()

	path, err := locate()
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
		cfg.Source = path
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// locate picks the config file. A file named by -config or EnvConfig must
// exist; otherwise the search locations are tried and none is required.
func locate() (string, error) {
	for _, explicit := range []string{ConfigPath(), os.Getenv(EnvConfig)} {
		if explicit == "" {
			continue
		}
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}
	return findConfigFile(), nil
}

// findConfigFile searches, in order, the asset directory given by -data, the
// working directory and the user config directory.
func findConfigFile() string {
	var candidates []string
	if *flagData != "" {
		candidates = append(candidates, filepath.Join(*flagData, FileName))
	}
	candidates = append(candidates, FileName, filepath.Join(ConfigDir(), FileName))

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user directory that Save writes to.
func ConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "xbsatool")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".xbsatool")
	}
	return ".xbsatool"
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
