package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/xbsa-extractor/pkg/encoding"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Decode.NameEncoding != "gbk" {
		t.Errorf("expected name encoding 'gbk', got %s", cfg.Decode.NameEncoding)
	}
	if cfg.Decode.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Decode.Workers)
	}
	if cfg.Data.Root != "." {
		t.Errorf("expected data root '.', got %s", cfg.Data.Root)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Decode.NameEncoding = "klingon"
	cfg.Decode.Workers = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, encoding.ErrUnknownCodec) {
		t.Errorf("expected ErrUnknownCodec in chain, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	cfg := Default()
	cfg.Data.Root = "/assets"

	if got := cfg.Resolve("data/adrn.bin"); got != filepath.Join("/assets", "data/adrn.bin") {
		t.Errorf("unexpected resolved path: %s", got)
	}
	abs := filepath.Join(t.TempDir(), "map.dat")
	if got := cfg.Resolve(abs); got != abs {
		t.Errorf("absolute path should be unchanged, got %s", got)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "xbsatool.yaml")

	yamlContent := `
decode:
  name_encoding: "euc-kr"
  workers: 8

data:
  root: "/srv/assets"

logging:
  level: "debug"
  log_file: "xbsatool.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Decode.NameEncoding != "euc-kr" {
		t.Errorf("expected name encoding 'euc-kr', got %s", cfg.Decode.NameEncoding)
	}
	if cfg.Decode.Workers != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.Decode.Workers)
	}
	if cfg.Data.Root != "/srv/assets" {
		t.Errorf("expected data root /srv/assets, got %s", cfg.Data.Root)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "xbsatool.log" {
		t.Errorf("expected log file 'xbsatool.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(configPath, []byte("decode:\n  workers: 2\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Decode.Workers != 2 {
		t.Errorf("expected 2 workers, got %d", cfg.Decode.Workers)
	}
	if cfg.Decode.NameEncoding != "gbk" {
		t.Errorf("expected default name encoding to survive, got %s", cfg.Decode.NameEncoding)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
decode:
  workers: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/xbsatool.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" && filepath.Dir(path) == "." {
		t.Errorf("expected no local config, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, FileName), []byte("decode:\n  workers: 3\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path != FileName {
		t.Errorf("expected to find %s in current directory, got %q", FileName, path)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "xbsatool.yaml")

	cfg := Default()
	cfg.Decode.NameEncoding = "big5"
	cfg.Decode.Workers = 6
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Decode.NameEncoding != "big5" || loaded.Decode.Workers != 6 {
		t.Errorf("unexpected reloaded config: %+v", loaded.Decode)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "encoding flag",
			setup: func() { *flagEncoding = "shift_jis" },
			verify: func(cfg *Config) {
				if cfg.Decode.NameEncoding != "shift_jis" {
					t.Errorf("expected encoding shift_jis, got %s", cfg.Decode.NameEncoding)
				}
			},
			teardown: func() { *flagEncoding = "" },
		},
		{
			name:  "workers flag",
			setup: func() { *flagWorkers = 16 },
			verify: func(cfg *Config) {
				if cfg.Decode.Workers != 16 {
					t.Errorf("expected 16 workers, got %d", cfg.Decode.Workers)
				}
			},
			teardown: func() { *flagWorkers = 0 },
		},
		{
			name:  "data and log flags",
			setup: func() { *flagData = "/data"; *flagLogFile = "run.log" },
			verify: func(cfg *Config) {
				if cfg.Data.Root != "/data" {
					t.Errorf("expected data root /data, got %s", cfg.Data.Root)
				}
				if cfg.Logging.LogFile != "run.log" {
					t.Errorf("expected log file run.log, got %s", cfg.Logging.LogFile)
				}
			},
			teardown: func() { *flagData = ""; *flagLogFile = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "xbsatool.yaml")

	yamlContent := `
decode:
  name_encoding: "big5"
  workers: 2
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWorkers = 12
	defer func() {
		*flagConfig = ""
		*flagWorkers = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Decode.Workers != 12 {
		t.Errorf("expected 12 workers from flag, got %d", cfg.Decode.Workers)
	}
	if cfg.Decode.NameEncoding != "big5" {
		t.Errorf("expected encoding big5 from file, got %s", cfg.Decode.NameEncoding)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "xbsatool.yaml")
	if err := os.WriteFile(configPath, []byte("decode:\n  name_encoding: nope\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected invalid encoding to be rejected")
	}
}

func TestLoadFromEnv(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(configPath, []byte("decode:\n  workers: 7\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv(EnvConfig, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Decode.Workers != 7 {
		t.Errorf("expected 7 workers from env config, got %d", cfg.Decode.Workers)
	}
	if cfg.Source != configPath {
		t.Errorf("expected source %s, got %q", configPath, cfg.Source)
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	t.Setenv(EnvConfig, filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestFindConfigFileInDataRoot(t *testing.T) {
	dataDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dataDir, FileName), []byte("decode:\n  workers: 5\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv(EnvConfig, "")
	*flagData = dataDir
	defer func() { *flagData = "" }()

	want := filepath.Join(dataDir, FileName)
	if path := findConfigFile(); path != want {
		t.Errorf("expected %s, got %q", want, path)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Decode.Workers != 5 || cfg.Data.Root != dataDir {
		t.Errorf("unexpected config: workers %d, root %s", cfg.Decode.Workers, cfg.Data.Root)
	}
}

func TestDefaultHasNoSource(t *testing.T) {
	if src := Default().Source; src != "" {
		t.Errorf("expected empty source, got %q", src)
	}
}
