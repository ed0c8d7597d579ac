package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile  = flag.String("log", "", "Write logs to this file")
	flagEncoding = flag.String("encoding", "", "Text encoding for map names")
	flagWorkers  = flag.Int("workers", 0, "Concurrent map decodes")
	flagData     = flag.String("data", "", "Asset root directory")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments after ParseFlags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagEncoding != "" {
		cfg.Decode.NameEncoding = *flagEncoding
	}
	if *flagWorkers > 0 {
		cfg.Decode.Workers = *flagWorkers
	}
	if *flagData != "" {
		cfg.Data.Root = *flagData
	}
}
