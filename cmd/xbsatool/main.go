// xbsatool is a CLI utility for inspecting legacy game asset files.
package main

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/xbsa-extractor/internal/config"
	"github.com/Faultbox/xbsa-extractor/internal/extract"
	"github.com/Faultbox/xbsa-extractor/internal/logger"
)

// Exit codes.
const (
	exitOK           = 0
	exitError        = 1
	exitUnrecognized = 2
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(exitError)
	}

	command := args[0]
	if command == "help" || command == "-h" || command == "--help" {
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitError)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitError)
	}

	ex, err := extract.New(cfg, logger.Named("extract"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitError)
	}

	logger.Debug("config loaded", zap.String("source", cfg.Source), zap.String("data", cfg.Data.Root))

	start := time.Now()
	code := run(cfg, ex, command, args[1:])
	logger.Debug("command finished",
		zap.String("command", command),
		zap.Int("exit", code),
		zap.Duration("elapsed", time.Since(start)),
	)
	logger.Sync()
	os.Exit(code)
}

func run(cfg *config.Config, ex *extract.Extractor, command string, args []string) int {
	switch command {
	case "spr":
		return cmdSprite(ex, args)
	case "real":
		return cmdReal(ex, args)
	case "spradrn":
		return cmdSpriteAddresses(ex, args)
	case "adrn":
		return cmdAdrn(ex, args)
	case "map":
		return cmdMap(ex, args)
	case "maps", "scan":
		return cmdMaps(ex, args)
	case "encodings":
		return cmdEncodings()
	case "config":
		return cmdConfig(cfg, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		return exitError
	}
}

func printUsage() {
	fmt.Println(`xbsatool - legacy game asset inspector

Usage:
  xbsatool [global flags] <command> [options]

Global flags:
  -config <file>    Config file (else $XBSATOOL_CONFIG, <data>/xbsatool.yaml,
                    ./xbsatool.yaml, user config dir)
  -data <dir>       Asset root directory
  -encoding <name>  Text encoding for map names (default gbk)
  -workers <n>      Concurrent map decodes
  -debug            Enable debug logging
  -log <file>       Write logs to a rotating file

Commands:
  spr <file> <offset>       Decode a sprite frame set
  real <file> <offset>...   Decode bitmap records, report duplicate payloads
  spradrn <file>            Decode a sprite-address table
  adrn <file>               Decode a tile/object index table
  map <file>                Decode a terrain map
  maps <dir|file>...        Decode terrain maps concurrently and summarize codes
  encodings                 List supported name encodings
  config [-save] [-o file]  Show or write the effective configuration

Record commands accept -yaml to dump the decoded record as YAML.

Examples:
  xbsatool spr data/spr.bin 0x1f40
  xbsatool adrn -n 20 data/adrn.bin
  xbsatool -encoding gbk map data/map/1.dat
  xbsatool -workers 8 maps data/map`)
}
