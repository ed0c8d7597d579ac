package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Faultbox/xbsa-extractor/internal/config"
	"github.com/Faultbox/xbsa-extractor/internal/extract"
	"github.com/Faultbox/xbsa-extractor/pkg/encoding"
	"github.com/Faultbox/xbsa-extractor/pkg/formats"
)

func fail(err error) int {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return exitError
}

func parseOffset(s string) (int64, error) {
	off, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q: %w", s, err)
	}
	if off < 0 {
		return 0, fmt.Errorf("invalid offset %q: must not be negative", s)
	}
	return off, nil
}

func cmdSprite(ex *extract.Extractor, args []string) int {
	fs := flag.NewFlagSet("spr", flag.ExitOnError)
	asYAML := fs.Bool("yaml", false, "Dump record as YAML")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: xbsatool spr [-yaml] <file> <offset>")
		return exitError
	}
	offset, err := parseOffset(fs.Arg(1))
	if err != nil {
		return fail(err)
	}

	spr, err := ex.Sprite(fs.Arg(0), offset)
	if err != nil {
		return fail(err)
	}
	if *asYAML {
		return dumpYAML(spr)
	}
	printSprite(spr)
	return exitOK
}

func cmdReal(ex *extract.Extractor, args []string) int {
	fs := flag.NewFlagSet("real", flag.ExitOnError)
	asYAML := fs.Bool("yaml", false, "Dump record headers as YAML")
	out := fs.String("o", "", "Write the raw pixel payload to this file (single offset only)")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: xbsatool real [-yaml] [-o payload.bin] <file> <offset>...")
		return exitError
	}
	if *out != "" && fs.NArg() > 2 {
		fmt.Fprintln(os.Stderr, "Error: -o takes a single offset")
		return exitError
	}

	var recs []*formats.Real
	for _, arg := range fs.Args()[1:] {
		offset, err := parseOffset(arg)
		if err != nil {
			return fail(err)
		}
		rec, err := ex.Real(fs.Arg(0), offset)
		if err != nil {
			return fail(fmt.Errorf("offset %s: %w", arg, err))
		}
		recs = append(recs, rec)
	}

	if *out != "" {
		if err := os.WriteFile(*out, recs[0].Data, 0644); err != nil {
			return fail(fmt.Errorf("writing payload: %w", err))
		}
		fmt.Fprintf(os.Stderr, "Wrote %d bytes to %s\n", len(recs[0].Data), *out)
	}

	if *asYAML {
		if len(recs) == 1 {
			return dumpYAML(recs[0])
		}
		return dumpYAML(recs)
	}

	for i, rec := range recs {
		if len(recs) > 1 {
			fmt.Printf("== offset %s\n", fs.Arg(i+1))
		}
		printReal(rec)
	}
	if len(recs) > 1 {
		printDuplicates(fs.Args()[1:], extract.DuplicatePayloads(recs))
	}
	return exitOK
}

func cmdSpriteAddresses(ex *extract.Extractor, args []string) int {
	fs := flag.NewFlagSet("spradrn", flag.ExitOnError)
	asYAML := fs.Bool("yaml", false, "Dump records as YAML")
	limit := fs.Int("n", 0, "Limit output to N records (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: xbsatool spradrn [-yaml] [-n N] <file>")
		return exitError
	}

	entries, err := ex.SpriteAddresses(fs.Arg(0))
	if err != nil {
		return fail(err)
	}
	if *limit > 0 && len(entries) > *limit {
		entries = entries[:*limit]
	}
	if *asYAML {
		return dumpYAML(entries)
	}
	printSpriteAddresses(entries)
	return exitOK
}

func cmdAdrn(ex *extract.Extractor, args []string) int {
	fs := flag.NewFlagSet("adrn", flag.ExitOnError)
	asYAML := fs.Bool("yaml", false, "Dump records as YAML")
	limit := fs.Int("n", 0, "Limit output to N records (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: xbsatool adrn [-yaml] [-n N] <file>")
		return exitError
	}

	entries, err := ex.Adrn(fs.Arg(0))
	if err != nil {
		return fail(err)
	}
	if *limit > 0 && len(entries) > *limit {
		entries = entries[:*limit]
	}
	if *asYAML {
		return dumpYAML(entries)
	}
	printAdrn(entries)
	return exitOK
}

func cmdMap(ex *extract.Extractor, args []string) int {
	fs := flag.NewFlagSet("map", flag.ExitOnError)
	asYAML := fs.Bool("yaml", false, "Dump record as YAML")
	codes := fs.Bool("codes", false, "List distinct tile and object codes")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: xbsatool map [-yaml] [-codes] <file>")
		return exitError
	}

	m, ok, err := ex.Map(fs.Arg(0))
	if err != nil {
		return fail(err)
	}
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: not an LS2MAP file\n", fs.Arg(0))
		return exitUnrecognized
	}
	if *asYAML {
		return dumpYAML(m)
	}
	printMap(m, *codes)
	return exitOK
}

func cmdMaps(ex *extract.Extractor, args []string) int {
	fs := flag.NewFlagSet("maps", flag.ExitOnError)
	codes := fs.Bool("codes", false, "List distinct tile and object codes")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: xbsatool maps [-codes] <dir|file>...")
		return exitError
	}

	files, err := extract.CollectFiles(fs.Args())
	if err != nil {
		return fail(err)
	}

	results, err := ex.ScanMaps(context.Background(), files)
	if err != nil {
		return fail(err)
	}

	recognized := 0
	for _, r := range results {
		if !r.Recognized {
			fmt.Printf("%s: not an LS2MAP file\n", r.Path)
			continue
		}
		recognized++
		fmt.Printf("%s: %s\n", r.Path, r.Map)
	}

	tiles, objects := extract.DistinctCodes(results)
	fmt.Println()
	fmt.Printf("Maps:          %d of %d files\n", recognized, len(results))
	fmt.Printf("Tile codes:    %d distinct\n", len(tiles))
	fmt.Printf("Object codes:  %d distinct\n", len(objects))
	if *codes {
		printCodes("Tiles", tiles.Sorted())
		printCodes("Objects", objects.Sorted())
	}
	return exitOK
}

func cmdEncodings() int {
	for _, name := range encoding.Names() {
		marker := ""
		if name == encoding.DefaultName {
			marker = " (default)"
		}
		fmt.Printf("%s%s\n", name, marker)
	}
	return exitOK
}

func cmdConfig(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	save := fs.Bool("save", false, "Write the effective config to the user config directory")
	out := fs.String("o", "", "Write the effective config to this file")
	fs.Parse(args)

	switch {
	case *out != "":
		if err := cfg.SaveTo(*out); err != nil {
			return fail(fmt.Errorf("saving config: %w", err))
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", *out)
	case *save:
		if err := cfg.Save(); err != nil {
			return fail(fmt.Errorf("saving config: %w", err))
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", filepath.Join(config.ConfigDir(), config.FileName))
	default:
		if cfg.Source != "" {
			fmt.Printf("# loaded from %s\n", cfg.Source)
		}
		return dumpYAML(cfg)
	}
	return exitOK
}
