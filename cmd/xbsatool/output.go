package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/xbsa-extractor/internal/extract"
	"github.com/Faultbox/xbsa-extractor/pkg/encoding"
	"github.com/Faultbox/xbsa-extractor/pkg/formats"
)

func dumpYAML(v any) int {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fail(fmt.Errorf("encoding YAML: %w", err))
	}
	if err := enc.Close(); err != nil {
		return fail(err)
	}
	return exitOK
}

// printable renders a raw text field for terminal output.
func printable(raw string) string {
	return fmt.Sprintf("%q", encoding.TrimNullString([]byte(raw)))
}

func printSprite(spr *formats.Sprite) {
	fmt.Printf("Direction: %d\n", spr.Direction)
	fmt.Printf("Action:    %d\n", spr.Action)
	fmt.Printf("Duration:  %d\n", spr.Duration)
	fmt.Printf("Frames:    %d\n", spr.FrameCount)
	for i, f := range spr.Frames {
		fmt.Printf("  %4d  image %-10d ref %s\n", i, f.Image, printable(f.Reference))
	}
}

func printReal(rec *formats.Real) {
	fmt.Printf("Magic:       %q\n", rec.Magic)
	fmt.Printf("Version:     %s\n", rec.Version())
	fmt.Printf("Dimensions:  %dx%d\n", rec.Width, rec.Height)
	fmt.Printf("Size:        %d\n", rec.Size)
	fmt.Printf("Payload:     %d bytes\n", len(rec.Data))
	fmt.Printf("Fingerprint: %016x\n", extract.RealFingerprint(rec))
}

// printDuplicates lists offsets whose payloads share a fingerprint.
func printDuplicates(offsets []string, dups [][]int) {
	fmt.Println()
	if len(dups) == 0 {
		fmt.Printf("Duplicates:  none among %d records\n", len(offsets))
		return
	}
	for _, group := range dups {
		names := make([]string, len(group))
		for i, idx := range group {
			names[i] = offsets[idx]
		}
		fmt.Printf("Duplicates:  %s\n", strings.Join(names, " "))
	}
}

func printSpriteAddresses(entries []formats.SpriteAddress) {
	fmt.Printf("%-10s %-10s %-8s %-6s\n", "ID", "ADDRESS", "ACTIONS", "SOUND")
	for _, e := range entries {
		fmt.Printf("%-10d %-10d %-8d %-6d\n", e.ID, e.Address, e.Actions, e.Sound)
	}
	fmt.Fprintf(os.Stderr, "\n(%d records)\n", len(entries))
}

func printAdrn(entries []formats.Adrn) {
	fmt.Printf("%-8s %-10s %-8s %-12s %-10s %-5s %-4s %-6s %s\n",
		"ID", "ADDRESS", "SIZE", "OFFSET", "DIM", "CELLS", "PATH", "MAP", "REFERENCE")
	for _, e := range entries {
		fmt.Printf("%-8d %-10d %-8d %-12s %-10s %-5s %-4d %-6d %s\n",
			e.ID, e.Address, e.Size,
			fmt.Sprintf("%d,%d", e.XOffset, e.YOffset),
			fmt.Sprintf("%dx%d", e.Width, e.Height),
			fmt.Sprintf("%dx%d", e.East, e.South),
			e.Path, e.Map, printable(e.Reference))
	}
	fmt.Fprintf(os.Stderr, "\n(%d records)\n", len(entries))
}

func printMap(m *formats.LS2Map, codes bool) {
	tiles, objects := m.TileSet(), m.ObjectSet()
	fmt.Printf("Version:  %s\n", m.Version)
	fmt.Printf("ID:       %d\n", m.ID)
	fmt.Printf("Name:     %s\n", m.Name)
	fmt.Printf("Size:     %dx%d (%d cells)\n", m.East, m.South, len(m.Tiles))
	fmt.Printf("Tiles:    %d distinct\n", len(tiles))
	fmt.Printf("Objects:  %d distinct\n", len(objects))
	if codes {
		printCodes("Tiles", tiles.Sorted())
		printCodes("Objects", objects.Sorted())
	}
}

func printCodes(label string, codes []uint16) {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Printf("%s: %s\n", label, strings.Join(parts, " "))
}
