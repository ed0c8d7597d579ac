package extract

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/xbsa-extractor/pkg/formats"
)

// MapResult is the outcome of decoding one file during a scan.
type MapResult struct {
	Path       string
	Map        *formats.LS2Map
	Recognized bool
}

// ScanMaps decodes every path as a terrain map, up to Decode.Workers at a
// time. Paths are used as given, not resolved against the data root. Each
// decode opens its own handle. Results keep the order of paths.
// The first hard error cancels the remaining decodes and is returned.
func (e *Extractor) ScanMaps(ctx context.Context, paths []string) ([]MapResult, error) {
	results := make([]MapResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(e.cfg.Decode.Workers, 1))

	for i, path := range paths {
		i, path := i, path // per-iteration copies; module targets go 1.21
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, ok, err := e.decodeMap(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = MapResult{Path: path, Map: m, Recognized: ok}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	recognized := 0
	for _, r := range results {
		if r.Recognized {
			recognized++
		}
	}
	e.log.Info("map scan complete", zap.Int("files", len(paths)), zap.Int("maps", recognized))

	return results, nil
}

// DistinctCodes merges the tile and object code sets of every recognized map.
func DistinctCodes(results []MapResult) (tiles, objects formats.CodeSet) {
	tiles, objects = make(formats.CodeSet), make(formats.CodeSet)
	for _, r := range results {
		if !r.Recognized {
			continue
		}
		tiles.Merge(r.Map.TileSet())
		objects.Merge(r.Map.ObjectSet())
	}
	return tiles, objects
}

// CollectFiles expands directories in paths to the regular files beneath
// them. Files are returned in lexical order, duplicates removed.
func CollectFiles(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type().IsRegular() {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}
