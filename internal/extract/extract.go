// Package extract wraps the format decoders with logging and the
// file-selection logic shared by the command line tools.
package extract

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/xbsa-extractor/internal/config"
	"github.com/Faultbox/xbsa-extractor/pkg/encoding"
	"github.com/Faultbox/xbsa-extractor/pkg/formats"
)

// Extractor decodes asset files and logs each decode.
type Extractor struct {
	cfg  *config.Config
	log  *zap.Logger
	maps formats.MapDecoder
}

// New creates an Extractor. A nil logger discards output.
func New(cfg *config.Config, log *zap.Logger) (*Extractor, error) {
	if log == nil {
		log = zap.NewNop()
	}
	codec, err := encoding.Lookup(cfg.Decode.NameEncoding)
	if err != nil {
		return nil, fmt.Errorf("map name encoding: %w", err)
	}

	return &Extractor{
		cfg:  cfg,
		log:  log,
		maps: formats.MapDecoder{Codec: codec},
	}, nil
}

// done logs the outcome of one decode.
func (e *Extractor) done(kind, path string, start time.Time, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.String("kind", kind),
		zap.String("file", path),
		zap.Duration("elapsed", time.Since(start)),
	)
	if err != nil {
		e.log.Debug("decode failed", append(fields, zap.Error(err))...)
		return
	}
	e.log.Debug("decode complete", fields...)
}

// Sprite decodes the sprite frame set at offset in path.
func (e *Extractor) Sprite(path string, offset int64) (*formats.Sprite, error) {
	path = e.cfg.Resolve(path)
	e.log.Debug("decode start", zap.String("kind", "spr"), zap.String("file", path), zap.Int64("offset", offset))

	start := time.Now()
	spr, err := formats.ParseSpriteFile(path, offset)
	if err != nil {
		e.done("spr", path, start, err)
		return nil, err
	}
	e.done("spr", path, start, nil, zap.Uint32("frames", spr.FrameCount))
	return spr, nil
}

// Real decodes the bitmap record at offset in path.
func (e *Extractor) Real(path string, offset int64) (*formats.Real, error) {
	path = e.cfg.Resolve(path)
	e.log.Debug("decode start", zap.String("kind", "real"), zap.String("file", path), zap.Int64("offset", offset))

	start := time.Now()
	rec, err := formats.ParseRealFile(path, offset)
	if err != nil {
		e.done("real", path, start, err)
		return nil, err
	}
	e.done("real", path, start, nil, zap.Int("payload", len(rec.Data)))
	return rec, nil
}

// SpriteAddresses decodes the sprite-address table at path.
func (e *Extractor) SpriteAddresses(path string) ([]formats.SpriteAddress, error) {
	path = e.cfg.Resolve(path)
	e.log.Debug("decode start", zap.String("kind", "spradrn"), zap.String("file", path))

	start := time.Now()
	entries, err := formats.ParseSpriteAddressesFile(path)
	if err != nil {
		e.done("spradrn", path, start, err)
		return nil, err
	}
	e.done("spradrn", path, start, nil, zap.Int("records", len(entries)))
	return entries, nil
}

// Adrn decodes the tile/object index table at path.
func (e *Extractor) Adrn(path string) ([]formats.Adrn, error) {
	path = e.cfg.Resolve(path)
	e.log.Debug("decode start", zap.String("kind", "adrn"), zap.String("file", path))

	start := time.Now()
	entries, err := formats.ParseAdrnFile(path)
	if err != nil {
		e.done("adrn", path, start, err)
		return nil, err
	}
	e.done("adrn", path, start, nil, zap.Int("records", len(entries)))
	return entries, nil
}

// Map decodes the terrain map at path. ok is false when the file is not a
// terrain map; a printable but unknown version tag is logged as a warning.
func (e *Extractor) Map(path string) (*formats.LS2Map, bool, error) {
	return e.decodeMap(e.cfg.Resolve(path))
}

func (e *Extractor) decodeMap(path string) (m *formats.LS2Map, ok bool, err error) {
	e.log.Debug("decode start", zap.String("kind", "ls2map"), zap.String("file", path))

	d := e.maps
	d.Unrecognized = func(version string) {
		e.log.Warn("unrecognized map version", zap.String("version", version), zap.String("file", path))
	}

	start := time.Now()
	m, ok, err = d.DecodeFile(path)
	switch {
	case err != nil:
		e.done("ls2map", path, start, err)
		return nil, false, err
	case !ok:
		e.log.Debug("not a terrain map", zap.String("file", path))
		return nil, false, nil
	}
	e.done("ls2map", path, start, nil, zap.Uint16("id", m.ID), zap.Int("cells", len(m.Tiles)))
	return m, true, nil
}

// RealFingerprint hashes the pixel payload so identical bitmaps can be
// recognized across offsets and files.
func RealFingerprint(r *formats.Real) uint64 {
	return xxhash.Sum64(r.Data)
}

// DuplicatePayloads groups record indexes by payload fingerprint and returns
// only the groups holding more than one record, ordered by first index.
func DuplicatePayloads(recs []*formats.Real) [][]int {
	groups := make(map[uint64][]int, len(recs))
	var order []uint64
	for i, r := range recs {
		fp := RealFingerprint(r)
		if _, seen := groups[fp]; !seen {
			order = append(order, fp)
		}
		groups[fp] = append(groups[fp], i)
	}

	var dups [][]int
	for _, fp := range order {
		if len(groups[fp]) > 1 {
			dups = append(dups, groups[fp])
		}
	}
	return dups
}
