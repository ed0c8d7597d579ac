package formats

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/Faultbox/xbsa-extractor/pkg/encoding"
)

// LS2MapMagic is the version tag every terrain map starts with.
const LS2MapMagic = "LS2MAP"

// LS2MapNameSize is the size of the fixed name region.
const LS2MapNameSize = 32

// LS2Map is a terrain map. Tiles and Objects are row-major grids of
// East*South codes each.
type LS2Map struct {
	Version string   `yaml:"version"`
	ID      uint16   `yaml:"id"`
	Name    string   `yaml:"name"`
	East    uint16   `yaml:"east"`
	South   uint16   `yaml:"south"`
	Tiles   []uint16 `yaml:"tiles,flow"`
	Objects []uint16 `yaml:"objects,flow"`
}

// MapDecoder decodes LS2MAP files.
type MapDecoder struct {
	// Codec decodes the name region. Nil means encoding.Default().
	Codec encoding.Codec

	// Unrecognized, if set, is called with the version tag of a file whose
	// tag is printable ASCII but not LS2MapMagic. It does not change the
	// decode outcome.
	Unrecognized func(version string)
}

// DefaultMapDecoder uses the GBK codec and no diagnostic hook.
var DefaultMapDecoder = MapDecoder{}

// Decode reads a terrain map from the start of r.
//
// A source that does not start with LS2MapMagic yields ok == false and a nil
// error: the data is simply not a terrain map. Errors are reserved for
// corrupt or truncated data after a matching tag.
func (d MapDecoder) Decode(r io.Reader) (m *LS2Map, ok bool, err error) {
	tag := make([]byte, len(LS2MapMagic))
	n, err := io.ReadFull(r, tag)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, false, ioFailure("version", err)
	}
	tag = tag[:n]

	if string(tag) != LS2MapMagic {
		if d.Unrecognized != nil && len(tag) > 0 && isPrintableASCII(tag) {
			d.Unrecognized(string(tag))
		}
		return nil, false, nil
	}

	codec := d.Codec
	if codec == nil {
		codec = encoding.Default()
	}

	fr := newFieldReader(r)
	m = &LS2Map{
		Version: LS2MapMagic,
		ID:      fr.uint16BE("id"),
	}
	name := fr.raw("name", LS2MapNameSize)
	m.East = fr.uint16BE("east")
	m.South = fr.uint16BE("south")
	if fr.err != nil {
		return nil, false, fr.err
	}
	m.Name = encoding.DecodeName(codec, name)

	cells := int64(m.East) * int64(m.South)
	m.Tiles = fr.grid16BE("tiles", cells)
	if fr.err != nil {
		return nil, false, fr.err
	}
	m.Objects = fr.grid16BE("objects", cells)
	if fr.err != nil {
		return nil, false, fr.err
	}

	return m, true, nil
}

// DecodeFile reads the terrain map file at path.
func (d MapDecoder) DecodeFile(path string) (*LS2Map, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, fmt.Errorf("opening map file: %w", err)
	}
	defer f.Close()

	return d.Decode(f)
}

// ParseLS2Map decodes a terrain map with DefaultMapDecoder.
func ParseLS2Map(r io.Reader) (*LS2Map, bool, error) {
	return DefaultMapDecoder.Decode(r)
}

// ParseLS2MapFile decodes the terrain map file at path with DefaultMapDecoder.
func ParseLS2MapFile(path string) (*LS2Map, bool, error) {
	return DefaultMapDecoder.DecodeFile(path)
}

func isPrintableASCII(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c > 0x7E {
			return false
		}
	}
	return true
}

// cell returns the row-major index of (x, y), or -1 if out of bounds.
func (m *LS2Map) cell(x, y int) int {
	if x < 0 || y < 0 || x >= int(m.East) || y >= int(m.South) {
		return -1
	}
	return y*int(m.East) + x
}

// Tile returns the tile code at (x, y).
func (m *LS2Map) Tile(x, y int) (uint16, bool) {
	i := m.cell(x, y)
	if i < 0 {
		return 0, false
	}
	return m.Tiles[i], true
}

// Object returns the object code at (x, y).
func (m *LS2Map) Object(x, y int) (uint16, bool) {
	i := m.cell(x, y)
	if i < 0 {
		return 0, false
	}
	return m.Objects[i], true
}

// CodeSet is a set of distinct tile or object codes.
type CodeSet map[uint16]struct{}

// TileSet returns the distinct tile codes used by the map.
func (m *LS2Map) TileSet() CodeSet {
	return newCodeSet(m.Tiles)
}

// ObjectSet returns the distinct object codes used by the map.
func (m *LS2Map) ObjectSet() CodeSet {
	return newCodeSet(m.Objects)
}

func newCodeSet(codes []uint16) CodeSet {
	s := make(CodeSet)
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

// Merge adds every code of o to s.
func (s CodeSet) Merge(o CodeSet) {
	for c := range o {
		s[c] = struct{}{}
	}
}

// Sorted returns the codes in ascending order.
func (s CodeSet) Sorted() []uint16 {
	out := make([]uint16, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String renders the map header for listings.
func (m *LS2Map) String() string {
	return fmt.Sprintf("%s #%d %q %dx%d", m.Version, m.ID, m.Name, m.East, m.South)
}

