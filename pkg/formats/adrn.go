package formats

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// Table record sizes in bytes. An index entry is seven 32-bit fields, three
// flag bytes, the reference text and the map id, with no padding.
const (
	SpriteAddressRecordSize = 12
	AdrnRecordSize          = 7*4 + 3 + AdrnReferenceSize + 4
)

// AdrnReferenceSize is the size of the raw reference text in an index entry.
const AdrnReferenceSize = 45

// SpriteAddress locates the sprite frame sets of one sprite id.
type SpriteAddress struct {
	ID      uint32 `yaml:"id"`
	Address uint32 `yaml:"address"`
	Actions uint16 `yaml:"actions"`
	Sound   uint16 `yaml:"sound"`
}

// Adrn is one tile/object index entry. East and South give the footprint in
// cells; Path is the passability flag.
type Adrn struct {
	ID        int32  `yaml:"id"`
	Address   uint32 `yaml:"address"`
	Size      uint32 `yaml:"size"`
	XOffset   int32  `yaml:"x_offset"`
	YOffset   int32  `yaml:"y_offset"`
	Width     int32  `yaml:"width"`
	Height    int32  `yaml:"height"`
	East      uint8  `yaml:"east"`
	South     uint8  `yaml:"south"`
	Path      uint8  `yaml:"path"`
	Reference string `yaml:"reference"` // 45 raw bytes
	Map       int32  `yaml:"map"`
}

// readTable decodes back-to-back records of size bytes until r is exhausted.
// A trailing partial record is an error, never silently dropped.
func readTable[T any](r io.Reader, name string, size int, decode func(*fieldReader) T) ([]T, error) {
	records := make([]T, 0)
	rec := make([]byte, size)

	for i := 0; ; i++ {
		n, err := io.ReadFull(r, rec)
		switch {
		case err == io.EOF:
			return records, nil
		case errors.Is(err, io.ErrUnexpectedEOF):
			return nil, fmt.Errorf("%w: %s record %d has %d of %d bytes",
				ErrTruncatedTable, name, i, n, size)
		case err != nil:
			return nil, ioFailure(fmt.Sprintf("%s record %d", name, i), err)
		}

		fr := newFieldReader(bytes.NewReader(rec))
		v := decode(fr)
		if fr.err != nil {
			return nil, fmt.Errorf("parsing %s record %d: %w", name, i, fr.err)
		}
		records = append(records, v)
	}
}

func decodeSpriteAddress(fr *fieldReader) SpriteAddress {
	return SpriteAddress{
		ID:      fr.uint32LE("id"),
		Address: fr.uint32LE("address"),
		Actions: fr.uint16LE("actions"),
		Sound:   fr.uint16LE("sound"),
	}
}

func decodeAdrn(fr *fieldReader) Adrn {
	return Adrn{
		ID:        fr.int32LE("id"),
		Address:   fr.uint32LE("address"),
		Size:      fr.uint32LE("size"),
		XOffset:   fr.int32LE("x offset"),
		YOffset:   fr.int32LE("y offset"),
		Width:     fr.int32LE("width"),
		Height:    fr.int32LE("height"),
		East:      fr.uint8("east"),
		South:     fr.uint8("south"),
		Path:      fr.uint8("path"),
		Reference: string(fr.raw("reference", AdrnReferenceSize)),
		Map:       fr.int32LE("map"),
	}
}

// ParseSpriteAddresses decodes a whole sprite-address table from r.
func ParseSpriteAddresses(r io.Reader) ([]SpriteAddress, error) {
	return readTable(r, "sprite address", SpriteAddressRecordSize, decodeSpriteAddress)
}

// ParseAdrn decodes a whole tile/object index table from r.
func ParseAdrn(r io.Reader) ([]Adrn, error) {
	return readTable(r, "adrn", AdrnRecordSize, decodeAdrn)
}

// ParseSpriteAddressesFile decodes the sprite-address table file at path.
func ParseSpriteAddressesFile(path string) ([]SpriteAddress, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sprite address file: %w", err)
	}
	defer f.Close()

	return ParseSpriteAddresses(f)
}

// ParseAdrnFile decodes the index table file at path.
func ParseAdrnFile(path string) ([]Adrn, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening adrn file: %w", err)
	}
	defer f.Close()

	return ParseAdrn(f)
}

// SpriteAddressesByID indexes entries by id. Later duplicates win.
func SpriteAddressesByID(entries []SpriteAddress) map[uint32]SpriteAddress {
	m := make(map[uint32]SpriteAddress, len(entries))
	for _, e := range entries {
		m[e.ID] = e
	}
	return m
}

// AdrnByID indexes entries by id. Later duplicates win.
func AdrnByID(entries []Adrn) map[int32]Adrn {
	m := make(map[int32]Adrn, len(entries))
	for _, e := range entries {
		m[e.ID] = e
	}
	return m
}
