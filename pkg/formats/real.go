package formats

import (
	"fmt"
	"io"
	"os"
)

// RealHeaderSize is the size of the bitmap header. The header's Size field
// counts it, so the pixel payload is Size - RealHeaderSize bytes.
const RealHeaderSize = 16

// RealVersion represents the bitmap record version.
type RealVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v RealVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Real is a raw bitmap record. Width and Height are carried through as
// stored; the payload encoding is left to the caller.
type Real struct {
	Magic  string `yaml:"magic"` // 2 raw bytes, not validated
	Major  uint8  `yaml:"major"`
	Minor  uint8  `yaml:"minor"`
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`
	Size   int32  `yaml:"size"`
	Data   []byte `yaml:"-"`
}

// Version returns the record version.
func (r *Real) Version() RealVersion {
	return RealVersion{Major: r.Major, Minor: r.Minor}
}

// ParseReal decodes the bitmap record that starts at offset in r.
func ParseReal(r io.ReadSeeker, offset int64) (*Real, error) {
	if err := seekTo(r, offset); err != nil {
		return nil, err
	}

	fr := newFieldReader(r)
	rec := &Real{
		Magic:  string(fr.raw("magic", 2)),
		Major:  fr.uint8("major version"),
		Minor:  fr.uint8("minor version"),
		Width:  fr.int32LE("width"),
		Height: fr.int32LE("height"),
		Size:   fr.int32LE("size"),
	}
	if fr.err != nil {
		return nil, fr.err
	}

	if rec.Size < RealHeaderSize {
		return nil, fmt.Errorf("%w: size %d is smaller than the %d byte header",
			ErrMalformedHeader, rec.Size, RealHeaderSize)
	}

	rec.Data = fr.payload("pixel data", int64(rec.Size)-RealHeaderSize)
	if fr.err != nil {
		return nil, fr.err
	}

	return rec, nil
}

// ParseRealFile decodes the bitmap record at offset in the file at path.
func ParseRealFile(path string, offset int64) (*Real, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening real file: %w", err)
	}
	defer f.Close()

	return ParseReal(f, offset)
}
