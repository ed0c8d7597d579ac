// Package endian decodes fixed-width integers from raw byte slices.
//
// Every multi-byte numeric field in the asset formats goes through this
// package. Callers slice exactly the field width out of a record; a slice of
// any other length is rejected with ErrInvalidWidth rather than silently
// reading a prefix.
package endian

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrInvalidWidth is returned when the byte slice length does not match the
// requested integer width.
var ErrInvalidWidth = errors.New("invalid integer width")

// ErrNoByteOrder is returned by Decode when a multi-byte width is requested
// without a byte order.
var ErrNoByteOrder = errors.New("no byte order")

// Width is the size in bytes of an encoded integer.
type Width int

// Supported widths.
const (
	Width8  Width = 1
	Width16 Width = 2
	Width32 Width = 4
)

// Bits returns the width in bits.
func (w Width) Bits() int {
	return int(w) * 8
}

// Valid reports whether w is one of the supported widths.
func (w Width) Valid() bool {
	return w == Width8 || w == Width16 || w == Width32
}

// Decode interprets b as an integer of width w in the given byte order and
// widens it to int64. Unsigned 32-bit values stay non-negative.
//
// order is ignored for Width8 and may be nil there.
func Decode(b []byte, w Width, signed bool, order binary.ByteOrder) (int64, error) {
	if err := check(b, w); err != nil {
		return 0, err
	}
	if order == nil && w != Width8 {
		return 0, fmt.Errorf("%w: %d-bit value", ErrNoByteOrder, w.Bits())
	}

	switch w {
	case Width8:
		if signed {
			return int64(int8(b[0])), nil
		}
		return int64(b[0]), nil
	case Width16:
		v := order.Uint16(b)
		if signed {
			return int64(int16(v)), nil
		}
		return int64(v), nil
	default:
		v := order.Uint32(b)
		if signed {
			return int64(int32(v)), nil
		}
		return int64(v), nil
	}
}

func check(b []byte, w Width) error {
	if !w.Valid() {
		return fmt.Errorf("%w: unsupported width %d", ErrInvalidWidth, w)
	}
	if len(b) != int(w) {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidWidth, len(b), w)
	}
	return nil
}

// Uint8 decodes a single unsigned byte.
func Uint8(b []byte) (uint8, error) {
	if err := check(b, Width8); err != nil {
		return 0, err
	}
	return b[0], nil
}

// Int8 decodes a single signed byte.
func Int8(b []byte) (int8, error) {
	if err := check(b, Width8); err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

// Uint16LE decodes a little-endian uint16.
func Uint16LE(b []byte) (uint16, error) {
	if err := check(b, Width16); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Uint16BE decodes a big-endian uint16.
func Uint16BE(b []byte) (uint16, error) {
	if err := check(b, Width16); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// Int16LE decodes a little-endian int16.
func Int16LE(b []byte) (int16, error) {
	v, err := Uint16LE(b)
	return int16(v), err
}

// Int16BE decodes a big-endian int16.
func Int16BE(b []byte) (int16, error) {
	v, err := Uint16BE(b)
	return int16(v), err
}

// Uint32LE decodes a little-endian uint32.
func Uint32LE(b []byte) (uint32, error) {
	if err := check(b, Width32); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Uint32BE decodes a big-endian uint32.
func Uint32BE(b []byte) (uint32, error) {
	if err := check(b, Width32); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// Int32LE decodes a little-endian int32.
func Int32LE(b []byte) (int32, error) {
	v, err := Uint32LE(b)
	return int32(v), err
}

// Int32BE decodes a big-endian int32.
func Int32BE(b []byte) (int32, error) {
	v, err := Uint32BE(b)
	return int32(v), err
}
