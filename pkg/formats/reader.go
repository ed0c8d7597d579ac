package formats

import (
	"bytes"
	"io"

	"github.com/Faultbox/xbsa-extractor/pkg/endian"
)

// fieldReader reads consecutive fixed-width fields. The first failure sticks:
// later reads return zero values and err keeps the original cause.
type fieldReader struct {
	r   io.Reader
	buf [4]byte
	err error
}

func newFieldReader(r io.Reader) *fieldReader {
	return &fieldReader{r: r}
}

// next reads exactly n (<= 4) bytes into the scratch buffer.
func (fr *fieldReader) next(field string, n int) []byte {
	if fr.err != nil {
		return nil
	}
	b := fr.buf[:n]
	if _, err := io.ReadFull(fr.r, b); err != nil {
		fr.err = ioFailure(field, err)
		return nil
	}
	return b
}

// raw reads exactly n bytes into a new slice.
func (fr *fieldReader) raw(field string, n int) []byte {
	if fr.err != nil {
		return nil
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(fr.r, b); err != nil {
		fr.err = ioFailure(field, err)
		return nil
	}
	return b
}

// payload reads exactly n bytes without allocating n up front; the buffer
// grows with the data actually present.
func (fr *fieldReader) payload(field string, n int64) []byte {
	if fr.err != nil {
		return nil
	}
	var buf bytes.Buffer
	got, err := buf.ReadFrom(io.LimitReader(fr.r, n))
	if err != nil {
		fr.err = ioFailure(field, err)
		return nil
	}
	if got != n {
		fr.err = ioFailure(field, io.ErrUnexpectedEOF)
		return nil
	}
	if n == 0 {
		return []byte{}
	}
	return buf.Bytes()
}

func (fr *fieldReader) fail(err error) {
	if fr.err == nil && err != nil {
		fr.err = err
	}
}

func (fr *fieldReader) uint8(field string) uint8 {
	b := fr.next(field, 1)
	if b == nil {
		return 0
	}
	v, err := endian.Uint8(b)
	fr.fail(err)
	return v
}

func (fr *fieldReader) uint16LE(field string) uint16 {
	b := fr.next(field, 2)
	if b == nil {
		return 0
	}
	v, err := endian.Uint16LE(b)
	fr.fail(err)
	return v
}

func (fr *fieldReader) uint16BE(field string) uint16 {
	b := fr.next(field, 2)
	if b == nil {
		return 0
	}
	v, err := endian.Uint16BE(b)
	fr.fail(err)
	return v
}

func (fr *fieldReader) uint32LE(field string) uint32 {
	b := fr.next(field, 4)
	if b == nil {
		return 0
	}
	v, err := endian.Uint32LE(b)
	fr.fail(err)
	return v
}

func (fr *fieldReader) int32LE(field string) int32 {
	b := fr.next(field, 4)
	if b == nil {
		return 0
	}
	v, err := endian.Int32LE(b)
	fr.fail(err)
	return v
}

// grid16BE reads count big-endian uint16 values.
func (fr *fieldReader) grid16BE(field string, count int64) []uint16 {
	data := fr.payload(field, count*2)
	if data == nil {
		return nil
	}
	out := make([]uint16, count)
	for i := range out {
		v, err := endian.Uint16BE(data[i*2 : i*2+2])
		if err != nil {
			fr.fail(err)
			return nil
		}
		out[i] = v
	}
	return out
}
