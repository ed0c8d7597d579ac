package formats

import (
	"errors"
	"fmt"
	"io"
)

// Decode errors shared by every format.
var (
	// ErrIOFailure wraps read and seek errors, including end of data before a
	// declared field or payload was fully read (io.ErrUnexpectedEOF).
	ErrIOFailure = errors.New("I/O failure")

	// ErrMalformedHeader means a header field implies an impossible derived
	// quantity, such as a negative payload length.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrTruncatedTable means a flat table ended in the middle of a record.
	ErrTruncatedTable = errors.New("truncated table")
)

// ioFailure wraps err as ErrIOFailure for the named field. A bare io.EOF is
// reported as io.ErrUnexpectedEOF: data was declared but not present.
func ioFailure(field string, err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("%w: reading %s: %w", ErrIOFailure, field, err)
}

// seekTo positions r at offset from the start of the source.
func seekTo(r io.Seeker, offset int64) error {
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("%w: seeking to %d: %w", ErrIOFailure, offset, err)
	}
	return nil
}
