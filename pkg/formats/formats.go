// Package formats provides decoders for the legacy game asset formats:
// sprite frame sets (SPR), raw bitmaps (REAL), the sprite-address and
// tile/object index tables (SPRADRN, ADRN) and terrain maps (LS2MAP).
//
// Positional records are read from an offset inside a shared file, tables
// and maps from the start of their own file. Every decoder returns a fully
// populated record or an error wrapping ErrIOFailure, ErrMalformedHeader or
// ErrTruncatedTable. Decoders hold no state between calls; a caller sharing
// one io.ReadSeeker across goroutines must serialize access itself.
package formats
