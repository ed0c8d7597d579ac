// Package encoding provides the legacy text codecs used by asset name fields.
//
// Map names are stored in a fixed-width region in a single/double byte
// codepage. The codepage is a decoder parameter rather than a host default so
// the same bytes decode identically everywhere.
package encoding

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"
)

// Codec converts between a legacy codepage and UTF-8.
type Codec = encoding.Encoding

// DefaultName is the codec the game client used for map names.
const DefaultName = "gbk"

// ErrUnknownCodec is returned by Lookup for unregistered names.
var ErrUnknownCodec = errors.New("unknown text encoding")

var codecs = map[string]Codec{
	"gbk":          simplifiedchinese.GBK,
	"gb18030":      simplifiedchinese.GB18030,
	"big5":         traditionalchinese.Big5,
	"euc-kr":       korean.EUCKR,
	"shift_jis":    japanese.ShiftJIS,
	"windows-1252": charmap.Windows1252,
	"latin1":       charmap.ISO8859_1,
}

// Default returns the GBK codec.
func Default() Codec {
	return codecs[DefaultName]
}

// Lookup returns the codec registered under name (case-insensitive).
func Lookup(name string) (Codec, error) {
	c, ok := codecs[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
	return c, nil
}

// Names returns the registered codec names in sorted order.
func Names() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Decode converts data from codec c to a UTF-8 string.
// Returns the bytes unchanged if conversion fails or c is nil.
func Decode(c Codec, data []byte) string {
	if c == nil {
		return string(data)
	}
	result, _, err := transform.Bytes(c.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

// Encode converts a UTF-8 string to codec c.
// Returns the original bytes if conversion fails or c is nil.
func Encode(c Codec, s string) []byte {
	if c == nil {
		return []byte(s)
	}
	result, _, err := transform.Bytes(c.NewEncoder(), []byte(s))
	if err != nil {
		return []byte(s)
	}
	return result
}

// TruncateName cuts s at the first '|' or NUL, whichever comes first.
// Text without either delimiter is returned whole, padding included.
func TruncateName(s string) string {
	if i := strings.IndexAny(s, "|\x00"); i >= 0 {
		return s[:i]
	}
	return s
}

// DecodeName decodes a fixed-width name region with codec c and applies
// TruncateName to the decoded text.
func DecodeName(c Codec, data []byte) string {
	return TruncateName(Decode(c, data))
}

// TrimNullBytes removes trailing null bytes from a byte slice.
func TrimNullBytes(data []byte) []byte {
	return bytes.TrimRight(data, "\x00")
}

// TrimNullString removes trailing null bytes and converts to string.
func TrimNullString(data []byte) string {
	return string(TrimNullBytes(data))
}
