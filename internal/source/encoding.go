package source

import (
	"bytes"
	"errors"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// Encoding is the on-disk text encoding of a source file.
type Encoding uint8

const (
	// UTF8 is plain UTF-8 without a byte order mark.
	UTF8 Encoding = iota
	// UTF8BOM is UTF-8 prefixed with EF BB BF.
	UTF8BOM
	// UTF16LE is little-endian UTF-16 with a BOM.
	UTF16LE
	// UTF16BE is big-endian UTF-16 with a BOM.
	UTF16BE
)

func (e Encoding) String() string {
	switch e {
	case UTF8BOM:
		return "utf-8-bom"
	case UTF16LE:
		return "utf-16le"
	case UTF16BE:
		return "utf-16be"
	default:
		return "utf-8"
	}
}

// ErrDecode is returned when file bytes cannot be decoded.
var ErrDecode = errors.New("source: cannot decode file")

// DetectEncoding inspects the byte order mark of raw file bytes.
func DetectEncoding(raw []byte) Encoding {
	switch {
	case bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}):
		return UTF8BOM
	case bytes.HasPrefix(raw, []byte{0xFF, 0xFE}):
		return UTF16LE
	case bytes.HasPrefix(raw, []byte{0xFE, 0xFF}):
		return UTF16BE
	default:
		return UTF8
	}
}

func (e Encoding) codec() encoding.Encoding {
	switch e {
	case UTF8BOM:
		return unicode.UTF8BOM
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	default:
		return nil
	}
}

// Decode converts raw file bytes into UTF-8 text and reports the detected
// encoding. The BOM, if any, is stripped from the returned text.
func Decode(raw []byte) ([]byte, Encoding, error) {
	enc := DetectEncoding(raw)
	codec := enc.codec()
	if codec == nil {
		return raw, enc, nil
	}
	text, err := codec.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, enc, fmt.Errorf("%w: %s: %w", ErrDecode, enc, err)
	}
	return text, enc, nil
}

// Encode converts UTF-8 text back into the given encoding, restoring its BOM.
func Encode(text []byte, enc Encoding) ([]byte, error) {
	codec := enc.codec()
	if codec == nil {
		return text, nil
	}
	out, err := codec.NewEncoder().Bytes(text)
	if err != nil {
		return nil, fmt.Errorf("source: encode %s: %w", enc, err)
	}
	return out, nil
}
