package text

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/unicode/norm"
)

var utf16BOM = []byte{0xFE, 0xFF}

// Decoder turns PDF string bytes into text.
type Decoder struct {
	name string
	enc  encoding.Encoding
}

// NewDecoder returns a decoder for the named single-byte encoding, for
// example "windows-1253" or "ISO-8859-7". An empty name selects Latin-1.
func NewDecoder(name string) (*Decoder, error) {
	if strings.TrimSpace(name) == "" {
		return &Decoder{name: "ISO-8859-1", enc: charmap.ISO8859_1}, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return &Decoder{name: name, enc: enc}, nil
}

// Name returns the configured encoding name
func (d *Decoder) Name() string {
	return d.name
}

// Decode converts b to NFC-normalized UTF-8. Bytes the encoding cannot map
// fall back to Latin-1.
func (d *Decoder) Decode(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	if bytes.HasPrefix(b, utf16BOM) {
		s, err := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().Bytes(b)
		if err == nil {
			return norm.NFC.String(string(s))
		}
	}
	enc := d.enc
	if enc == nil {
		enc = charmap.ISO8859_1
	}
	s, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		s, _ = charmap.ISO8859_1.NewDecoder().Bytes(b)
	}
	return norm.NFC.String(string(s))
}
