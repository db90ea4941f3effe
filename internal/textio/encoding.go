// Package textio is the file boundary around the repairer: it resolves
// encoding declarations, decodes files into text and writes repaired text
// back.
package textio

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/imgajeed76/mojifix/internal/util"
)

// UTF-8 byte-order marker.
var bom = []byte{0xEF, 0xBB, 0xBF}

const bomRune = '\uFEFF'

// Encoding is an encoding declaration for one side of the I/O boundary.
type Encoding struct {
	// Name is the canonical name, e.g. "utf-8" or "utf-8-sig".
	Name string
	// BOM is set for UTF-8 with a leading byte-order marker.
	BOM bool

	enc  encoding.Encoding
	utf8 bool
}

var (
	UTF8    = Encoding{Name: "utf-8", utf8: true, enc: unicode.UTF8}
	UTF8BOM = Encoding{Name: "utf-8-sig", BOM: true, utf8: true, enc: unicode.UTF8BOM}
)

var aliases = map[string]Encoding{
	"utf-8":     UTF8,
	"utf8":      UTF8,
	"utf-8-sig": UTF8BOM,
	"utf8-sig":  UTF8BOM,
	"utf-8-bom": UTF8BOM,
	"utf8-bom":  UTF8BOM,
}

// LookupEncoding resolves an encoding name. Besides the aliases above any
// IANA name known to golang.org/x/text is accepted.
func LookupEncoding(name string) (Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return UTF8, nil
	}
	if e, ok := aliases[key]; ok {
		return e, nil
	}

	enc, err := ianaindex.IANA.Encoding(key)
	if err != nil || enc == nil {
		return Encoding{}, util.UnknownEncodingError(name)
	}
	if enc == unicode.UTF8 {
		return UTF8, nil
	}
	canonical, err := ianaindex.MIME.Name(enc)
	if err != nil {
		if canonical, err = ianaindex.IANA.Name(enc); err != nil {
			canonical = key
		}
	}
	return Encoding{Name: strings.ToLower(canonical), enc: enc}, nil
}

func (e Encoding) String() string {
	return e.Name
}

// Decode turns raw file bytes into text. path is only used in errors.
func (e Encoding) Decode(path string, raw []byte) (string, error) {
	if e.utf8 {
		if e.BOM {
			raw = bytes.TrimPrefix(raw, bom)
		}
		if !utf8.Valid(raw) {
			return "", util.EncodingError(path, e.Name, invalidOffset(raw), nil)
		}
		return string(raw), nil
	}

	out, err := e.enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", util.EncodingError(path, e.Name, -1, err)
	}

	// Decoders substitute U+FFFD for invalid input without an error, so the
	// text must encode back to the exact bytes read.
	back, err := e.enc.NewEncoder().Bytes(out)
	if err != nil {
		return "", util.EncodingError(path, e.Name, -1, errInvalidBytes)
	}
	if !sameBytes(back, raw) {
		return "", util.EncodingError(path, e.Name, mismatchOffset(back, raw), errInvalidBytes)
	}
	return string(out), nil
}

var errInvalidBytes = errors.New("invalid byte sequence")

// sameBytes compares re-encoded output with the original input. An encoder
// that always writes a byte-order marker may prepend one the input lacked.
func sameBytes(back, raw []byte) bool {
	if bytes.Equal(back, raw) {
		return true
	}
	extra := len(back) - len(raw)
	return extra >= 2 && extra <= 4 && bytes.HasSuffix(back, raw)
}

// mismatchOffset returns the first offset at which a and b differ.
func mismatchOffset(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// Encode turns text into bytes for writing. A BOM variant writes exactly one
// marker even when text already starts with U+FEFF.
func (e Encoding) Encode(path, text string) ([]byte, error) {
	if e.utf8 {
		if !utf8.ValidString(text) {
			return nil, util.EncodingError(path, e.Name, invalidOffset([]byte(text)), nil)
		}
		if !e.BOM {
			return []byte(text), nil
		}
		text = strings.TrimPrefix(text, string(bomRune))
		out := make([]byte, 0, len(bom)+len(text))
		out = append(out, bom...)
		return append(out, text...), nil
	}

	out, err := e.enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, util.EncodingError(path, e.Name, -1, fmt.Errorf("unrepresentable character: %w", err))
	}
	return out, nil
}

// invalidOffset returns the byte offset of the first invalid UTF-8 sequence.
func invalidOffset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}
