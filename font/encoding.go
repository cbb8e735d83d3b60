package font

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/codemap/core"
)

// Encoding maps single-byte character codes to Unicode. Implementations are
// immutable and safe for concurrent use.
type Encoding interface {
	// Name returns the PDF name of the encoding
	Name() string

	// Decode maps one character code to a rune. Codes the encoding does not
	// define decode to themselves, so text never silently disappears.
	Decode(b byte) rune

	// DecodeString decodes a whole byte string
	DecodeString(data []byte) string
}

// baseEncoding is a fixed 256-entry code-to-rune table
type baseEncoding struct {
	name  string
	table [256]rune
}

func (e *baseEncoding) Name() string { return e.name }

func (e *baseEncoding) Decode(b byte) rune {
	if r := e.table[b]; r != 0 {
		return r
	}
	return rune(b)
}

func (e *baseEncoding) DecodeString(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		sb.WriteRune(e.Decode(b))
	}
	return sb.String()
}

// Predefined single-byte encodings. WinAnsi and MacRoman are derived from
// the Windows-1252 and Macintosh charmaps; PDFDoc and Standard carry the
// tables from the PDF specification appendix.
var (
	WinAnsiEncoding       Encoding = newWinAnsiEncoding()
	MacRomanEncoding      Encoding = newMacRomanEncoding()
	PDFDocEncoding        Encoding = newPDFDocEncoding()
	StandardEncodingTable Encoding = newStandardEncoding()
)

func newWinAnsiEncoding() *baseEncoding {
	e := &baseEncoding{name: "WinAnsiEncoding"}
	for i := 0; i < 256; i++ {
		e.table[i] = charmap.Windows1252.DecodeByte(byte(i))
	}
	// Codes unused in cp1252 render as bullets in WinAnsiEncoding.
	for _, b := range []byte{0x81, 0x8D, 0x8F, 0x90, 0x9D} {
		e.table[b] = '•'
	}
	return e
}

func newMacRomanEncoding() *baseEncoding {
	e := &baseEncoding{name: "MacRomanEncoding"}
	for i := 0; i < 256; i++ {
		e.table[i] = charmap.Macintosh.DecodeByte(byte(i))
	}
	return e
}

func newPDFDocEncoding() *baseEncoding {
	e := &baseEncoding{name: "PDFDocEncoding"}
	// Latin-1 base
	for i := 0x20; i < 256; i++ {
		e.table[i] = rune(i)
	}
	specials := map[byte]rune{
		0x18: '˘', 0x19: 'ˇ', 0x1A: 'ˆ', 0x1B: '˙',
		0x1C: '˝', 0x1D: '˛', 0x1E: '˚', 0x1F: '˜',
		0x80: '•', 0x81: '†', 0x82: '‡', 0x83: '…',
		0x84: '—', 0x85: '–', 0x86: 'ƒ', 0x87: '⁄',
		0x88: '‹', 0x89: '›', 0x8A: '−', 0x8B: '‰',
		0x8C: '„', 0x8D: '“', 0x8E: '”', 0x8F: '‘',
		0x90: '’', 0x91: '‚', 0x92: '™', 0x93: 'ﬁ',
		0x94: 'ﬂ', 0x95: 'Ł', 0x96: 'Œ', 0x97: 'Š',
		0x98: 'Ÿ', 0x99: 'Ž', 0x9A: 'ı', 0x9B: 'ł',
		0x9C: 'œ', 0x9D: 'š', 0x9E: 'ž', 0xA0: '€',
	}
	for b, r := range specials {
		e.table[b] = r
	}
	return e
}

func newStandardEncoding() *baseEncoding {
	e := &baseEncoding{name: "StandardEncoding"}
	for i := 0x20; i <= 0x7E; i++ {
		e.table[i] = rune(i)
	}
	specials := map[byte]rune{
		0x27: '’', // quoteright
		0x60: '‘', // quoteleft
		0xA1: '¡', 0xA2: '¢', 0xA3: '£', 0xA4: '⁄',
		0xA5: '¥', 0xA6: 'ƒ', 0xA7: '§', 0xA8: '¤',
		0xA9: '\'', 0xAA: '“', 0xAB: '«', 0xAC: '‹',
		0xAD: '›', 0xAE: 'ﬁ', 0xAF: 'ﬂ',
		0xB1: '–', 0xB2: '†', 0xB3: '‡', 0xB4: '·',
		0xB6: '¶', 0xB7: '•', 0xB8: '‚', 0xB9: '„',
		0xBA: '”', 0xBB: '»', 0xBC: '…', 0xBD: '‰',
		0xBF: '¿',
		0xC1: '`', 0xC2: '´', 0xC3: 'ˆ', 0xC4: '˜',
		0xC5: '¯', 0xC6: '˘', 0xC7: '˙', 0xC8: '¨',
		0xCA: '˚', 0xCB: '¸', 0xCD: '˝', 0xCE: '˛',
		0xCF: 'ˇ', 0xD0: '—',
		0xE1: 'Æ', 0xE3: 'ª', 0xE8: 'Ł', 0xE9: 'Ø',
		0xEA: 'Œ', 0xEB: 'º',
		0xF1: 'æ', 0xF5: 'ı', 0xF8: 'ł', 0xF9: 'ø',
		0xFA: 'œ', 0xFB: 'ß',
	}
	for b, r := range specials {
		e.table[b] = r
	}
	return e
}

// GetEncoding returns a predefined encoding by PDF name. Unknown names fall
// back to WinAnsiEncoding, the most common encoding in the wild.
func GetEncoding(name string) Encoding {
	switch name {
	case "WinAnsiEncoding":
		return WinAnsiEncoding
	case "MacRomanEncoding":
		return MacRomanEncoding
	case "PDFDocEncoding":
		return PDFDocEncoding
	case "StandardEncoding":
		return StandardEncodingTable
	default:
		return WinAnsiEncoding
	}
}

// knownBaseEncoding reports whether name is an encoding family the resolver
// actually understands, as opposed to GetEncoding's permissive fallback.
func knownBaseEncoding(name string) bool {
	switch name {
	case "", "WinAnsiEncoding", "MacRomanEncoding", "PDFDocEncoding",
		"StandardEncoding":
		return true
	}
	return false
}

// customEncoding layers per-code overrides on a base encoding. It
// implements a /Differences table once glyph names are resolved to runes.
type customEncoding struct {
	base        Encoding
	differences map[byte]rune
}

// NewCustomEncoding creates an encoding that uses the differences map and
// falls through to the base encoding for all other codes.
func NewCustomEncoding(base Encoding, differences map[byte]rune) Encoding {
	d := make(map[byte]rune, len(differences))
	for b, r := range differences {
		d[b] = r
	}
	return &customEncoding{base: base, differences: d}
}

// NewCustomEncodingFromGlyphs creates a custom encoding from glyph-name
// overrides, resolving each name to a rune. Names that cannot be resolved
// are dropped; the base encoding covers those codes.
func NewCustomEncodingFromGlyphs(base Encoding, differences map[byte]string) Encoding {
	d := make(map[byte]rune, len(differences))
	for b, name := range differences {
		if r, ok := resolveGlyphName(name); ok {
			d[b] = r
		}
	}
	return &customEncoding{base: base, differences: d}
}

func (e *customEncoding) Name() string {
	return e.base.Name() + "+custom"
}

func (e *customEncoding) Decode(b byte) rune {
	if r, ok := e.differences[b]; ok {
		return r
	}
	return e.base.Decode(b)
}

func (e *customEncoding) DecodeString(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		sb.WriteRune(e.Decode(b))
	}
	return sb.String()
}

// ParseDifferences reads a /Differences array into a code -> glyph-name
// map. The array alternates integer start codes with glyph names.
func ParseDifferences(arr core.Array, ws *warnings) map[byte]string {
	diffs := make(map[byte]string)
	code := 0
	for _, item := range arr {
		switch v := item.(type) {
		case core.Int:
			code = int(v)
		case core.Name:
			if code >= 0 && code < 256 {
				diffs[byte(code)] = string(v)
			} else if ws != nil {
				ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: -1, Detail: "differences code " + strconv.Itoa(code) + " out of byte range"})
			}
			code++
		default:
			if ws != nil {
				ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: -1, Detail: "differences array holds neither code nor glyph name"})
			}
		}
	}
	return diffs
}

// DecodeWithEncoding decodes data using the named predefined encoding
func DecodeWithEncoding(data []byte, encodingName string) string {
	return GetEncoding(encodingName).DecodeString(data)
}

// NormalizeUnicode normalizes decoded text to NFC so equivalent character
// sequences compare equal downstream.
func NormalizeUnicode(s string) string {
	return norm.NFC.String(s)
}

// IsValidUTF8 reports whether s is valid UTF-8
func IsValidUTF8(s string) bool {
	return utf8.ValidString(s)
}

var (
	utf16beDecoder = xunicode.UTF16(xunicode.BigEndian, xunicode.IgnoreBOM)
	utf16leDecoder = xunicode.UTF16(xunicode.LittleEndian, xunicode.IgnoreBOM)
)

// DecodeUTF16BE decodes big-endian UTF-16 bytes to a string, best effort.
// A leading byte order mark is dropped.
func DecodeUTF16BE(data []byte) string {
	if len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF {
		data = data[2:]
	}
	out, err := utf16beDecoder.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(out)
}

// DecodeUTF16LE decodes little-endian UTF-16 bytes to a string, best effort.
// A leading byte order mark is dropped.
func DecodeUTF16LE(data []byte) string {
	if len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE {
		data = data[2:]
	}
	out, err := utf16leDecoder.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(out)
}

// utf16BEToString decodes a CMap destination value. Multi-byte values are
// UTF-16BE (optionally with a BOM); a single byte is a bare codepoint.
// Multi-code-unit destinations (surrogate pairs, ligature expansions) are
// preserved verbatim.
func utf16BEToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	if len(b) == 1 {
		return string(rune(b[0]))
	}
	if b[0] == 0xFE && b[1] == 0xFF {
		b = b[2:]
	}
	if len(b)%2 == 1 {
		b = b[:len(b)-1]
	}
	return DecodeUTF16BE(b)
}
