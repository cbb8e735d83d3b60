package font

import (
	"testing"

	"github.com/tsawler/codemap/core"
)

// TestWinAnsiEncoding tests Windows CP1252 encoding
func TestWinAnsiEncoding(t *testing.T) {
	enc := WinAnsiEncoding

	tests := []struct {
		name     string
		input    byte
		expected rune
	}{
		{"space", 0x20, ' '},
		{"uppercase A", 0x41, 'A'},
		{"lowercase a", 0x61, 'a'},
		{"euro sign", 0x80, '€'},
		{"smart quote left", 0x91, '‘'},
		{"smart quote right", 0x92, '’'},
		{"lowercase e-acute", 0xE9, 'é'},
		{"lowercase c-cedilla", 0xE7, 'ç'},
		{"uppercase A-grave", 0xC0, 'À'},
		{"unused code renders bullet", 0x81, '•'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := enc.Decode(tt.input)
			if got != tt.expected {
				t.Errorf("WinAnsiEncoding.Decode(0x%02X) = U+%04X, want U+%04X", tt.input, got, tt.expected)
			}
		})
	}
}

// TestMacRomanEncoding tests Mac Roman encoding
func TestMacRomanEncoding(t *testing.T) {
	enc := MacRomanEncoding

	tests := []struct {
		name     string
		input    byte
		expected rune
	}{
		{"space", 0x20, ' '},
		{"uppercase A", 0x41, 'A'},
		{"lowercase a", 0x61, 'a'},
		{"A-umlaut", 0x80, 'Ä'},
		{"e-acute", 0x8E, 'é'},
		{"e-grave", 0x8F, 'è'},
		{"degrees", 0xA1, '°'},
		{"copyright", 0xA9, '©'},
		{"trademark", 0xAA, '™'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := enc.Decode(tt.input)
			if got != tt.expected {
				t.Errorf("MacRomanEncoding.Decode(0x%02X) = U+%04X, want U+%04X", tt.input, got, tt.expected)
			}
		})
	}
}

// TestPDFDocEncoding tests PDF's default encoding
func TestPDFDocEncoding(t *testing.T) {
	enc := PDFDocEncoding

	tests := []struct {
		name     string
		input    byte
		expected rune
	}{
		{"space", 0x20, ' '},
		{"uppercase A", 0x41, 'A'},
		{"bullet", 0x80, '•'},
		{"dagger", 0x81, '†'},
		{"double dagger", 0x82, '‡'},
		{"ellipsis", 0x83, '…'},
		{"em dash", 0x84, '—'},
		{"en dash", 0x85, '–'},
		{"euro", 0xA0, '€'},
		{"lowercase e-acute", 0xE9, 'é'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := enc.Decode(tt.input)
			if got != tt.expected {
				t.Errorf("PDFDocEncoding.Decode(0x%02X) = U+%04X, want U+%04X", tt.input, got, tt.expected)
			}
		})
	}
}

// TestStandardEncoding tests Adobe StandardEncoding
func TestStandardEncoding(t *testing.T) {
	enc := StandardEncodingTable

	tests := []struct {
		name     string
		input    byte
		expected rune
	}{
		{"space", 0x20, ' '},
		{"uppercase A", 0x41, 'A'},
		{"lowercase a", 0x61, 'a'},
		{"quoteright", 0x27, '’'},
		{"quoteleft", 0x60, '‘'},
		{"exclamation inverted", 0xA1, '¡'},
		{"cent", 0xA2, '¢'},
		{"pound", 0xA3, '£'},
		{"fraction slash", 0xA4, '⁄'},
		{"yen", 0xA5, '¥'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := enc.Decode(tt.input)
			if got != tt.expected {
				t.Errorf("StandardEncoding.Decode(0x%02X) = U+%04X, want U+%04X", tt.input, got, tt.expected)
			}
		})
	}
}

// TestDecodeString tests decoding byte sequences to strings
func TestDecodeString(t *testing.T) {
	tests := []struct {
		name     string
		encoding Encoding
		input    []byte
		expected string
	}{
		{
			name:     "WinAnsi: Hello",
			encoding: WinAnsiEncoding,
			input:    []byte{0x48, 0x65, 0x6C, 0x6C, 0x6F},
			expected: "Hello",
		},
		{
			name:     "WinAnsi: café",
			encoding: WinAnsiEncoding,
			input:    []byte{0x63, 0x61, 0x66, 0xE9},
			expected: "café",
		},
		{
			name:     "PDFDoc: bullet point",
			encoding: PDFDocEncoding,
			input:    []byte{0x80, 0x20, 0x54, 0x65, 0x78, 0x74},
			expected: "• Text",
		},
		{
			name:     "MacRoman: naïve",
			encoding: MacRomanEncoding,
			input:    []byte{0x6E, 0x61, 0x95, 0x76, 0x65},
			expected: "naïve",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.encoding.DecodeString(tt.input)
			if got != tt.expected {
				t.Errorf("DecodeString() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// TestGetEncoding tests the encoding lookup function
func TestGetEncoding(t *testing.T) {
	tests := []struct {
		name     string
		encoding string
		expected string
	}{
		{"WinAnsiEncoding", "WinAnsiEncoding", "WinAnsiEncoding"},
		{"MacRomanEncoding", "MacRomanEncoding", "MacRomanEncoding"},
		{"PDFDocEncoding", "PDFDocEncoding", "PDFDocEncoding"},
		{"StandardEncoding", "StandardEncoding", "StandardEncoding"},
		{"Unknown defaults to WinAnsi", "UnknownEncoding", "WinAnsiEncoding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := GetEncoding(tt.encoding)
			if enc.Name() != tt.expected {
				t.Errorf("GetEncoding(%q).Name() = %q, want %q", tt.encoding, enc.Name(), tt.expected)
			}
		})
	}
}

// TestCustomEncoding tests per-code overrides layered on a base encoding
func TestCustomEncoding(t *testing.T) {
	enc := NewCustomEncoding(WinAnsiEncoding, map[byte]rune{
		0x41: 'Ω',
		0xE9: 'x',
	})

	tests := []struct {
		name     string
		input    byte
		expected rune
	}{
		{"overridden A", 0x41, 'Ω'},
		{"overridden e-acute", 0xE9, 'x'},
		{"untouched B falls through", 0x42, 'B'},
		{"untouched euro falls through", 0x80, '€'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := enc.Decode(tt.input)
			if got != tt.expected {
				t.Errorf("customEncoding.Decode(0x%02X) = U+%04X, want U+%04X", tt.input, got, tt.expected)
			}
		})
	}

	if enc.Name() != "WinAnsiEncoding+custom" {
		t.Errorf("Name() = %q, want %q", enc.Name(), "WinAnsiEncoding+custom")
	}
}

// TestCustomEncodingFromGlyphs tests glyph-name differences
func TestCustomEncodingFromGlyphs(t *testing.T) {
	enc := NewCustomEncodingFromGlyphs(StandardEncodingTable, map[byte]string{
		0x20: "Euro",
		0x41: "eacute",
		0x42: "uni0424",
		0x43: "mystery", // unresolvable name keeps the base
	})

	tests := []struct {
		input    byte
		expected rune
	}{
		{0x20, '€'},
		{0x41, 'é'},
		{0x42, 'Ф'},
		{0x43, 'C'},
		{0x44, 'D'},
	}

	for _, tt := range tests {
		got := enc.Decode(tt.input)
		if got != tt.expected {
			t.Errorf("Decode(0x%02X) = U+%04X, want U+%04X", tt.input, got, tt.expected)
		}
	}
}

// TestParseDifferences tests /Differences array parsing
func TestParseDifferences(t *testing.T) {
	arr := core.Array{
		core.Int(65),
		core.Name("Euro"),
		core.Name("eacute"),
		core.Int(200),
		core.Name("bullet"),
	}

	diffs := ParseDifferences(arr, nil)
	want := map[byte]string{
		65:  "Euro",
		66:  "eacute",
		200: "bullet",
	}
	if len(diffs) != len(want) {
		t.Fatalf("got %d differences, want %d", len(diffs), len(want))
	}
	for code, glyph := range want {
		if diffs[code] != glyph {
			t.Errorf("diffs[%d] = %q, want %q", code, diffs[code], glyph)
		}
	}
}

func TestParseDifferencesOutOfRange(t *testing.T) {
	ws := newWarnings(nil)
	arr := core.Array{
		core.Int(300),
		core.Name("Euro"),
	}
	diffs := ParseDifferences(arr, ws)
	if len(diffs) != 0 {
		t.Errorf("out-of-range code produced %d mappings, want 0", len(diffs))
	}
	if len(ws.list) != 1 || ws.list[0].Kind != WarnMalformedCMapEntry {
		t.Errorf("warnings = %v, want one MalformedCMapEntry", ws.list)
	}
}

// TestNormalizeUnicode tests Unicode normalization to NFC
func TestNormalizeUnicode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "already normalized",
			input:    "café",
			expected: "café",
		},
		{
			name:     "decomposed to composed",
			input:    "café",
			expected: "café",
		},
		{
			name:     "ASCII unchanged",
			input:    "Hello World",
			expected: "Hello World",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeUnicode(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizeUnicode(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// TestDecodeWithEncoding tests the convenience function
func TestDecodeWithEncoding(t *testing.T) {
	tests := []struct {
		name         string
		data         []byte
		encodingName string
		expected     string
	}{
		{
			name:         "WinAnsi: simple text",
			data:         []byte{0x48, 0x65, 0x6C, 0x6C, 0x6F},
			encodingName: "WinAnsiEncoding",
			expected:     "Hello",
		},
		{
			name:         "WinAnsi: accented characters",
			data:         []byte{0xE9, 0xE8, 0xEA, 0xEB},
			encodingName: "WinAnsiEncoding",
			expected:     "éèêë",
		},
		{
			name:         "PDFDoc: special characters",
			data:         []byte{0x80, 0x81, 0x82},
			encodingName: "PDFDocEncoding",
			expected:     "•†‡",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeWithEncoding(tt.data, tt.encodingName)
			if got != tt.expected {
				t.Errorf("DecodeWithEncoding() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// TestIsValidUTF8 tests UTF-8 validation
func TestIsValidUTF8(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"valid ASCII", "Hello", true},
		{"valid UTF-8 with accents", "café", true},
		{"valid UTF-8 with emoji", "Hello 👋", true},
		{"invalid UTF-8", string([]byte{0xFF, 0xFE}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsValidUTF8(tt.input)
			if got != tt.expected {
				t.Errorf("IsValidUTF8(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

// TestWinAnsiExtendedCharacters tests characters specific to Windows CP1252
func TestWinAnsiExtendedCharacters(t *testing.T) {
	enc := WinAnsiEncoding

	tests := []struct {
		byte byte
		want rune
		name string
	}{
		{0x80, 0x20AC, "Euro"},
		{0x82, 0x201A, "Single Low-9 Quotation"},
		{0x83, 0x0192, "Latin Small Letter F with Hook"},
		{0x84, 0x201E, "Double Low-9 Quotation"},
		{0x85, 0x2026, "Horizontal Ellipsis"},
		{0x86, 0x2020, "Dagger"},
		{0x87, 0x2021, "Double Dagger"},
		{0x91, 0x2018, "Left Single Quotation"},
		{0x92, 0x2019, "Right Single Quotation"},
		{0x93, 0x201C, "Left Double Quotation"},
		{0x94, 0x201D, "Right Double Quotation"},
		{0x95, 0x2022, "Bullet"},
		{0x96, 0x2013, "En Dash"},
		{0x97, 0x2014, "Em Dash"},
		{0x99, 0x2122, "Trademark"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := enc.Decode(tt.byte)
			if got != tt.want {
				t.Errorf("Decode(0x%02X) = U+%04X, want U+%04X", tt.byte, got, tt.want)
			}
		})
	}
}

// TestDecodeUTF16 tests the UTF-16 string helpers
func TestDecodeUTF16(t *testing.T) {
	tests := []struct {
		name     string
		fn       func([]byte) string
		input    []byte
		expected string
	}{
		{"BE basic", DecodeUTF16BE, []byte{0x00, 0x48, 0x00, 0x69}, "Hi"},
		{"BE with BOM", DecodeUTF16BE, []byte{0xFE, 0xFF, 0x00, 0x41}, "A"},
		{"BE surrogate pair", DecodeUTF16BE, []byte{0xD8, 0x3D, 0xDE, 0x00}, "\U0001F600"},
		{"LE basic", DecodeUTF16LE, []byte{0x48, 0x00, 0x69, 0x00}, "Hi"},
		{"BE empty", DecodeUTF16BE, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(tt.input)
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}
