package font

import (
	"bytes"
	"compress/zlib"
	"strings"
	"testing"

	"github.com/tsawler/codemap/core"
)

func TestParseToUnicodeCMap(t *testing.T) {
	stream := &core.Stream{
		Dict: core.Dict{"Length": core.Int(0)},
		Data: []byte(`1 begincodespacerange
<00> <FF>
endcodespacerange
1 beginbfchar
<41> <0058>
endbfchar
`),
	}
	cmap, warns := ParseToUnicodeCMap(stream)
	if len(warns) != 0 {
		t.Fatalf("unexpected warnings: %v", warns)
	}
	if got, ok := cmap.Lookup(0x41); !ok || got != "X" {
		t.Errorf("Lookup(0x41) = %q, %v, want %q, true", got, ok, "X")
	}

	cmap, warns = ParseToUnicodeCMap(nil)
	if cmap == nil || len(warns) != 0 {
		t.Error("nil stream should yield an empty map and no warnings")
	}
}

func TestParseCompressedToUnicode(t *testing.T) {
	program := []byte(`1 begincodespacerange
<00> <FF>
endcodespacerange
1 beginbfchar
<41> <0058>
endbfchar
`)
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(program); err != nil {
		t.Fatalf("zlib write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("zlib close: %v", err)
	}

	stream := &core.Stream{
		Dict: core.Dict{"Filter": core.Name("FlateDecode")},
		Data: buf.Bytes(),
	}
	cmap, warns := ParseToUnicodeCMap(stream)
	if len(warns) != 0 {
		t.Fatalf("unexpected warnings: %v", warns)
	}
	if got, ok := cmap.Lookup(0x41); !ok || got != "X" {
		t.Errorf("Lookup(0x41) = %q, %v, want %q, true", got, ok, "X")
	}

	// An image filter on a ToUnicode stream is malformed, not fatal.
	stream = &core.Stream{
		Dict: core.Dict{"Filter": core.Name("DCTDecode")},
		Data: []byte{0xff, 0xd8},
	}
	cmap, warns = ParseToUnicodeCMap(stream)
	if cmap == nil {
		t.Fatal("undecodable stream should still yield an empty map")
	}
	if len(warns) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warns))
	}
}

func TestParseWhitespaceTolerance(t *testing.T) {
	// Tabs, carriage returns and entries split across lines are all legal
	// whitespace in a CMap program.
	cmapData := "1 begincodespacerange\r\n<00>\t<FF>\r\nendcodespacerange\r\n" +
		"2 beginbfchar\r\n<41>\r\n<0058>\r\n<42>\t<0059>\r\nendbfchar\r\n"

	ws := newWarnings(nil)
	cmap := parseCMapData([]byte(cmapData), ws)
	if len(ws.list) != 0 {
		t.Fatalf("unexpected warnings: %v", ws.list)
	}
	if got, _ := cmap.Lookup(0x41); got != "X" {
		t.Errorf("Lookup(0x41) = %q, want %q", got, "X")
	}
	if got, _ := cmap.Lookup(0x42); got != "Y" {
		t.Errorf("Lookup(0x42) = %q, want %q", got, "Y")
	}
}

func TestParseHexStringForms(t *testing.T) {
	// Whitespace inside hex strings and an odd trailing digit are accepted.
	cmapData := `2 beginbfchar
<4 1> <00 58>
<42> <005>
endbfchar
`
	cmap := parseCMapData([]byte(cmapData), newWarnings(nil))
	if got, _ := cmap.Lookup(0x41); got != "X" {
		t.Errorf("Lookup(0x41) = %q, want %q", got, "X")
	}
	// <005> pads to <0050>
	if got, _ := cmap.Lookup(0x42); got != "P" {
		t.Errorf("Lookup(0x42) = %q, want %q", got, "P")
	}
}

func TestParseComments(t *testing.T) {
	cmapData := `% header comment
1 beginbfchar
<41> <0058> % trailing comment
endbfchar
`
	cmap := parseCMapData([]byte(cmapData), newWarnings(nil))
	if got, _ := cmap.Lookup(0x41); got != "X" {
		t.Errorf("Lookup(0x41) = %q, want %q", got, "X")
	}
}

func TestParseMalformedEntriesSkipped(t *testing.T) {
	// The middle entry is garbage; its neighbors must still land.
	cmapData := `3 beginbfchar
<41> <0058>
(junk) <0059>
<43> <005A>
endbfchar
`
	ws := newWarnings(nil)
	cmap := parseCMapData([]byte(cmapData), ws)

	if got, _ := cmap.Lookup(0x41); got != "X" {
		t.Errorf("Lookup(0x41) = %q, want %q", got, "X")
	}
	if got, _ := cmap.Lookup(0x43); got != "Z" {
		t.Errorf("Lookup(0x43) = %q, want %q", got, "Z")
	}
	found := false
	for _, w := range ws.list {
		if w.Kind == WarnMalformedCMapEntry {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want a MalformedCMapEntry", ws.list)
	}
}

func TestParseInvertedRange(t *testing.T) {
	ws := newWarnings(nil)
	cmap := parseCMapData([]byte("1 beginbfrange\n<4F> <40> <0040>\nendbfrange\n"), ws)
	if _, ok := cmap.Lookup(0x45); ok {
		t.Error("inverted range should not map anything")
	}
	if len(ws.list) != 1 || ws.list[0].Kind != WarnMalformedCMapEntry {
		t.Errorf("warnings = %v, want one MalformedCMapEntry", ws.list)
	}
}

func TestParseTruncatedBlock(t *testing.T) {
	// Input ends mid-entry; what parsed before the cut survives.
	cmapData := `2 beginbfchar
<41> <0058>
<42>`
	ws := newWarnings(nil)
	cmap := parseCMapData([]byte(cmapData), ws)
	if got, _ := cmap.Lookup(0x41); got != "X" {
		t.Errorf("Lookup(0x41) = %q, want %q", got, "X")
	}
	if len(ws.list) == 0 {
		t.Error("truncated entry should warn")
	}
}

func TestParseInvalidCodespaceRanges(t *testing.T) {
	tests := []struct {
		name    string
		program string
	}{
		{"length mismatch", "1 begincodespacerange\n<00> <FFFF>\nendcodespacerange\n"},
		{"five bytes", "1 begincodespacerange\n<0000000000> <FFFFFFFFFF>\nendcodespacerange\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := newWarnings(nil)
			cmap := parseCMapData([]byte(tt.program), ws)
			if !cmap.Codespace().Empty() {
				t.Error("invalid range should not be recorded")
			}
			if len(ws.list) != 1 || ws.list[0].Kind != WarnMalformedCMapEntry {
				t.Errorf("warnings = %v, want one MalformedCMapEntry", ws.list)
			}
		})
	}
}

func TestParseDuplicateDefKeys(t *testing.T) {
	cmapData := `/CMapName /First def
/CMapName /Second def
`
	ws := newWarnings(nil)
	cmap := parseCMapData([]byte(cmapData), ws)

	// Last definition wins, and the collision is reported with the key.
	if cmap.Name() != "Second" {
		t.Errorf("Name() = %q, want %q", cmap.Name(), "Second")
	}
	if len(ws.list) != 1 {
		t.Fatalf("warnings = %v, want exactly one", ws.list)
	}
	w := ws.list[0]
	if w.Kind != WarnDuplicateDictionaryKey || w.Key != "CMapName" {
		t.Errorf("warning = %+v, want DuplicateDictionaryKey for CMapName", w)
	}
	if !strings.Contains(w.String(), "CMapName") {
		t.Errorf("String() = %q, should name the key", w.String())
	}
}

func TestParseBfCharGlyphNameDestination(t *testing.T) {
	cmapData := `2 beginbfchar
<41> /eacute
<42> /nonsense-name
endbfchar
`
	ws := newWarnings(nil)
	cmap := parseCMapData([]byte(cmapData), ws)
	if got, _ := cmap.Lookup(0x41); got != "é" {
		t.Errorf("Lookup(0x41) = %q, want %q", got, "é")
	}
	if _, ok := cmap.Lookup(0x42); ok {
		t.Error("unknown glyph name destination should stay unmapped")
	}
	if len(ws.list) != 1 || ws.list[0].Kind != WarnMalformedCMapEntry {
		t.Errorf("warnings = %v, want one MalformedCMapEntry", ws.list)
	}
}

func TestParseBfRangeArrayShort(t *testing.T) {
	// Array shorter than the range clamps to its last element.
	cmapData := `1 beginbfrange
<10> <13> [<0041> <0042>]
endbfrange
`
	cmap := parseCMapData([]byte(cmapData), newWarnings(nil))
	if got, _ := cmap.Lookup(0x12); got != "B" {
		t.Errorf("Lookup(0x12) = %q, want %q", got, "B")
	}
}
