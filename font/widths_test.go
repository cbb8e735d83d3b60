package font

import (
	"testing"

	"github.com/tsawler/codemap/core"
)

func TestWidthTableResolve(t *testing.T) {
	table := NewWidthTable(500)
	table.SetWidth(65, 722)
	table.AddRange(100, 110, 600)
	table.AddRange(105, 107, 650) // later range shadows the overlap

	tests := []struct {
		code uint32
		want float64
	}{
		{65, 722},
		{66, 500}, // default
		{100, 600},
		{106, 650}, // later range wins
		{110, 600},
		{111, 500},
	}
	for _, tt := range tests {
		if got := table.Resolve(tt.code); got != tt.want {
			t.Errorf("Resolve(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}

	if !table.HasExplicit(65) || table.HasExplicit(66) {
		t.Error("HasExplicit should report only per-code entries")
	}
	if table.Default() != 500 {
		t.Errorf("Default() = %v, want 500", table.Default())
	}
}

func TestWidthsFromSimpleFont(t *testing.T) {
	fontDict := core.Dict{
		"Type":      core.Name("Font"),
		"Subtype":   core.Name("Type1"),
		"BaseFont":  core.Name("Helvetica"),
		"FirstChar": core.Int(65),
		"Widths":    core.Array{core.Int(722), core.Int(667), core.Real(722.5)},
	}

	table := widthsFromSimpleFont(fontDict, nil, WinAnsiEncoding, newWarnings(nil))
	tests := []struct {
		code uint32
		want float64
	}{
		{65, 722},
		{66, 667},
		{67, 722.5},
		{68, defaultGlyphWidth},
	}
	for _, tt := range tests {
		if got := table.Resolve(tt.code); got != tt.want {
			t.Errorf("Resolve(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestWidthsFromSimpleFontStandard14(t *testing.T) {
	fontDict := core.Dict{
		"Type":     core.Name("Font"),
		"Subtype":  core.Name("Type1"),
		"BaseFont": core.Name("Helvetica"),
	}

	table := widthsFromSimpleFont(fontDict, nil, WinAnsiEncoding, newWarnings(nil))
	if got := table.Resolve(uint32('A')); got != 667 {
		t.Errorf("Resolve('A') = %v, want 667 from Helvetica metrics", got)
	}
	if got := table.Resolve(uint32(' ')); got != 278 {
		t.Errorf("Resolve(' ') = %v, want 278 from Helvetica metrics", got)
	}
}

func TestWidthsFromSimpleFontSubsetTag(t *testing.T) {
	fontDict := core.Dict{
		"BaseFont": core.Name("ABCDEF+Times-Roman"),
		"Subtype":  core.Name("Type1"),
	}
	table := widthsFromSimpleFont(fontDict, nil, WinAnsiEncoding, newWarnings(nil))
	if got := table.Resolve(uint32('A')); got != 722 {
		t.Errorf("Resolve('A') = %v, want 722 from Times metrics", got)
	}
}

func TestWidthsFromSimpleFontMissingWidth(t *testing.T) {
	fontDict := core.Dict{
		"BaseFont": core.Name("NoSuchFont"),
		"Subtype":  core.Name("Type1"),
		"FontDescriptor": core.Dict{
			"MissingWidth": core.Int(333),
		},
	}
	table := widthsFromSimpleFont(fontDict, nil, WinAnsiEncoding, newWarnings(nil))
	if got := table.Resolve(1000); got != 333 {
		t.Errorf("Resolve(1000) = %v, want MissingWidth 333", got)
	}
}

func TestWidthsFromCIDFont(t *testing.T) {
	descendant := core.Dict{
		"Subtype": core.Name("CIDFontType2"),
		"DW":      core.Int(800),
		"W": core.Array{
			// c [w...] form
			core.Int(1), core.Array{core.Int(500), core.Int(600), core.Int(700)},
			// cFirst cLast w form
			core.Int(10), core.Int(20), core.Int(250),
		},
	}

	table := widthsFromCIDFont(descendant, nil, newWarnings(nil))
	tests := []struct {
		cid  uint32
		want float64
	}{
		{1, 500},
		{2, 600},
		{3, 700},
		{10, 250},
		{15, 250},
		{20, 250},
		{4, 800},  // default from DW
		{21, 800}, // past the range
	}
	for _, tt := range tests {
		if got := table.Resolve(tt.cid); got != tt.want {
			t.Errorf("Resolve(%d) = %v, want %v", tt.cid, got, tt.want)
		}
	}
}

func TestWidthsFromCIDFontDefaultDW(t *testing.T) {
	table := widthsFromCIDFont(core.Dict{"Subtype": core.Name("CIDFontType0")}, nil, newWarnings(nil))
	if got := table.Resolve(42); got != 1000 {
		t.Errorf("Resolve(42) = %v, want the default 1000", got)
	}
}

func TestWidthsIndirectReferences(t *testing.T) {
	widths := core.Array{core.Int(722)}
	resolve := func(ref core.IndirectRef) (core.Object, error) {
		if ref.Number == 7 {
			return widths, nil
		}
		return core.Null{}, nil
	}

	fontDict := core.Dict{
		"BaseFont":  core.Name("Helvetica"),
		"Subtype":   core.Name("Type1"),
		"FirstChar": core.Int(65),
		"Widths":    core.IndirectRef{Number: 7, Generation: 0},
	}
	table := widthsFromSimpleFont(fontDict, resolve, WinAnsiEncoding, newWarnings(nil))
	if got := table.Resolve(65); got != 722 {
		t.Errorf("Resolve(65) = %v, want 722 through the indirect /Widths", got)
	}
}

func TestStripSubsetTag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ABCDEF+Helvetica", "Helvetica"},
		{"Helvetica", "Helvetica"},
		{"AB+Helvetica", "AB+Helvetica"}, // tag must be six uppercase letters
		{"ABCDEF+", "ABCDEF+"},
	}
	for _, tt := range tests {
		if got := stripSubsetTag(tt.in); got != tt.want {
			t.Errorf("stripSubsetTag(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
