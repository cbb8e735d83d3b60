package font

import (
	"unicode"

	"github.com/tsawler/codemap/core"
)

// defaultGlyphWidth is the advance used when nothing else is known,
// in 1000ths of an em.
const defaultGlyphWidth = 500.0

// defaultSpaceWidth is the last-resort space advance when the font maps no
// usable glyphs at all.
const defaultSpaceWidth = 250.0

// WidthTable resolves per-code advance widths. Lookup order: explicit code
// entry, latest-declared matching range, default width. Immutable after
// construction.
type WidthTable struct {
	def      float64
	explicit map[uint32]float64
	ranges   []widthRange
}

type widthRange struct {
	lo, hi uint32
	width  float64
}

// NewWidthTable creates an empty table with the given default width
func NewWidthTable(defaultWidth float64) *WidthTable {
	if defaultWidth <= 0 {
		defaultWidth = defaultGlyphWidth
	}
	return &WidthTable{def: defaultWidth, explicit: make(map[uint32]float64)}
}

// SetWidth records an explicit width for one code
func (t *WidthTable) SetWidth(code uint32, width float64) {
	t.explicit[code] = width
}

// AddRange records a width shared by every code in [lo, hi]
func (t *WidthTable) AddRange(lo, hi uint32, width float64) {
	t.ranges = append(t.ranges, widthRange{lo: lo, hi: hi, width: width})
}

// Resolve returns the advance width for a code. Per-code entries beat
// ranges; among overlapping ranges the latest-declared one wins.
func (t *WidthTable) Resolve(code uint32) float64 {
	if w, ok := t.explicit[code]; ok {
		return w
	}
	for i := len(t.ranges) - 1; i >= 0; i-- {
		r := t.ranges[i]
		if code >= r.lo && code <= r.hi {
			return r.width
		}
	}
	return t.def
}

// Default returns the table's default width
func (t *WidthTable) Default() float64 {
	return t.def
}

// HasExplicit reports whether the code has an explicit entry (not a range
// or default fallback).
func (t *WidthTable) HasExplicit(code uint32) bool {
	_, ok := t.explicit[code]
	return ok
}

// maxWidth returns the widest explicitly declared advance, or 0 when the
// table holds only the default.
func (t *WidthTable) maxWidth() float64 {
	max := 0.0
	for _, w := range t.explicit {
		if w > max {
			max = w
		}
	}
	for _, r := range t.ranges {
		if r.width > max {
			max = r.width
		}
	}
	return max
}

// widthsFromSimpleFont builds a width table from a simple font's /Widths
// array with /FirstChar, falling back to Standard-14 metrics for the base
// font when no array is present.
func widthsFromSimpleFont(fontDict core.Dict, resolve Resolver, enc Encoding, ws *warnings) *WidthTable {
	missing := missingWidthOf(fontDict, resolve)
	t := NewWidthTable(missing)

	firstChar := int64(0)
	if fc, ok := fontDict.GetInt("FirstChar"); ok {
		firstChar = int64(fc)
	}

	widthsObj := resolveObject(fontDict.Get("Widths"), resolve)
	if arr, ok := widthsObj.(core.Array); ok {
		for i, item := range arr {
			w, ok := toNumber(item)
			if !ok {
				ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: -1, Detail: "widths array entry is not a number"})
				continue
			}
			code := firstChar + int64(i)
			if code < 0 {
				continue
			}
			t.SetWidth(uint32(code), w)
		}
		return t
	}

	// No widths array: Standard-14 metrics keyed through the encoding.
	base := stripSubsetTag(nameOf(fontDict.Get("BaseFont")))
	if metrics, ok := standard14Widths[base]; ok && enc != nil {
		for code := 0; code < 256; code++ {
			if w, ok := metrics[enc.Decode(byte(code))]; ok {
				t.SetWidth(uint32(code), w)
			}
		}
	}
	return t
}

// widthsFromCIDFont builds a width table from a descendant font's /W array
// and /DW default. The /W array alternates between the form
// `c [w1 w2 ...]` and the form `cFirst cLast w`.
func widthsFromCIDFont(descendant core.Dict, resolve Resolver, ws *warnings) *WidthTable {
	def := 1000.0
	if dw, ok := toNumber(resolveObject(descendant.Get("DW"), resolve)); ok && dw > 0 {
		def = dw
	}
	t := NewWidthTable(def)

	wObj := resolveObject(descendant.Get("W"), resolve)
	arr, ok := wObj.(core.Array)
	if !ok {
		if wObj != nil {
			ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: -1, Detail: "descendant font W is not an array"})
		}
		return t
	}

	for i := 0; i < len(arr); {
		start, ok := toNumber(resolveObject(arr[i], resolve))
		if !ok {
			ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: -1, Detail: "W array start entry is not a number"})
			i++
			continue
		}
		i++
		if i >= len(arr) {
			break
		}

		next := resolveObject(arr[i], resolve)
		if widths, ok := next.(core.Array); ok {
			// c [w1 w2 ... wn]
			for j, item := range widths {
				if w, ok := toNumber(item); ok {
					t.SetWidth(uint32(start)+uint32(j), w)
				}
			}
			i++
			continue
		}

		// cFirst cLast w
		end, ok := toNumber(next)
		if !ok {
			ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: -1, Detail: "W array range end is not a number"})
			i++
			continue
		}
		i++
		if i >= len(arr) {
			break
		}
		w, ok := toNumber(resolveObject(arr[i], resolve))
		i++
		if !ok {
			ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: -1, Detail: "W array range width is not a number"})
			continue
		}
		if end < start {
			ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: -1, Detail: "W array range end below start"})
			continue
		}
		t.AddRange(uint32(start), uint32(end), w)
	}
	return t
}

// missingWidthOf pulls /MissingWidth from the font descriptor
func missingWidthOf(fontDict core.Dict, resolve Resolver) float64 {
	fdObj := resolveObject(fontDict.Get("FontDescriptor"), resolve)
	fd, ok := fdObj.(core.Dict)
	if !ok {
		return defaultGlyphWidth
	}
	if mw, ok := toNumber(resolveObject(fd.Get("MissingWidth"), resolve)); ok && mw > 0 {
		return mw
	}
	return defaultGlyphWidth
}

// spaceWidthFor estimates the advance of a word space for the font. The
// declared width of the code that decodes to U+0020 wins; otherwise half
// the average width of mapped alphanumeric glyphs; otherwise the
// Standard-14 space width for the base font; otherwise a flat default.
// The estimate feeds word-break recovery, not typography.
func spaceWidthFor(ctx *DecodingContext, baseFont string) float64 {
	t := ctx.widths

	// Explicitly declared space width
	for code, w := range t.explicit {
		if ctx.LookupCode(code) == " " && w > 0 {
			return w
		}
	}

	// Half the average alphanumeric advance
	var sum float64
	var n int
	for code, w := range t.explicit {
		if w <= 0 {
			continue
		}
		s := ctx.LookupCode(code)
		if len(s) == 0 {
			continue
		}
		r := []rune(s)[0]
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sum += w
			n++
		}
	}
	if n > 0 {
		return sum / float64(n) / 2
	}

	if w, ok := standard14SpaceWidths[stripSubsetTag(baseFont)]; ok {
		return w
	}
	return defaultSpaceWidth
}

// resolveObject chases an indirect reference through the caller-supplied
// resolver. Unresolvable references degrade to nil, per the missing-field
// policy.
func resolveObject(obj core.Object, resolve Resolver) core.Object {
	if ref, ok := obj.(core.IndirectRef); ok {
		if resolve == nil {
			return nil
		}
		resolved, err := resolve(ref)
		if err != nil {
			return nil
		}
		return resolved
	}
	return obj
}

// toNumber extracts a numeric value from an Int or Real
func toNumber(obj core.Object) (float64, bool) {
	switch v := obj.(type) {
	case core.Int:
		return float64(v), true
	case core.Real:
		return float64(v), true
	default:
		return 0, false
	}
}

// nameOf extracts the text of a Name or String object
func nameOf(obj core.Object) string {
	switch v := obj.(type) {
	case core.Name:
		return string(v)
	case core.String:
		return string(v)
	default:
		return ""
	}
}

// stripSubsetTag removes the ABCDEF+ prefix subsetters prepend to base
// font names.
func stripSubsetTag(baseFont string) string {
	if len(baseFont) > 7 && baseFont[6] == '+' {
		tag := baseFont[:6]
		upper := true
		for _, c := range tag {
			if c < 'A' || c > 'Z' {
				upper = false
				break
			}
		}
		if upper {
			return baseFont[7:]
		}
	}
	return baseFont
}
