// Package font resolves PDF font encodings and decodes string operands
// into text and glyph advances.
//
// This package turns a font dictionary into a [DecodingContext], which maps
// raw character codes to Unicode text and widths for layout recovery.
//
// # Building a Context
//
// Contexts are built from already-resolved font dictionaries; a [Resolver]
// callback dereferences indirect objects on demand:
//
//	ctx, warns := font.BuildContext(fontDict, resolver, nil)
//	text, _ := ctx.DecodeString(rawBytes)
//
// Building never fails on malformed encoding data. Problems surface as
// [Warning] values and the context degrades to the most plausible
// byte-level reading.
//
// # Encoding Resolution
//
// For simple fonts (Type1, TrueType, Type3) the /Encoding entry selects a
// byte-to-rune table, optionally patched by a /Differences array. For
// composite Type0 fonts the /Encoding CMap defines the code space; the
// built-in Identity-H and Identity-V encodings and embedded CMap streams
// are supported, and the legacy CJK registry encodings degrade to a
// two-byte identity reading.
//
// An embedded /ToUnicode program always takes precedence for text.
//
// # CMaps
//
// [CMap] implements codespace ranges, bfchar/bfrange and cidchar/cidrange
// mappings, and usecmap inheritance from a predefined base map. The parser
// is tolerant: malformed entries are skipped with warnings.
//
// # Widths
//
// [WidthTable] resolves per-code advances from /Widths, a composite /W
// array, or Standard 14 metrics, and the context estimates a word-space
// advance for word-break recovery.
package font
