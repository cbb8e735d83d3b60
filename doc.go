// Package codemap resolves PDF font encodings and decodes raw string
// operands into Unicode text and glyph advances.
//
// Basic usage:
//
//	ctx, warnings := codemap.BuildCharMap(fontDict, codemap.WithResolver(resolve))
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", codemap.FormatWarnings(warnings))
//	}
//	text, _ := ctx.DecodeString(raw)
//
// Building a char map never fails. Fonts with malformed or unsupported
// encodings degrade to a best-effort byte reading, and every problem is
// reported as a [Warning] rather than an error.
//
// Reuse contexts across pages with a [Cache], keyed by the font's object
// reference:
//
//	cache := codemap.NewCache()
//	ctx, _ := cache.BuildCharMap(fontRef, fontDict, codemap.WithResolver(resolve))
//
// For lower-level access to CMap parsing, encodings, and width tables, use
// the font package directly; the core package holds the object model the
// font dictionaries are expressed in.
package codemap
