// Package core provides the resolved PDF object types consumed by the
// character-map decoder.
//
// The codemap module deliberately does not read PDF files. Document parsing
// and cross-reference resolution belong to the caller; what crosses the
// boundary into this module is a font description expressed in these value
// types, plus raw byte strings lifted from text-showing operators.
//
// # Object Types
//
// PDF defines eight basic object types, all implemented as types satisfying
// the Object interface:
//
//   - [Null] - represents the PDF null object
//   - [Bool] - represents PDF boolean values (true/false)
//   - [Int] - represents PDF integers
//   - [Real] - represents PDF real numbers (floating point)
//   - [String] - represents PDF string objects (literal or hexadecimal)
//   - [Name] - represents PDF name objects (e.g., /Type, /Font)
//   - [Array] - represents PDF arrays
//   - [Dict] - represents PDF dictionaries
//
// Additionally, [Stream] represents a PDF stream; its Decoded method applies
// the stream's filter chain. [IndirectRef] identifies an indirect object.
// IndirectRef doubles as a convenient cache key for per-font decoding
// contexts, since it pins object identity within a document.
//
// # Duplicate Keys
//
// Real-world producers sometimes write the same dictionary key twice. The
// [DictBuilder] type lets an upstream parser record those duplicate writes
// (with byte offsets) so the decoder can surface them as diagnostics instead
// of silently dropping them.
package core
