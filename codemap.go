package codemap

import (
	"github.com/tsawler/codemap/core"
	"github.com/tsawler/codemap/font"
)

// Warning is a non-fatal problem found while resolving an encoding or
// decoding text.
type Warning = font.Warning

// FormatWarnings renders warnings as a human-readable multi-line string.
func FormatWarnings(warns []Warning) string {
	return font.FormatWarnings(warns)
}

// BuildCharMap resolves a font dictionary into a decoding context. It never
// fails: malformed or unsupported encoding data degrades the context and is
// reported through the returned warnings.
//
// Example:
//
//	ctx, warnings := codemap.BuildCharMap(fontDict, codemap.WithResolver(resolve))
//	text, _ := ctx.DecodeString(raw)
func BuildCharMap(fontDict core.Dict, opts ...Option) (*font.DecodingContext, []Warning) {
	o := applyOptions(opts)
	return font.BuildContext(fontDict, o.resolver, o.sink)
}

// DecodeText builds a context for the font dictionary and decodes one
// string operand with it. For repeated decoding against the same font,
// build the context once with BuildCharMap (or use a Cache) instead.
func DecodeText(fontDict core.Dict, data []byte, opts ...Option) (string, []Warning) {
	o := applyOptions(opts)
	ctx, warns := font.BuildContext(fontDict, o.resolver, o.sink)
	text, dwarns := ctx.DecodeString(data)
	if o.normalize {
		text = font.NormalizeUnicode(text)
	}
	if len(dwarns) > 0 {
		warns = append(warns, dwarns...)
	}
	return text, warns
}
