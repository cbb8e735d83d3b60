package font

import (
	"strings"

	"github.com/tsawler/codemap/core"
)

// fontState tracks how far a font got through encoding resolution.
type fontState int

const (
	// StateUninitialized means no resolution has been attempted.
	StateUninitialized fontState = iota
	// StateResolved means the font decodes through a real mapping.
	StateResolved
	// StateDegraded means an unsupported encoding forced a passthrough
	// reading; decoded text is a best effort.
	StateDegraded
)

func (s fontState) String() string {
	switch s {
	case StateResolved:
		return "resolved"
	case StateDegraded:
		return "degraded"
	default:
		return "uninitialized"
	}
}

// DecodingContext holds everything needed to turn a font's string operands
// into text and advances. Build one per font with BuildContext; the context
// is immutable afterwards and safe for concurrent use.
type DecodingContext struct {
	subtype    string
	baseFont   string
	space      *CodespaceTable
	cmap       *CMap
	cidmap     *CMap
	enc        Encoding
	widths     *WidthTable
	spaceWidth float64
	multibyte  bool
	ordering   string
	vertical   bool
	state      fontState
	sink       WarningSink
	buildWarns []Warning
}

// BuildContext resolves a font dictionary into a DecodingContext. Malformed
// encoding data never fails the build: problems surface as warnings and the
// context degrades to the most plausible byte-level reading. An embedded
// /ToUnicode program takes precedence over the base encoding for text;
// a composite font's own encoding CMap owns the code space.
func BuildContext(fontDict core.Dict, resolve Resolver, sink WarningSink) (*DecodingContext, []Warning) {
	ws := newWarnings(sink)
	ctx := &DecodingContext{
		subtype: nameOf(fontDict.Get("Subtype")),
		sink:    sink,
		state:   StateResolved,
	}
	if bf, ok := fontDict.GetName("BaseFont"); ok {
		ctx.baseFont = string(bf)
	}

	if ctx.subtype == "Type0" {
		buildComposite(ctx, fontDict, resolve, ws)
	} else {
		buildSimple(ctx, fontDict, resolve, ws)
	}

	// The ToUnicode program, when present, is the authoritative source of
	// text. Its code space only matters when the encoding gave us none.
	if tu := resolveObject(fontDict.Get("ToUnicode"), resolve); tu != nil {
		if stream, ok := tu.(*core.Stream); ok {
			cm := parseEmbeddedCMap(stream, ws)
			if cm.HasMappings() {
				ctx.cmap = cm
			}
			if ctx.space.Empty() && !cm.Codespace().Empty() {
				ctx.space = cm.Codespace()
			}
		}
	}
	if ctx.space.Empty() {
		ctx.space = singleByteCodespace()
	}

	ctx.spaceWidth = spaceWidthFor(ctx, ctx.baseFont)
	ctx.buildWarns = ws.list
	return ctx, ws.list
}

func buildSimple(ctx *DecodingContext, fontDict core.Dict, resolve Resolver, ws *warnings) {
	re := resolveSimpleEncoding(fontDict, resolve, ws)
	ctx.enc = re.enc
	ctx.space = singleByteCodespace()
	if re.degraded {
		ctx.state = StateDegraded
	}
	ctx.widths = widthsFromSimpleFont(fontDict, resolve, ctx.enc, ws)
}

func buildComposite(ctx *DecodingContext, fontDict core.Dict, resolve Resolver, ws *warnings) {
	ctx.multibyte = true
	re := resolveCompositeEncoding(fontDict, resolve, ws)
	ctx.space = re.space
	ctx.cidmap = re.cmap
	ctx.vertical = re.vertical
	if re.degraded {
		ctx.state = StateDegraded
	}

	descendant := descendantFont(fontDict, resolve)
	if descendant != nil {
		ctx.ordering = cidOrdering(descendant, resolve)
		ctx.widths = widthsFromCIDFont(descendant, resolve, ws)
	} else {
		ws.warn(Warning{
			Kind:   WarnMalformedCMapEntry,
			Offset: -1,
			Detail: "composite font without a descendant font",
		})
		ctx.widths = NewWidthTable(1000)
	}
}

// Subtype returns the font dictionary's /Subtype name.
func (ctx *DecodingContext) Subtype() string { return ctx.subtype }

// BaseFont returns the /BaseFont name, subset tag included.
func (ctx *DecodingContext) BaseFont() string { return ctx.baseFont }

// Multibyte reports whether codes may span more than one byte.
func (ctx *DecodingContext) Multibyte() bool { return ctx.multibyte }

// Vertical reports whether the font's writing mode is vertical.
func (ctx *DecodingContext) Vertical() bool { return ctx.vertical }

// Ordering returns the CID system ordering of a composite font, or "".
func (ctx *DecodingContext) Ordering() string { return ctx.ordering }

// State reports how encoding resolution ended for this font.
func (ctx *DecodingContext) State() fontState { return ctx.state }

// Degraded reports whether an unsupported encoding forced a passthrough
// reading.
func (ctx *DecodingContext) Degraded() bool { return ctx.state == StateDegraded }

// SpaceWidth returns the estimated advance of a word space, in glyph space
// units.
func (ctx *DecodingContext) SpaceWidth() float64 { return ctx.spaceWidth }

// Widths returns the font's width table.
func (ctx *DecodingContext) Widths() *WidthTable { return ctx.widths }

// Warnings returns the warnings collected while building the context.
func (ctx *DecodingContext) Warnings() []Warning { return ctx.buildWarns }

// LookupCode maps a single character code to its text. The ToUnicode
// program wins; then the byte encoding for single-byte codes; as a last
// resort the code value itself is read as a code point.
func (ctx *DecodingContext) LookupCode(code uint32) string {
	if ctx.cmap != nil {
		if s, ok := ctx.cmap.Lookup(code); ok {
			return s
		}
	}
	if ctx.enc != nil && code < 256 {
		return string(ctx.enc.Decode(byte(code)))
	}
	return string(rune(code))
}

// lookupCID maps a code to the CID used for width lookup. The encoding
// CMap of a composite font is the authoritative source; the ToUnicode
// program is consulted after it for the rare files that carry CID entries
// there. Without explicit CID mappings the code is its own CID, which is
// exact for the identity encodings.
func (ctx *DecodingContext) lookupCID(code uint32) uint32 {
	if ctx.cidmap != nil {
		if cid, ok := ctx.cidmap.LookupCID(code); ok {
			return cid
		}
	}
	if ctx.cmap != nil {
		if cid, ok := ctx.cmap.LookupCID(code); ok {
			return cid
		}
	}
	return code
}

// DecodedRun is one decoded character code: its text, advance and the raw
// code with the number of bytes it occupied.
type DecodedRun struct {
	Text     string
	Width    float64
	Code     uint32
	NumBytes int
}

// Decoder walks a string operand code by code. It is restartable via Reset
// and collects warnings per pass; create one per goroutine.
type Decoder struct {
	ctx  *DecodingContext
	data []byte
	pos  int
	ws   *warnings
	done bool
}

// Decode returns a decoder over data. Decoding never fails: bytes that
// match no codespace range fall back to single-byte codes with a warning,
// and a trailing partial code ends the pass with a truncation warning.
func (ctx *DecodingContext) Decode(data []byte) *Decoder {
	return &Decoder{ctx: ctx, data: data, ws: newWarnings(ctx.sink)}
}

// Next returns the next decoded run. The second result is false once the
// input is exhausted or a truncated trailing code stops the pass.
func (d *Decoder) Next() (DecodedRun, bool) {
	if d.done || d.pos >= len(d.data) {
		return DecodedRun{}, false
	}
	ctx := d.ctx
	code, n, err := ctx.space.Match(d.data, d.pos)
	if err != nil {
		remaining := len(d.data) - d.pos
		if remaining < ctx.space.MinBytes() {
			d.ws.warn(Warning{
				Kind:   WarnTruncatedInput,
				Offset: int64(d.pos),
				Detail: "string ends inside a multi-byte code",
			})
			d.done = true
			return DecodedRun{}, false
		}
		d.ws.warn(Warning{
			Kind:   WarnInvalidCodespace,
			Offset: int64(d.pos),
			Detail: "byte matches no codespace range, reading one byte",
		})
		code, n = uint32(d.data[d.pos]), 1
	}
	d.pos += n
	return DecodedRun{
		Text:     ctx.LookupCode(code),
		Width:    ctx.widths.Resolve(ctx.lookupCID(code)),
		Code:     code,
		NumBytes: n,
	}, true
}

// Reset rewinds the decoder to the start of its input and drops the
// warnings of the finished pass, so a re-run does not report each problem
// twice. Warnings already streamed to a sink are not recalled.
func (d *Decoder) Reset() {
	d.pos = 0
	d.done = false
	d.ws.list = nil
}

// Warnings returns the warnings collected so far by this pass.
func (d *Decoder) Warnings() []Warning {
	return d.ws.list
}

// DecodeString decodes a whole string operand at once.
func (ctx *DecodingContext) DecodeString(data []byte) (string, []Warning) {
	d := ctx.Decode(data)
	var sb strings.Builder
	for {
		run, ok := d.Next()
		if !ok {
			break
		}
		sb.WriteString(run.Text)
	}
	return sb.String(), d.Warnings()
}

// JoinRuns concatenates decoded runs into text, inserting a space wherever
// the positioning gap after a run exceeds half the font's space width.
// gaps[i] is the extra advance applied after runs[i]; a short or nil gaps
// slice means no extra advance.
func JoinRuns(runs []DecodedRun, gaps []float64, spaceWidth float64) string {
	var sb strings.Builder
	for i, run := range runs {
		sb.WriteString(run.Text)
		if i < len(gaps) && gaps[i] > spaceWidth/2 && spaceWidth > 0 {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
