package font

import (
	"strconv"

	"github.com/tsawler/codemap/core"
)

// ParseToUnicodeCMap parses an embedded ToUnicode CMap stream. Malformed
// entries are skipped with warnings; the parse itself never fails.
func ParseToUnicodeCMap(stream *core.Stream) (*CMap, []Warning) {
	ws := newWarnings(nil)
	if stream == nil {
		return NewCMap(""), nil
	}
	data, err := stream.Decoded()
	if err != nil {
		ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: -1, Detail: "unreadable cmap stream: " + err.Error()})
		return NewCMap(""), ws.list
	}
	cm := parseCMapData(data, ws)
	return cm, ws.list
}

// parseCMapData runs the tolerant parser over a CMap program. It recognizes
// codespace declarations, bfchar/bfrange blocks (both destination forms),
// cidchar/cidrange blocks, and the usecmap reference to a predefined base
// map. Unrecognized tokens are ignored; malformed entries are skipped with
// a warning and parsing continues.
func parseCMapData(data []byte, ws *warnings) *CMap {
	cm := NewCMap("")
	lx := &cmapLexer{data: data}
	definedKeys := make(map[string]int64)

	var prev cmapToken
	for {
		tok, ok := lx.next()
		if !ok {
			break
		}
		switch {
		case tok.kind == tokOperator && string(tok.val) == "begincodespacerange":
			parseCodespaceBlock(lx, cm, ws)
		case tok.kind == tokOperator && string(tok.val) == "beginbfchar":
			parseBfCharBlock(lx, cm, ws)
		case tok.kind == tokOperator && string(tok.val) == "beginbfrange":
			parseBfRangeBlock(lx, cm, ws)
		case tok.kind == tokOperator && string(tok.val) == "begincidchar":
			parseCIDCharBlock(lx, cm, ws)
		case tok.kind == tokOperator && string(tok.val) == "begincidrange":
			parseCIDRangeBlock(lx, cm, ws)
		case tok.kind == tokOperator && string(tok.val) == "usecmap":
			if prev.kind != tokName {
				ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: tok.off, Detail: "usecmap without a preceding name"})
				break
			}
			linkParent(cm, string(prev.val), tok.off, ws)
		case tok.kind == tokOperator && string(tok.val) == "def":
			// Track top-level /Key value def pairs for duplicate detection
			// and the handful of keys the decoder cares about.
			key, val, keyOff, ok := lx.lastDef()
			if !ok {
				break
			}
			if _, seen := definedKeys[key]; seen {
				ws.warn(Warning{Kind: WarnDuplicateDictionaryKey, Key: key, Offset: keyOff})
			}
			definedKeys[key] = keyOff
			switch key {
			case "CMapName":
				cm.name = val
			case "WMode":
				cm.vertical = val == "1"
			}
		}
		prev = tok
		lx.remember(tok)
	}
	return cm
}

// linkParent resolves a usecmap reference against the predefined registry
func linkParent(cm *CMap, name string, off int64, ws *warnings) {
	parent, ok := PredefinedCMap(name)
	if !ok {
		ws.warn(Warning{Kind: WarnUnsupportedEncoding, Encoding: name, Offset: off, Detail: "usecmap references an unknown base cmap"})
		return
	}
	if err := cm.SetParent(parent); err != nil {
		ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: off, Detail: err.Error()})
	}
}

// parseCodespaceBlock consumes <low> <high> pairs until endcodespacerange
func parseCodespaceBlock(lx *cmapLexer, cm *CMap, ws *warnings) {
	for {
		lo, hi, done, ok := lx.hexPair("endcodespacerange")
		if done {
			return
		}
		if !ok {
			ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: lx.pos(), Detail: "codespace range entry is not a hex pair"})
			continue
		}
		if err := cm.codespace.Add(CodespaceRange{Low: lo.bytes, High: hi.bytes}); err != nil {
			ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: lo.off, Detail: err.Error()})
		}
	}
}

// parseBfCharBlock consumes <src> <dst> pairs until endbfchar. The
// destination may be a hex string (UTF-16BE) or a glyph name.
func parseBfCharBlock(lx *cmapLexer, cm *CMap, ws *warnings) {
	for {
		src, ok := lx.nextUntil("endbfchar")
		if !ok {
			return
		}
		dst, ok := lx.nextUntil("endbfchar")
		if !ok {
			ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: src.off, Detail: "bfchar entry missing destination"})
			return
		}
		if src.kind != tokHex {
			ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: src.off, Detail: "bfchar source is not a hex code"})
			continue
		}
		switch dst.kind {
		case tokHex:
			cm.addSingle(beUint32(src.bytes), utf16BEToString(dst.bytes))
		case tokName:
			if r, ok := resolveGlyphName(string(dst.val)); ok {
				cm.addSingle(beUint32(src.bytes), string(r))
			} else {
				ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: dst.off, Detail: "bfchar destination glyph name " + string(dst.val) + " is unknown"})
			}
		default:
			ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: dst.off, Detail: "bfchar destination is neither hex nor name"})
		}
	}
}

// parseBfRangeBlock consumes <lo> <hi> dst triples until endbfrange, where
// dst is a hex base (linear-offset form) or an array of hex destinations.
func parseBfRangeBlock(lx *cmapLexer, cm *CMap, ws *warnings) {
	for {
		lo, ok := lx.nextUntil("endbfrange")
		if !ok {
			return
		}
		hi, ok := lx.nextUntil("endbfrange")
		if !ok {
			ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: lo.off, Detail: "bfrange entry truncated"})
			return
		}
		dst, ok := lx.nextUntil("endbfrange")
		if !ok {
			ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: lo.off, Detail: "bfrange entry missing destination"})
			return
		}
		if lo.kind != tokHex || hi.kind != tokHex {
			ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: lo.off, Detail: "bfrange bounds are not hex codes"})
			continue
		}
		loCode, hiCode := beUint32(lo.bytes), beUint32(hi.bytes)
		if hiCode < loCode {
			ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: lo.off, Detail: "bfrange high code below low code"})
			continue
		}
		switch dst.kind {
		case tokHex:
			cm.addRange(loCode, hiCode, dst.bytes)
		case tokArrayStart:
			dsts, ok := lx.hexArray()
			if !ok {
				ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: dst.off, Detail: "bfrange destination array is malformed"})
				continue
			}
			decoded := make([]string, len(dsts))
			for i, d := range dsts {
				decoded[i] = utf16BEToString(d)
			}
			cm.addRangeArray(loCode, hiCode, decoded)
		default:
			ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: dst.off, Detail: "bfrange destination is neither hex nor array"})
		}
	}
}

// parseCIDCharBlock consumes <src> cid pairs until endcidchar
func parseCIDCharBlock(lx *cmapLexer, cm *CMap, ws *warnings) {
	for {
		src, ok := lx.nextUntil("endcidchar")
		if !ok {
			return
		}
		cid, ok := lx.nextUntil("endcidchar")
		if !ok {
			ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: src.off, Detail: "cidchar entry missing CID"})
			return
		}
		if src.kind != tokHex || cid.kind != tokNumber {
			ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: src.off, Detail: "cidchar entry is not <code> cid"})
			continue
		}
		cm.addCID(beUint32(src.bytes), uint32(cid.num))
	}
}

// parseCIDRangeBlock consumes <lo> <hi> cid triples until endcidrange
func parseCIDRangeBlock(lx *cmapLexer, cm *CMap, ws *warnings) {
	for {
		lo, ok := lx.nextUntil("endcidrange")
		if !ok {
			return
		}
		hi, ok := lx.nextUntil("endcidrange")
		if !ok {
			ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: lo.off, Detail: "cidrange entry truncated"})
			return
		}
		cid, ok := lx.nextUntil("endcidrange")
		if !ok {
			ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: lo.off, Detail: "cidrange entry missing CID"})
			return
		}
		if lo.kind != tokHex || hi.kind != tokHex || cid.kind != tokNumber {
			ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: lo.off, Detail: "cidrange entry is not <lo> <hi> cid"})
			continue
		}
		loCode, hiCode := beUint32(lo.bytes), beUint32(hi.bytes)
		if hiCode < loCode {
			ws.warn(Warning{Kind: WarnMalformedCMapEntry, Offset: lo.off, Detail: "cidrange high code below low code"})
			continue
		}
		cm.addCIDRange(loCode, hiCode, uint32(cid.num))
	}
}

// --- lexer ---

type tokenKind int

const (
	tokOperator tokenKind = iota
	tokName
	tokHex
	tokNumber
	tokArrayStart
	tokArrayEnd
	tokDictStart
	tokDictEnd
	tokString
)

type cmapToken struct {
	kind  tokenKind
	val   []byte // raw text (name without slash, operator word)
	bytes []byte // decoded bytes for hex strings
	num   int64  // value for numbers
	off   int64
}

// cmapLexer tokenizes a CMap program. It is deliberately forgiving: any
// byte sequence it cannot classify is skipped. Tabs, CRs, and comments are
// treated as whitespace, which real-world programs require.
type cmapLexer struct {
	data []byte
	i    int

	// recent holds the last two non-operator tokens so `def` handling can
	// recover the /Key value pair without full operand-stack machinery.
	recent [2]cmapToken
	nRec   int
}

func (lx *cmapLexer) pos() int64 {
	return int64(lx.i)
}

func (lx *cmapLexer) remember(tok cmapToken) {
	if tok.kind == tokOperator {
		return
	}
	lx.recent[0] = lx.recent[1]
	lx.recent[1] = tok
	if lx.nRec < 2 {
		lx.nRec++
	}
}

// lastDef returns the /Key value pair preceding a def operator
func (lx *cmapLexer) lastDef() (key, val string, keyOff int64, ok bool) {
	if lx.nRec < 2 || lx.recent[0].kind != tokName {
		return "", "", 0, false
	}
	k := lx.recent[0]
	v := lx.recent[1]
	switch v.kind {
	case tokName, tokOperator:
		return string(k.val), string(v.val), k.off, true
	case tokNumber:
		return string(k.val), strconv.FormatInt(v.num, 10), k.off, true
	default:
		return string(k.val), "", k.off, true
	}
}

func isCMapSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

func isCMapDelim(c byte) bool {
	return c == '<' || c == '>' || c == '[' || c == ']' || c == '/' || c == '(' || c == ')' || c == '%'
}

// next returns the next token, or ok=false at end of input
func (lx *cmapLexer) next() (cmapToken, bool) {
	for lx.i < len(lx.data) {
		c := lx.data[lx.i]
		switch {
		case isCMapSpace(c):
			lx.i++
		case c == '%':
			for lx.i < len(lx.data) && lx.data[lx.i] != '\n' {
				lx.i++
			}
		case c == '<':
			if lx.i+1 < len(lx.data) && lx.data[lx.i+1] == '<' {
				tok := cmapToken{kind: tokDictStart, off: int64(lx.i)}
				lx.i += 2
				return tok, true
			}
			return lx.hexString()
		case c == '>':
			if lx.i+1 < len(lx.data) && lx.data[lx.i+1] == '>' {
				tok := cmapToken{kind: tokDictEnd, off: int64(lx.i)}
				lx.i += 2
				return tok, true
			}
			// Stray '>' outside a hex string; skip it.
			lx.i++
		case c == '[':
			tok := cmapToken{kind: tokArrayStart, off: int64(lx.i)}
			lx.i++
			return tok, true
		case c == ']':
			tok := cmapToken{kind: tokArrayEnd, off: int64(lx.i)}
			lx.i++
			return tok, true
		case c == '/':
			return lx.name()
		case c == '(':
			return lx.literalString()
		case c == '-' || c == '+' || (c >= '0' && c <= '9'):
			return lx.number()
		default:
			return lx.operator()
		}
	}
	return cmapToken{}, false
}

// hexString reads <...>, decoding hex digits and ignoring embedded
// whitespace. An odd digit count is padded with a trailing zero.
func (lx *cmapLexer) hexString() (cmapToken, bool) {
	start := int64(lx.i)
	lx.i++ // consume '<'
	var digits []byte
	for lx.i < len(lx.data) && lx.data[lx.i] != '>' {
		c := lx.data[lx.i]
		if isHexDigit(c) {
			digits = append(digits, c)
		}
		lx.i++
	}
	if lx.i < len(lx.data) {
		lx.i++ // consume '>'
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	decoded := make([]byte, len(digits)/2)
	for j := 0; j < len(decoded); j++ {
		decoded[j] = hexNibble(digits[2*j])<<4 | hexNibble(digits[2*j+1])
	}
	return cmapToken{kind: tokHex, bytes: decoded, off: start}, true
}

func (lx *cmapLexer) name() (cmapToken, bool) {
	start := int64(lx.i)
	lx.i++ // consume '/'
	j := lx.i
	for j < len(lx.data) && !isCMapSpace(lx.data[j]) && !isCMapDelim(lx.data[j]) {
		j++
	}
	tok := cmapToken{kind: tokName, val: lx.data[lx.i:j], off: start}
	lx.i = j
	return tok, true
}

func (lx *cmapLexer) literalString() (cmapToken, bool) {
	start := int64(lx.i)
	lx.i++ // consume '('
	j := lx.i
	depth := 1
	for j < len(lx.data) && depth > 0 {
		switch lx.data[j] {
		case '\\':
			j++
		case '(':
			depth++
		case ')':
			depth--
		}
		j++
	}
	tok := cmapToken{kind: tokString, val: lx.data[lx.i : j-1], off: start}
	lx.i = j
	return tok, true
}

func (lx *cmapLexer) number() (cmapToken, bool) {
	start := int64(lx.i)
	j := lx.i
	if lx.data[j] == '-' || lx.data[j] == '+' {
		j++
	}
	for j < len(lx.data) && ((lx.data[j] >= '0' && lx.data[j] <= '9') || lx.data[j] == '.') {
		j++
	}
	raw := string(lx.data[lx.i:j])
	lx.i = j
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		// Malformed numeric literal; surface it as an operator so block
		// parsers can reject the entry.
		return cmapToken{kind: tokOperator, val: []byte(raw), off: start}, true
	}
	return cmapToken{kind: tokNumber, num: int64(n), off: start}, true
}

func (lx *cmapLexer) operator() (cmapToken, bool) {
	start := int64(lx.i)
	j := lx.i
	for j < len(lx.data) && !isCMapSpace(lx.data[j]) && !isCMapDelim(lx.data[j]) {
		j++
	}
	tok := cmapToken{kind: tokOperator, val: lx.data[lx.i:j], off: start}
	lx.i = j
	return tok, true
}

// nextUntil returns the next token unless it is the given end operator or
// input is exhausted, in which case ok is false.
func (lx *cmapLexer) nextUntil(end string) (cmapToken, bool) {
	tok, ok := lx.next()
	if !ok {
		return cmapToken{}, false
	}
	if tok.kind == tokOperator && string(tok.val) == end {
		return cmapToken{}, false
	}
	return tok, true
}

// hexPair reads two hex tokens, tolerating and reporting entries of the
// wrong shape. done is true when the end operator or EOF is reached.
func (lx *cmapLexer) hexPair(end string) (lo, hi cmapToken, done, ok bool) {
	first, more := lx.nextUntil(end)
	if !more {
		return cmapToken{}, cmapToken{}, true, false
	}
	second, more := lx.nextUntil(end)
	if !more {
		return cmapToken{}, cmapToken{}, true, false
	}
	if first.kind != tokHex || second.kind != tokHex {
		return cmapToken{}, cmapToken{}, false, false
	}
	return first, second, false, true
}

// hexArray reads hex tokens until the closing bracket
func (lx *cmapLexer) hexArray() ([][]byte, bool) {
	var out [][]byte
	for {
		tok, ok := lx.next()
		if !ok {
			return nil, false
		}
		switch tok.kind {
		case tokArrayEnd:
			return out, true
		case tokHex:
			out = append(out, tok.bytes)
		default:
			return nil, false
		}
	}
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexNibble(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
