package font

import (
	"fmt"
	"log/slog"
)

// WarningKind identifies the category of a decoding warning.
type WarningKind int

const (
	// WarnUnsupportedEncoding is emitted once per font when the encoding
	// family is outside what the resolver understands. Decoding degrades to
	// raw-codepoint passthrough.
	WarnUnsupportedEncoding WarningKind = iota

	// WarnMalformedCMapEntry is emitted when a single entry of an embedded
	// CMap program could not be parsed. The rest of the program is still
	// used.
	WarnMalformedCMapEntry

	// WarnDuplicateDictionaryKey is emitted when a source dictionary defined
	// the same key more than once. The last definition wins.
	WarnDuplicateDictionaryKey

	// WarnInvalidCodespace is emitted when no declared codespace range
	// matches the input at some offset. The decoder consumes a single byte
	// and continues.
	WarnInvalidCodespace

	// WarnTruncatedInput is emitted when the input ends in the middle of a
	// multi-byte code. Decoding stops and the partial result is returned.
	WarnTruncatedInput
)

// String returns the warning kind name
func (k WarningKind) String() string {
	switch k {
	case WarnUnsupportedEncoding:
		return "UnsupportedEncoding"
	case WarnMalformedCMapEntry:
		return "MalformedCMapEntry"
	case WarnDuplicateDictionaryKey:
		return "DuplicateDictionaryKey"
	case WarnInvalidCodespace:
		return "InvalidCodespace"
	case WarnTruncatedInput:
		return "TruncatedInput"
	default:
		return "Unknown"
	}
}

// Warning is a structured, non-fatal diagnostic produced while building a
// decoding context or decoding a byte string. Warnings accompany results;
// they are never raised as errors for malformed encoding data.
type Warning struct {
	Kind WarningKind

	// Encoding holds the offending encoding name for UnsupportedEncoding.
	Encoding string

	// Key holds the dictionary key for DuplicateDictionaryKey.
	Key string

	// Offset is the byte position in the source (CMap program or input
	// string) the warning refers to, or -1 when not applicable.
	Offset int64

	// Detail is a short human-readable description.
	Detail string
}

// String formats the warning for logs
func (w Warning) String() string {
	switch w.Kind {
	case WarnUnsupportedEncoding:
		return fmt.Sprintf("%s: encoding %q not supported, using passthrough", w.Kind, w.Encoding)
	case WarnDuplicateDictionaryKey:
		return fmt.Sprintf("%s: multiple definitions at byte 0x%x for key /%s", w.Kind, w.Offset, w.Key)
	default:
		if w.Offset >= 0 {
			return fmt.Sprintf("%s at offset 0x%x: %s", w.Kind, w.Offset, w.Detail)
		}
		return fmt.Sprintf("%s: %s", w.Kind, w.Detail)
	}
}

// LogValue lets warnings flow into slog handlers as structured attributes
func (w Warning) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("kind", w.Kind.String())}
	if w.Encoding != "" {
		attrs = append(attrs, slog.String("encoding", w.Encoding))
	}
	if w.Key != "" {
		attrs = append(attrs, slog.String("key", w.Key))
	}
	if w.Offset >= 0 {
		attrs = append(attrs, slog.Int64("offset", w.Offset))
	}
	if w.Detail != "" {
		attrs = append(attrs, slog.String("detail", w.Detail))
	}
	return slog.GroupValue(attrs...)
}

// WarningSink receives warnings as they are emitted. Warn may be called
// from whichever goroutine is building or decoding.
type WarningSink interface {
	Warn(Warning)
}

// WarningList is a WarningSink that appends to itself
type WarningList []Warning

// Warn implements WarningSink
func (l *WarningList) Warn(w Warning) {
	*l = append(*l, w)
}

// warnings couples a sink with debug logging. All internal emission goes
// through here so every warning is both collected and visible on slog.
type warnings struct {
	sink WarningSink
	list WarningList
}

func newWarnings(sink WarningSink) *warnings {
	return &warnings{sink: sink}
}

func (ws *warnings) warn(w Warning) {
	ws.list.Warn(w)
	if ws.sink != nil {
		ws.sink.Warn(w)
	}
	slog.Debug("codemap: "+w.Kind.String(), slog.Any("warning", w))
}

// FormatWarnings renders a warning list as one line per warning, for callers
// that just want to log them.
func FormatWarnings(list []Warning) string {
	out := ""
	for i, w := range list {
		if i > 0 {
			out += "\n"
		}
		out += w.String()
	}
	return out
}
