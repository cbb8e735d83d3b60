package font

import (
	"strings"

	"github.com/tsawler/codemap/core"
)

// Resolver dereferences an indirect reference to its object. The caller owns
// object resolution; this package never touches the file itself.
type Resolver func(ref core.IndirectRef) (core.Object, error)

// Predefined composite encodings from the CJK registries. We recognize the
// names so we can warn once per font instead of failing, and fall back to a
// two-byte identity reading.
var legacyCompositeEncodings = map[string]bool{
	"90ms-RKSJ-H": true, "90ms-RKSJ-V": true,
	"90msp-RKSJ-H": true, "90msp-RKSJ-V": true,
	"90pv-RKSJ-H": true,
	"Add-RKSJ-H":  true, "Add-RKSJ-V": true,
	"B5pc-H": true, "B5pc-V": true,
	"CNS-EUC-H": true, "CNS-EUC-V": true,
	"ETen-B5-H": true, "ETen-B5-V": true,
	"ETenms-B5-H": true, "ETenms-B5-V": true,
	"EUC-H": true, "EUC-V": true,
	"Ext-RKSJ-H": true, "Ext-RKSJ-V": true,
	"GB-EUC-H": true, "GB-EUC-V": true,
	"GBK-EUC-H": true, "GBK-EUC-V": true,
	"GBK2K-H": true, "GBK2K-V": true,
	"GBKp-EUC-H": true, "GBKp-EUC-V": true,
	"GBpc-EUC-H": true, "GBpc-EUC-V": true,
	"H": true, "V": true,
	"HKscs-B5-H": true, "HKscs-B5-V": true,
	"KSC-EUC-H": true, "KSC-EUC-V": true,
	"KSCms-UHC-H": true, "KSCms-UHC-V": true,
	"KSCms-UHC-HW-H": true, "KSCms-UHC-HW-V": true,
	"KSCpc-EUC-H": true,
	"RKSJ-H":      true, "RKSJ-V": true,
	"UniCNS-UCS2-H": true, "UniCNS-UCS2-V": true,
	"UniCNS-UTF16-H": true, "UniCNS-UTF16-V": true,
	"UniGB-UCS2-H": true, "UniGB-UCS2-V": true,
	"UniGB-UTF16-H": true, "UniGB-UTF16-V": true,
	"UniJIS-UCS2-H": true, "UniJIS-UCS2-V": true,
	"UniJIS-UCS2-HW-H": true, "UniJIS-UCS2-HW-V": true,
	"UniJIS-UTF16-H": true, "UniJIS-UTF16-V": true,
	"UniKS-UCS2-H": true, "UniKS-UCS2-V": true,
	"UniKS-UTF16-H": true, "UniKS-UTF16-V": true,
}

// resolvedEncoding is the outcome of walking a font's /Encoding entry.
type resolvedEncoding struct {
	enc      Encoding        // simple-font byte encoding, nil for composite
	space    *CodespaceTable // composite code space, nil for simple fonts
	cmap     *CMap           // composite encoding CMap, source of CID mappings
	vertical bool
	degraded bool // an unsupported encoding forced a passthrough reading
}

// resolveSimpleEncoding picks the byte-to-rune table for a Type1, TrueType
// or Type3 font. The /Encoding entry may be a name, a dictionary with
// /BaseEncoding and /Differences, or absent entirely; in the last case the
// standard encoding of the font program applies and WinAnsi is the best
// byte-level approximation we can offer.
func resolveSimpleEncoding(fontDict core.Dict, resolve Resolver, ws *warnings) resolvedEncoding {
	obj := resolveObject(fontDict.Get("Encoding"), resolve)
	switch enc := obj.(type) {
	case nil:
		return resolvedEncoding{enc: StandardEncodingTable}
	case core.Name:
		name := string(enc)
		if knownBaseEncoding(name) {
			return resolvedEncoding{enc: GetEncoding(name)}
		}
		ws.warn(Warning{
			Kind:     WarnUnsupportedEncoding,
			Encoding: name,
			Offset:   -1,
			Detail:   "unrecognized simple encoding, decoding bytes as-is",
		})
		return resolvedEncoding{enc: rawByteEncoding, degraded: true}
	case core.Dict:
		base := ""
		if b, ok := enc.GetName("BaseEncoding"); ok {
			base = string(b)
		}
		if base != "" && !knownBaseEncoding(base) {
			ws.warn(Warning{
				Kind:     WarnUnsupportedEncoding,
				Encoding: base,
				Offset:   -1,
				Detail:   "unrecognized base encoding, decoding bytes as-is",
			})
			return resolvedEncoding{enc: rawByteEncoding, degraded: true}
		}
		out := GetEncoding(base)
		if diff, ok := enc.GetArray("Differences"); ok {
			glyphs := ParseDifferences(diff, ws)
			if len(glyphs) > 0 {
				out = NewCustomEncodingFromGlyphs(out, glyphs)
			}
		}
		return resolvedEncoding{enc: out}
	default:
		ws.warn(Warning{
			Kind:   WarnMalformedCMapEntry,
			Offset: -1,
			Detail: "Encoding entry is neither a name nor a dictionary",
		})
		return resolvedEncoding{enc: rawByteEncoding, degraded: true}
	}
}

// rawByteEncoding maps every code to its own value, the last resort when an
// encoding cannot be understood at all.
var rawByteEncoding Encoding = &baseEncoding{name: "Raw"}

// resolveCompositeEncoding handles Type0 fonts. Identity-H and Identity-V
// are built in; an embedded CMap stream is parsed for its code space; the
// legacy CJK registry encodings degrade to a two-byte identity reading with
// a single warning.
func resolveCompositeEncoding(fontDict core.Dict, resolve Resolver, ws *warnings) resolvedEncoding {
	obj := resolveObject(fontDict.Get("Encoding"), resolve)
	switch enc := obj.(type) {
	case core.Name:
		name := string(enc)
		if cm, ok := PredefinedCMap(name); ok {
			return resolvedEncoding{space: cm.Codespace(), cmap: cm, vertical: cm.Vertical()}
		}
		if legacyCompositeEncodings[name] {
			ws.warn(Warning{
				Kind:     WarnUnsupportedEncoding,
				Encoding: name,
				Offset:   -1,
				Detail:   "predefined CJK encoding not implemented, assuming two-byte codes",
			})
			return resolvedEncoding{
				space:    twoByteCodespace(),
				vertical: strings.HasSuffix(name, "-V") || name == "V",
				degraded: true,
			}
		}
		ws.warn(Warning{
			Kind:     WarnUnsupportedEncoding,
			Encoding: name,
			Offset:   -1,
			Detail:   "unknown composite encoding, assuming two-byte codes",
		})
		return resolvedEncoding{space: twoByteCodespace(), degraded: true}
	case *core.Stream:
		cm := parseEmbeddedCMap(enc, ws)
		space := cm.Codespace()
		if space.Empty() {
			space = twoByteCodespace()
		}
		return resolvedEncoding{space: space, cmap: cm, vertical: cm.Vertical()}
	default:
		ws.warn(Warning{
			Kind:   WarnUnsupportedEncoding,
			Offset: -1,
			Detail: "composite font without a usable Encoding entry",
		})
		return resolvedEncoding{space: twoByteCodespace(), degraded: true}
	}
}

// parseEmbeddedCMap runs the CMap parser against a stream's decoded bytes,
// funneling its warnings into the shared collector.
func parseEmbeddedCMap(stream *core.Stream, ws *warnings) *CMap {
	data, err := stream.Decoded()
	if err != nil {
		ws.warn(Warning{
			Kind:   WarnTruncatedInput,
			Offset: -1,
			Detail: "cannot decode CMap stream: " + err.Error(),
		})
		return NewCMap("")
	}
	return parseCMapData(data, ws)
}

// descendantFont returns the single CIDFont of a Type0 font, or nil.
func descendantFont(fontDict core.Dict, resolve Resolver) core.Dict {
	arr, ok := fontDict.GetArray("DescendantFonts")
	if !ok || arr.Len() == 0 {
		return nil
	}
	obj := resolveObject(arr.Get(0), resolve)
	if d, ok := obj.(core.Dict); ok {
		return d
	}
	return nil
}

// cidOrdering reads Registry-Ordering from the descendant's /CIDSystemInfo.
func cidOrdering(descendant core.Dict, resolve Resolver) string {
	if descendant == nil {
		return ""
	}
	info, ok := descendant.GetDict("CIDSystemInfo")
	if !ok {
		if obj := resolveObject(descendant.Get("CIDSystemInfo"), resolve); obj != nil {
			info, _ = obj.(core.Dict)
		}
	}
	if info == nil {
		return ""
	}
	ordering := ""
	if s, ok := info.Get("Ordering").(core.String); ok {
		ordering = string(s)
	}
	return ordering
}
