package filters

import "fmt"

// Params carries the integer decode parameters a filter consults
// (Predictor, Columns, Colors, BitsPerComponent). The caller flattens the
// stream's /DecodeParms dictionary into it.
type Params map[string]int

// Decode applies one named stream filter. Only the filters that appear on
// CMap and font program streams are supported; image-only filters (DCT,
// JBIG2, CCITT) are rejected by name.
func Decode(name string, data []byte, parms Params) ([]byte, error) {
	switch name {
	case "FlateDecode", "Fl":
		return FlateDecode(data, parms)
	case "ASCIIHexDecode", "AHx":
		return ASCIIHexDecode(data)
	case "ASCII85Decode", "A85":
		return ASCII85Decode(data)
	default:
		return nil, fmt.Errorf("filters: unsupported filter %s", name)
	}
}

// intParm reads an integer decode parameter with a default.
func intParm(parms Params, key string, def int) int {
	if v, ok := parms[key]; ok {
		return v
	}
	return def
}
