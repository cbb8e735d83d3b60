package filters

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// FlateDecode decompresses zlib-wrapped deflate data, the filter nearly all
// embedded CMap streams wear, and undoes the row predictor when /DecodeParms
// asks for one.
func FlateDecode(data []byte, parms Params) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("filters: open zlib stream: %w", err)
	}
	defer r.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, fmt.Errorf("filters: inflate: %w", err)
	}
	out := buf.Bytes()

	predictor := intParm(parms, "Predictor", 1)
	switch {
	case predictor == 1:
		return out, nil
	case predictor == 2:
		return tiffPredictor(out, parms)
	case predictor >= 10 && predictor <= 15:
		return pngPredictor(out, parms)
	default:
		return nil, fmt.Errorf("filters: unsupported predictor %d", predictor)
	}
}

// tiffPredictor undoes TIFF Predictor 2: each sample was stored as a delta
// against the sample to its left.
func tiffPredictor(data []byte, parms Params) ([]byte, error) {
	columns := intParm(parms, "Columns", 1)
	colors := intParm(parms, "Colors", 1)
	if bpc := intParm(parms, "BitsPerComponent", 8); bpc != 8 {
		return nil, fmt.Errorf("filters: TIFF predictor needs 8 bits per component, got %d", bpc)
	}

	rowSize := columns * colors
	if rowSize <= 0 || len(data)%rowSize != 0 {
		return nil, fmt.Errorf("filters: data length %d does not divide into rows of %d", len(data), rowSize)
	}

	out := make([]byte, len(data))
	copy(out, data)
	for row := 0; row < len(out); row += rowSize {
		for i := colors; i < rowSize; i++ {
			out[row+i] += out[row+i-colors]
		}
	}
	return out, nil
}

// pngPredictor undoes the PNG row filters (None, Sub, Up, Average, Paeth).
// Each row carries a leading tag byte naming the filter applied to it.
func pngPredictor(data []byte, parms Params) ([]byte, error) {
	columns := intParm(parms, "Columns", 1)
	colors := intParm(parms, "Colors", 1)
	if bpc := intParm(parms, "BitsPerComponent", 8); bpc != 8 {
		return nil, fmt.Errorf("filters: PNG predictor needs 8 bits per component, got %d", bpc)
	}

	bpp := colors
	rowSize := columns * colors
	stride := rowSize + 1 // tag byte
	if rowSize <= 0 || len(data)%stride != 0 {
		return nil, fmt.Errorf("filters: data length %d does not divide into rows of %d", len(data), stride)
	}

	rows := len(data) / stride
	out := make([]byte, rows*rowSize)
	prev := make([]byte, rowSize)

	for row := 0; row < rows; row++ {
		tag := data[row*stride]
		cur := out[row*rowSize : (row+1)*rowSize]
		copy(cur, data[row*stride+1:(row+1)*stride])

		switch tag {
		case 0: // None
		case 1: // Sub
			for i := bpp; i < rowSize; i++ {
				cur[i] += cur[i-bpp]
			}
		case 2: // Up
			for i := 0; i < rowSize; i++ {
				cur[i] += prev[i]
			}
		case 3: // Average
			for i := 0; i < rowSize; i++ {
				var left byte
				if i >= bpp {
					left = cur[i-bpp]
				}
				cur[i] += byte((int(left) + int(prev[i])) / 2)
			}
		case 4: // Paeth
			for i := 0; i < rowSize; i++ {
				var left, upLeft byte
				if i >= bpp {
					left = cur[i-bpp]
					upLeft = prev[i-bpp]
				}
				cur[i] += paeth(left, prev[i], upLeft)
			}
		default:
			return nil, fmt.Errorf("filters: unknown PNG row filter %d", tag)
		}
		copy(prev, cur)
	}
	return out, nil
}

// paeth picks the neighbor closest to the linear prediction, per the PNG
// specification.
func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa, pb, pc := abs(p-int(a)), abs(p-int(b)), abs(p-int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
