package filters

import (
	"bytes"
	"fmt"
)

// ASCIIHexDecode decodes hex-encoded data. Whitespace is skipped, > ends
// the data, and an odd trailing digit is padded with zero.
func ASCIIHexDecode(data []byte) ([]byte, error) {
	var out bytes.Buffer
	var hi byte
	havePair := false

	for _, c := range data {
		if isSpace(c) {
			continue
		}
		if c == '>' {
			break
		}
		v, err := hexVal(c)
		if err != nil {
			return nil, err
		}
		if havePair {
			out.WriteByte(hi<<4 | v)
			havePair = false
		} else {
			hi = v
			havePair = true
		}
	}
	if havePair {
		out.WriteByte(hi << 4)
	}
	return out.Bytes(), nil
}

// ASCII85Decode decodes base-85 data. A group of five characters in !..u
// encodes four bytes; z abbreviates four zero bytes; ~> ends the data.
func ASCII85Decode(data []byte) ([]byte, error) {
	var out bytes.Buffer
	var group [5]byte
	n := 0

	flush := func(count int) {
		// Pad with 'u' and emit count-1 bytes
		for i := count; i < 5; i++ {
			group[i] = 84
		}
		var v uint32
		for _, d := range group {
			v = v*85 + uint32(d)
		}
		for i := 0; i < count-1; i++ {
			out.WriteByte(byte(v >> (24 - i*8)))
		}
	}

	for i := 0; i < len(data); i++ {
		c := data[i]
		if isSpace(c) {
			continue
		}
		if c == '~' {
			break
		}
		if c == 'z' && n == 0 {
			out.Write([]byte{0, 0, 0, 0})
			continue
		}
		if c < '!' || c > 'u' {
			return nil, fmt.Errorf("filters: invalid ASCII85 byte %#x", c)
		}
		group[n] = c - '!'
		n++
		if n == 5 {
			flush(5)
			n = 0
		}
	}
	if n == 1 {
		return nil, fmt.Errorf("filters: dangling ASCII85 digit")
	}
	if n > 1 {
		flush(n)
	}
	return out.Bytes(), nil
}

func hexVal(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	}
	return 0, fmt.Errorf("filters: invalid hex digit %#x", c)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}
