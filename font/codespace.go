package font

import (
	"errors"
	"fmt"
)

// ErrInvalidCodespace is returned by CodespaceTable.Match when no declared
// range matches any prefix at the requested offset. Callers fall back to a
// single-byte code and keep decoding; the error never escapes a decode
// operation.
var ErrInvalidCodespace = errors.New("font: no codespace range matches")

// CodespaceRange declares that byte sequences of a given length whose
// big-endian value lies in [Low, High] are valid codes.
type CodespaceRange struct {
	Low  []byte
	High []byte
}

// NumBytes returns the byte length of codes in this range
func (r CodespaceRange) NumBytes() int {
	return len(r.Low)
}

// contains reports whether the prefix lies within [Low, High], comparing
// byte-wise so multi-byte values behave like big-endian integers.
func (r CodespaceRange) contains(prefix []byte) bool {
	for i := range r.Low {
		if prefix[i] < r.Low[i] || prefix[i] > r.High[i] {
			return false
		}
	}
	return true
}

// CodespaceTable holds the declared codespace ranges of a CMap, grouped by
// byte length. Match tries lengths in ascending order, and within a length
// honors declaration order, so the shortest declared match wins.
type CodespaceTable struct {
	ranges [4][]CodespaceRange // indexed by byte length - 1
}

// NewCodespaceTable builds a table from the given ranges. A range with a
// byte length outside 1..4, or whose Low and High lengths differ, is a
// contract violation and yields an error.
func NewCodespaceTable(ranges ...CodespaceRange) (*CodespaceTable, error) {
	t := &CodespaceTable{}
	for _, r := range ranges {
		if err := t.Add(r); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Add appends a range, validating its shape
func (t *CodespaceTable) Add(r CodespaceRange) error {
	n := len(r.Low)
	if n != len(r.High) {
		return fmt.Errorf("font: codespace range low/high length mismatch: %d vs %d", n, len(r.High))
	}
	if n < 1 || n > 4 {
		return fmt.Errorf("font: codespace range byte length %d out of range 1..4", n)
	}
	t.ranges[n-1] = append(t.ranges[n-1], r)
	return nil
}

// Empty reports whether no ranges are declared
func (t *CodespaceTable) Empty() bool {
	for _, rs := range t.ranges {
		if len(rs) > 0 {
			return false
		}
	}
	return true
}

// MinBytes returns the shortest declared code length, or 0 when empty
func (t *CodespaceTable) MinBytes() int {
	for n, rs := range t.ranges {
		if len(rs) > 0 {
			return n + 1
		}
	}
	return 0
}

// MaxBytes returns the longest declared code length, or 0 when empty
func (t *CodespaceTable) MaxBytes() int {
	for n := len(t.ranges) - 1; n >= 0; n-- {
		if len(t.ranges[n]) > 0 {
			return n + 1
		}
	}
	return 0
}

// Match finds the code starting at data[offset]. Declared byte lengths are
// tried shortest first; the first range containing the prefix wins. The code
// is the prefix interpreted as a big-endian integer. When nothing matches,
// Match returns an error wrapping ErrInvalidCodespace and consumes nothing.
func (t *CodespaceTable) Match(data []byte, offset int) (code uint32, n int, err error) {
	if offset < 0 || offset >= len(data) {
		return 0, 0, fmt.Errorf("font: offset %d outside input: %w", offset, ErrInvalidCodespace)
	}
	for length := 1; length <= 4; length++ {
		if offset+length > len(data) {
			break
		}
		prefix := data[offset : offset+length]
		for _, r := range t.ranges[length-1] {
			if r.contains(prefix) {
				return beUint32(prefix), length, nil
			}
		}
	}
	return 0, 0, fmt.Errorf("font: offset %d: %w", offset, ErrInvalidCodespace)
}

// beUint32 interprets up to 4 bytes as a big-endian integer
func beUint32(b []byte) uint32 {
	var v uint32
	for _, c := range b {
		v = v<<8 | uint32(c)
	}
	return v
}

// singleByteCodespace is the default for simple fonts: every byte is a code.
func singleByteCodespace() *CodespaceTable {
	t, _ := NewCodespaceTable(CodespaceRange{Low: []byte{0x00}, High: []byte{0xFF}})
	return t
}

// twoByteCodespace covers the Identity-H/V code space.
func twoByteCodespace() *CodespaceTable {
	t, _ := NewCodespaceTable(CodespaceRange{Low: []byte{0x00, 0x00}, High: []byte{0xFF, 0xFF}})
	return t
}
