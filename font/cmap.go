package font

import (
	"fmt"
)

// maxParentDepth bounds parent-chain walks so a malformed chain of base
// CMaps cannot loop.
const maxParentDepth = 8

// CMap represents a character map built from an embedded program or a
// predefined name. It maps character codes to Unicode strings and,
// optionally, to CIDs. A CMap may extend a parent (the usecmap directive):
// codes without a local entry defer to the parent.
//
// A CMap is immutable once built and safe for concurrent lookups.
type CMap struct {
	name      string
	codespace *CodespaceTable
	parent    *CMap

	// Entry sequence numbers implement last-write-wins: of all entries
	// covering a code, the one declared last supplies the mapping.
	singles map[uint32]singleEntry
	ranges  []rangeEntry
	nextSeq int

	cidSingles map[uint32]cidEntry
	cidRanges  []cidRangeEntry

	// identity marks the predefined Identity mappings: the code itself is
	// both the CID and the Unicode codepoint.
	identity bool
	vertical bool
}

type singleEntry struct {
	seq int
	dst string
}

type rangeEntry struct {
	seq    int
	lo, hi uint32

	// dstBase is the raw destination bytes for the linear-offset form; the
	// offset (code - lo) is added to the trailing UTF-16 code unit.
	dstBase []byte

	// dstArray, when non-nil, holds one decoded destination per code.
	dstArray []string
}

type cidEntry struct {
	seq int
	cid uint32
}

type cidRangeEntry struct {
	seq     int
	lo, hi  uint32
	baseCID uint32
}

// NewCMap creates an empty CMap with no codespace declarations
func NewCMap(name string) *CMap {
	return &CMap{
		name:       name,
		codespace:  &CodespaceTable{},
		singles:    make(map[uint32]singleEntry),
		cidSingles: make(map[uint32]cidEntry),
	}
}

// Name returns the CMap name, if one was declared
func (cm *CMap) Name() string {
	return cm.name
}

// Codespace returns the effective codespace table. A CMap that declares no
// ranges of its own inherits its parent's.
func (cm *CMap) Codespace() *CodespaceTable {
	c := cm
	for depth := 0; c != nil && depth < maxParentDepth; depth++ {
		if !c.codespace.Empty() {
			return c.codespace
		}
		c = c.parent
	}
	return cm.codespace
}

// Vertical reports whether the map (or a parent) declares vertical writing
func (cm *CMap) Vertical() bool {
	c := cm
	for depth := 0; c != nil && depth < maxParentDepth; depth++ {
		if c.vertical {
			return true
		}
		c = c.parent
	}
	return false
}

// SetParent links a base CMap to extend. Linking a map to itself (directly
// or by name) is rejected; chains are additionally depth-bounded at lookup.
func (cm *CMap) SetParent(parent *CMap) error {
	for p := parent; p != nil; p = p.parent {
		if p == cm || (cm.name != "" && p.name == cm.name) {
			return fmt.Errorf("font: cmap %q parent chain references itself", cm.name)
		}
	}
	cm.parent = parent
	return nil
}

// Parent returns the base CMap this map extends, if any
func (cm *CMap) Parent() *CMap {
	return cm.parent
}

// addSingle records a single code -> destination mapping. Later additions
// for the same code override earlier ones.
func (cm *CMap) addSingle(code uint32, dst string) {
	cm.singles[code] = singleEntry{seq: cm.nextSeq, dst: dst}
	cm.nextSeq++
}

// addRange records a linear-offset range mapping
func (cm *CMap) addRange(lo, hi uint32, dstBase []byte) {
	cm.ranges = append(cm.ranges, rangeEntry{seq: cm.nextSeq, lo: lo, hi: hi, dstBase: dstBase})
	cm.nextSeq++
}

// addRangeArray records a range mapping with one destination per code
func (cm *CMap) addRangeArray(lo, hi uint32, dsts []string) {
	cm.ranges = append(cm.ranges, rangeEntry{seq: cm.nextSeq, lo: lo, hi: hi, dstArray: dsts})
	cm.nextSeq++
}

// addCID records a single code -> CID mapping
func (cm *CMap) addCID(code, cid uint32) {
	cm.cidSingles[code] = cidEntry{seq: cm.nextSeq, cid: cid}
	cm.nextSeq++
}

// addCIDRange records a code range -> CID range mapping
func (cm *CMap) addCIDRange(lo, hi, baseCID uint32) {
	cm.cidRanges = append(cm.cidRanges, cidRangeEntry{seq: cm.nextSeq, lo: lo, hi: hi, baseCID: baseCID})
	cm.nextSeq++
}

// Lookup returns the Unicode string for a code, deferring to the parent
// chain when no local entry covers it. The boolean reports whether any
// mapping was found.
func (cm *CMap) Lookup(code uint32) (string, bool) {
	c := cm
	for depth := 0; c != nil && depth < maxParentDepth; depth++ {
		if s, ok := c.lookupLocal(code); ok {
			return s, true
		}
		c = c.parent
	}
	return "", false
}

// lookupLocal resolves a code against this map's own entries only.
// When several entries cover the code the latest-declared one wins.
func (cm *CMap) lookupLocal(code uint32) (string, bool) {
	if cm.identity {
		return string(rune(code)), true
	}

	bestSeq := -1
	var best string

	if e, ok := cm.singles[code]; ok {
		bestSeq = e.seq
		best = e.dst
	}
	for i := len(cm.ranges) - 1; i >= 0; i-- {
		r := cm.ranges[i]
		if r.seq <= bestSeq {
			break // ranges are seq-ordered, nothing older can win
		}
		if code < r.lo || code > r.hi {
			continue
		}
		bestSeq = r.seq
		best = r.destination(code)
		break
	}

	if bestSeq < 0 {
		return "", false
	}
	return best, true
}

// LookupCID returns the CID for a code, walking the parent chain
func (cm *CMap) LookupCID(code uint32) (uint32, bool) {
	c := cm
	for depth := 0; c != nil && depth < maxParentDepth; depth++ {
		if c.identity {
			return code, true
		}
		bestSeq := -1
		var best uint32
		if e, ok := c.cidSingles[code]; ok {
			bestSeq = e.seq
			best = e.cid
		}
		for i := len(c.cidRanges) - 1; i >= 0; i-- {
			r := c.cidRanges[i]
			if r.seq <= bestSeq {
				break
			}
			if code < r.lo || code > r.hi {
				continue
			}
			bestSeq = r.seq
			best = r.baseCID + (code - r.lo)
			break
		}
		if bestSeq >= 0 {
			return best, true
		}
		c = c.parent
	}
	return 0, false
}

// HasMappings reports whether the map (or a parent) carries any
// code-to-Unicode entries.
func (cm *CMap) HasMappings() bool {
	c := cm
	for depth := 0; c != nil && depth < maxParentDepth; depth++ {
		if c.identity || len(c.singles) > 0 || len(c.ranges) > 0 {
			return true
		}
		c = c.parent
	}
	return false
}

// destination computes the mapped string for a code inside the range
func (r rangeEntry) destination(code uint32) string {
	i := code - r.lo
	if r.dstArray != nil {
		if int(i) < len(r.dstArray) {
			return r.dstArray[i]
		}
		if len(r.dstArray) == 0 {
			return ""
		}
		// Array shorter than the declared range: clamp to the last element,
		// matching how lenient readers treat it.
		return r.dstArray[len(r.dstArray)-1]
	}
	return offsetDestination(r.dstBase, i)
}

// offsetDestination adds an offset to the trailing UTF-16 code unit of the
// base destination and decodes the result. Well-formed ranges do not carry
// past the final code unit.
func offsetDestination(base []byte, offset uint32) string {
	if len(base) == 0 {
		return ""
	}
	buf := make([]byte, len(base))
	copy(buf, base)
	if len(buf) == 1 {
		return string(rune(uint32(buf[0]) + offset))
	}
	last := uint32(buf[len(buf)-2])<<8 | uint32(buf[len(buf)-1])
	last += offset
	buf[len(buf)-2] = byte(last >> 8)
	buf[len(buf)-1] = byte(last)
	return utf16BEToString(buf)
}

// predefinedCMaps lists the predefined maps accepted as parent references.
// Anything else a font names is reported as UnsupportedEncoding by the
// resolver.
var predefinedCMaps = map[string]func() *CMap{
	"Identity-H": func() *CMap { return identityCMap("Identity-H", false) },
	"Identity-V": func() *CMap { return identityCMap("Identity-V", true) },
}

// PredefinedCMap returns a fresh instance of a named predefined CMap
func PredefinedCMap(name string) (*CMap, bool) {
	mk, ok := predefinedCMaps[name]
	if !ok {
		return nil, false
	}
	return mk(), true
}

func identityCMap(name string, vertical bool) *CMap {
	cm := NewCMap(name)
	cm.codespace = twoByteCodespace()
	cm.identity = true
	cm.vertical = vertical
	return cm
}
