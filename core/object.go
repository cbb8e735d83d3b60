package core

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tsawler/codemap/internal/filters"
)

// Object represents a resolved PDF object value.
//
// The codemap module does not parse documents itself: these types are the
// hand-off format from whatever layer resolved the document's object graph.
// A font description arrives as a Dict whose values are already resolved or
// resolvable through a caller-supplied lookup function.
type Object interface {
	Type() ObjectType
	String() string
}

// ObjectType represents the type of PDF object
type ObjectType int

const (
	ObjNull ObjectType = iota
	ObjBool
	ObjInt
	ObjReal
	ObjString
	ObjName
	ObjArray
	ObjDict
	ObjStream
	ObjIndirect
)

// String returns the string representation of the object type
func (t ObjectType) String() string {
	switch t {
	case ObjNull:
		return "Null"
	case ObjBool:
		return "Bool"
	case ObjInt:
		return "Int"
	case ObjReal:
		return "Real"
	case ObjString:
		return "String"
	case ObjName:
		return "Name"
	case ObjArray:
		return "Array"
	case ObjDict:
		return "Dict"
	case ObjStream:
		return "Stream"
	case ObjIndirect:
		return "IndirectRef"
	default:
		return "Unknown"
	}
}

// Null represents a PDF null object
type Null struct{}

func (n Null) Type() ObjectType { return ObjNull }
func (n Null) String() string   { return "null" }

// Bool represents a PDF boolean
type Bool bool

func (b Bool) Type() ObjectType { return ObjBool }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Int represents a PDF integer
type Int int64

func (i Int) Type() ObjectType { return ObjInt }
func (i Int) String() string   { return strconv.FormatInt(int64(i), 10) }

// Real represents a PDF real number
type Real float64

func (r Real) Type() ObjectType { return ObjReal }
func (r Real) String() string   { return strconv.FormatFloat(float64(r), 'f', -1, 64) }

// String represents a PDF string
type String string

func (s String) Type() ObjectType { return ObjString }
func (s String) String() string   { return string(s) }

// Name represents a PDF name
type Name string

func (n Name) Type() ObjectType { return ObjName }
func (n Name) String() string   { return "/" + string(n) }

// Array represents a PDF array
type Array []Object

func (a Array) Type() ObjectType { return ObjArray }
func (a Array) String() string {
	var parts []string
	for _, obj := range a {
		parts = append(parts, obj.String())
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Len returns the length of the array
func (a Array) Len() int {
	return len(a)
}

// Get retrieves an element at the given index
func (a Array) Get(index int) Object {
	if index < 0 || index >= len(a) {
		return nil
	}
	return a[index]
}

// GetName retrieves a name at the given index
func (a Array) GetName(index int) (Name, bool) {
	obj := a.Get(index)
	if obj == nil {
		return "", false
	}
	n, ok := obj.(Name)
	return n, ok
}

// Dict represents a PDF dictionary
type Dict map[string]Object

func (d Dict) Type() ObjectType { return ObjDict }
func (d Dict) String() string {
	keys := d.Keys()
	var parts []string
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("/%s %s", key, d[key].String()))
	}
	return "<<" + strings.Join(parts, " ") + ">>"
}

// Get retrieves a value from the dictionary
func (d Dict) Get(key string) Object {
	return d[key]
}

// GetName retrieves a name value
func (d Dict) GetName(key string) (Name, bool) {
	obj, ok := d[key]
	if !ok {
		return "", false
	}
	name, ok := obj.(Name)
	return name, ok
}

// GetInt retrieves an integer value
func (d Dict) GetInt(key string) (Int, bool) {
	obj, ok := d[key]
	if !ok {
		return 0, false
	}
	i, ok := obj.(Int)
	return i, ok
}

// GetDict retrieves a dictionary value
func (d Dict) GetDict(key string) (Dict, bool) {
	obj, ok := d[key]
	if !ok {
		return nil, false
	}
	dict, ok := obj.(Dict)
	return dict, ok
}

// GetArray retrieves an array value
func (d Dict) GetArray(key string) (Array, bool) {
	obj, ok := d[key]
	if !ok {
		return nil, false
	}
	arr, ok := obj.(Array)
	return arr, ok
}

// GetStream retrieves a stream value
func (d Dict) GetStream(key string) (*Stream, bool) {
	obj, ok := d[key]
	if !ok {
		return nil, false
	}
	s, ok := obj.(*Stream)
	return s, ok
}

// Has reports whether the key is present
func (d Dict) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// Set stores a value in the dictionary
func (d Dict) Set(key string, value Object) {
	d[key] = value
}

// Keys returns the dictionary keys in sorted order
func (d Dict) Keys() []string {
	keys := make([]string, 0, len(d))
	for key := range d {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// DuplicateKey records a key that was written more than once while a
// dictionary was assembled, along with the byte offset of the later write.
// Producers in the wild emit corrective duplicate entries; the decoder
// surfaces these as diagnostics rather than errors.
type DuplicateKey struct {
	Key    string
	Offset int64
}

// DictBuilder assembles a Dict while recording duplicate key writes.
// Upstream parsers use it so the byte offsets of duplicate definitions
// survive into the warning channel. The last write wins, matching how
// PDF consumers treat repeated dictionary entries.
type DictBuilder struct {
	dict       Dict
	duplicates []DuplicateKey
}

// NewDictBuilder creates an empty DictBuilder
func NewDictBuilder() *DictBuilder {
	return &DictBuilder{dict: make(Dict)}
}

// SetAt stores a value, recording a DuplicateKey if the key was already set.
// offset is the byte position of this write in the source file; callers
// without position information may pass -1.
func (b *DictBuilder) SetAt(key string, value Object, offset int64) {
	if _, exists := b.dict[key]; exists {
		b.duplicates = append(b.duplicates, DuplicateKey{Key: key, Offset: offset})
	}
	b.dict[key] = value
}

// Dict returns the assembled dictionary
func (b *DictBuilder) Dict() Dict {
	return b.dict
}

// Duplicates returns the duplicate key writes observed, in order
func (b *DictBuilder) Duplicates() []DuplicateKey {
	return b.duplicates
}

// Stream represents a PDF stream: its dictionary plus raw data. Data holds
// the bytes exactly as the upstream layer handed them over, filters and all.
type Stream struct {
	Dict Dict
	Data []byte
}

func (s *Stream) Type() ObjectType { return ObjStream }
func (s *Stream) String() string {
	return fmt.Sprintf("stream %s (%d bytes)", s.Dict.String(), len(s.Data))
}

// Decoded returns the stream data with its /Filter chain applied. A stream
// without filters returns its data as-is.
func (s *Stream) Decoded() ([]byte, error) {
	names, parms := s.filterChain()
	data := s.Data
	for i, name := range names {
		var p filters.Params
		if i < len(parms) {
			p = parms[i]
		}
		out, err := filters.Decode(name, data, p)
		if err != nil {
			return nil, fmt.Errorf("core: stream filter %s: %w", name, err)
		}
		data = out
	}
	return data, nil
}

// filterChain flattens /Filter and /DecodeParms, which may each be a single
// entry or an array.
func (s *Stream) filterChain() ([]string, []filters.Params) {
	var names []string
	switch f := s.Dict.Get("Filter").(type) {
	case Name:
		names = []string{string(f)}
	case Array:
		for _, item := range f {
			if n, ok := item.(Name); ok {
				names = append(names, string(n))
			}
		}
	}
	if len(names) == 0 {
		return nil, nil
	}

	parms := make([]filters.Params, len(names))
	switch p := s.Dict.Get("DecodeParms").(type) {
	case Dict:
		parms[0] = flattenParms(p)
	case Array:
		for i := 0; i < len(p) && i < len(parms); i++ {
			if d, ok := p[i].(Dict); ok {
				parms[i] = flattenParms(d)
			}
		}
	}
	return names, parms
}

func flattenParms(d Dict) filters.Params {
	p := make(filters.Params, len(d))
	for key, value := range d {
		if v, ok := toInt(value); ok {
			p[key] = v
		}
	}
	return p
}

func toInt(obj Object) (int, bool) {
	switch v := obj.(type) {
	case Int:
		return int(v), true
	case Real:
		return int(v), true
	}
	return 0, false
}

// IndirectRef represents an indirect object reference
type IndirectRef struct {
	Number     int
	Generation int
}

func (r IndirectRef) Type() ObjectType { return ObjIndirect }
func (r IndirectRef) String() string {
	return fmt.Sprintf("%d %d R", r.Number, r.Generation)
}
