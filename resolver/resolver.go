package resolver

import (
	"fmt"
	"sync"

	"github.com/tsawler/codemap/core"
)

// Source supplies objects for indirect references. Implementations typically
// wrap a document reader; Store provides an in-memory implementation for
// callers that have already collected the objects they need.
type Source interface {
	Fetch(ref core.IndirectRef) (core.Object, error)
}

// Store is an in-memory Source keyed by object number. It is safe for
// concurrent use.
type Store struct {
	mu      sync.RWMutex
	objects map[int]core.Object
}

// NewStore creates an empty object store.
func NewStore() *Store {
	return &Store{objects: make(map[int]core.Object)}
}

// Put registers an object under the given object number, replacing any
// previous entry.
func (s *Store) Put(num int, obj core.Object) {
	s.mu.Lock()
	s.objects[num] = obj
	s.mu.Unlock()
}

// Get returns the object registered under num.
func (s *Store) Get(num int) (core.Object, bool) {
	s.mu.RLock()
	obj, ok := s.objects[num]
	s.mu.RUnlock()
	return obj, ok
}

// Len returns the number of stored objects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// Fetch implements Source. Generation numbers are ignored: the store keeps
// one live object per number.
func (s *Store) Fetch(ref core.IndirectRef) (core.Object, error) {
	obj, ok := s.Get(ref.Number)
	if !ok {
		return nil, fmt.Errorf("resolver: object %d %d R not found", ref.Number, ref.Generation)
	}
	return obj, nil
}

// Resolver follows indirect references against a Source, detecting reference
// cycles and bounding recursion depth. A Resolver holds no per-call state and
// is safe for concurrent use.
type Resolver struct {
	src      Source
	maxDepth int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxDepth sets the maximum recursion depth (default 100).
func WithMaxDepth(depth int) Option {
	return func(r *Resolver) {
		r.maxDepth = depth
	}
}

// New creates a resolver backed by src.
func New(src Source, opts ...Option) *Resolver {
	r := &Resolver{
		src:      src,
		maxDepth: 100,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// walk carries the per-call traversal state so concurrent resolutions do not
// share cycle-detection bookkeeping.
type walk struct {
	visited map[int]bool
	depth   int
}

// Resolve follows obj through any chain of indirect references and returns
// the first non-reference object. Containers are returned as-is: their
// elements may still hold references.
func (r *Resolver) Resolve(obj core.Object) (core.Object, error) {
	return r.resolve(obj, false, &walk{visited: make(map[int]bool)})
}

// ResolveDeep resolves obj and every reference nested inside dictionaries,
// arrays and stream dictionaries, returning a fully expanded copy.
func (r *Resolver) ResolveDeep(obj core.Object) (core.Object, error) {
	return r.resolve(obj, true, &walk{visited: make(map[int]bool)})
}

func (r *Resolver) resolve(obj core.Object, deep bool, w *walk) (core.Object, error) {
	if w.depth >= r.maxDepth {
		return nil, fmt.Errorf("resolver: maximum recursion depth (%d) exceeded", r.maxDepth)
	}

	switch v := obj.(type) {
	case core.IndirectRef:
		if w.visited[v.Number] {
			return nil, fmt.Errorf("resolver: circular reference detected for object %d", v.Number)
		}
		w.visited[v.Number] = true
		defer delete(w.visited, v.Number)

		fetched, err := r.src.Fetch(v)
		if err != nil {
			return nil, fmt.Errorf("resolver: %d %d R: %w", v.Number, v.Generation, err)
		}
		w.depth++
		resolved, err := r.resolve(fetched, deep, w)
		w.depth--
		return resolved, err

	case core.Dict:
		if !deep {
			return v, nil
		}
		resolved := make(core.Dict, len(v))
		for key, value := range v {
			w.depth++
			rv, err := r.resolve(value, deep, w)
			w.depth--
			if err != nil {
				return nil, fmt.Errorf("resolver: dict key %s: %w", key, err)
			}
			resolved[key] = rv
		}
		return resolved, nil

	case core.Array:
		if !deep {
			return v, nil
		}
		resolved := make(core.Array, len(v))
		for i, elem := range v {
			w.depth++
			rv, err := r.resolve(elem, deep, w)
			w.depth--
			if err != nil {
				return nil, fmt.Errorf("resolver: array element %d: %w", i, err)
			}
			resolved[i] = rv
		}
		return resolved, nil

	case *core.Stream:
		if !deep {
			return v, nil
		}
		w.depth++
		rd, err := r.resolve(v.Dict, deep, w)
		w.depth--
		if err != nil {
			return nil, fmt.Errorf("resolver: stream dict: %w", err)
		}
		return &core.Stream{Dict: rd.(core.Dict), Data: v.Data}, nil

	default:
		return obj, nil
	}
}

// ResolveDict fully resolves a dictionary and all its values.
func (r *Resolver) ResolveDict(dict core.Dict) (core.Dict, error) {
	resolved, err := r.ResolveDeep(dict)
	if err != nil {
		return nil, err
	}
	return resolved.(core.Dict), nil
}

// ResolveArray fully resolves an array and all its elements.
func (r *Resolver) ResolveArray(arr core.Array) (core.Array, error) {
	resolved, err := r.ResolveDeep(arr)
	if err != nil {
		return nil, err
	}
	return resolved.(core.Array), nil
}

// Func returns the resolver as a plain lookup function, the shape font
// dictionaries are walked with. Each call follows reference chains but does
// not expand containers.
func (r *Resolver) Func() func(core.IndirectRef) (core.Object, error) {
	return func(ref core.IndirectRef) (core.Object, error) {
		return r.Resolve(ref)
	}
}
