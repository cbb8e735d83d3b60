// Package resolver follows PDF indirect references.
//
// PDF documents refer to objects stored elsewhere in the file through
// indirect references (e.g. "5 0 R"). This package resolves those
// references against a Source, following chains of references and
// detecting cycles.
//
// # Sources
//
// Any type implementing Source can back a Resolver. Store is a ready-made
// in-memory Source for callers that have already collected the objects a
// font dictionary needs:
//
//	store := resolver.NewStore()
//	store.Put(5, core.Int(42))
//
//	r := resolver.New(store)
//	obj, err := r.Resolve(core.IndirectRef{Number: 5})
//
// # Deep Resolution
//
// ResolveDeep expands every reference nested inside dictionaries, arrays
// and stream dictionaries:
//
//	resolved, err := r.ResolveDeep(fontDict)
//
// # Cycle Detection
//
// Circular reference chains return an error rather than looping. The
// recursion depth is also bounded:
//
//	r := resolver.New(store, resolver.WithMaxDepth(50))
//
// # Use with Font Dictionaries
//
// Func adapts a Resolver to the lookup-function shape the rest of the
// module takes for walking font dictionaries:
//
//	ctx, warns := codemap.BuildCharMap(fontDict, codemap.WithResolver(r.Func()))
package resolver
