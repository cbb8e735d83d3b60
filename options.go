package codemap

import (
	"github.com/tsawler/codemap/font"
)

// Options holds configuration for char-map building and decoding.
type Options struct {
	resolver  font.Resolver
	sink      font.WarningSink
	normalize bool
}

// defaultOptions returns the default build options.
func defaultOptions() Options {
	return Options{
		resolver:  nil, // nil means the font dictionary is fully inlined
		sink:      nil,
		normalize: false,
	}
}

// Option configures a BuildCharMap or DecodeText call.
type Option func(*Options)

// WithResolver supplies the callback used to chase indirect references in
// the font dictionary. Without one, indirect entries degrade to their
// documented fallbacks.
func WithResolver(r font.Resolver) Option {
	return func(o *Options) {
		o.resolver = r
	}
}

// WithWarningSink streams warnings to the sink as they are raised, in
// addition to the returned slice.
func WithWarningSink(s font.WarningSink) Option {
	return func(o *Options) {
		o.sink = s
	}
}

// WithNormalization NFC-normalizes decoded text. Useful when downstream
// consumers compare or index the output.
func WithNormalization() Option {
	return func(o *Options) {
		o.normalize = true
	}
}

func applyOptions(opts []Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
