// Package filters implements the PDF stream filters that appear on CMap
// and font-related streams: FlateDecode (with TIFF and PNG predictors),
// ASCIIHexDecode, and ASCII85Decode.
//
// Image-only filters are out of scope; Decode rejects them by name so the
// caller can surface the stream as undecodable rather than silently
// misreading it.
package filters
