package compress

// ZstdCompressor compresses ephemeris images with Zstandard. It gives the
// best ratio of the built-in codecs and is the usual choice for archived
// ephemeris sets that are opened rarely.
//
// Two implementations exist behind the same type: the default pure-Go one
// (klauspost/compress) and an opt-in cgo one (valyala/gozstd) selected with
// the "gozstd" build tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
