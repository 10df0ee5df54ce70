package compress

import (
	"fmt"

	"github.com/dhanmoti/sweph/format"
)

// Compressor compresses a whole ephemeris file image.
//
// Memory management:
//   - Returned slice is owned by the caller; it is newly allocated except
//     for NoOpCompressor, which returns the input slice itself
//   - Input slice is not modified
//   - Internal buffers may be reused for efficiency
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores an ephemeris file image from its compressed form.
//
// Ephemeris images are decompressed exactly once, at open time; the decoder
// then works on the uncompressed image in memory. Implementations validate
// the input framing and return an error for corrupted or mismatched data.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
