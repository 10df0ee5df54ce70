// Package format defines file-format level enums shared by the sweph packages.
package format

import "strings"

// CompressionType identifies the whole-image codec an ephemeris archive was
// stored with. The SE1 payload itself is bit-packed; image compression is an
// outer layer applied to whole files for cold storage and distribution.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents an uncompressed image.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 frame compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Extension returns the file name suffix appended to an ephemeris file name
// when stored with this compression, e.g. ".zst" for Zstd. CompressionNone
// returns the empty string.
func (c CompressionType) Extension() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionS2:
		return ".s2"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// DetectCompression infers the compression type from a file name, e.g.
// "sepl_18.se1.zst" yields CompressionZstd. Names without a recognised
// suffix yield CompressionNone.
func DetectCompression(name string) CompressionType {
	switch {
	case strings.HasSuffix(name, ".zst"):
		return CompressionZstd
	case strings.HasSuffix(name, ".s2"):
		return CompressionS2
	case strings.HasSuffix(name, ".lz4"):
		return CompressionLZ4
	default:
		return CompressionNone
	}
}
