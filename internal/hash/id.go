package hash

import "github.com/cespare/xxhash/v2"

// Sum64 computes the xxHash64 of an ephemeris file image. It identifies an
// image independently of the path it was loaded from.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}
