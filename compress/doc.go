// Package compress provides whole-image codecs for archived ephemeris files.
//
// SE1 payloads are already bit-packed, but complete ephemeris sets are bulky
// and mostly cold; storing them as .se1.zst, .se1.s2 or .se1.lz4 archives and
// decompressing once at open time keeps distribution and disk cost down
// without touching the hot path.
//
// The codec is normally chosen from the file name via
// format.DetectCompression; sefile.WithCompression overrides the choice.
//
// Codecs:
//   - Zstd: best ratio, the default for distribution archives
//   - S2: fastest decompression, for frequently reopened files
//   - LZ4: frame format, for interoperability with lz4(1) archives
//   - NoOp: pass-through for plain .se1 files
package compress
