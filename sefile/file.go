package sefile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dhanmoti/sweph/compress"
	"github.com/dhanmoti/sweph/endian"
	"github.com/dhanmoti/sweph/errs"
	"github.com/dhanmoti/sweph/format"
	"github.com/dhanmoti/sweph/internal/hash"
)

// File is an open SE1 ephemeris file: the full image in memory, the
// negotiated byte order, the body table and the per-body segment caches.
//
// A File is single-owner. Position mutates the per-body cache on segment
// misses, so concurrent callers must serialise access externally.
type File struct {
	image     []byte
	order     endian.EndianEngine
	bigEndian bool // on-disk order is big-endian
	reordered bool // on-disk order differs from the host

	name    string
	banner  string
	denum   int32
	tfstart float64
	tfend   float64
	crc     uint32
	gen     GenConst

	bodies  []Body // in file order
	planets map[Body]*planet

	checksum uint64
}

// Open reads and parses an ephemeris file. Compressed archives (.zst, .s2,
// .lz4 suffixes) are decompressed transparently; WithCompression overrides
// the inferred codec.
func Open(path string, opts ...Option) (*File, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open ephemeris file: %w", err)
	}

	ct := cfg.compression
	if !cfg.compressionSet {
		ct = format.DetectCompression(path)
	}

	return openImage(filepath.Base(path), data, ct, cfg)
}

// OpenImage parses an ephemeris image already held in memory. The name is
// used for diagnostics and codec inference only.
func OpenImage(name string, image []byte, opts ...Option) (*File, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	ct := cfg.compression
	if !cfg.compressionSet {
		ct = format.DetectCompression(name)
	}

	return openImage(name, image, ct, cfg)
}

func openImage(name string, image []byte, ct format.CompressionType, cfg *config) (*File, error) {
	if ct != format.CompressionNone {
		codec, err := compress.GetCodec(ct)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, ct)
		}
		image, err = codec.Decompress(image)
		if err != nil {
			return nil, fmt.Errorf("decompress %s image: %w", ct, err)
		}
	}

	f := &File{image: image, name: name}
	if err := f.parseHeader(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if !cfg.skipChecksum {
		f.checksum = hash.Sum64(image)
	}

	return f, nil
}

// Position returns the body's rectangular J2000 equatorial coordinates at
// the given Julian date, in AU. The frame centre depends on the body's
// flags: heliocentric bodies need the Earth vector (body 0) subtracted for
// a geocentric result, the Moon is stored geocentric already.
//
// The cached segment is reused when it covers jd; otherwise the covering
// segment is decoded, rotated if flagged, and installed. A failed decode
// leaves the cache unchanged and returns no partial result.
func (f *File) Position(body Body, jd float64) ([3]float64, error) {
	var out [3]float64

	p, ok := f.planets[body]
	if !ok {
		return out, fmt.Errorf("%w: body %d", errs.ErrUnknownBody, body)
	}
	if jd < p.tfstart || jd > p.tfend {
		return out, fmt.Errorf("%w: body %s at jd %f, file covers [%f, %f]",
			errs.ErrOutOfRange, body, jd, p.tfstart, p.tfend)
	}

	if !p.cached(jd) {
		if err := f.loadSegment(p, jd); err != nil {
			return out, err
		}
	}

	t := (jd-p.tseg0)/p.dseg*2 - 1
	for k := 0; k < 3; k++ {
		out[k] = evalCheby(t, p.segp[k*p.ncoe:(k+1)*p.ncoe])
	}

	return out, nil
}

// Flags returns the body's flag bitset.
func (f *File) Flags(body Body) (BodyFlags, error) {
	p, ok := f.planets[body]
	if !ok {
		return 0, fmt.Errorf("%w: body %d", errs.ErrUnknownBody, body)
	}

	return p.iflg, nil
}

// Info returns the body's metadata.
func (f *File) Info(body Body) (BodyInfo, error) {
	p, ok := f.planets[body]
	if !ok {
		return BodyInfo{}, fmt.Errorf("%w: body %d", errs.ErrUnknownBody, body)
	}

	return BodyInfo{
		Body:        p.ibdy,
		Flags:       p.iflg,
		Ncoe:        p.ncoe,
		Start:       p.tfstart,
		End:         p.tfend,
		SegmentDays: p.dseg,
		Rmax:        p.rmax,
	}, nil
}

// Validity returns the file's overall time window in Julian days.
func (f *File) Validity() (tfstart, tfend float64) {
	return f.tfstart, f.tfend
}

// Bodies returns the body ids carried by the file, in file order.
// The returned slice is cloned to prevent external modification.
func (f *File) Bodies() []Body {
	out := make([]Body, len(f.bodies))
	copy(out, f.bodies)

	return out
}

// HasBody reports whether the file carries the given body.
func (f *File) HasBody(body Body) bool {
	_, ok := f.planets[body]

	return ok
}

// Name returns the name the file was opened under.
func (f *File) Name() string { return f.name }

// Banner returns the file's first banner line.
func (f *File) Banner() string { return f.banner }

// EphemerisNumber returns the DE number the file was derived from.
func (f *File) EphemerisNumber() int32 { return f.denum }

// GeneralConstants returns the constants recorded in the constant area.
func (f *File) GeneralConstants() GenConst { return f.gen }

// CRC returns the checksum recorded in the constant area. It is carried
// through, not validated; Checksum is the integrity measure.
func (f *File) CRC() uint32 { return f.crc }

// Checksum returns the xxHash64 of the decompressed image, or 0 when the
// file was opened with WithoutChecksum.
func (f *File) Checksum() uint64 { return f.checksum }

// BigEndian reports whether the on-disk byte order is big-endian.
func (f *File) BigEndian() bool { return f.bigEndian }

// Reordered reports whether the on-disk byte order differs from the host's.
func (f *File) Reordered() bool { return f.reordered }
