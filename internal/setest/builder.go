// Package setest builds synthetic SE1 images for tests.
//
// The builder is the mirror image of the sefile reader: same constant-area
// layout, same packing rules, both byte orders. It lets every package
// exercise decoding without shipping real ephemeris files, and deliberately
// avoids importing the packages under test so white-box tests can use it.
package setest

import (
	"encoding/binary"
	"math"
)

// Flag bits as stored in a body's flag byte.
const (
	FlagHeliocentric = 1 << 0
	FlagRotate       = 1 << 1
	FlagEllipse      = 1 << 2
)

const endianSentinel = 0x616263

// PackedClass is one precision class worth of raw codes for a coordinate.
// Class 0..3 codes are 4-i bytes wide; class 4 codes are nibbles (0..15),
// class 5 codes are 2-bit fields (0..3).
type PackedClass struct {
	Class int
	Codes []uint32
}

// CodeFor returns the packed code that decodes to the given signed
// magnitude-in-units-of-(rmax/2e9). Negative inputs use the odd codes.
func CodeFor(mag int) uint32 {
	if mag < 0 {
		return uint32(-mag)*2 - 1
	}

	return uint32(mag) * 2
}

// CoeffValue mirrors the decoder's wide-class scaling.
func CoeffValue(mag int, rmax float64) float64 {
	if mag < 0 {
		return -(float64(-mag) / 1e9 * rmax / 2)
	}

	return float64(mag) / 1e9 * rmax / 2
}

// Body describes one body of a fixture image.
type Body struct {
	ID    int32
	Flags uint8
	Ncoe  int
	Rmax  float64

	Tfstart, Tfend, Dseg float64

	Telem, Prot, Dprot, Qrot, Dqrot, Peri, Dperi float64

	Refep []float64

	// Segments[iseg][coord] lists the packed classes of one coordinate
	// stream. Unlisted coefficients decode to zero.
	Segments [][3][]PackedClass
}

// Class0Coeffs encodes the given magnitudes as one class-0 stream
// (4-byte codes, full precision).
func Class0Coeffs(mags ...int) []PackedClass {
	codes := make([]uint32, len(mags))
	for i, m := range mags {
		codes[i] = CodeFor(m)
	}

	return []PackedClass{{Class: 0, Codes: codes}}
}

type writer struct {
	buf   []byte
	order binary.ByteOrder
}

func (w *writer) bytes(b ...byte) { w.buf = append(w.buf, b...) }

func (w *writer) u16(v uint16) {
	var b [2]byte
	w.order.PutUint16(b[:], v)
	w.bytes(b[:]...)
}

func (w *writer) u32(v uint32) {
	var b [4]byte
	w.order.PutUint32(b[:], v)
	w.bytes(b[:]...)
}

func (w *writer) u24(v uint32) {
	var b [4]byte
	w.order.PutUint32(b[:], v)
	if w.order == binary.ByteOrder(binary.LittleEndian) {
		w.bytes(b[0], b[1], b[2])
	} else {
		w.bytes(b[1], b[2], b[3])
	}
}

func (w *writer) uN(v uint32, n int) {
	switch n {
	case 1:
		w.bytes(byte(v))
	case 2:
		w.u16(uint16(v))
	case 3:
		w.u24(v)
	default:
		w.u32(v)
	}
}

func (w *writer) f64(v float64) {
	var b [8]byte
	w.order.PutUint64(b[:], math.Float64bits(v))
	w.bytes(b[:]...)
}

// encodeCoord emits the nibble-count header and the packed code stream of
// one coordinate.
func (w *writer) encodeCoord(classes []PackedClass) {
	var nsize [6]int
	for _, pc := range classes {
		nsize[pc.Class] = len(pc.Codes)
	}

	wide := nsize[4] > 0 || nsize[5] > 0
	if wide {
		w.bytes(
			0x80,
			byte(nsize[0]<<4|nsize[1]),
			byte(nsize[2]<<4|nsize[3]),
			byte(nsize[4]<<4|nsize[5]),
		)
	} else {
		w.bytes(
			byte(nsize[0]<<4|nsize[1]),
			byte(nsize[2]<<4|nsize[3]),
		)
	}

	for class := 0; class < 6; class++ {
		var codes []uint32
		for _, pc := range classes {
			if pc.Class == class {
				codes = pc.Codes
			}
		}
		if len(codes) == 0 {
			continue
		}

		switch {
		case class < 4:
			for _, c := range codes {
				w.uN(c, 4-class)
			}
		case class == 4:
			for i := 0; i < len(codes); i += 2 {
				b := codes[i] << 4
				if i+1 < len(codes) {
					b |= codes[i+1]
				}
				w.bytes(byte(b))
			}
		case class == 5:
			for i := 0; i < len(codes); i += 4 {
				var b uint32
				for k := 0; k < 4; k++ {
					b <<= 2
					if i+k < len(codes) {
						b |= codes[i+k]
					}
				}
				w.bytes(byte(b))
			}
		}
	}
}

// BuildImage assembles a complete SE1 image in the given byte order.
func BuildImage(order binary.ByteOrder, denum int32, tfstart, tfend float64, bodies ...*Body) []byte {
	return build(order, denum, tfstart, tfend, false, bodies)
}

// BuildImageWideIDs assembles an image whose body-id list uses the 4-byte
// encoding, marked by a body count above 256.
func BuildImageWideIDs(order binary.ByteOrder, denum int32, tfstart, tfend float64, bodies ...*Body) []byte {
	return build(order, denum, tfstart, tfend, true, bodies)
}

func build(order binary.ByteOrder, denum int32, tfstart, tfend float64, wideIDs bool, bodies []*Body) []byte {
	w := &writer{order: order}

	w.bytes([]byte("Test ephemeris\r\n")...)
	w.bytes([]byte("synthetic fixture\r\n")...)
	w.bytes([]byte("SWEPH\r\n")...)

	w.u32(endianSentinel)

	lengthPos := len(w.buf)
	w.u32(0) // patched once the image is complete

	w.u32(uint32(denum))
	w.f64(tfstart)
	w.f64(tfend)

	if wideIDs {
		w.u16(uint16(len(bodies) + 256))
		for _, b := range bodies {
			w.u32(uint32(b.ID))
		}
	} else {
		w.u16(uint16(len(bodies)))
		for _, b := range bodies {
			w.u16(uint16(b.ID))
		}
	}

	w.u32(0xDEADBEEF) // CRC, recorded but not validated

	// general constants: clight, aunit, helgravconst, ratme, sunradius
	w.f64(2.99792458e8)
	w.f64(1.49597870700e11)
	w.f64(1.32712440017987e20)
	w.f64(81.3)
	w.f64(0.0046)

	// Per-body constant records reference the index tables by absolute
	// position, so sizes are laid out before segment payloads exist.
	recordsStart := len(w.buf)
	recordsSize := 0
	for _, b := range bodies {
		recordsSize += 4 + 1 + 1 + 4 + 10*8
		if b.Flags&FlagEllipse != 0 {
			recordsSize += 2 * b.Ncoe * 8
		}
	}

	// Encode every segment payload up front to learn its size.
	type encodedBody struct {
		index    []uint32 // absolute positions of segment payloads
		segments [][]byte
	}
	encoded := make([]encodedBody, len(bodies))
	pos := recordsStart + recordsSize
	indexPos := make([]uint32, len(bodies))
	for i, b := range bodies {
		indexPos[i] = uint32(pos)
		pos += 3 * len(b.Segments)
		for _, seg := range b.Segments {
			sw := &writer{order: order}
			for coord := 0; coord < 3; coord++ {
				sw.encodeCoord(seg[coord])
			}
			encoded[i].index = append(encoded[i].index, uint32(pos))
			encoded[i].segments = append(encoded[i].segments, sw.buf)
			pos += len(sw.buf)
		}
	}

	for i, b := range bodies {
		w.u32(indexPos[i])
		w.bytes(b.Flags)
		w.bytes(byte(b.Ncoe))
		w.u32(uint32(math.Round(b.Rmax * 1000)))
		for _, v := range []float64{
			b.Tfstart, b.Tfend, b.Dseg,
			b.Telem, b.Prot, b.Dprot, b.Qrot, b.Dqrot, b.Peri, b.Dperi,
		} {
			w.f64(v)
		}
		if b.Flags&FlagEllipse != 0 {
			for _, v := range b.Refep {
				w.f64(v)
			}
		}
	}

	for i := range bodies {
		for _, p := range encoded[i].index {
			w.u24(p)
		}
		for _, seg := range encoded[i].segments {
			w.bytes(seg...)
		}
	}

	var lb [4]byte
	order.PutUint32(lb[:], uint32(len(w.buf)))
	copy(w.buf[lengthPos:lengthPos+4], lb[:])

	return w.buf
}

// LinearBody builds a body whose x coordinate is a linear function of time
// across contiguous segments, with y and z held at fixed fractions of x.
// Linear series stay continuous across segment joins, which makes the body
// useful for boundary tests. Values are multiples of 1e-9 so the class-0
// encoding is exact.
func LinearBody(id int32, tfstart float64, nseg int, dseg float64) *Body {
	b := &Body{
		ID:      id,
		Ncoe:    4,
		Rmax:    2.0, // unit scale: magnitude 1 decodes to 1e-9
		Tfstart: tfstart,
		Tfend:   tfstart + float64(nseg)*dseg,
		Dseg:    dseg,
	}

	const slopePerSeg = 200000 // magnitude growth per segment
	for k := 0; k < nseg; k++ {
		mid := 1000000 + slopePerSeg*k + slopePerSeg/2
		// f(tau) = c0/2 + c1*tau: midpoint value and half-span slope.
		x := Class0Coeffs(2*mid, slopePerSeg/2, 0, 0)
		y := Class0Coeffs(mid, slopePerSeg/4, 0, 0)
		z := Class0Coeffs(mid/2, slopePerSeg/8, 0, 0)
		b.Segments = append(b.Segments, [3][]PackedClass{x, y, z})
	}

	return b
}
