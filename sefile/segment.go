package sefile

import (
	"fmt"

	"github.com/dhanmoti/sweph/errs"
)

// loadSegment locates, unpacks and (when flagged) rotates the segment
// covering jd, then installs it as the body's cache. The cache is written
// only after every step has succeeded, so a failed decode leaves the
// previous segment intact.
func (f *File) loadSegment(p *planet, jd float64) error {
	iseg := int((jd - p.tfstart) / p.dseg)
	if iseg < 0 || int32(iseg) > p.nndx {
		return fmt.Errorf("%w: body %d at jd %f", errs.ErrOutOfRange, p.ibdy, jd)
	}
	if int32(iseg) == p.nndx {
		// jd exactly at the end of the window evaluates in the last segment.
		iseg--
	}
	tseg0 := p.tfstart + float64(iseg)*p.dseg

	r := newReader(f.image, f.order)
	if err := r.seek(int(p.lndx0) + iseg*3); err != nil {
		return err
	}
	segpos, err := r.readUintN(3)
	if err != nil {
		return err
	}
	if err := r.seek(int(segpos)); err != nil {
		return fmt.Errorf("segment %d of body %d: %w", iseg, p.ibdy, err)
	}

	segp := make([]float64, 3*p.ncoe)
	for icoord := 0; icoord < 3; icoord++ {
		if err := f.unpackCoord(r, segp[icoord*p.ncoe:(icoord+1)*p.ncoe], p.rmax); err != nil {
			return fmt.Errorf("segment %d of body %d: %w", iseg, p.ibdy, err)
		}
	}

	if p.iflg.Rotated() {
		rotateBack(p, tseg0, segp)
	}

	p.segp = segp
	p.tseg0 = tseg0
	p.tseg1 = tseg0 + p.dseg
	p.neval = p.ncoe

	return nil
}

// unpackCoord decodes one coordinate's packed coefficient stream into dst.
//
// The stream starts with a nibble-count header: four 4-bit counts in two
// bytes, or six counts in four bytes when the first byte has its top bit
// set. Count i says how many coefficients follow in precision class i.
// Classes 0..3 store codes of 4-i bytes in the file byte order; class 4
// packs two codes per byte (high nibble first), class 5 four codes per
// byte (highest pair first).
//
// Every code uses the same sign convention: the low bit of the code is the
// sign, the magnitude is code>>1, or (code+1)>>1 negated. Coefficients not
// covered by any class stay zero.
func (f *File) unpackCoord(r *reader, dst []float64, rmax float64) error {
	hdr, err := r.readBytes(2)
	if err != nil {
		return err
	}

	var nsize [6]int
	nsizes := 4
	if hdr[0]&0x80 != 0 {
		extra, err := r.readBytes(2)
		if err != nil {
			return err
		}
		nsizes = 6
		nsize = [6]int{
			int(hdr[1] >> 4), int(hdr[1] & 15),
			int(extra[0] >> 4), int(extra[0] & 15),
			int(extra[1] >> 4), int(extra[1] & 15),
		}
	} else {
		nsize = [6]int{
			int(hdr[0] >> 4), int(hdr[0] & 15),
			int(hdr[1] >> 4), int(hdr[1] & 15),
		}
	}

	nco := 0
	for _, n := range nsize[:nsizes] {
		nco += n
	}
	if nco > len(dst) {
		return fmt.Errorf("%w: %d coefficients, polynomial order allows %d",
			errs.ErrCorruptSegment, nco, len(dst))
	}

	idbl := 0
	for class := 0; class < nsizes; class++ {
		count := nsize[class]
		if count == 0 {
			continue
		}

		switch {
		case class < 4:
			width := 4 - class
			for m := 0; m < count; m++ {
				code, err := r.readUintN(width)
				if err != nil {
					return err
				}
				mag, neg := splitCode(code)
				// Multiplication order kept from the producer for
				// bit parity with reference coefficients.
				v := float64(mag) / coeffScale * rmax / 2
				if neg {
					v = -v
				}
				dst[idbl] = v
				idbl++
			}
		case class == 4:
			if idbl, err = f.unpackSubByte(r, dst, idbl, count, 16, rmax); err != nil {
				return err
			}
		case class == 5:
			if idbl, err = f.unpackSubByte(r, dst, idbl, count, 64, rmax); err != nil {
				return err
			}
		}
	}

	return nil
}

// unpackSubByte decodes count coefficients packed several to a byte. top is
// the place value of the first sub-field in each byte: 16 for nibble
// packing (two per byte), 64 for quarter-byte packing (four per byte).
// Fields are consumed from the most significant end down.
func (f *File) unpackSubByte(r *reader, dst []float64, idbl, count int, top uint32, rmax float64) (int, error) {
	fieldsPerByte := 2
	step := uint32(16) // nibble fields: place values 16, 1
	if top == 64 {
		fieldsPerByte = 4
		step = 4 // quarter-byte fields: place values 64, 16, 4, 1
	}
	nbytes := (count + fieldsPerByte - 1) / fieldsPerByte

	raw, err := r.readBytes(nbytes)
	if err != nil {
		return idbl, err
	}

	j := 0
	for m := 0; m < nbytes && j < count; m++ {
		b := uint32(raw[m])
		for o := top; o >= 1 && j < count; o /= step {
			mag, neg := splitCode(b / o)
			v := float64(mag) * rmax / 2 / coeffScale
			if neg {
				v = -v
			}
			dst[idbl] = v
			b %= o
			idbl++
			j++
		}
	}

	return idbl, nil
}

// splitCode separates a packed code into magnitude and sign. The sign is
// the code's low bit; negative magnitudes round up so that the mapping is
// symmetric around zero.
func splitCode(code uint32) (mag uint32, neg bool) {
	if code&1 != 0 {
		return (code + 1) >> 1, true
	}

	return code >> 1, false
}
