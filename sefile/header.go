package sefile

import (
	"fmt"

	"github.com/dhanmoti/sweph/endian"
	"github.com/dhanmoti/sweph/errs"
)

// GenConst carries the general astronomical constants stored in the constant
// area. The decoder itself does not use them; they are exposed for callers
// that want the file's own values rather than modern ones.
type GenConst struct {
	Clight       float64 // speed of light
	Aunit        float64 // astronomical unit in metres
	Helgravconst float64 // heliocentric gravitational constant
	Ratme        float64 // Earth/Moon mass ratio
	Sunradius    float64 // solar radius
}

// parseHeader reads the constant area from the start of the image and
// populates the handle. The layout is position-dependent; reads happen in
// exact file order.
func (f *File) parseHeader() error {
	r := newReader(f.image, endian.GetLittleEndianEngine())

	// Three banner lines. The first names the ephemeris; the others carry
	// provenance and are discarded.
	for i := 0; i < 3; i++ {
		line, err := r.readLine()
		if err != nil {
			return err
		}
		if i == 0 {
			f.banner = line
		}
	}

	if err := f.negotiateOrder(r); err != nil {
		return err
	}

	length, err := r.readInt32()
	if err != nil {
		return err
	}
	if int(length) != len(f.image) {
		return fmt.Errorf("%w: recorded length %d, image is %d bytes",
			errs.ErrInvalidHeader, length, len(f.image))
	}

	if f.denum, err = r.readInt32(); err != nil {
		return err
	}
	if f.tfstart, err = r.readFloat64(); err != nil {
		return err
	}
	if f.tfend, err = r.readFloat64(); err != nil {
		return err
	}

	nplan, err := r.readInt16()
	if err != nil {
		return err
	}
	// Body ids are 2 bytes on disk unless the count carries the wide-id
	// marker in its high byte.
	idSize := 2
	if nplan > 256 {
		idSize = 4
		nplan %= 256
	}
	if nplan < 1 || int(nplan) > maxBodies {
		return fmt.Errorf("%w: implausible body count %d", errs.ErrInvalidHeader, nplan)
	}

	f.bodies = make([]Body, nplan)
	for i := range f.bodies {
		id, err := r.readUintN(idSize)
		if err != nil {
			return err
		}
		f.bodies[i] = Body(int32(id))
	}

	if f.crc, err = r.readUint32(); err != nil {
		return err
	}

	gd, err := r.readFloat64s(5)
	if err != nil {
		return err
	}
	f.gen = GenConst{
		Clight:       gd[0],
		Aunit:        gd[1],
		Helgravconst: gd[2],
		Ratme:        gd[3],
		Sunradius:    gd[4],
	}

	f.planets = make(map[Body]*planet, len(f.bodies))
	for _, id := range f.bodies {
		if _, dup := f.planets[id]; dup {
			return fmt.Errorf("%w: duplicate body id %d", errs.ErrInvalidHeader, id)
		}
		p, err := f.readPlanetRecord(r, id)
		if err != nil {
			return err
		}
		f.planets[id] = p
	}

	return nil
}

// negotiateOrder reads the sentinel integer and fixes the file byte order.
// The sentinel decodes to 0x616263 in exactly one order; if neither
// interpretation matches, the file is not an SE1 image.
func (f *File) negotiateOrder(r *reader) error {
	raw, err := r.readBytes(4)
	if err != nil {
		return err
	}

	switch {
	case endian.GetLittleEndianEngine().Uint32(raw) == endianSentinel:
		f.order = endian.GetLittleEndianEngine()
	case endian.GetBigEndianEngine().Uint32(raw) == endianSentinel:
		f.order = endian.GetBigEndianEngine()
		f.bigEndian = true
	default:
		return fmt.Errorf("%w: endianness sentinel %x matches neither byte order",
			errs.ErrInvalidHeader, raw)
	}

	r.order = f.order
	f.reordered = !endian.CompareNativeEndian(f.order)

	return nil
}

// readPlanetRecord reads one body's metadata block. Field order is fixed by
// the format: index position, flags, ncoe, rmax, ten element doubles, then
// the optional reference ellipse.
func (f *File) readPlanetRecord(r *reader, id Body) (*planet, error) {
	p := &planet{ibdy: id}

	lndx0, err := r.readInt32()
	if err != nil {
		return nil, err
	}
	p.lndx0 = lndx0

	iflg, err := r.readUint8()
	if err != nil {
		return nil, err
	}
	p.iflg = BodyFlags(iflg)

	ncoe, err := r.readUint8()
	if err != nil {
		return nil, err
	}
	p.ncoe = int(ncoe)

	// rmax is stored ×1000 as an integer.
	rmax, err := r.readInt32()
	if err != nil {
		return nil, err
	}
	p.rmax = float64(rmax) / 1000.0

	d, err := r.readFloat64s(10)
	if err != nil {
		return nil, err
	}
	p.tfstart = d[0]
	p.tfend = d[1]
	p.dseg = d[2]
	p.telem = d[3]
	p.prot = d[4]
	p.dprot = d[5]
	p.qrot = d[6]
	p.dqrot = d[7]
	p.peri = d[8]
	p.dperi = d[9]

	if err := f.validatePlanet(p); err != nil {
		return nil, err
	}
	p.nndx = int32((p.tfend - p.tfstart + 0.1) / p.dseg)

	if p.iflg.Ellipse() {
		if p.refep, err = r.readFloat64s(2 * p.ncoe); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (f *File) validatePlanet(p *planet) error {
	switch {
	case p.ncoe < 1:
		return fmt.Errorf("%w: body %d: ncoe %d", errs.ErrInvalidHeader, p.ibdy, p.ncoe)
	case p.dseg <= 0:
		return fmt.Errorf("%w: body %d: segment length %g", errs.ErrInvalidHeader, p.ibdy, p.dseg)
	case p.tfstart > p.tfend:
		return fmt.Errorf("%w: body %d: time window [%f, %f]", errs.ErrInvalidHeader, p.ibdy, p.tfstart, p.tfend)
	case p.tfstart < f.tfstart || p.tfend > f.tfend:
		return fmt.Errorf("%w: body %d window [%f, %f] exceeds file window [%f, %f]",
			errs.ErrInvalidHeader, p.ibdy, p.tfstart, p.tfend, f.tfstart, f.tfend)
	case p.lndx0 < 0 || int(p.lndx0) > len(f.image):
		return fmt.Errorf("%w: body %d: index table at %d", errs.ErrInvalidHeader, p.ibdy, p.lndx0)
	}

	return nil
}
