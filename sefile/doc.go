// Package sefile reads and evaluates SE1 binary planetary ephemeris files.
//
// An SE1 file stores, per body, a sequence of Chebyshev segments: fixed-length
// time intervals over which the body's rectangular coordinates are represented
// by three Chebyshev polynomials. Coefficients are stored bit-packed at
// variable precision and, for most bodies, in the body's instantaneous orbital
// plane, so decoding a segment involves locating it through a per-body index
// table, unpacking the coefficient stream, and rotating the coefficients back
// to J2000 equatorial axes before evaluation.
//
// # File layout
//
// The constant area at the front of the file:
//
//	3 ASCII banner lines, each terminated by \r\n
//	4 bytes   endianness sentinel 0x616263 ("abc")
//	4 bytes   file length
//	4 bytes   ephemeris (DE) number
//	2 doubles file validity range [tfstart, tfend] in Julian days
//	2 bytes   body count (values above 256 switch body ids to 4 bytes)
//	n ids     body id list
//	4 bytes   CRC (recorded, not validated)
//	5 doubles general constants (speed of light, AU, ...)
//
// followed, per body, by the index table offset, flag byte, coefficient
// count, normalisation factor, ten orbital-element doubles and, when the
// ellipse flag is set, 2·ncoe reference-ellipse coefficients. Segment index
// tables and packed segment payloads live at the offsets the constant area
// names.
//
// Both byte orders are handled transparently: the sentinel decodes correctly
// in exactly one order, and every subsequent fixed-width read goes through
// the negotiated endian engine.
//
// # Basic usage
//
//	f, err := sefile.Open("/usr/share/sweph/ephe/sepl_18.se1")
//	if err != nil {
//	    return err
//	}
//	pos, err := f.Position(sefile.BodyMars, 2451545.0)
//
// Position returns barycentric, heliocentric or geocentric rectangular
// J2000 coordinates depending on the body's flags; see Flags and the astro
// package for frame composition.
//
// A File is safe for concurrent readers only if the caller serialises
// access: the per-body segment cache mutates on segment misses. Use one
// handle per goroutine or a mutex-guarded pool.
package sefile
