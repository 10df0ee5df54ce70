// Package astro converts raw ephemeris vectors into the quantities a chart
// service consumes: geocentric positions, tropical and sidereal ecliptic
// longitudes, and the lunar-day (tithi) index.
//
// The package is a thin arithmetic layer over sefile. It owns the frame
// composition rules of the SE1 format — body 0 stores the heliocentric
// Earth, the Moon is geocentric already, planets are heliocentric — plus
// the standard closed-form polynomials for Julian day conversion, mean
// obliquity, sidereal time, the mean lunar node and the Lahiri ayanamsha.
package astro
