package astro

import "math"

const (
	// J2000 is the astronomical reference epoch 2000 January 1.5 TT.
	J2000 = 2451545.0
	// J1900 is the epoch 1900 January 0.5.
	J1900 = 2415020.0

	DegToRad = math.Pi / 180.0
	RadToDeg = 180.0 / math.Pi
)

// Degnorm normalises an angle in degrees into [0, 360).
func Degnorm(x float64) float64 {
	y := math.Mod(x, 360.0)
	if math.Abs(y) < 1e-13 {
		y = 0
	}
	if y < 0.0 {
		y += 360.0
	}

	return y
}

// Radnorm normalises an angle in radians into [0, 2*pi).
func Radnorm(x float64) float64 {
	y := math.Mod(x, 2*math.Pi)
	if math.Abs(y) < 1e-13 {
		y = 0
	}
	if y < 0.0 {
		y += 2 * math.Pi
	}

	return y
}

// MeanObliquity returns the mean obliquity of the ecliptic of date in
// degrees, from the IAU 1980 polynomial.
func MeanObliquity(jd float64) float64 {
	t := (jd - J2000) / 36525.0

	// 23 deg 26' 21.448" and its centennial rates, in arc seconds.
	eps := 84381.448 + t*(-46.8150+t*(-0.00059+t*0.001813))

	return eps / 3600.0
}

// SiderealTime returns the Greenwich mean sidereal time at the given
// Julian date (UT), in degrees.
func SiderealTime(jd float64) float64 {
	d := jd - J2000
	t := d / 36525.0

	gmst := 280.46061837 + 360.98564736629*d + t*t*(0.000387933-t/38710000.0)

	return Degnorm(gmst)
}

// MeanLunarNode returns the mean longitude of the Moon's ascending node in
// degrees, from the classical 1900-epoch polynomial.
func MeanLunarNode(jd float64) float64 {
	t := (jd - J1900) / 36525.0

	return Degnorm(259.183275 - 1934.142008333206*t + 0.0020777778*t*t)
}

// Ayanamsha returns the Lahiri ayanamsha at the given Julian date, in
// degrees. The evaluation is the classical one over centuries from 1900:
// the secular precession polynomial corrected by the principal nutation
// terms of the lunar node and twice the Sun's mean longitude.
func Ayanamsha(jd float64) float64 {
	t := (jd - J1900) / 36525.0

	om := 259.183275 - 1934.142008333206*t + 0.0020777778*t*t
	ls := 279.696678 + 36000.76892*t + 0.0003025*t*t

	aya := 17.23*math.Sin(om*DegToRad) + 1.27*math.Sin(2*ls*DegToRad) - (5025.64+1.11*t)*t

	return (80861.27 - aya) / 3600.0
}

// EclipticLongitude projects a rectangular equatorial vector onto the
// ecliptic of obliquity eps (degrees) and returns the ecliptic longitude
// in degrees.
func EclipticLongitude(x, y, z, eps float64) float64 {
	se, ce := math.Sincos(eps * DegToRad)

	return Degnorm(math.Atan2(y*ce+z*se, x) * RadToDeg)
}
