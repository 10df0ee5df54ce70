package sefile

// Body identifies a celestial body stored in an SE1 ephemeris file.
//
// Body ids follow the file format's internal numbering. Note that body 0
// holds the Earth's heliocentric position; callers wanting the Sun negate
// that vector (see the astro package).
type Body int32

const (
	BodySun     Body = 0 // Earth's heliocentric position, stored under "Sun"
	BodyMoon    Body = 1
	BodyMercury Body = 2
	BodyVenus   Body = 3
	BodyMars    Body = 4
	BodyJupiter Body = 5
	BodySaturn  Body = 6
	BodyUranus  Body = 7
	BodyNeptune Body = 8
	BodyPluto   Body = 9
)

var bodyNames = map[Body]string{
	BodySun:     "Sun",
	BodyMoon:    "Moon",
	BodyMercury: "Mercury",
	BodyVenus:   "Venus",
	BodyMars:    "Mars",
	BodyJupiter: "Jupiter",
	BodySaturn:  "Saturn",
	BodyUranus:  "Uranus",
	BodyNeptune: "Neptune",
	BodyPluto:   "Pluto",
}

func (b Body) String() string {
	if name, ok := bodyNames[b]; ok {
		return name
	}

	return "Unknown"
}

// BodyFlags is the per-body flag bitset from the constant area.
type BodyFlags int32

const (
	// FlagHeliocentric marks coefficients relative to the Sun rather than
	// the solar system barycentre.
	FlagHeliocentric BodyFlags = 1 << 0
	// FlagRotate marks coefficients referred to the body's instantaneous
	// orbital plane; decoding rotates them back to J2000 equatorial axes.
	FlagRotate BodyFlags = 1 << 1
	// FlagEllipse marks coefficients stored relative to a reference
	// ellipse carried in the constant area.
	FlagEllipse BodyFlags = 1 << 2
	// FlagEMBHeliocentric marks files that store the heliocentric Earth
	// instead of the barycentric Sun.
	FlagEMBHeliocentric BodyFlags = 1 << 3
)

// Heliocentric reports whether the body's coordinates are Sun-relative.
func (f BodyFlags) Heliocentric() bool { return f&FlagHeliocentric != 0 }

// Rotated reports whether coefficients were stored in the orbital plane.
func (f BodyFlags) Rotated() bool { return f&FlagRotate != 0 }

// Ellipse reports whether a reference ellipse is carried for the body.
func (f BodyFlags) Ellipse() bool { return f&FlagEllipse != 0 }

const (
	// endianSentinel is the integer written into every file to make its
	// byte order observable: ASCII "abc".
	endianSentinel = 0x616263

	// maxBodies bounds the body table; files never carry more.
	maxBodies = 50

	// coeffScale is the denominator of the packed-coefficient scale
	// factor rmax / (2 · 1e9).
	coeffScale = 1e9
)
