package astro

import (
	"fmt"
	"math"

	"github.com/dhanmoti/sweph/errs"
	"github.com/dhanmoti/sweph/sefile"
)

// PositionSource is the part of sefile.File the astronomical layer needs.
// Using the interface keeps the layer testable without ephemeris files.
type PositionSource interface {
	Position(body sefile.Body, jd float64) ([3]float64, error)
	Flags(body sefile.Body) (sefile.BodyFlags, error)
	HasBody(body sefile.Body) bool
}

// Ephemeris composes one or more ephemeris files into geocentric positions
// and ecliptic longitudes. Planet and Moon data usually live in separate
// files (sepl_NN.se1 and semo_NN.se1); sources are consulted in order.
//
// Ephemeris adds no locking of its own; the underlying handles mutate
// per-body caches, so a single Ephemeris must not be shared between
// goroutines without external synchronisation.
type Ephemeris struct {
	sources []PositionSource
}

// NewEphemeris creates an Ephemeris over the given sources. The first
// source carrying a body serves it.
func NewEphemeris(sources ...PositionSource) *Ephemeris {
	return &Ephemeris{sources: sources}
}

func (e *Ephemeris) source(body sefile.Body) (PositionSource, error) {
	for _, s := range e.sources {
		if s.HasBody(body) {
			return s, nil
		}
	}

	return nil, fmt.Errorf("%w: body %d in no attached file", errs.ErrUnknownBody, body)
}

// EarthHeliocentric returns the Earth's heliocentric J2000 vector, which
// the file format stores under body 0.
func (e *Ephemeris) EarthHeliocentric(jd float64) ([3]float64, error) {
	s, err := e.source(sefile.BodySun)
	if err != nil {
		return [3]float64{}, err
	}

	return s.Position(sefile.BodySun, jd)
}

// Geocentric returns a body's geocentric rectangular J2000 vector in AU.
//
// Frame composition follows the format's conventions: the Sun is the
// negated heliocentric Earth, the Moon is stored geocentric, and every
// other body is heliocentric and has the Earth vector subtracted.
func (e *Ephemeris) Geocentric(body sefile.Body, jd float64) ([3]float64, error) {
	switch body {
	case sefile.BodySun:
		earth, err := e.EarthHeliocentric(jd)
		if err != nil {
			return [3]float64{}, err
		}

		return [3]float64{-earth[0], -earth[1], -earth[2]}, nil

	case sefile.BodyMoon:
		s, err := e.source(sefile.BodyMoon)
		if err != nil {
			return [3]float64{}, err
		}

		return s.Position(sefile.BodyMoon, jd)

	default:
		s, err := e.source(body)
		if err != nil {
			return [3]float64{}, err
		}
		pos, err := s.Position(body, jd)
		if err != nil {
			return [3]float64{}, err
		}
		earth, err := e.EarthHeliocentric(jd)
		if err != nil {
			return [3]float64{}, err
		}

		return [3]float64{pos[0] - earth[0], pos[1] - earth[1], pos[2] - earth[2]}, nil
	}
}

// GeocentricDistance returns the body's geocentric distance in AU.
func (e *Ephemeris) GeocentricDistance(body sefile.Body, jd float64) (float64, error) {
	pos, err := e.Geocentric(body, jd)
	if err != nil {
		return 0, err
	}

	return math.Sqrt(pos[0]*pos[0] + pos[1]*pos[1] + pos[2]*pos[2]), nil
}

// TropicalLongitude returns the body's geocentric ecliptic longitude of
// date, in degrees.
func (e *Ephemeris) TropicalLongitude(body sefile.Body, jd float64) (float64, error) {
	pos, err := e.Geocentric(body, jd)
	if err != nil {
		return 0, err
	}

	return EclipticLongitude(pos[0], pos[1], pos[2], MeanObliquity(jd)), nil
}

// SiderealLongitude returns the body's sidereal ecliptic longitude under
// the Lahiri ayanamsha, in degrees.
func (e *Ephemeris) SiderealLongitude(body sefile.Body, jd float64) (float64, error) {
	trop, err := e.TropicalLongitude(body, jd)
	if err != nil {
		return 0, err
	}

	return Degnorm(trop - Ayanamsha(jd)), nil
}

// Tithi returns the lunar day index 0..29: the Moon-Sun longitude
// difference in 12-degree steps.
func (e *Ephemeris) Tithi(jd float64) (int, error) {
	moon, err := e.SiderealLongitude(sefile.BodyMoon, jd)
	if err != nil {
		return 0, err
	}
	sun, err := e.SiderealLongitude(sefile.BodySun, jd)
	if err != nil {
		return 0, err
	}

	return int(Degnorm(moon-sun) / 12.0), nil
}
