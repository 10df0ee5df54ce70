// Package sweph reads SE1 binary planetary ephemeris files and derives the
// positions a birth-chart service needs.
//
// The heavy lifting lives in the sub-packages: sefile decodes the binary
// format (header parsing, segment index lookup, variable-precision
// coefficient unpacking, rotation back-transform, Chebyshev evaluation),
// astro composes raw vectors into geocentric sidereal longitudes, and
// compress handles archived ephemeris images. This package ties them
// together around the conventional ephemeris directory layout.
//
// # Basic Usage
//
// Opening the files covering a date and computing a sidereal longitude:
//
//	eph, err := sweph.EphemerisForJD(sweph.DefaultPath(), jd)
//	if err != nil {
//	    return err
//	}
//	lon, err := eph.SiderealLongitude(sefile.BodyMoon, jd)
//
// Opening a single file directly:
//
//	f, err := sweph.Open("/usr/share/sweph/ephe/sepl_18.se1")
//	pos, err := f.Position(sefile.BodyMars, 2451545.0)
//
// Handles mutate per-body caches, so share them between goroutines only
// behind external locking; Cache deduplicates opens but hands out the same
// handle to every caller.
package sweph

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xyproto/env/v2"

	"github.com/dhanmoti/sweph/astro"
	"github.com/dhanmoti/sweph/format"
	"github.com/dhanmoti/sweph/sefile"
)

// File name prefixes of the two ephemeris file families.
const (
	PlanetFilePrefix = "sepl"
	MoonFilePrefix   = "semo"
)

// centuriesPerFile is the time span of one ephemeris file, in centuries.
const centuriesPerFile = 6

// DefaultPath returns the ephemeris directory: the SE_EPHE_PATH environment
// variable when set, otherwise the conventional system location.
func DefaultPath() string {
	return env.Str("SE_EPHE_PATH", "/usr/share/sweph/ephe")
}

// Open opens a single ephemeris file. It is sefile.Open re-exported for
// callers that never need path resolution.
func Open(path string, opts ...sefile.Option) (*sefile.File, error) {
	return sefile.Open(path, opts...)
}

// FileNameForJD returns the name of the ephemeris file of the given family
// covering jd, e.g. ("sepl", 2447893.0) yields "sepl_18.se1". Files span
// six centuries and are named after their first century; years before the
// epoch use the "m" marker instead of the underscore.
func FileNameForJD(prefix string, jd float64) string {
	year, _, _, _ := astro.CalendarDate(jd, astro.CalendarGregorian)

	cty := year / 100
	if year < 0 && year%100 != 0 {
		cty--
	}
	for mod(cty, centuriesPerFile) != 0 {
		cty--
	}

	if cty < 0 {
		return fmt.Sprintf("%sm%02d.se1", prefix, -cty)
	}

	return fmt.Sprintf("%s_%02d.se1", prefix, cty)
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}

	return m
}

// Locate resolves an ephemeris file name against a directory, probing the
// plain name first and then the compressed variants in codec order.
// An empty dir means DefaultPath.
func Locate(dir, name string) (string, error) {
	if dir == "" {
		dir = DefaultPath()
	}

	candidates := []string{
		filepath.Join(dir, name),
		filepath.Join(dir, name+format.CompressionZstd.Extension()),
		filepath.Join(dir, name+format.CompressionS2.Extension()),
		filepath.Join(dir, name+format.CompressionLZ4.Extension()),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("ephemeris file %s not found in %s: %w", name, dir, fs.ErrNotExist)
}

// EphemerisForJD opens the planet and Moon files covering jd from the given
// directory and composes them into an astro.Ephemeris.
func EphemerisForJD(dir string, jd float64) (*astro.Ephemeris, error) {
	planetPath, err := Locate(dir, FileNameForJD(PlanetFilePrefix, jd))
	if err != nil {
		return nil, err
	}
	planets, err := sefile.Open(planetPath)
	if err != nil {
		return nil, err
	}

	moonPath, err := Locate(dir, FileNameForJD(MoonFilePrefix, jd))
	if err != nil {
		return nil, err
	}
	moon, err := sefile.Open(moonPath)
	if err != nil {
		return nil, err
	}

	return astro.NewEphemeris(planets, moon), nil
}
