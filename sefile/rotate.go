package sefile

import (
	"math"

	"github.com/dhanmoti/sweph/internal/pool"
)

// J2000 mean obliquity, fixed by the file producer.
const (
	seps2000 = 0.39777715572793088
	ceps2000 = 0.91748206215761929
)

const twoPi = 2 * math.Pi

// rotateBack converts a segment's coefficients from the body's instantaneous
// orbital plane to J2000 equatorial axes, in place. Rotation is linear, so
// rotating the Chebyshev coefficient triples is equivalent to rotating every
// evaluated vector; the cache therefore holds a ready-to-evaluate J2000
// representation and the evaluator stays body-agnostic.
//
// The rotation angles are evaluated at the segment midpoint. The Moon's
// node precesses fast enough that its plane parameters are stored as an
// amplitude and a retrograde node angle instead of direct components.
func rotateBack(p *planet, tseg0 float64, segp []float64) {
	nco := p.ncoe
	t := tseg0 + p.dseg/2
	tdiff := (t - p.telem) / 365250.0

	var qav, pav float64
	if p.ibdy == BodyMoon {
		dn := math.Mod(p.prot+tdiff*p.dprot, twoPi)
		qav = (p.qrot + tdiff*p.dqrot) * math.Cos(dn)
		pav = (p.qrot + tdiff*p.dqrot) * math.Sin(dn)
	} else {
		qav = p.qrot + tdiff*p.dqrot
		pav = p.prot + tdiff*p.dprot
	}

	chcfx := segp[0:nco]
	chcfy := segp[nco : 2*nco]
	chcfz := segp[2*nco : 3*nco]

	scratch, cleanup := pool.GetFloat64Slice(3 * nco)
	defer cleanup()
	wx := scratch[0:nco]
	wy := scratch[nco : 2*nco]
	wz := scratch[2*nco : 3*nco]

	if p.iflg.Ellipse() && len(p.refep) >= 2*nco {
		// Add the reference orbit back in before rotating.
		omtild := math.Mod(p.peri+tdiff*p.dperi, twoPi)
		com, som := math.Cos(omtild), math.Sin(omtild)
		refepx := p.refep[0:nco]
		refepy := p.refep[nco : 2*nco]
		for i := 0; i < nco; i++ {
			wx[i] = chcfx[i] + com*refepx[i] - som*refepy[i]
			wy[i] = chcfy[i] + com*refepy[i] + som*refepx[i]
			wz[i] = chcfz[i]
		}
	} else {
		copy(wx, chcfx)
		copy(wy, chcfy)
		copy(wz, chcfz)
	}

	// Orthonormal basis of the orbital plane from the packed inclination
	// and node parameters.
	h := 1.0 / (1.0 + qav*qav + pav*pav)
	uiz := [3]float64{2 * pav * h, -2 * qav * h, (1 - qav*qav - pav*pav) * h}
	uiy := [3]float64{-uiz[1], uiz[0], 0}
	normalize(&uiz)
	if uiy[0] == 0 && uiy[1] == 0 {
		// Plane coincides with the reference plane.
		uiy[1] = 1
	} else {
		normalize(&uiy)
	}
	uix := cross(uiy, uiz)

	for i := 0; i < nco; i++ {
		xr := uix[0]*wx[i] + uix[1]*wy[i] + uix[2]*wz[i]
		yr := uiy[0]*wx[i] + uiy[1]*wy[i] + uiy[2]*wz[i]
		zr := uiz[0]*wx[i] + uiz[1]*wy[i] + uiz[2]*wz[i]

		segp[i] = xr
		segp[i+nco] = ceps2000*yr + seps2000*zr
		segp[i+2*nco] = -seps2000*yr + ceps2000*zr
	}
}

func normalize(v *[3]float64) {
	n := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if n == 0 {
		return
	}
	v[0] /= n
	v[1] /= n
	v[2] /= n
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
