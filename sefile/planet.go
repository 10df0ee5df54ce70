package sefile

// planet holds the per-body metadata read once from the constant area plus
// the mutable cache of the most recently unpacked segment. The metadata is
// immutable after header parse; only tseg0, tseg1, segp and neval change,
// and only on a fully successful segment decode.
type planet struct {
	ibdy  Body
	iflg  BodyFlags
	ncoe  int     // coefficients per coordinate, polynomial order + 1
	lndx0 int32   // file position of the segment index table
	nndx  int32   // number of index entries, derived from the time window
	rmax  float64 // normalisation factor of packed coefficients

	tfstart float64 // body usable from this date
	tfend   float64 // through this date
	dseg    float64 // days covered by one segment

	// orbital elements of the rotation back-transform
	telem float64 // epoch of elements
	prot  float64
	qrot  float64
	dprot float64
	dqrot float64
	peri  float64
	dperi float64

	// reference ellipse coefficients, 2·ncoe doubles, present iff the
	// ellipse flag is set
	refep []float64

	// unpacked segment cache, updated only when a segment is read
	tseg0 float64   // start jd of cached segment
	tseg1 float64   // end jd of cached segment
	segp  []float64 // unpacked cheby coefficients, 3·ncoe, [x|y|z]
	neval int       // coefficients to evaluate; the format always sets ncoe
}

// cached reports whether the cached segment covers jd.
func (p *planet) cached(jd float64) bool {
	return p.segp != nil && jd >= p.tseg0 && jd <= p.tseg1
}

// BodyInfo describes a body's metadata as read from the constant area.
type BodyInfo struct {
	Body        Body
	Flags       BodyFlags
	Ncoe        int     // Chebyshev coefficients per coordinate
	Start       float64 // first usable Julian date
	End         float64 // last usable Julian date
	SegmentDays float64 // days covered by one Chebyshev segment
	Rmax        float64 // coefficient normalisation factor
}
