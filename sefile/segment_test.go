package sefile

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhanmoti/sweph/errs"
)

// openFixture builds an image and opens it, failing the test on error.
func openFixture(t *testing.T, order binary.ByteOrder, bodies ...*fixtureBody) *File {
	t.Helper()

	tfstart, tfend := bodies[0].Tfstart, bodies[0].Tfend
	for _, b := range bodies {
		if b.Tfstart < tfstart {
			tfstart = b.Tfstart
		}
		if b.Tfend > tfend {
			tfend = b.Tfend
		}
	}

	img := buildFixture(order, 431, tfstart, tfend, bodies...)
	f, err := OpenImage("fixture.se1", img)
	require.NoError(t, err)

	return f
}

// decodedCoeffs forces a segment decode and returns the raw coefficient
// array of the body's cache.
func decodedCoeffs(t *testing.T, f *File, id Body, jd float64) []float64 {
	t.Helper()

	_, err := f.Position(id, jd)
	require.NoError(t, err)

	return f.planets[id].segp
}

// singleSegmentBody wraps one coordinate's class plan into a minimal body.
func singleSegmentBody(ncoe int, x []packedClass) *fixtureBody {
	return &fixtureBody{
		ID:      int32(BodyMars),
		Ncoe:    ncoe,
		Rmax:    2.0,
		Tfstart: 2451000.0,
		Tfend:   2451010.0,
		Dseg:    10.0,
		Segments: [][3][]packedClass{
			{x, nil, nil},
		},
	}
}

func TestUnpackWideClasses(t *testing.T) {
	// One positive and one negative coefficient per wide class 0..3.
	// Magnitudes are chosen to need the full width of each class.
	cases := []struct {
		class int
		mags  []int
	}{
		{0, []int{1000000000, -987654321}},
		{1, []int{8000000, -7654321}},
		{2, []int{30000, -29999}},
		{3, []int{127, -126}},
	}

	for _, tc := range cases {
		codes := make([]uint32, len(tc.mags))
		for i, m := range tc.mags {
			codes[i] = codeFor(m)
		}
		body := singleSegmentBody(4, []packedClass{{Class: tc.class, Codes: codes}})
		f := openFixture(t, binary.LittleEndian, body)

		segp := decodedCoeffs(t, f, BodyMars, 2451005.0)
		for i, m := range tc.mags {
			require.Equal(t, coeffValue(m, 2.0), segp[i], "class %d coeff %d", tc.class, i)
		}
		// untouched coefficients stay zero, including all of y and z
		for i := len(tc.mags); i < len(segp); i++ {
			require.Zero(t, segp[i], "class %d coeff %d", tc.class, i)
		}
	}
}

func TestUnpackSubByteClasses(t *testing.T) {
	t.Run("nibbles", func(t *testing.T) {
		// codes 6 and 5 decode to +3 and -3; 1 decodes to -1.
		body := singleSegmentBody(4, []packedClass{{Class: 4, Codes: []uint32{6, 5, 1}}})
		f := openFixture(t, binary.LittleEndian, body)

		segp := decodedCoeffs(t, f, BodyMars, 2451005.0)
		require.Equal(t, coeffValue(3, 2.0), segp[0])
		require.Equal(t, coeffValue(-3, 2.0), segp[1])
		require.Equal(t, coeffValue(-1, 2.0), segp[2])
		require.Zero(t, segp[3])
	})

	t.Run("quarter bytes", func(t *testing.T) {
		// 2-bit codes: 2 -> +1, 3 -> -2, 1 -> -1, 0 -> 0.
		body := singleSegmentBody(6, []packedClass{{Class: 5, Codes: []uint32{2, 3, 1, 0, 2}}})
		f := openFixture(t, binary.LittleEndian, body)

		segp := decodedCoeffs(t, f, BodyMars, 2451005.0)
		require.Equal(t, coeffValue(1, 2.0), segp[0])
		require.Equal(t, coeffValue(-2, 2.0), segp[1])
		require.Equal(t, coeffValue(-1, 2.0), segp[2])
		require.Zero(t, segp[3])
		require.Equal(t, coeffValue(1, 2.0), segp[4])
	})
}

func TestUnpackMixedClasses(t *testing.T) {
	// A six-count header combining wide and packed classes in one stream.
	body := singleSegmentBody(7, []packedClass{
		{Class: 0, Codes: []uint32{codeFor(123456789)}},
		{Class: 2, Codes: []uint32{codeFor(-20000)}},
		{Class: 3, Codes: []uint32{codeFor(99), codeFor(-98)}},
		{Class: 4, Codes: []uint32{6, 5}},
	})
	f := openFixture(t, binary.LittleEndian, body)

	segp := decodedCoeffs(t, f, BodyMars, 2451005.0)
	require.Equal(t, coeffValue(123456789, 2.0), segp[0])
	require.Equal(t, coeffValue(-20000, 2.0), segp[1])
	require.Equal(t, coeffValue(99, 2.0), segp[2])
	require.Equal(t, coeffValue(-98, 2.0), segp[3])
	require.Equal(t, coeffValue(3, 2.0), segp[4])
	require.Equal(t, coeffValue(-3, 2.0), segp[5])
	require.Zero(t, segp[6])
}

func TestUnpackCountOverflow(t *testing.T) {
	// Five coefficients declared against ncoe of 4.
	body := singleSegmentBody(4, []packedClass{
		{Class: 3, Codes: []uint32{2, 4, 6, 8, 10}},
	})
	tfstart, tfend := body.Tfstart, body.Tfend
	img := buildFixture(binary.LittleEndian, 431, tfstart, tfend, body)

	f, err := OpenImage("fixture.se1", img)
	require.NoError(t, err)

	_, err = f.Position(BodyMars, 2451005.0)
	require.ErrorIs(t, err, errs.ErrCorruptSegment)
}

func TestSegmentTruncatedPayload(t *testing.T) {
	body := singleSegmentBody(4, class0Coeffs(1000000, 2000000, 3000000, 4000000))
	img := buildFixture(binary.LittleEndian, 431, body.Tfstart, body.Tfend, body)

	// Cut into the packed payload but keep the header area intact. The
	// recorded length is patched so header validation still passes.
	cut := img[:len(img)-6]
	var lb [4]byte
	binary.LittleEndian.PutUint32(lb[:], uint32(len(cut)))
	// length field sits right after three banner lines + sentinel
	pos := 0
	for i := 0; i < 3; i++ {
		for cut[pos] != '\n' {
			pos++
		}
		pos++
	}
	copy(cut[pos+4:pos+8], lb[:])

	f, err := OpenImage("fixture.se1", cut)
	require.NoError(t, err)

	_, err = f.Position(BodyMars, 2451005.0)
	require.ErrorIs(t, err, errs.ErrShortRead)
}
