package sefile

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhanmoti/sweph/compress"
	"github.com/dhanmoti/sweph/errs"
	"github.com/dhanmoti/sweph/format"
)

func TestPositionLinearBody(t *testing.T) {
	body := linearBody(BodyMars, 2451000.0, 3, 10.0)
	f := openFixture(t, binary.LittleEndian, body)

	// The fixture stores x(t) linear in t; reproduce the expectation from
	// the same coefficient arithmetic the builder used.
	for _, jd := range []float64{2451000.0, 2451004.5, 2451010.0, 2451017.25, 2451030.0} {
		pos, err := f.Position(BodyMars, jd)
		require.NoError(t, err)

		seg := int((jd - 2451000.0) / 10.0)
		if seg == 3 {
			seg-- // exact end evaluates in the last segment
		}
		tau := (jd-(2451000.0+float64(seg)*10.0))/10.0*2 - 1
		mid := float64(1000000+200000*seg) + 100000
		wantX := (mid + 100000*tau) * 1e-9
		require.InDelta(t, wantX, pos[0], 1e-15, "jd=%v", jd)
		require.InDelta(t, wantX/2, pos[1], 1e-15, "jd=%v", jd)
		require.InDelta(t, wantX/4, pos[2], 1e-15, "jd=%v", jd)
	}
}

func TestPositionSegmentSwitch(t *testing.T) {
	body := linearBody(BodyMars, 2451000.0, 3, 10.0)
	f := openFixture(t, binary.LittleEndian, body)

	// Walk backwards across segments: each call that leaves the cached
	// window re-decodes.
	p1, err := f.Position(BodyMars, 2451025.0)
	require.NoError(t, err)
	p2, err := f.Position(BodyMars, 2451005.0)
	require.NoError(t, err)
	p3, err := f.Position(BodyMars, 2451025.0)
	require.NoError(t, err)
	require.Equal(t, p1, p3)
	require.NotEqual(t, p1, p2)
}

func TestPositionBoundaryContinuity(t *testing.T) {
	body := linearBody(BodyMars, 2451000.0, 2, 10.0)
	f := openFixture(t, binary.LittleEndian, body)

	const eps = 1e-6
	before, err := f.Position(BodyMars, 2451010.0-eps)
	require.NoError(t, err)
	after, err := f.Position(BodyMars, 2451010.0+eps)
	require.NoError(t, err)

	for k := 0; k < 3; k++ {
		require.InDelta(t, before[k], after[k], 1e-7, "component %d", k)
	}
}

func TestPositionUnknownBody(t *testing.T) {
	body := linearBody(BodyMars, 2451000.0, 1, 10.0)
	f := openFixture(t, binary.LittleEndian, body)

	_, err := f.Position(Body(42), 2451005.0)
	require.ErrorIs(t, err, errs.ErrUnknownBody)

	_, err = f.Flags(Body(42))
	require.ErrorIs(t, err, errs.ErrUnknownBody)
}

func TestPositionOutOfRange(t *testing.T) {
	body := linearBody(BodyMars, 2451000.0, 2, 10.0)
	f := openFixture(t, binary.LittleEndian, body)

	_, err := f.Position(BodyMars, 2450999.0)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	_, err = f.Position(BodyMars, 2451020.5)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	start, _ := f.Validity()
	_, err = f.Position(BodyMars, start-1)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestEndianEquivalence(t *testing.T) {
	le := openFixture(t, binary.LittleEndian, linearBody(BodyMars, 2451000.0, 3, 10.0))
	be := openFixture(t, binary.BigEndian, linearBody(BodyMars, 2451000.0, 3, 10.0))

	require.False(t, le.BigEndian())
	require.True(t, be.BigEndian())

	for _, jd := range []float64{2451000.0, 2451007.77, 2451015.5, 2451029.999} {
		pl, err := le.Position(BodyMars, jd)
		require.NoError(t, err)
		pb, err := be.Position(BodyMars, jd)
		require.NoError(t, err)
		require.Equal(t, pl, pb, "jd=%v", jd)
	}
}

func TestFailedDecodeKeepsCache(t *testing.T) {
	body := linearBody(BodyMars, 2451000.0, 2, 10.0)
	img := buildFixture(binary.LittleEndian, 431, 2451000.0, 2451020.0, body)

	// Point the second index entry past the end of the image. The first
	// segment stays decodable.
	f, err := OpenImage("fixture.se1", img)
	require.NoError(t, err)
	p := f.planets[BodyMars]
	idx := int(p.lndx0) + 3
	bad := uint32(len(img) + 100)
	img[idx] = byte(bad)
	img[idx+1] = byte(bad >> 8)
	img[idx+2] = byte(bad >> 16)

	good, err := f.Position(BodyMars, 2451005.0)
	require.NoError(t, err)

	_, err = f.Position(BodyMars, 2451015.0)
	require.ErrorIs(t, err, errs.ErrShortRead)

	// The failed decode must not have disturbed the cached segment.
	require.Equal(t, 2451000.0, p.tseg0)
	require.Equal(t, 2451010.0, p.tseg1)
	again, err := f.Position(BodyMars, 2451005.0)
	require.NoError(t, err)
	require.Equal(t, good, again)
}

func TestOpenCompressedImage(t *testing.T) {
	body := linearBody(BodyMars, 2451000.0, 2, 10.0)
	img := buildFixture(binary.LittleEndian, 431, 2451000.0, 2451020.0, body)

	plain, err := OpenImage("sepl_18.se1", img)
	require.NoError(t, err)
	want, err := plain.Position(BodyMars, 2451012.5)
	require.NoError(t, err)

	for _, ct := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := compress.GetCodec(ct)
			require.NoError(t, err)
			packed, err := codec.Compress(img)
			require.NoError(t, err)

			f, err := OpenImage("sepl_18.se1"+ct.Extension(), packed)
			require.NoError(t, err)

			got, err := f.Position(BodyMars, 2451012.5)
			require.NoError(t, err)
			require.Equal(t, want, got)
			require.Equal(t, plain.Checksum(), f.Checksum())
		})
	}
}

func TestOpenCompressionOverride(t *testing.T) {
	body := linearBody(BodyMars, 2451000.0, 1, 10.0)
	img := buildFixture(binary.LittleEndian, 431, 2451000.0, 2451010.0, body)

	codec, err := compress.GetCodec(format.CompressionS2)
	require.NoError(t, err)
	packed, err := codec.Compress(img)
	require.NoError(t, err)

	// Misleading name, explicit codec.
	f, err := OpenImage("sepl_18.se1", packed, WithCompression(format.CompressionS2))
	require.NoError(t, err)
	require.True(t, f.HasBody(BodyMars))
}

func TestOpenFromDisk(t *testing.T) {
	body := linearBody(BodyMars, 2451000.0, 1, 10.0)
	img := buildFixture(binary.LittleEndian, 431, 2451000.0, 2451010.0, body)

	dir := t.TempDir()
	path := filepath.Join(dir, "sepl_18.se1")
	require.NoError(t, os.WriteFile(path, img, 0o644))

	f, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, "sepl_18.se1", f.Name())
	require.NotZero(t, f.Checksum())

	skip, err := Open(path, WithoutChecksum())
	require.NoError(t, err)
	require.Zero(t, skip.Checksum())

	_, err = Open(filepath.Join(dir, "missing.se1"))
	require.Error(t, err)
}

func TestFlags(t *testing.T) {
	heli := linearBody(BodyMars, 2451000.0, 1, 10.0)
	heli.Flags = uint8(FlagHeliocentric | FlagRotate)
	f := openFixture(t, binary.LittleEndian, heli)

	fl, err := f.Flags(BodyMars)
	require.NoError(t, err)
	require.True(t, fl.Heliocentric())
	require.True(t, fl.Rotated())
	require.False(t, fl.Ellipse())
}

// TestRealEphemerisFile exercises the decoder against a genuine Swiss
// Ephemeris planet file when one is available in SE_EPHE_PATH.
func TestRealEphemerisFile(t *testing.T) {
	dir := os.Getenv("SE_EPHE_PATH")
	if dir == "" {
		t.Skip("SE_EPHE_PATH not set")
	}
	path := filepath.Join(dir, "sepl_18.se1")
	if _, err := os.Stat(path); err != nil {
		t.Skipf("%s not present", path)
	}

	f, err := Open(path)
	require.NoError(t, err)

	start, end := f.Validity()
	require.Less(t, start, end)

	// J2000: Earth heliocentric distance close to 1 AU (stored as "Sun").
	pos, err := f.Position(BodySun, 2451545.0)
	require.NoError(t, err)
	r := math.Sqrt(pos[0]*pos[0] + pos[1]*pos[1] + pos[2]*pos[2])
	require.Greater(t, r, 0.98)
	require.Less(t, r, 1.02)
}
