package sefile

import (
	"encoding/binary"

	"github.com/dhanmoti/sweph/internal/setest"
)

// Local aliases over the shared fixture builder, so white-box tests read in
// this package's vocabulary.

type packedClass = setest.PackedClass

type fixtureBody = setest.Body

func codeFor(mag int) uint32 { return setest.CodeFor(mag) }

func coeffValue(mag int, rmax float64) float64 { return setest.CoeffValue(mag, rmax) }

func class0Coeffs(mags ...int) []packedClass { return setest.Class0Coeffs(mags...) }

func buildFixture(order binary.ByteOrder, denum int32, tfstart, tfend float64, bodies ...*fixtureBody) []byte {
	return setest.BuildImage(order, denum, tfstart, tfend, bodies...)
}

func linearBody(id Body, tfstart float64, nseg int, dseg float64) *fixtureBody {
	return setest.LinearBody(int32(id), tfstart, nseg, dseg)
}
