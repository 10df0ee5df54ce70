package sefile

// evalCheby evaluates a Chebyshev series at x in [-1, +1] with the Clenshaw
// recurrence. The result follows the producer's half-coefficient convention:
// the stored constant coefficient enters with half weight,
// f(x) = c0/2 + sum c_j T_j(x), hence the (br - bpp2)/2 tail.
func evalCheby(x float64, coef []float64) float64 {
	x2 := x * 2
	var br, bpp, bpp2 float64
	for j := len(coef) - 1; j >= 0; j-- {
		bpp2 = bpp
		bpp = br
		br = x2*bpp - bpp2 + coef[j]
	}

	return (br - bpp2) / 2
}
