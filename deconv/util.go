package deconv

func mod(a, b int) int {
	if b <= 0 {
		panic("non-positive denominator")
	}
	return ((a % b) + b) % b
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func abs2(x complex128) float64 {
	re, im := real(x), imag(x)
	return re*re + im*im
}
