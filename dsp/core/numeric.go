package core

import "math"

const defaultEpsilon = 1e-12

// MaxLog2 is the largest power-of-two exponent accepted by [PowerOf2].
const MaxLog2 = 30

// NearlyEqual reports whether a and b are equal within eps.
// The comparison is absolute for values near zero and relative otherwise.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// IsPowerOf2 reports whether n is a positive power of two.
func IsPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// PowerOf2 returns 2^log2n, or 0 when log2n is outside [0, MaxLog2].
func PowerOf2(log2n int) int {
	if log2n < 0 || log2n > MaxLog2 {
		return 0
	}

	return 1 << log2n
}

// Log2 returns the exponent of a power-of-two n, or -1 otherwise.
func Log2(n int) int {
	if !IsPowerOf2(n) {
		return -1
	}

	k := 0
	for n > 1 {
		n >>= 1
		k++
	}

	return k
}

// NextPowerOf2 returns the smallest power of two >= n (1 for n <= 1).
func NextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
