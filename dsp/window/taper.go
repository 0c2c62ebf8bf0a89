package window

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-freqresp/dsp/core"
)

// HalfHann returns the trailing half of a Hann window as an n-point taper.
//
// Coefficient i is element i+1 of a periodic Hann window of length 2n, i.e.
// 0.5*(1-cos(pi*(i+1)/n)). The last coefficient is exactly 1 and the ramp
// decays toward 0 at the start. A one-point taper is {1}.
//
// The taper rises over the signal: the start is faded in and the last
// sample keeps full gain, so the tail of the signal is not faded out.
func HalfHann(n int) []float64 {
	full, err := Hann(2*n, WithPeriodic())
	if err != nil {
		return nil
	}

	out := full[1 : n+1 : n+1]
	// cos(pi) rounding can leave the peak a few ulps short of 1.
	out[n-1] = 1

	return out
}

// AdjustLength trims or zero-pads samples to exactly targetLength values and
// tapers the kept part with [HalfHann].
//
// The taper is applied to the min(len(samples), targetLength) leading
// samples; the tail of the result is zero. The taper keeps the last kept
// sample unchanged and attenuates the start of the sequence. samples is not
// modified. A non-positive targetLength yields an empty slice.
func AdjustLength(samples []float64, targetLength int) []float64 {
	if targetLength <= 0 {
		return []float64{}
	}

	out := make([]float64, targetLength)
	AdjustLengthInto(out, samples)

	return out
}

// AdjustLengthInto is the allocation-light form of [AdjustLength]: dst is
// overwritten and its length is the target length. It returns the number of
// input samples that were kept and tapered.
func AdjustLengthInto(dst, samples []float64) int {
	n := min(len(samples), len(dst))

	copy(dst[:n], samples[:n])
	core.Zero(dst[n:])

	if n == 0 {
		return 0
	}

	vecmath.MulBlockInPlace(dst[:n], HalfHann(n))

	return n
}
