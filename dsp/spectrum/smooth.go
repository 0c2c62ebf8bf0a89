package spectrum

import (
	"fmt"
	"math"
	"sort"
)

// SmoothFractionalOctave averages values over a 1/fraction-octave band
// centred on each frequency.
//
// freqHz must be strictly increasing and positive. The average is arithmetic
// in whatever domain values are given in; for dB curves the -Inf entries of
// silent bins propagate to every band that contains them.
func SmoothFractionalOctave(freqHz, values []float64, fraction int) ([]float64, error) {
	if len(freqHz) == 0 || len(freqHz) != len(values) {
		return nil, fmt.Errorf("fractional-octave smoothing requires equal non-empty inputs: %d, %d", len(freqHz), len(values))
	}
	if fraction <= 0 {
		return nil, fmt.Errorf("fractional-octave fraction must be > 0: %d", fraction)
	}
	for i, f := range freqHz {
		if f <= 0 {
			return nil, fmt.Errorf("fractional-octave frequencies must be > 0 at index %d", i)
		}
		if i > 0 && f <= freqHz[i-1] {
			return nil, fmt.Errorf("fractional-octave frequencies must be strictly increasing at index %d", i)
		}
	}

	halfBand := math.Pow(2, 1/(2*float64(fraction)))
	out := make([]float64, len(values))

	for i, f := range freqHz {
		lo := sort.SearchFloat64s(freqHz, f/halfBand)
		hi := sort.Search(len(freqHz), func(k int) bool { return freqHz[k] > f*halfBand })

		sum := 0.0
		for _, v := range values[lo:hi] {
			sum += v
		}
		out[i] = sum / float64(hi-lo)
	}

	return out, nil
}
