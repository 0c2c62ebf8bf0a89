package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// Unpack converts a packed split real-FFT result (re/im of length N/2, with
// the Nyquist real part stored in im[0]) into N/2+1 complex bins from DC to
// Nyquist.
func Unpack(re, im []float64) ([]complex128, error) {
	if len(re) == 0 || len(re) != len(im) {
		return nil, fmt.Errorf("unpack requires equal non-empty re/im: %d != %d", len(re), len(im))
	}

	half := len(re)
	out := make([]complex128, half+1)
	out[0] = complex(re[0], 0)
	out[half] = complex(im[0], 0)
	for k := 1; k < half; k++ {
		out[k] = complex(re[k], im[k])
	}

	return out, nil
}

// MagnitudeFromParts computes |X[k]| = sqrt(re[k]^2 + im[k]^2) into dst.
//
// This is the zero-allocation path for callers that already have real and
// imaginary parts in separate slices. All three slices must have the same length.
func MagnitudeFromParts(dst, re, im []float64) {
	vecmath.Magnitude(dst, re, im)
}
