package spectrum

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by grid construction.
var (
	ErrInvalidBounds = errors.New("spectrum: grid bounds must be finite and > 0")
	ErrInvalidPoints = errors.New("spectrum: grid point count must be > 0")
)

// LogMap maps t in [0,1] onto [minVal, maxVal] on a log10 scale.
// Both bounds must be > 0; otherwise the result is NaN.
func LogMap(t, minVal, maxVal float64) float64 {
	if t == 0 {
		return minVal
	}

	minLog := math.Log10(minVal)
	maxLog := math.Log10(maxVal)
	return math.Pow(10, minLog+(maxLog-minLog)*t)
}

// LogPoint returns point i of an nPoints log-spaced grid.
//
// The grid is half-open: t = i/nPoints, so point 0 is minVal and the last
// point is minVal*(maxVal/minVal)^((nPoints-1)/nPoints), short of maxVal.
// Inputs are not validated; use [LogSpaced] at API boundaries.
func LogPoint(i, nPoints int, minVal, maxVal float64) float64 {
	return LogMap(float64(i)/float64(nPoints), minVal, maxVal)
}

// LogSpaced returns the nPoints grid of [LogPoint] values.
func LogSpaced(minVal, maxVal float64, nPoints int) ([]float64, error) {
	if err := ValidateGrid(minVal, maxVal, nPoints); err != nil {
		return nil, err
	}

	out := make([]float64, nPoints)
	for i := range out {
		out[i] = LogPoint(i, nPoints, minVal, maxVal)
	}

	return out, nil
}

// ValidateGrid checks grid parameters.
func ValidateGrid(minVal, maxVal float64, nPoints int) error {
	for _, v := range []float64{minVal, maxVal} {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: min=%v max=%v", ErrInvalidBounds, minVal, maxVal)
		}
	}

	if nPoints <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPoints, nPoints)
	}

	return nil
}
