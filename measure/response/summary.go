package response

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-freqresp/dsp/core"
)

// RolloffFraction is the share of spectral energy below Summary.Rolloff.
const RolloffFraction = 0.85

// Summary describes the shape of the latest spectrum. Frequencies are the
// exact bin centres k*sampleRate/N.
type Summary struct {
	PeakFreq float64
	PeakDB   float64
	// Centroid is the magnitude-weighted mean frequency.
	Centroid float64
	// Flatness is the geometric over the arithmetic mean magnitude, DC
	// excluded: 1 for a flat spectrum, 0 if any bin is silent.
	Flatness float64
	Rolloff  float64
}

// Summarize computes a Summary of the current spectrum. A silent spectrum
// has a -Inf peak and zero descriptors.
func (a *Analyzer) Summarize(sampleRate float64) (Summary, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Summary{}, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	mag := a.Magnitudes(nil)
	freqs := make([]float64, len(mag))
	for k := range freqs {
		freqs[k] = float64(k) * sampleRate / float64(a.n)
	}

	peak := floats.MaxIdx(mag)
	s := Summary{
		PeakFreq: freqs[peak],
		PeakDB:   core.LinearToDB(mag[peak]),
	}
	if mag[peak] == 0 {
		return s, nil
	}

	s.Centroid = stat.Mean(freqs, mag)
	s.Flatness = flatness(mag[1:])
	s.Rolloff = rolloff(freqs, mag)

	return s, nil
}

func flatness(mag []float64) float64 {
	if len(mag) == 0 || floats.Min(mag) <= 0 {
		return 0
	}
	return stat.GeometricMean(mag, nil) / stat.Mean(mag, nil)
}

func rolloff(freqs, mag []float64) float64 {
	energy := make([]float64, len(mag))
	floats.MulTo(energy, mag, mag)
	floats.CumSum(energy, energy)

	threshold := RolloffFraction * energy[len(energy)-1]
	for k, e := range energy {
		if e >= threshold {
			return freqs[k]
		}
	}
	return freqs[len(freqs)-1]
}
