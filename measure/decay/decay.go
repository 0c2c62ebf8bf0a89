package decay

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-freqresp/dsp/core"
)

var (
	ErrEmpty             = errors.New("decay: impulse response is empty")
	ErrSilent            = errors.New("decay: impulse response has no energy")
	ErrInvalidSampleRate = errors.New("decay: sample rate must be finite and > 0")
	ErrNoDecay           = errors.New("decay: curve does not fall far enough")
)

// FloorDB is the level assigned to the energy decay curve once no energy
// remains.
const FloorDB = -300.0

// DefaultOnsetDB is the onset threshold relative to the peak.
const DefaultOnsetDB = -20.0

// Metrics summarizes the decay of one impulse response. Times are seconds;
// a zero reverberation time means the curve never reached the required
// level.
type Metrics struct {
	Peak  int
	Onset int

	EDT  float64
	T20  float64
	T30  float64
	RT60 float64

	C50 float64
	C80 float64
}

// Analyze computes all metrics. The reverberation times and clarity are
// evaluated from the peak onward.
func Analyze(ir []float64, sampleRate float64) (Metrics, error) {
	if err := validate(ir, sampleRate); err != nil {
		return Metrics{}, err
	}

	peak := peakIndex(ir)
	tail := ir[peak:]

	edc, err := EnergyDecayCurve(tail)
	if err != nil {
		return Metrics{}, err
	}

	m := Metrics{
		Peak:  peak,
		Onset: onset(ir, DefaultOnsetDB),
		EDT:   slopeTime(edc, sampleRate, 0, -10),
		T20:   slopeTime(edc, sampleRate, -5, -25),
		T30:   slopeTime(edc, sampleRate, -5, -35),
		C50:   clarity(tail, sampleRate, 0.050),
		C80:   clarity(tail, sampleRate, 0.080),
	}
	m.RT60 = m.T30
	if m.RT60 == 0 {
		m.RT60 = m.T20
	}

	return m, nil
}

// RT60 returns the reverberation time from the T30 range, falling back to
// T20 when the curve does not reach -35 dB.
func RT60(ir []float64, sampleRate float64) (float64, error) {
	m, err := Analyze(ir, sampleRate)
	if err != nil {
		return 0, err
	}
	if m.RT60 == 0 {
		return 0, ErrNoDecay
	}
	return m.RT60, nil
}

// EnergyDecayCurve returns the Schroeder backward integral of ir in dB
// relative to the total energy: 0 dB at index 0, falling to FloorDB after
// the last non-zero sample.
func EnergyDecayCurve(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmpty
	}

	out := make([]float64, len(ir))
	sum := 0.0
	for i := len(ir) - 1; i >= 0; i-- {
		sum += ir[i] * ir[i]
		out[i] = sum
	}

	total := out[0]
	if total <= 0 {
		return nil, ErrSilent
	}

	for i, e := range out {
		if e <= 0 {
			out[i] = FloorDB
			continue
		}
		out[i] = math.Max(FloorDB, 10*math.Log10(e/total))
	}

	return out, nil
}

// Onset returns the index of the first sample whose magnitude reaches
// thresholdDB relative to the peak magnitude.
func Onset(ir []float64, thresholdDB float64) (int, error) {
	if len(ir) == 0 {
		return 0, ErrEmpty
	}
	if peakIndex(ir) == 0 && ir[0] == 0 {
		return 0, ErrSilent
	}
	return onset(ir, thresholdDB), nil
}

// Clarity returns the early-to-late energy ratio in dB with the boundary at
// the given time in seconds.
func Clarity(ir []float64, sampleRate, boundary float64) (float64, error) {
	if err := validate(ir, sampleRate); err != nil {
		return 0, err
	}
	if !(boundary > 0) {
		return 0, fmt.Errorf("decay: clarity boundary must be > 0: %v", boundary)
	}
	return clarity(ir, sampleRate, boundary), nil
}

func validate(ir []float64, sampleRate float64) error {
	if len(ir) == 0 {
		return ErrEmpty
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	return nil
}

// slopeTime fits a line to edc between the first samples at or below
// startDB and endDB and extrapolates it to -60 dB.
func slopeTime(edc []float64, sampleRate, startDB, endDB float64) float64 {
	start, end := -1, -1
	for i, v := range edc {
		if start < 0 && v <= startDB {
			start = i
		}
		if start >= 0 && v <= endDB {
			end = i
			break
		}
	}
	if start < 0 || end-start < 2 {
		return 0
	}

	xs := make([]float64, end-start+1)
	for i := range xs {
		xs[i] = float64(start+i) / sampleRate
	}
	_, slope := stat.LinearRegression(xs, edc[start:end+1], nil, false)
	if !(slope < 0) {
		return 0
	}

	return -60 / slope
}

func clarity(ir []float64, sampleRate, boundary float64) float64 {
	split := int(math.Round(boundary * sampleRate))
	split = min(max(split, 0), len(ir))

	early, late := 0.0, 0.0
	for _, v := range ir[:split] {
		early += v * v
	}
	for _, v := range ir[split:] {
		late += v * v
	}

	switch {
	case late == 0:
		return math.Inf(1)
	case early == 0:
		return math.Inf(-1)
	default:
		return 10 * math.Log10(early/late)
	}
}

func onset(ir []float64, thresholdDB float64) int {
	peak := math.Abs(ir[peakIndex(ir)])
	threshold := peak * core.DBToLinear(thresholdDB)
	for i, v := range ir {
		if math.Abs(v) >= threshold {
			return i
		}
	}
	return 0
}

func peakIndex(ir []float64) int {
	idx, peak := 0, 0.0
	for i, v := range ir {
		if a := math.Abs(v); a > peak {
			idx, peak = i, a
		}
	}
	return idx
}
