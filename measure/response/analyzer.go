package response

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-freqresp/dsp/core"
	"github.com/cwbudde/algo-freqresp/dsp/rfft"
	"github.com/cwbudde/algo-freqresp/dsp/spectrum"
	"github.com/cwbudde/algo-freqresp/dsp/window"
)

// MaxLog2Length bounds the FFT size at 2^24 samples.
const MaxLog2Length = 24

// Errors returned by analyzer construction.
var (
	ErrInvalidLength = errors.New("response: log2 length must be in [1, 24]")
)

// Option configures an [Analyzer].
type Option func(*options)

type options struct {
	backend rfft.Backend
}

// WithBackend selects the FFT library. The default is rfft.BackendAlgoFFT.
func WithBackend(b rfft.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// Analyzer computes the magnitude spectrum of impulse responses at a fixed
// FFT length N = 2^log2Length.
type Analyzer struct {
	log2n int
	n     int
	plan  rfft.Plan

	// packed split spectrum; only the first n/2 slots are written
	re []float64
	im []float64

	cond []float64
}

// New creates an analyzer for a 2^log2Length point FFT.
func New(log2Length int, opts ...Option) (*Analyzer, error) {
	if log2Length < 1 || log2Length > MaxLog2Length {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, log2Length)
	}

	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	n := core.PowerOf2(log2Length)

	plan, err := rfft.NewPlan(o.backend, n)
	if err != nil {
		return nil, fmt.Errorf("response: %w", err)
	}

	return &Analyzer{
		log2n: log2Length,
		n:     n,
		plan:  plan,
		re:    make([]float64, n),
		im:    make([]float64, n),
		cond:  make([]float64, n),
	}, nil
}

// Len returns the FFT length N.
func (a *Analyzer) Len() int { return a.n }

// Log2Len returns log2(N).
func (a *Analyzer) Log2Len() int { return a.log2n }

// Transform conditions signal to N samples and computes its spectrum,
// replacing the result of any earlier call.
func (a *Analyzer) Transform(signal []float64) error {
	window.AdjustLengthInto(a.cond, signal)

	half := a.n / 2
	if err := a.plan.Forward(a.re[:half], a.im[:half], a.cond); err != nil {
		return fmt.Errorf("response: transform: %w", err)
	}

	return nil
}

// TransformFloat32 is [Analyzer.Transform] for 32-bit samples.
func (a *Analyzer) TransformFloat32(signal []float32) error {
	return a.Transform(core.Float32To64(signal))
}

// Bin maps a frequency to a bin index: round(f / (sr/2) * (N/2 + 1)).
func (a *Analyzer) Bin(frequency, sampleRate float64) int {
	return binIndex(frequency, sampleRate, a.n)
}

// MagnitudeDB returns 20*log10 of the spectrum magnitude at the bin nearest
// frequency.
//
// Bin 0 reads the DC value and bin N the Nyquist value stored in the packed
// imaginary slot. Zero magnitude gives -Inf, which is also what every query
// returns before the first Transform. Frequencies mapping outside [0, N] and
// non-positive sample rates give NaN.
func (a *Analyzer) MagnitudeDB(frequency, sampleRate float64) float64 {
	if !(sampleRate > 0) {
		return math.NaN()
	}

	idx := a.Bin(frequency, sampleRate)
	if idx < 0 || idx > a.n {
		return math.NaN()
	}

	return core.LinearToDB(a.magnitudeAt(idx))
}

// Bins returns the current spectrum as N/2+1 complex bins (DC to Nyquist).
func (a *Analyzer) Bins() []complex128 {
	half := a.n / 2
	bins, err := spectrum.Unpack(a.re[:half], a.im[:half])
	if err != nil {
		return nil
	}
	return bins
}

// Magnitudes writes |X[k]| for the N/2+1 bins from DC to Nyquist into dst,
// growing it when its capacity is too small, and returns the result.
func (a *Analyzer) Magnitudes(dst []float64) []float64 {
	half := a.n / 2
	dst = core.EnsureLen(dst, half+1)
	spectrum.MagnitudeFromParts(dst[1:half], a.re[1:half], a.im[1:half])
	dst[0] = math.Abs(a.re[0])
	dst[half] = math.Abs(a.im[0])
	return dst
}

func (a *Analyzer) magnitudeAt(idx int) float64 {
	switch idx {
	case 0:
		return math.Abs(a.re[0])
	case a.n:
		return math.Abs(a.im[0])
	default:
		return math.Hypot(a.re[idx], a.im[idx])
	}
}

func binIndex(frequency, sampleRate float64, n int) int {
	pos := frequency / (sampleRate / 2) * float64(n/2+1)
	if math.IsNaN(pos) || math.IsInf(pos, 0) || math.Abs(pos) > float64(math.MaxInt32) {
		return -1
	}
	return int(math.Round(pos))
}
