package response

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-freqresp/dsp/core"
	"github.com/cwbudde/algo-freqresp/dsp/rfft"
	"github.com/cwbudde/algo-freqresp/dsp/spectrum"
)

// ErrInvalidSampleRate is returned for non-positive or non-finite sample rates.
var ErrInvalidSampleRate = errors.New("response: sample rate must be finite and > 0")

const (
	defaultLog2Length = 12
	defaultSampleRate = 44100.0
	defaultMinFreq    = 10.0
	defaultMaxFreq    = 20000.0
	defaultPoints     = 500
)

// Config describes a response curve: FFT size, sample rate and plot grid.
type Config struct {
	Log2Length int
	SampleRate float64
	MinFreq    float64
	MaxFreq    float64
	Points     int
	Backend    rfft.Backend
}

// DefaultConfig returns a 4096-point, 44.1 kHz, 500-point 10 Hz..20 kHz setup.
func DefaultConfig() Config {
	return Config{
		Log2Length: defaultLog2Length,
		SampleRate: defaultSampleRate,
		MinFreq:    defaultMinFreq,
		MaxFreq:    defaultMaxFreq,
		Points:     defaultPoints,
		Backend:    rfft.BackendAlgoFFT,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Log2Length < 1 || c.Log2Length > MaxLog2Length {
		return fmt.Errorf("%w: %d", ErrInvalidLength, c.Log2Length)
	}
	if !(c.SampleRate > 0) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, c.SampleRate)
	}
	return spectrum.ValidateGrid(c.MinFreq, c.MaxFreq, c.Points)
}

// Curve evaluates an analyzer on a fixed log-spaced frequency grid.
type Curve struct {
	cfg      Config
	analyzer *Analyzer
	freqs    []float64
	idxs     []int
}

// NewCurve validates cfg and prepares the analyzer, grid and bin indexes.
func NewCurve(cfg Config) (*Curve, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a, err := New(cfg.Log2Length, WithBackend(cfg.Backend))
	if err != nil {
		return nil, err
	}

	freqs, err := spectrum.LogSpaced(cfg.MinFreq, cfg.MaxFreq, cfg.Points)
	if err != nil {
		return nil, err
	}

	idxs := make([]int, len(freqs))
	for i, f := range freqs {
		idxs[i] = a.Bin(f, cfg.SampleRate)
	}

	return &Curve{cfg: cfg, analyzer: a, freqs: freqs, idxs: idxs}, nil
}

// Config returns the configuration the curve was built with.
func (c *Curve) Config() Config { return c.cfg }

// Analyzer exposes the underlying analyzer, holding the latest transform.
func (c *Curve) Analyzer() *Analyzer { return c.analyzer }

// Frequencies returns a copy of the frequency grid.
func (c *Curve) Frequencies() []float64 {
	return append([]float64(nil), c.freqs...)
}

// Response transforms ir and returns the dB magnitude at each grid point.
// Grid points whose bin falls beyond the FFT length read NaN.
func (c *Curve) Response(ir []float64) ([]float64, error) {
	if err := c.analyzer.Transform(ir); err != nil {
		return nil, err
	}

	out := make([]float64, len(c.idxs))
	for i, idx := range c.idxs {
		if idx < 0 || idx > c.analyzer.n {
			out[i] = math.NaN()
			continue
		}
		out[i] = core.LinearToDB(c.analyzer.magnitudeAt(idx))
	}

	return out, nil
}
