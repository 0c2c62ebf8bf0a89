package rfft

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-freqresp/dsp/core"
)

// Errors returned by plan construction and execution.
var (
	ErrInvalidSize    = errors.New("rfft: size must be a power of two >= 2")
	ErrUnknownBackend = errors.New("rfft: unknown backend")
	ErrLengthMismatch = errors.New("rfft: buffer length mismatch")
)

// Backend selects the FFT library behind a [Plan].
type Backend int

const (
	// BackendAlgoFFT uses github.com/MeKo-Christian/algo-fft.
	BackendAlgoFFT Backend = iota
	// BackendGonum uses gonum.org/v1/gonum/dsp/fourier.
	BackendGonum
	// BackendGoDSP uses github.com/mjibson/go-dsp/fft.
	BackendGoDSP
)

var backendNames = map[Backend]string{
	BackendAlgoFFT: "algofft",
	BackendGonum:   "gonum",
	BackendGoDSP:   "godsp",
}

// Backends lists all available backends.
func Backends() []Backend {
	return []Backend{BackendAlgoFFT, BackendGonum, BackendGoDSP}
}

func (b Backend) String() string {
	if name, ok := backendNames[b]; ok {
		return name
	}
	return fmt.Sprintf("backend(%d)", int(b))
}

// ParseBackend resolves a backend by name (case-insensitive).
func ParseBackend(name string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for b, n := range backendNames {
		if n == name {
			return b, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

// Plan is a prepared real-input forward FFT of a fixed size.
//
// Forward reads Len() samples from in and writes the packed split spectrum
// into re and im, each of length Len()/2. Plans keep scratch state and are
// not safe for concurrent use.
type Plan interface {
	Len() int
	Forward(re, im, in []float64) error
}

// NewPlan prepares an n-point plan on the given backend.
func NewPlan(backend Backend, n int) (Plan, error) {
	if n < 2 || !core.IsPowerOf2(n) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}

	switch backend {
	case BackendAlgoFFT:
		p, err := newAlgoPlan(n)
		if err != nil {
			return nil, err
		}
		return p, nil
	case BackendGonum:
		return newGonumPlan(n), nil
	case BackendGoDSP:
		return newGoDSPPlan(n), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownBackend, backend)
	}
}

func checkLengths(n int, re, im, in []float64) error {
	if len(in) != n || len(re) != n/2 || len(im) != n/2 {
		return fmt.Errorf("%w: in=%d re=%d im=%d, want %d/%d/%d",
			ErrLengthMismatch, len(in), len(re), len(im), n, n/2, n/2)
	}
	return nil
}

// pack writes bins 0..n/2 of a full or half spectrum into the split layout.
func pack(re, im []float64, bins []complex128) {
	half := len(re)
	re[0] = real(bins[0])
	im[0] = real(bins[half])
	for k := 1; k < half; k++ {
		re[k] = real(bins[k])
		im[k] = imag(bins[k])
	}
}
