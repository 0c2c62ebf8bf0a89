package rfft

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	dspfft "github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

type algoPlan struct {
	n    int
	plan *algofft.Plan[complex128]
	in   []complex128
	out  []complex128
}

func newAlgoPlan(n int) (*algoPlan, error) {
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("rfft: failed to create FFT plan: %w", err)
	}
	return &algoPlan{
		n:    n,
		plan: plan,
		in:   make([]complex128, n),
		out:  make([]complex128, n),
	}, nil
}

func (p *algoPlan) Len() int { return p.n }

func (p *algoPlan) Forward(re, im, in []float64) error {
	if err := checkLengths(p.n, re, im, in); err != nil {
		return err
	}
	for i, v := range in {
		p.in[i] = complex(v, 0)
	}
	if err := p.plan.Forward(p.out, p.in); err != nil {
		return fmt.Errorf("rfft: forward transform: %w", err)
	}
	pack(re, im, p.out)
	return nil
}

type gonumPlan struct {
	n    int
	fft  *fourier.FFT
	bins []complex128
}

func newGonumPlan(n int) *gonumPlan {
	return &gonumPlan{
		n:    n,
		fft:  fourier.NewFFT(n),
		bins: make([]complex128, n/2+1),
	}
}

func (p *gonumPlan) Len() int { return p.n }

func (p *gonumPlan) Forward(re, im, in []float64) error {
	if err := checkLengths(p.n, re, im, in); err != nil {
		return err
	}
	p.bins = p.fft.Coefficients(p.bins, in)
	pack(re, im, p.bins)
	return nil
}

// goDSPPlan has no reusable setup; go-dsp caches twiddle factors internally.
type goDSPPlan struct {
	n int
}

func newGoDSPPlan(n int) *goDSPPlan {
	return &goDSPPlan{n: n}
}

func (p *goDSPPlan) Len() int { return p.n }

func (p *goDSPPlan) Forward(re, im, in []float64) error {
	if err := checkLengths(p.n, re, im, in); err != nil {
		return err
	}
	pack(re, im, dspfft.FFTReal(in))
	return nil
}
