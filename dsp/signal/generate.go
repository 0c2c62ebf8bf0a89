package signal

import (
	"errors"
	"fmt"
	"math"
)

// ErrLengthMismatch is returned when dst and src lengths differ.
var ErrLengthMismatch = errors.New("signal: dst and src must have the same length")

// Impulse returns a unit impulse of the given length at pos.
// An out-of-range pos yields an all-zero signal.
func Impulse(length, pos int) ([]float64, error) {
	if length <= 0 {
		return nil, fmt.Errorf("impulse length must be > 0: %d", length)
	}
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out, nil
}

// DC returns a constant signal.
func DC(value float64, length int) ([]float64, error) {
	if length <= 0 {
		return nil, fmt.Errorf("dc length must be > 0: %d", length)
	}
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out, nil
}

// DecayEnvelope multiplies src by an exponential envelope that starts at 1
// and falls by dbPerSecond, writing the result to dst. dst may alias src.
func DecayEnvelope(dst, src []float64, sampleRate, dbPerSecond float64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(dst), len(src))
	}
	if sampleRate <= 0 {
		return fmt.Errorf("decay sample rate must be > 0: %f", sampleRate)
	}

	k := math.Pow(10, -dbPerSecond/sampleRate/20)
	env := 1.0
	for i, v := range src {
		dst[i] = v * env
		env *= k
	}
	return nil
}

// ExponentialDecayIR returns a decaying impulse response: an impulse at
// sample 0 followed by alternating-sign samples under a dbPerSecond envelope.
// It is a broadband test response whose level falls steadily over time.
func ExponentialDecayIR(length int, sampleRate, dbPerSecond float64) ([]float64, error) {
	if length <= 0 {
		return nil, fmt.Errorf("decay length must be > 0: %d", length)
	}

	out := make([]float64, length)
	out[0] = 1
	for i := 1; i < length; i++ {
		if i%2 == 0 {
			out[i] = 0.5
		} else {
			out[i] = -0.5
		}
	}

	if err := DecayEnvelope(out, out, sampleRate, dbPerSecond); err != nil {
		return nil, err
	}
	return out, nil
}
