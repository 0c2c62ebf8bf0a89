// Package window generates window functions and the trailing half-Hann taper
// used to condition impulse responses before spectral analysis.
//
// [AdjustLength] trims or zero-pads an impulse response to an FFT length and
// multiplies it by a ramp that is 1.0 on the last kept sample and decays
// toward zero at the start. This suppresses pre-ringing ahead of the main
// response while leaving its tail energy intact.
package window
