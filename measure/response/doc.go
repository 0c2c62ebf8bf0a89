// Package response turns impulse responses into magnitude-vs-frequency
// curves in dB.
//
// An [Analyzer] owns FFT buffers of a fixed power-of-two length. Each call to
// [Analyzer.Transform] conditions the impulse response (trim or zero-pad plus
// a trailing half-Hann taper, see window.AdjustLength), runs a real FFT and
// keeps the packed result until the next Transform. [Analyzer.MagnitudeDB]
// then reads single bins by frequency.
//
// A [Curve] pairs an analyzer with a log-spaced frequency grid and
// precomputed bin indexes, producing a full plot trace per impulse response.
//
// # Usage
//
//	a, err := response.New(12) // 4096-point FFT
//	if err != nil { ... }
//	if err := a.Transform(ir); err != nil { ... }
//	db := a.MagnitudeDB(1000, 48000)
//
// Analyzers and curves are not safe for concurrent use.
package response
