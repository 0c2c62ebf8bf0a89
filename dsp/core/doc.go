// Package core holds small numeric and buffer helpers shared by the dsp and
// measure packages: dB conversion, power-of-two arithmetic for FFT sizing and
// sample-format conversion.
package core
