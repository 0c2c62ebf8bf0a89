// Package spectrum provides spectrum-domain helpers around the packed real-FFT
// layout: unpacking into complex bins, magnitude extraction, the logarithmic
// frequency grid used for response plots, and fractional-octave smoothing.
//
// The package does not run FFTs itself; see package rfft for that.
package spectrum
