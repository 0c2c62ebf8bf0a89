// Package rfft wraps real-input FFT libraries behind a small plan interface.
//
// Every backend writes the same packed split layout for an N-point transform
// into two slices of N/2 values:
//
//	re[0] = X[0]        (DC, real)
//	im[0] = Re X[N/2]   (Nyquist, real)
//	re[k], im[k] = X[k] for 1 <= k < N/2
//
// Values are the unnormalized DFT, so a constant signal of value A yields
// re[0] = A*N.
package rfft
