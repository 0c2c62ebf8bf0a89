// Package decay measures the time-domain energy decay of impulse responses:
// the Schroeder energy decay curve, reverberation times extrapolated from it,
// clarity and the onset of the direct sound.
package decay
