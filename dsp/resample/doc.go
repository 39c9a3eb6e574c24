// Package resample converts sample rates by interpolating the input at
// fractional positions.
//
// Output sample i is read from input position i·oldRate/newRate. Conversion
// stops as soon as that position reaches the last input sample, so the output
// never extrapolates past the end of the input. With newRate < oldRate the
// same routine decimates arrays of any kind, which is how the harmonic product
// spectrum shrinks magnitude spectra.
//
// Usage:
//
//	out, err := resample.Resample(in, 44100, 22050)
//	out, err := resample.Resample(in, 44100, 48000, resample.WithMode(interp.ModeHermite))
package resample
