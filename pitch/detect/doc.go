// Package detect estimates the fundamental frequency of a block of mono
// samples.
//
// Six detectors are available, each selected by an [Algorithm] identifier:
//
//   - zerocross: average spacing of sign changes
//   - autocorrelation: lag of maximum self-similarity
//   - amdf: lag of minimum average magnitude difference
//   - naiveft: largest spectral peak, optionally phase-refined
//   - cepstrum: strongest quefrency of the log spectrum
//   - hps: harmonic product spectrum, with an optional octave check
//
// Two combiners, median and trimmedmean, run all six detectors on the same
// block and merge their estimates. Combining heterogeneous detectors is the
// way to make one estimate robust against any single detector's failure
// mode; no detector retries itself.
//
// Degenerate blocks (silence, no zero crossings, empty spectra) yield
// [Epsilon] instead of 0, NaN or Inf because downstream pitch arithmetic is
// logarithmic. Invalid input yields an error.
package detect
