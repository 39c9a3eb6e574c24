// Package spectrum provides helpers over FFT bin arrays: magnitude, power,
// phase and log-magnitude extraction, bin-frequency vectors and peak search
// restricted to a frequency range.
//
// The transform itself lives in package fft.
package spectrum
