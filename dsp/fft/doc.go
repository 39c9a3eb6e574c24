// Package fft implements the forward and inverse discrete Fourier transform
// used by the pitch detectors and the phase vocoder.
//
// The backend is chosen per call through a [Strategy] value instead of
// package-level state:
//   - StrategyRecursive: radix-2 decimation-in-time, implemented here
//   - StrategyAlgoFFT: plan-based transforms from algo-fft
//   - StrategyGoDSP: mjibson/go-dsp
//   - StrategyGonum: gonum dsp/fourier
//
// All strategies require power-of-two input lengths. The engine never pads;
// callers use [Truncate] or [Pad] first.
package fft
