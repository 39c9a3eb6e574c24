// Package testutil holds deterministic test signals and tolerance helpers
// shared by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// SineWithHarmonics sums the fundamental and the next harmonics-1 integer
// multiples with 1/h amplitude, scaled so the peak stays below amplitude.
func SineWithHarmonics(freqHz, sampleRate, amplitude float64, harmonics, length int) []float64 {
	out := make([]float64, length)
	norm := 0.0
	for h := 1; h <= harmonics; h++ {
		norm += 1 / float64(h)
	}
	for h := 1; h <= harmonics; h++ {
		step := 2 * math.Pi * freqHz * float64(h) / sampleRate
		gain := amplitude / (float64(h) * norm)
		for i := range out {
			out[i] += gain * math.Sin(step*float64(i))
		}
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Melody concatenates sine segments, one per frequency, each segLen samples long.
func Melody(freqs []float64, sampleRate, amplitude float64, segLen int) []float64 {
	out := make([]float64, 0, len(freqs)*segLen)
	for _, f := range freqs {
		out = append(out, DeterministicSine(f, sampleRate, amplitude, segLen)...)
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
