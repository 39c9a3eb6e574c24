package gain

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// FullScale is the largest sample magnitude that does not clip.
const FullScale = 1.0

// Peak returns the largest absolute sample value.
func Peak(samples []float64) float64 {
	peak := 0.0
	for _, s := range samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	return peak
}

// IsClipping reports whether any sample exceeds full scale.
func IsClipping(samples []float64) bool {
	return Peak(samples) > FullScale
}

// ProportionClipping returns the fraction of samples whose magnitude exceeds
// full scale. An empty buffer yields 0.
func ProportionClipping(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	n := 0
	for _, s := range samples {
		if math.Abs(s) > FullScale {
			n++
		}
	}
	return float64(n) / float64(len(samples))
}

// MaxGain returns the largest gain that can be applied without clipping.
// Silence yields +Inf.
func MaxGain(samples []float64) float64 {
	peak := Peak(samples)
	if peak == 0 {
		return math.Inf(1)
	}
	return FullScale / peak
}

// Attenuate scales samples in place so that none clips and returns the
// applied gain. Buffers already within full scale are left untouched and
// report a gain of 1.
func Attenuate(samples []float64) float64 {
	peak := Peak(samples)
	if peak <= FullScale {
		return 1
	}

	g := FullScale / peak
	floats.Scale(g, samples)
	HardClip(samples)
	return g
}

// HardClip limits every sample to [-FullScale, FullScale] in place.
func HardClip(samples []float64) {
	for i, s := range samples {
		samples[i] = Clamp(s, -FullScale, FullScale)
	}
}

// Clamp limits value to the inclusive range [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	if value < lo {
		return lo
	}

	if value > hi {
		return hi
	}

	return value
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}
