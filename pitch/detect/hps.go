package detect

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pitch/dsp/fft"
	"github.com/cwbudde/algo-pitch/dsp/resample"
	"github.com/cwbudde/algo-pitch/dsp/spectrum"
	"github.com/cwbudde/algo-pitch/pitch"
)

const (
	// octaveCents is how close the sub-harmonic must sit to half the top
	// peak for the octave check to prefer it.
	octaveCents = 50.0
	// octaveRatio is the minimum sub-harmonic to top-peak magnitude ratio.
	octaveRatio = 0.1
)

// HPS multiplies the magnitude spectrum with copies decimated by 1..K so
// that harmonics reinforce the fundamental.
type HPS struct {
	r           pitch.Range
	strategy    fft.Strategy
	downsamples int
	octaveTrick bool
}

var _ Ranged = (*HPS)(nil)

// NewHPS returns a harmonic product spectrum detector multiplying
// numDownsamples >= 1 decimated spectra.
func NewHPS(r pitch.Range, s fft.Strategy, numDownsamples int, octaveTrick bool) (*HPS, error) {
	r, err := validateRange(r)
	if err != nil {
		return nil, err
	}
	if err := validateStrategy(s); err != nil {
		return nil, err
	}
	if numDownsamples < 1 {
		return nil, fmt.Errorf("%w: hps downsamples must be >= 1: %d", ErrInvalidParam, numDownsamples)
	}
	return &HPS{r: r, strategy: s, downsamples: numDownsamples, octaveTrick: octaveTrick}, nil
}

// Algorithm implements Detector.
func (h *HPS) Algorithm() Algorithm { return AlgorithmHPS }

// Params implements Detector.
func (h *HPS) Params() string {
	return fmt.Sprintf("strategy=%s&numDownsamples=%d&octaveTrick=%t&%s",
		h.strategy, h.downsamples, h.octaveTrick, rangeParam(h.r))
}

// Range implements Ranged.
func (h *HPS) Range() pitch.Range { return h.r }

// WithRange implements Ranged.
func (h *HPS) WithRange(r pitch.Range) (Detector, error) {
	return NewHPS(r, h.strategy, h.downsamples, h.octaveTrick)
}

// Predict implements Detector.
func (h *HPS) Predict(block []float64, sampleRate float64) (float64, error) {
	if err := validateBlock(block, sampleRate); err != nil {
		return 0, err
	}

	mags, n, err := magnitudes(block, h.strategy)
	if err != nil {
		return 0, err
	}
	first, last, err := binRange(len(mags), n, sampleRate, h.r)
	if err != nil {
		return 0, err
	}

	product, err := harmonicProduct(mags, sampleRate, h.downsamples)
	if err != nil {
		return 0, err
	}

	peak := spectrum.ArgMax(product, first, last)
	if product[peak] == 0 {
		return Epsilon, nil
	}
	if h.octaveTrick {
		peak = lowerOctave(product, first, last, peak)
	}
	return float64(peak) * sampleRate / float64(n), nil
}

// harmonicProduct multiplies mags by each copy decimated by k = 1..K. A
// copy shorter than the product stops contributing at its end.
func harmonicProduct(mags []float64, sampleRate float64, k int) ([]float64, error) {
	product := append([]float64(nil), mags...)
	for d := 1; d <= k; d++ {
		dec, err := resample.Resample(mags, sampleRate, sampleRate/float64(d))
		if err != nil {
			return nil, fmt.Errorf("detect: %w", err)
		}
		for i := range min(len(product), len(dec)) {
			product[i] *= dec[i]
		}
	}
	return product, nil
}

// lowerOctave returns the bin of the second-highest in-range peak when it
// sits within octaveCents of half the top bin and carries at least
// octaveRatio of its magnitude. Otherwise top is returned.
func lowerOctave(values []float64, first, last, top int) int {
	peaks := spectrum.PeaksInRange(values, first, last)
	var second *spectrum.Peak
	for i := range peaks {
		if peaks[i].Bin != top {
			second = &peaks[i]
			break
		}
	}
	if second == nil || second.Bin <= 0 || values[top] <= 0 {
		return top
	}

	cents := 1200 * math.Log2(float64(second.Bin)/(float64(top)/2))
	if math.Abs(cents) <= octaveCents && second.Value/values[top] >= octaveRatio {
		return second.Bin
	}
	return top
}
