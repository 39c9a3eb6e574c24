package resample

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-pitch/dsp/interp"
)

// ErrInvalidRate indicates an invalid input/output sample rate.
var ErrInvalidRate = errors.New("resample: invalid sample rate")

type config struct {
	mode interp.Mode
}

func defaultConfig() config {
	return config{mode: interp.ModeLinear}
}

// Option configures the resampler.
type Option func(*config)

// WithMode selects the interpolation kernel. The default is linear.
func WithMode(m interp.Mode) Option {
	return func(cfg *config) {
		if m == interp.ModeLinear || m == interp.ModeHermite {
			cfg.mode = m
		}
	}
}

// OutputLen returns the number of samples Resample produces for an input of
// length n.
func OutputLen(n int, oldRate, newRate float64) int {
	if n < 2 {
		return 0
	}

	step := oldRate / newRate
	limit := float64(n - 1)
	// Count i with i*step < limit.
	count := int(math.Ceil(limit / step))
	for count > 0 && float64(count-1)*step >= limit {
		count--
	}
	for float64(count)*step < limit {
		count++
	}
	return count
}

// Resample converts signal from oldRate to newRate.
func Resample(signal []float64, oldRate, newRate float64, opts ...Option) ([]float64, error) {
	if !validRate(oldRate) || !validRate(newRate) {
		return nil, fmt.Errorf("%w: %v -> %v", ErrInvalidRate, oldRate, newRate)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	step := oldRate / newRate
	out := make([]float64, OutputLen(len(signal), oldRate, newRate))
	for i := range out {
		out[i] = interp.At(signal, float64(i)*step, cfg.mode)
	}
	return out, nil
}

func validRate(r float64) bool {
	return r > 0 && !math.IsInf(r, 0) && !math.IsNaN(r)
}
