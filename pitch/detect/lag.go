package detect

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-pitch/pitch"
)

// LagRange returns the inclusive lag interval searched by the time-domain
// detectors: [⌈sampleRate/Max⌉, ⌈sampleRate/Min⌉] clamped to [1, n/2].
func LagRange(n int, sampleRate float64, r pitch.Range) (lo, hi int, err error) {
	lo = max(int(math.Ceil(sampleRate/r.Max)), 1)
	hi = min(int(math.Ceil(sampleRate/r.Min)), n/2)
	if lo > hi {
		return 0, 0, fmt.Errorf("%w: no lag in %v for %d samples at %v Hz", ErrInvalidRange, r, n, sampleRate)
	}
	return lo, hi, nil
}

// Autocorrelation picks the lag m maximising Σ x[i]·x[i+m].
type Autocorrelation struct {
	r pitch.Range
}

var _ Ranged = (*Autocorrelation)(nil)

// NewAutocorrelation returns an autocorrelation detector searching r.
// A zero range selects the audible band.
func NewAutocorrelation(r pitch.Range) (*Autocorrelation, error) {
	r, err := validateRange(r)
	if err != nil {
		return nil, err
	}
	return &Autocorrelation{r: r}, nil
}

// Algorithm implements Detector.
func (a *Autocorrelation) Algorithm() Algorithm { return AlgorithmAutocorrelation }

// Params implements Detector.
func (a *Autocorrelation) Params() string { return rangeParam(a.r) }

// Range implements Ranged.
func (a *Autocorrelation) Range() pitch.Range { return a.r }

// WithRange implements Ranged.
func (a *Autocorrelation) WithRange(r pitch.Range) (Detector, error) {
	return NewAutocorrelation(r)
}

// Predict implements Detector. Ties resolve to the shorter lag. Constant
// blocks yield Epsilon.
func (a *Autocorrelation) Predict(block []float64, sampleRate float64) (float64, error) {
	lag, err := a.BestLag(block, sampleRate)
	if err != nil {
		return 0, err
	}
	if isConstant(block) {
		return Epsilon, nil
	}
	return sampleRate / float64(lag), nil
}

// BestLag returns the winning lag in samples.
func (a *Autocorrelation) BestLag(block []float64, sampleRate float64) (int, error) {
	if err := validateBlock(block, sampleRate); err != nil {
		return 0, err
	}
	lo, hi, err := LagRange(len(block), sampleRate, a.r)
	if err != nil {
		return 0, err
	}

	n := len(block)
	best, bestLag := math.Inf(-1), lo
	for m := lo; m <= hi; m++ {
		if c := floats.Dot(block[:n-m], block[m:]); c > best {
			best, bestLag = c, m
		}
	}
	return bestLag, nil
}

// AMDF picks the lag m minimising the average |x[i] − x[i+m]|^b.
type AMDF struct {
	b float64
	r pitch.Range
}

var _ Ranged = (*AMDF)(nil)

// NewAMDF returns an average magnitude difference detector with exponent
// b > 0 searching r.
func NewAMDF(b float64, r pitch.Range) (*AMDF, error) {
	if b <= 0 || math.IsNaN(b) || math.IsInf(b, 0) {
		return nil, fmt.Errorf("%w: amdf exponent must be > 0: %v", ErrInvalidParam, b)
	}
	r, err := validateRange(r)
	if err != nil {
		return nil, err
	}
	return &AMDF{b: b, r: r}, nil
}

// Algorithm implements Detector.
func (a *AMDF) Algorithm() Algorithm { return AlgorithmAMDF }

// Params implements Detector.
func (a *AMDF) Params() string {
	return "b=" + strconv.FormatFloat(a.b, 'g', -1, 64) + "&" + rangeParam(a.r)
}

// B returns the difference exponent.
func (a *AMDF) B() float64 { return a.b }

// Range implements Ranged.
func (a *AMDF) Range() pitch.Range { return a.r }

// WithRange implements Ranged.
func (a *AMDF) WithRange(r pitch.Range) (Detector, error) {
	return NewAMDF(a.b, r)
}

// Predict implements Detector. Ties resolve to the shorter lag. Constant
// blocks yield Epsilon.
func (a *AMDF) Predict(block []float64, sampleRate float64) (float64, error) {
	lag, err := a.BestLag(block, sampleRate)
	if err != nil {
		return 0, err
	}
	if isConstant(block) {
		return Epsilon, nil
	}
	return sampleRate / float64(lag), nil
}

// BestLag returns the winning lag in samples.
func (a *AMDF) BestLag(block []float64, sampleRate float64) (int, error) {
	if err := validateBlock(block, sampleRate); err != nil {
		return 0, err
	}
	lo, hi, err := LagRange(len(block), sampleRate, a.r)
	if err != nil {
		return 0, err
	}

	n := len(block)
	best, bestLag := math.Inf(1), lo
	for m := lo; m <= hi; m++ {
		sum := 0.0
		for i := range n - m {
			d := math.Abs(block[i] - block[i+m])
			if a.b == 1 {
				sum += d
			} else {
				sum += math.Pow(d, a.b)
			}
		}
		if avg := sum / float64(n-m); avg < best {
			best, bestLag = avg, m
		}
	}
	return bestLag, nil
}

func isConstant(block []float64) bool {
	return floats.Max(block) == floats.Min(block)
}
