package detect

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-pitch/pitch"
)

// Median returns the median of values. Even counts average the two middle
// values. Empty input returns NaN and ErrNoEstimates.
func Median(values []float64) (float64, error) {
	if len(values) == 0 {
		return math.NaN(), ErrNoEstimates
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2, nil
	}
	return stat.Quantile(0.5, stat.Empirical, sorted, nil), nil
}

// TrimmedMean averages the sorted values after dropping ⌊n·trim⌋ from the
// bottom and keeping values below index ⌈n·(1−trim)⌉ from the top. When the
// kept window is empty (trim ≥ 0.5) the value at the lower bound, or the
// largest value when that bound is past the end, is returned. Empty input
// returns NaN and ErrNoEstimates; trim outside [0, 1] returns NaN and
// ErrInvalidTrim.
func TrimmedMean(values []float64, trim float64) (float64, error) {
	if trim < 0 || trim > 1 || math.IsNaN(trim) {
		return math.NaN(), fmt.Errorf("%w: %v", ErrInvalidTrim, trim)
	}
	if len(values) == 0 {
		return math.NaN(), ErrNoEstimates
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)
	n := len(sorted)
	lo := int(math.Floor(float64(n) * trim))
	hi := int(math.Ceil(float64(n) * (1 - trim)))
	hi = min(hi, n)
	if lo >= hi {
		return sorted[min(lo, n-1)], nil
	}
	return stat.Mean(sorted[lo:hi], nil), nil
}

// Ensemble runs the six detectors on each block and merges their estimates
// with the median or a trimmed mean.
type Ensemble struct {
	kind    Algorithm
	params  Params
	members []Detector
}

var _ Ranged = (*Ensemble)(nil)

func newEnsemble(kind Algorithm, p Params) (*Ensemble, error) {
	if kind == AlgorithmTrimmedMean && (p.Trim < 0 || p.Trim > 1) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTrim, p.Trim)
	}

	members := make([]Detector, 0, 6)
	for _, a := range Algorithms() {
		if a.IsCombiner() {
			continue
		}
		d, err := New(a, p)
		if err != nil {
			return nil, fmt.Errorf("detect: %s member: %w", a, err)
		}
		members = append(members, d)
	}
	return &Ensemble{kind: kind, params: p, members: members}, nil
}

// NewMedian returns an ensemble merging estimates with the median.
func NewMedian(p Params) (*Ensemble, error) {
	return newEnsemble(AlgorithmMedian, p.withDefaults())
}

// NewTrimmedMean returns an ensemble merging estimates with a trimmed mean.
func NewTrimmedMean(p Params) (*Ensemble, error) {
	return newEnsemble(AlgorithmTrimmedMean, p.withDefaults())
}

// Algorithm implements Detector.
func (e *Ensemble) Algorithm() Algorithm { return e.kind }

// Members returns the underlying detectors.
func (e *Ensemble) Members() []Detector { return slices.Clone(e.members) }

// Params implements Detector.
func (e *Ensemble) Params() string {
	parts := make([]string, 0, len(e.members)+1)
	if e.kind == AlgorithmTrimmedMean {
		parts = append(parts, "trim="+strconv.FormatFloat(e.params.Trim, 'g', -1, 64))
	}
	for _, m := range e.members {
		if p := m.Params(); p != "" {
			parts = append(parts, m.Algorithm().String()+"("+p+")")
		} else {
			parts = append(parts, m.Algorithm().String())
		}
	}
	return strings.Join(parts, "&")
}

// Range implements Ranged.
func (e *Ensemble) Range() pitch.Range { return e.params.Range }

// WithRange implements Ranged.
func (e *Ensemble) WithRange(r pitch.Range) (Detector, error) {
	p := e.params
	p.Range = r
	return newEnsemble(e.kind, p)
}

// Estimates returns the per-member estimates for block, in member order.
func (e *Ensemble) Estimates(block []float64, sampleRate float64) ([]float64, error) {
	out := make([]float64, len(e.members))
	for i, m := range e.members {
		f, err := m.Predict(block, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("detect: %s: %w", m.Algorithm(), err)
		}
		out[i] = f
	}
	return out, nil
}

// Predict implements Detector.
func (e *Ensemble) Predict(block []float64, sampleRate float64) (float64, error) {
	estimates, err := e.Estimates(block, sampleRate)
	if err != nil {
		return 0, err
	}
	if e.kind == AlgorithmTrimmedMean {
		return TrimmedMean(estimates, e.params.Trim)
	}
	return Median(estimates)
}
