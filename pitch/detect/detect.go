package detect

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-pitch/dsp/fft"
	"github.com/cwbudde/algo-pitch/pitch"
)

var (
	// ErrEmptyBlock is returned when a detector receives no samples.
	ErrEmptyBlock = errors.New("detect: empty block")
	// ErrInvalidRange is returned when the expected frequency range is
	// invalid or maps to no lag or bin for the given block.
	ErrInvalidRange = errors.New("detect: invalid frequency range")
	// ErrInvalidParam is returned for out-of-domain detector parameters.
	ErrInvalidParam = errors.New("detect: invalid parameter")
	// ErrUnknownAlgorithm is returned for unrecognised algorithm identifiers.
	ErrUnknownAlgorithm = errors.New("detect: unknown algorithm")
	// ErrInvalidTrim is returned when a trim proportion lies outside [0, 1].
	ErrInvalidTrim = errors.New("detect: trim proportion outside [0,1]")
	// ErrNoEstimates is returned when a combiner receives no estimates.
	ErrNoEstimates = errors.New("detect: no estimates to combine")
)

// Epsilon replaces 0 Hz estimates. Pitch maths downstream takes logarithms.
const Epsilon = 1e-9

// Algorithm identifies a detector or combiner.
type Algorithm int

const (
	// AlgorithmZeroCross counts sign changes.
	AlgorithmZeroCross Algorithm = iota
	// AlgorithmAutocorrelation picks the strongest autocorrelation lag.
	AlgorithmAutocorrelation
	// AlgorithmAMDF picks the deepest average magnitude difference lag.
	AlgorithmAMDF
	// AlgorithmNaiveFT picks the FFT magnitude peak.
	AlgorithmNaiveFT
	// AlgorithmCepstrum picks the real-cepstrum quefrency peak.
	AlgorithmCepstrum
	// AlgorithmHPS picks the harmonic product spectrum peak.
	AlgorithmHPS
	// AlgorithmMedian is the median of the ensemble members.
	AlgorithmMedian
	// AlgorithmTrimmedMean is the trimmed mean of the ensemble members.
	AlgorithmTrimmedMean
)

var algorithmNames = map[Algorithm]string{
	AlgorithmZeroCross:       "zerocross",
	AlgorithmAutocorrelation: "autocorrelation",
	AlgorithmAMDF:            "amdf",
	AlgorithmNaiveFT:         "naiveft",
	AlgorithmCepstrum:        "cepstrum",
	AlgorithmHPS:             "hps",
	AlgorithmMedian:          "median",
	AlgorithmTrimmedMean:     "trimmedmean",
}

// String returns the identifier of a.
func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return fmt.Sprintf("algorithm(%d)", int(a))
}

// IsCombiner reports whether a merges the estimates of the six detectors.
func (a Algorithm) IsCombiner() bool {
	return a == AlgorithmMedian || a == AlgorithmTrimmedMean
}

// Algorithms lists every identifier in declaration order.
func Algorithms() []Algorithm {
	return []Algorithm{
		AlgorithmZeroCross, AlgorithmAutocorrelation, AlgorithmAMDF,
		AlgorithmNaiveFT, AlgorithmCepstrum, AlgorithmHPS,
		AlgorithmMedian, AlgorithmTrimmedMean,
	}
}

// ParseAlgorithm resolves a case-insensitive identifier.
func ParseAlgorithm(name string) (Algorithm, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "naivefft" {
		return AlgorithmNaiveFT, nil
	}
	for a, s := range algorithmNames {
		if s == n {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Detector estimates the fundamental frequency of one block.
type Detector interface {
	// Algorithm returns the identifier of the detector.
	Algorithm() Algorithm
	// Params renders the parameter set, e.g. "b=1&range=20.00-20000.00Hz".
	Params() string
	// Predict returns the estimate in Hz.
	Predict(block []float64, sampleRate float64) (float64, error)
}

// Ranged is implemented by detectors that restrict their search to an
// expected frequency range.
type Ranged interface {
	Detector
	Range() pitch.Range
	WithRange(r pitch.Range) (Detector, error)
}

// WithRange returns d restricted to r. Detectors that do not implement
// Ranged are returned unchanged.
func WithRange(d Detector, r pitch.Range) (Detector, error) {
	rd, ok := d.(Ranged)
	if !ok {
		return d, nil
	}
	return rd.WithRange(r)
}

// Params is the union of all detector parameters. Zero values select the
// defaults shown in DefaultParams.
type Params struct {
	// Range is the expected fundamental range.
	Range pitch.Range
	// B is the AMDF difference exponent.
	B float64
	// Strategy selects the FFT backend of the spectral detectors.
	Strategy fft.Strategy
	// PhaseRefine enables phase-difference refinement of naiveft.
	PhaseRefine bool
	// NumDownsamples is the number of decimated spectra HPS multiplies.
	NumDownsamples int
	// OctaveTrick enables the HPS lower-octave check.
	OctaveTrick bool
	// Trim is the trimmed-mean proportion. Zero keeps every estimate.
	Trim float64
}

// DefaultParams returns the parameters used when none are configured.
func DefaultParams() Params {
	return Params{
		Range:          pitch.DefaultRange,
		B:              1,
		Strategy:       fft.StrategyRecursive,
		NumDownsamples: 4,
		Trim:           0.4,
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.Range == (pitch.Range{}) {
		p.Range = d.Range
	}
	if p.B == 0 {
		p.B = d.B
	}
	if p.NumDownsamples == 0 {
		p.NumDownsamples = d.NumDownsamples
	}
	return p
}

// New builds the detector identified by a from p.
func New(a Algorithm, p Params) (Detector, error) {
	p = p.withDefaults()
	switch a {
	case AlgorithmZeroCross:
		return NewZeroCrossing(), nil
	case AlgorithmAutocorrelation:
		return NewAutocorrelation(p.Range)
	case AlgorithmAMDF:
		return NewAMDF(p.B, p.Range)
	case AlgorithmNaiveFT:
		return NewSpectralPeak(p.Range, p.Strategy, p.PhaseRefine)
	case AlgorithmCepstrum:
		return NewCepstrum(p.Range, p.Strategy)
	case AlgorithmHPS:
		return NewHPS(p.Range, p.Strategy, p.NumDownsamples, p.OctaveTrick)
	case AlgorithmMedian, AlgorithmTrimmedMean:
		return newEnsemble(a, p)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(a))
	}
}

func validateRange(r pitch.Range) (pitch.Range, error) {
	if r == (pitch.Range{}) {
		return pitch.DefaultRange, nil
	}
	if !r.Valid() {
		return r, fmt.Errorf("%w: %v", ErrInvalidRange, r)
	}
	return r, nil
}

func validateBlock(block []float64, sampleRate float64) error {
	if len(block) == 0 {
		return ErrEmptyBlock
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: sample rate %v", ErrInvalidParam, sampleRate)
	}
	return nil
}

func rangeParam(r pitch.Range) string {
	return fmt.Sprintf("range=%.2f-%.2fHz", r.Min, r.Max)
}
