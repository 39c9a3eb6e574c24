package detect

import (
	"fmt"
	"math"
	"math/cmplx"
	"slices"

	"github.com/cwbudde/algo-pitch/dsp/fft"
	"github.com/cwbudde/algo-pitch/dsp/spectrum"
	"github.com/cwbudde/algo-pitch/pitch"
)

func validateStrategy(s fft.Strategy) error {
	if !slices.Contains(fft.Strategies(), s) {
		return fmt.Errorf("%w: fft strategy %d", ErrInvalidParam, int(s))
	}
	return nil
}

// magnitudes transforms the power-of-two prefix of block and returns the
// half-spectrum magnitudes together with the transform length.
func magnitudes(block []float64, s fft.Strategy) ([]float64, int, error) {
	frame := fft.Truncate(block)
	bins, err := fft.ForwardReal(frame, s, fft.Half)
	if err != nil {
		return nil, 0, fmt.Errorf("detect: %w", err)
	}
	return spectrum.Magnitude(bins), len(frame), nil
}

func binRange(bins, n int, sampleRate float64, r pitch.Range) (int, int, error) {
	first, last, ok := spectrum.BinRange(bins, n, sampleRate, r.Min, r.Max)
	if !ok {
		return 0, 0, fmt.Errorf("%w: no bin in %v for %d-point transform at %v Hz", ErrInvalidRange, r, n, sampleRate)
	}
	return first, last, nil
}

// SpectralPeak picks the largest in-range magnitude bin. With phase
// refinement it compares two frames offset by a quarter window and resolves
// the true frequency from their phase difference at the peak bin.
type SpectralPeak struct {
	r        pitch.Range
	strategy fft.Strategy
	refine   bool
}

var _ Ranged = (*SpectralPeak)(nil)

// NewSpectralPeak returns a naive Fourier-transform detector.
func NewSpectralPeak(r pitch.Range, s fft.Strategy, phaseRefine bool) (*SpectralPeak, error) {
	r, err := validateRange(r)
	if err != nil {
		return nil, err
	}
	if err := validateStrategy(s); err != nil {
		return nil, err
	}
	return &SpectralPeak{r: r, strategy: s, refine: phaseRefine}, nil
}

// Algorithm implements Detector.
func (p *SpectralPeak) Algorithm() Algorithm { return AlgorithmNaiveFT }

// Params implements Detector.
func (p *SpectralPeak) Params() string {
	return fmt.Sprintf("strategy=%s&phaseRefine=%t&%s", p.strategy, p.refine, rangeParam(p.r))
}

// Range implements Ranged.
func (p *SpectralPeak) Range() pitch.Range { return p.r }

// WithRange implements Ranged.
func (p *SpectralPeak) WithRange(r pitch.Range) (Detector, error) {
	return NewSpectralPeak(r, p.strategy, p.refine)
}

// Predict implements Detector.
func (p *SpectralPeak) Predict(block []float64, sampleRate float64) (float64, error) {
	if err := validateBlock(block, sampleRate); err != nil {
		return 0, err
	}

	if p.refine {
		w := fft.LargestPowerOfTwo(len(block) * 4 / 5)
		if hop := w / 4; hop > 0 && hop+w <= len(block) {
			return p.refined(block[:w], block[hop:hop+w], hop, sampleRate)
		}
	}

	mags, n, err := magnitudes(block, p.strategy)
	if err != nil {
		return 0, err
	}
	first, last, err := binRange(len(mags), n, sampleRate, p.r)
	if err != nil {
		return 0, err
	}

	peak := spectrum.ArgMax(mags, first, last)
	if mags[peak] == 0 {
		return Epsilon, nil
	}
	return float64(peak) * sampleRate / float64(n), nil
}

func (p *SpectralPeak) refined(a, b []float64, hop int, sampleRate float64) (float64, error) {
	w := len(a)
	binsA, err := fft.ForwardReal(a, p.strategy, fft.Half)
	if err != nil {
		return 0, fmt.Errorf("detect: %w", err)
	}
	binsB, err := fft.ForwardReal(b, p.strategy, fft.Half)
	if err != nil {
		return 0, fmt.Errorf("detect: %w", err)
	}

	mags := spectrum.Magnitude(binsB)
	first, last, err := binRange(len(mags), w, sampleRate, p.r)
	if err != nil {
		return 0, err
	}
	peak := spectrum.ArgMax(mags, first, last)
	if mags[peak] == 0 {
		return Epsilon, nil
	}

	return refineFrequency(
		float64(peak)*sampleRate/float64(w),
		cmplx.Phase(binsB[peak])-cmplx.Phase(binsA[peak]),
		float64(hop)/sampleRate,
	), nil
}

// refineFrequency resolves the frequency whose phase advances by dPhi over dt
// seconds, choosing the 2π multiple closest to the bin centre binFreq.
func refineFrequency(binFreq, dPhi, dt float64) float64 {
	k := math.Round(dt*binFreq - dPhi/(2*math.Pi))
	f := (dPhi + 2*math.Pi*k) / (2 * math.Pi * dt)
	if f <= 0 {
		return Epsilon
	}
	return f
}

// Cepstrum picks the strongest quefrency of the log-magnitude spectrum.
type Cepstrum struct {
	r        pitch.Range
	strategy fft.Strategy
}

var _ Ranged = (*Cepstrum)(nil)

// minQuefrency excludes the DC region of the cepstrum.
const minQuefrency = 6

// NewCepstrum returns a cepstrum detector.
func NewCepstrum(r pitch.Range, s fft.Strategy) (*Cepstrum, error) {
	r, err := validateRange(r)
	if err != nil {
		return nil, err
	}
	if err := validateStrategy(s); err != nil {
		return nil, err
	}
	return &Cepstrum{r: r, strategy: s}, nil
}

// Algorithm implements Detector.
func (c *Cepstrum) Algorithm() Algorithm { return AlgorithmCepstrum }

// Params implements Detector.
func (c *Cepstrum) Params() string {
	return fmt.Sprintf("strategy=%s&%s", c.strategy, rangeParam(c.r))
}

// Range implements Ranged.
func (c *Cepstrum) Range() pitch.Range { return c.r }

// WithRange implements Ranged.
func (c *Cepstrum) WithRange(r pitch.Range) (Detector, error) {
	return NewCepstrum(r, c.strategy)
}

// Predict implements Detector. Quefrency bin q of an N-point frame maps to
// sampleRate/(2q) Hz.
func (c *Cepstrum) Predict(block []float64, sampleRate float64) (float64, error) {
	if err := validateBlock(block, sampleRate); err != nil {
		return 0, err
	}

	mags, n, err := magnitudes(block, c.strategy)
	if err != nil {
		return 0, err
	}
	if n < 4 {
		return 0, fmt.Errorf("%w: cepstrum needs at least 4 samples, got %d", ErrInvalidRange, len(block))
	}

	lo := max(int(math.Ceil(sampleRate/(2*c.r.Max))), minQuefrency)
	hi := min(int(math.Floor(sampleRate/(2*c.r.Min))), n/4)
	if lo > hi {
		return 0, fmt.Errorf("%w: no quefrency in %v for %d-point transform at %v Hz", ErrInvalidRange, c.r, n, sampleRate)
	}

	logs := spectrum.LogMagnitude(mags[:n/2])
	if !floorNegInf(logs) {
		return Epsilon, nil
	}

	bins, err := fft.ForwardReal(logs, c.strategy, fft.Half)
	if err != nil {
		return 0, fmt.Errorf("detect: %w", err)
	}
	ceps := spectrum.Magnitude(bins)

	q, ok := spectrum.ArgMaxFinite(ceps, lo, hi)
	if !ok || ceps[q] == 0 {
		return Epsilon, nil
	}
	return sampleRate / (2 * float64(q)), nil
}

// floorNegInf replaces -Inf entries with the smallest finite value. It
// reports false when no entry is finite.
func floorNegInf(logs []float64) bool {
	floor := math.Inf(1)
	for _, v := range logs {
		if !math.IsInf(v, 0) && !math.IsNaN(v) && v < floor {
			floor = v
		}
	}
	if math.IsInf(floor, 1) {
		return false
	}
	for i, v := range logs {
		if math.IsInf(v, -1) {
			logs[i] = floor
		}
	}
	return true
}
