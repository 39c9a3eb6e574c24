package vocoder

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-pitch/dsp/fft"
	"github.com/cwbudde/algo-pitch/dsp/gain"
	"github.com/cwbudde/algo-pitch/dsp/resample"
	"github.com/cwbudde/algo-pitch/dsp/spectrum"
	"github.com/cwbudde/algo-pitch/dsp/window"
)

var (
	// ErrSignalTooShort indicates a signal shorter than one analysis window.
	ErrSignalTooShort = errors.New("vocoder: signal shorter than window")
	// ErrInvalidWindow indicates an unusable window length, overlap or
	// envelope.
	ErrInvalidWindow = errors.New("vocoder: invalid window")
	// ErrInvalidFactor indicates a non-positive or non-finite scaling factor,
	// or one that rounds the output hop to zero.
	ErrInvalidFactor = errors.New("vocoder: invalid scaling factor")
	// ErrInvalidSampleRate indicates a non-positive or non-finite sample rate.
	ErrInvalidSampleRate = errors.New("vocoder: invalid sample rate")
)

// normFloor is the smallest summed window weight an output sample is
// divided by.
const normFloor = 1e-12

// phaseState is what one frame hands to the next: the analysis phases of
// the input frame, the phases it was resynthesised with and the true
// frequency estimated for each bin.
type phaseState struct {
	prevIn  []float64
	prevOut []float64
	freq    []float64
}

// frameStep holds the per-call constants of the phase update.
type frameStep struct {
	binFreqs []float64
}

// advance resynthesises one analysis frame that lies dtIn after the previous
// one in the input and is placed dtOut after it in the output. The first
// frame (zero state) is passed through. Later frames keep each bin's
// magnitude and move its phase on from the previous output phase by the
// bin's true frequency over dtOut. A repeated frame (dtIn == 0) keeps the
// previous true frequencies.
func (s frameStep) advance(st phaseState, bins []complex128, dtIn, dtOut float64) ([]complex128, phaseState) {
	phaseIn := spectrum.Phase(bins)
	if st.prevIn == nil {
		out := make([]complex128, len(bins))
		copy(out, bins)
		return out, phaseState{prevIn: phaseIn, prevOut: phaseIn, freq: s.binFreqs}
	}

	out := make([]complex128, len(bins))
	phaseOut := make([]float64, len(bins))
	freq := make([]float64, len(bins))
	for k, b := range bins {
		f := st.freq[k]
		if dtIn > 0 {
			dPhi := phaseIn[k] - st.prevIn[k]
			cycles := math.Round(dtIn*s.binFreqs[k] - dPhi/(2*math.Pi))
			f = (dPhi + 2*math.Pi*cycles) / (2 * math.Pi * dtIn)
		}
		freq[k] = f
		phaseOut[k] = st.prevOut[k] + 2*math.Pi*f*dtOut
		out[k] = cmplx.Rect(cmplx.Abs(b), phaseOut[k])
	}
	return out, phaseState{prevIn: phaseIn, prevOut: phaseOut, freq: freq}
}

// FrameCount returns the number of analysis frames of a signal of n samples.
// Frames step by windowLength-overlap and the last one ends on the final
// sample.
func FrameCount(n, windowLength, overlap int) int {
	hop := windowLength - overlap
	if hop <= 0 || windowLength <= 0 || n < windowLength {
		return 0
	}
	return 1 + (n-windowLength+hop-1)/hop
}

// schedule returns the input and output offsets of every frame. Analysis
// frames step by hopIn with the last one ending on the final input sample,
// and land at their offset scaled by hopOut/hopIn. When that leaves the
// output short of outLen, the last frame is repeated every hopOut until each
// output sample lies inside a frame rather than on its trailing edge.
func schedule(n, windowLength, hopIn, hopOut, outLen int) (in, out []int) {
	last := n - windowLength
	for a := 0; a <= last; a += hopIn {
		in = append(in, a)
	}
	if in[len(in)-1] != last {
		in = append(in, last)
	}

	out = make([]int, len(in))
	for k, a := range in {
		out[k] = int(math.Round(float64(a) * float64(hopOut) / float64(hopIn)))
	}

	if out[len(out)-1]+windowLength < outLen {
		for out[len(out)-1]+windowLength-hopOut < outLen {
			in = append(in, last)
			out = append(out, out[len(out)-1]+hopOut)
		}
	}
	return in, out
}

// OutputLen returns the length Stretch produces for n input samples.
func OutputLen(n int, factor float64) int {
	return int(math.Ceil(float64(n) * factor))
}

func validate(signal []float64, sampleRate, factor float64, windowLength, overlap int, envelope []float64) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	if !(factor > 0) || math.IsInf(factor, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidFactor, factor)
	}
	if !fft.IsPowerOfTwo(windowLength) {
		return fmt.Errorf("%w: length %d is not a power of two", ErrInvalidWindow, windowLength)
	}
	if overlap < 0 || overlap >= windowLength {
		return fmt.Errorf("%w: overlap %d not in [0, %d)", ErrInvalidWindow, overlap, windowLength)
	}
	if envelope != nil && len(envelope) != windowLength {
		return fmt.Errorf("%w: envelope has %d samples, want %d", ErrInvalidWindow, len(envelope), windowLength)
	}
	if len(signal) < windowLength {
		return fmt.Errorf("%w: %d < %d", ErrSignalTooShort, len(signal), windowLength)
	}
	if math.Round(float64(windowLength-overlap)*factor) < 1 {
		return fmt.Errorf("%w: %v rounds the output hop to zero", ErrInvalidFactor, factor)
	}
	return nil
}

// Stretch changes the duration of signal by factor without changing its
// pitch. Frames are windowLength samples long (a power of two), consecutive
// frames share overlap samples and the last frame ends on the final sample.
// Each frame is multiplied by envelope before analysis and again before
// overlap-add; a nil envelope is rectangular. The result has
// ceil(len(signal)·factor) samples and is attenuated as a whole if it
// would clip. Samples under a zero envelope value in every frame that
// covers them come out as zero.
func Stretch(signal []float64, sampleRate, factor float64, windowLength, overlap int, envelope []float64, opts ...Option) ([]float64, error) {
	if err := validate(signal, sampleRate, factor, windowLength, overlap, envelope); err != nil {
		return nil, err
	}
	cfg := applyOptions(opts)

	if envelope == nil {
		var err error
		if envelope, err = window.Ones(windowLength); err != nil {
			return nil, fmt.Errorf("vocoder: %w", err)
		}
	}

	hopIn := windowLength - overlap
	hopOut := int(math.Round(float64(hopIn) * factor))
	outLen := OutputLen(len(signal), factor)
	offIn, offOut := schedule(len(signal), windowLength, hopIn, hopOut, outLen)

	step := frameStep{
		binFreqs: spectrum.BinFrequencies(windowLength/2+1, windowLength, sampleRate),
	}

	size := max(outLen, offOut[len(offOut)-1]+windowLength)
	out := make([]float64, size)
	norm := make([]float64, size)
	weight := floats.MulTo(make([]float64, windowLength), envelope, envelope)

	var (
		st   phaseState
		bins []complex128
	)
	for k := range offIn {
		if k == 0 || offIn[k] != offIn[k-1] {
			frame, err := window.ApplyCoefficients(signal[offIn[k]:offIn[k]+windowLength], envelope)
			if err != nil {
				return nil, fmt.Errorf("vocoder: %w", err)
			}
			if bins, err = fft.ForwardReal(frame, cfg.strategy, fft.Half); err != nil {
				return nil, fmt.Errorf("vocoder: frame %d: %w", k, err)
			}
		}

		var dtIn, dtOut float64
		if k > 0 {
			dtIn = float64(offIn[k]-offIn[k-1]) / sampleRate
			dtOut = float64(offOut[k]-offOut[k-1]) / sampleRate
		}
		var synth []complex128
		synth, st = step.advance(st, bins, dtIn, dtOut)

		resynth, err := fft.InverseReal(synth, windowLength, cfg.strategy)
		if err != nil {
			return nil, fmt.Errorf("vocoder: frame %d: %w", k, err)
		}
		if err := window.ApplyCoefficientsInPlace(resynth, envelope); err != nil {
			return nil, fmt.Errorf("vocoder: %w", err)
		}
		at := offOut[k]
		floats.Add(out[at:at+windowLength], resynth)
		floats.Add(norm[at:at+windowLength], weight)
	}

	// Each sample is divided by the squared envelope weight that reached it.
	out = out[:outLen]
	for i, w := range norm[:outLen] {
		if w > normFloor {
			out[i] /= w
		}
	}

	if g := gain.Attenuate(out); g != 1 {
		cfg.logger.Debug("vocoder output attenuated", "gain", g, "factor", factor)
	}
	return out, nil
}

// PitchShift transposes signal by factor: it stretches by factor and
// resamples from sampleRate to sampleRate/factor. The result is about as
// long as the input; WithForceLength makes it exactly as long.
func PitchShift(signal []float64, sampleRate, factor float64, windowLength, overlap int, envelope []float64, opts ...Option) ([]float64, error) {
	cfg := applyOptions(opts)

	stretched, err := Stretch(signal, sampleRate, factor, windowLength, overlap, envelope, opts...)
	if err != nil {
		return nil, err
	}

	out, err := resample.Resample(stretched, sampleRate, sampleRate/factor, resample.WithMode(cfg.resampleMode))
	if err != nil {
		return nil, fmt.Errorf("vocoder: %w", err)
	}

	if cfg.forceLength && len(out) != len(signal) {
		out = restretch(out, len(signal), sampleRate, windowLength, overlap, envelope, opts)
	}
	return out, nil
}

// restretch brings x to exactly n samples. Buffers long enough for one
// frame are stretched by the length ratio first; the remaining difference
// of a sample or so is padded with zeros or cut.
func restretch(x []float64, n int, sampleRate float64, windowLength, overlap int, envelope []float64, opts []Option) []float64 {
	if len(x) >= windowLength {
		if y, err := Stretch(x, sampleRate, float64(n)/float64(len(x)), windowLength, overlap, envelope, opts...); err == nil {
			x = y
		}
	}
	return fitLength(x, n)
}

func fitLength(x []float64, n int) []float64 {
	if len(x) >= n {
		return x[:n]
	}
	out := make([]float64, n)
	copy(out, x)
	return out
}
