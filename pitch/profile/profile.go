package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-pitch/dsp/window"
	"github.com/cwbudde/algo-pitch/pitch"
	"github.com/cwbudde/algo-pitch/pitch/detect"
	"github.com/cwbudde/algo-pitch/pitch/note"
)

var (
	// ErrNotAnalysed is returned when pitch data is requested before Analyse.
	ErrNotAnalysed = errors.New("profile: not analysed")
	// ErrAlreadyAnalysed is returned when Analyse or Restore is called twice.
	ErrAlreadyAnalysed = errors.New("profile: already analysed")
	// ErrInvalidBlock is returned for inconsistent block size, overlap or
	// window settings.
	ErrInvalidBlock = errors.New("profile: invalid block configuration")
	// ErrEmptySignal is returned when the signal has no samples.
	ErrEmptySignal = errors.New("profile: empty signal")
)

// Profile is the block-wise pitch analysis of one signal.
type Profile struct {
	name       string
	location   string
	signal     []float64
	sampleRate float64
	detector   detect.Detector
	instrument string
	blockSize  int
	overlap    int
	window     []float64
	workers    int
	logger     *slog.Logger

	estimates []float64
	analysed  bool
	elapsed   time.Duration
}

// New returns an unanalysed profile of signal using detector d.
func New(signal []float64, sampleRate float64, d detect.Detector, opts ...Option) (*Profile, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(signal) == 0 {
		return nil, ErrEmptySignal
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("profile: sample rate must be > 0: %v", sampleRate)
	}
	if d == nil {
		return nil, errors.New("profile: detector must not be nil")
	}
	if cfg.blockSize <= 0 {
		return nil, fmt.Errorf("%w: block size must be > 0: %d", ErrInvalidBlock, cfg.blockSize)
	}
	if cfg.overlap < 0 || cfg.overlap >= cfg.blockSize {
		return nil, fmt.Errorf("%w: overlap must be in [0, %d): %d", ErrInvalidBlock, cfg.blockSize, cfg.overlap)
	}
	if cfg.window != nil && len(cfg.window) != cfg.blockSize {
		return nil, fmt.Errorf("%w: window has %d samples, block size is %d", ErrInvalidBlock, len(cfg.window), cfg.blockSize)
	}

	var err error
	switch {
	case cfg.instrument != "":
		r, rerr := note.InstrumentRange(cfg.instrument)
		if rerr != nil {
			return nil, fmt.Errorf("profile: %w", rerr)
		}
		d, err = detect.WithRange(d, r)
	case cfg.expected != nil:
		d, err = detect.WithRange(d, *cfg.expected)
	}
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}

	if cfg.name == "" && cfg.location != "" {
		cfg.name = filepath.Base(cfg.location)
	}
	if cfg.workers <= 0 {
		cfg.workers = runtime.GOMAXPROCS(0)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Profile{
		name:       cfg.name,
		location:   cfg.location,
		signal:     signal,
		sampleRate: sampleRate,
		detector:   d,
		instrument: cfg.instrument,
		blockSize:  cfg.blockSize,
		overlap:    cfg.overlap,
		window:     cfg.window,
		workers:    cfg.workers,
		logger:     logger,
	}, nil
}

// BlockCount returns the number of blocks a signal of length n splits into.
func BlockCount(n, blockSize, overlap int) int {
	if n <= 0 || blockSize <= 0 {
		return 0
	}
	if n <= blockSize {
		return 1
	}
	stride := blockSize - overlap
	return 1 + (n-blockSize+stride-1)/stride
}

// Name returns the display name.
func (p *Profile) Name() string { return p.name }

// Location returns the recorded source location.
func (p *Profile) Location() string { return p.location }

// Signal returns the analysed samples. The slice is shared and must not be
// modified.
func (p *Profile) Signal() []float64 { return p.signal }

// SampleRate returns the signal sample rate in Hz.
func (p *Profile) SampleRate() float64 { return p.sampleRate }

// Detector returns the detector, already restricted to the configured range.
func (p *Profile) Detector() detect.Detector { return p.detector }

// Instrument returns the configured instrument name, if any.
func (p *Profile) Instrument() string { return p.instrument }

// BlockSize returns the number of samples per block.
func (p *Profile) BlockSize() int { return p.blockSize }

// Overlap returns the number of samples consecutive blocks share.
func (p *Profile) Overlap() int { return p.overlap }

// Stride returns the distance between consecutive block starts.
func (p *Profile) Stride() int { return p.blockSize - p.overlap }

// Blocks returns the number of analysis blocks.
func (p *Profile) Blocks() int { return BlockCount(len(p.signal), p.blockSize, p.overlap) }

// Analysed reports whether pitch data is present.
func (p *Profile) Analysed() bool { return p.analysed }

// Elapsed returns the wall-clock duration of Analyse.
func (p *Profile) Elapsed() time.Duration { return p.elapsed }

// Pitch returns a copy of the per-block estimates.
func (p *Profile) Pitch() ([]float64, error) {
	if !p.analysed {
		return nil, ErrNotAnalysed
	}
	return slices.Clone(p.estimates), nil
}

// block returns a zero-padded, windowed copy of block i.
func (p *Profile) block(i int) []float64 {
	start := i * p.Stride()
	buf := make([]float64, p.blockSize)
	copy(buf, p.signal[start:min(start+p.blockSize, len(p.signal))])
	if p.window != nil {
		// Lengths are validated in New.
		_ = window.ApplyCoefficientsInPlace(buf, p.window)
	}
	return buf
}

// Analyse runs the detector on every block. Estimates of exactly 0 Hz are
// stored as detect.Epsilon. A detector error aborts the analysis and leaves
// the profile unanalysed.
func (p *Profile) Analyse(ctx context.Context) error {
	if p.analysed {
		return ErrAlreadyAnalysed
	}

	start := time.Now()
	n := p.Blocks()
	estimates := make([]float64, n)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(p.workers)
	for i := range n {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			f, err := p.detector.Predict(p.block(i), p.sampleRate)
			if err != nil {
				return fmt.Errorf("profile: block %d: %w", i, err)
			}
			if f == 0 {
				f = detect.Epsilon
			}
			estimates[i] = f
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	p.estimates = estimates
	p.analysed = true
	p.elapsed = time.Since(start)

	p.logger.Debug("pitch analysis complete",
		"name", p.name,
		"algorithm", p.detector.Algorithm().String(),
		"blocks", n,
		"workers", p.workers,
		"elapsed", p.elapsed,
	)
	return nil
}

// Restore installs previously computed estimates, for example from a cache.
// The number of estimates must equal Blocks.
func (p *Profile) Restore(estimates []float64, elapsed time.Duration) error {
	if p.analysed {
		return ErrAlreadyAnalysed
	}
	if len(estimates) != p.Blocks() {
		return fmt.Errorf("%w: %d estimates for %d blocks", ErrInvalidBlock, len(estimates), p.Blocks())
	}

	p.estimates = slices.Clone(estimates)
	for i, f := range p.estimates {
		if f == 0 {
			p.estimates[i] = detect.Epsilon
		}
	}
	p.analysed = true
	p.elapsed = elapsed
	return nil
}

// IndexedPitchData returns one entry per block covering the block's stride.
// Entries partition [0, len(signal)): entry i spans [i·stride, (i+1)·stride)
// and the last entry ends at the signal length.
func (p *Profile) IndexedPitchData() ([]pitch.Entry, error) {
	if !p.analysed {
		return nil, ErrNotAnalysed
	}

	stride := p.Stride()
	out := make([]pitch.Entry, len(p.estimates))
	for i, f := range p.estimates {
		out[i] = pitch.Entry{Start: i * stride, End: (i + 1) * stride, Freq: f}
	}
	if len(out) > 0 {
		out[len(out)-1].End = len(p.signal)
	}
	return out, nil
}

// Clone returns a deep copy of p. The signal is shared; it is never written.
func (p *Profile) Clone() *Profile {
	c := *p
	c.estimates = slices.Clone(p.estimates)
	c.window = slices.Clone(p.window)
	return &c
}

// AutoCorrect snaps every stored estimate to the nearest equal-tempered
// semitone, or to the nearest semitone whose pitch class is in allowed.
// Only the stored estimates change; the signal is untouched.
func (p *Profile) AutoCorrect(allowed []note.PitchClass) error {
	if !p.analysed {
		return ErrNotAnalysed
	}
	for i, f := range p.estimates {
		p.estimates[i] = note.NearestAllowed(f, allowed)
	}
	return nil
}
