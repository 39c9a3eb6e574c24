package match

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-pitch/dsp/window"
	"github.com/cwbudde/algo-pitch/pitch"
	"github.com/cwbudde/algo-pitch/pitch/note"
	"github.com/cwbudde/algo-pitch/pitch/profile"
	"github.com/cwbudde/algo-pitch/pitch/section"
	"github.com/cwbudde/algo-pitch/vocoder"
)

// ErrSampleRateMismatch is returned when the two profiles were analysed at
// different sample rates.
var ErrSampleRateMismatch = errors.New("match: sample rate mismatch")

// Segment is an interval of the original signal and the factor its pitch
// is multiplied by.
type Segment struct {
	Start  int
	End    int
	Factor float64
}

// Len returns the number of samples in s.
func (s Segment) Len() int { return s.End - s.Start }

// Plan walks two section partitions and returns the segments of original
// they induce. The factor of a segment is the target pitch over the
// original pitch. When target ends first, the rest of original follows as
// one unshifted segment; when original ends first the plan stops there.
func Plan(original, target []pitch.Entry) []Segment {
	if len(original) == 0 {
		return nil
	}

	var (
		out  []Segment
		i, j int
		pos  = original[0].Start
	)
	for i < len(original) && j < len(target) {
		o, t := original[i], target[j]
		bp := min(o.End, t.End)
		if bp > pos {
			out = append(out, Segment{Start: pos, End: bp, Factor: t.Freq / o.Freq})
			pos = bp
		}
		if o.End <= bp {
			i++
		}
		if t.End <= bp {
			j++
		}
	}
	if i < len(original) {
		if end := original[len(original)-1].End; end > pos {
			out = append(out, Segment{Start: pos, End: end, Factor: 1})
		}
	}
	return out
}

// Sections compresses the pitch data of p and merges sections shorter than
// minLen samples.
func Sections(p *profile.Profile, cfg section.Config, minLen int) ([]pitch.Entry, error) {
	entries, err := p.IndexedPitchData()
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}
	return section.RemoveShortSections(section.Compress(entries, cfg), minLen), nil
}

// Match returns the signal of original re-pitched to follow the pitch line
// of target. Both profiles must be analysed at the same sample rate.
func Match(original, target *profile.Profile, opts ...Option) ([]float64, error) {
	if original.SampleRate() != target.SampleRate() {
		return nil, fmt.Errorf("%w: %v Hz vs %v Hz", ErrSampleRateMismatch, original.SampleRate(), target.SampleRate())
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.minLen <= 0 {
		cfg.minLen = 2*original.BlockSize() + 1
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	if cfg.envelope == nil {
		env, err := window.Hann(cfg.windowLength)
		if err != nil {
			return nil, fmt.Errorf("match: %w", err)
		}
		cfg.envelope = env
	}

	origSections, err := Sections(original, cfg.sections, cfg.minLen)
	if err != nil {
		return nil, err
	}
	targetSections, err := Sections(target, cfg.sections, cfg.minLen)
	if err != nil {
		return nil, err
	}

	segments := Plan(origSections, targetSections)
	cfg.logger.Debug("pitch match planned",
		"original", original.Name(),
		"target", target.Name(),
		"originalSections", len(origSections),
		"targetSections", len(targetSections),
		"segments", len(segments),
	)
	return render(original.Signal(), original.SampleRate(), segments, cfg)
}

// Correct returns the signal of p re-pitched to the nearest semitone, or
// to the nearest semitone in allowed when it is not empty.
func Correct(p *profile.Profile, allowed []note.PitchClass, opts ...Option) ([]float64, error) {
	target := p.Clone()
	if err := target.AutoCorrect(allowed); err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}
	return Match(p, target, opts...)
}

// render shifts every segment of signal and concatenates the results.
// Segments shorter than a vocoder window, without a shift, or with a factor
// beyond the configured bound are copied as they are.
func render(signal []float64, sampleRate float64, segments []Segment, cfg config) ([]float64, error) {
	out := make([]float64, 0, len(signal))
	for _, s := range segments {
		slice := signal[s.Start:s.End]
		if !shiftable(s, cfg) {
			cfg.logger.Debug("segment copied", "start", s.Start, "end", s.End, "factor", s.Factor)
			out = append(out, slice...)
			continue
		}

		shifted, err := vocoder.PitchShift(slice, sampleRate, s.Factor, cfg.windowLength, cfg.overlap, cfg.envelope,
			vocoder.WithForceLength(true),
			vocoder.WithStrategy(cfg.strategy),
			vocoder.WithLogger(cfg.logger),
		)
		if err != nil {
			return nil, fmt.Errorf("match: segment %d-%d: %w", s.Start, s.End, err)
		}
		cfg.logger.Debug("segment shifted", "start", s.Start, "end", s.End, "factor", s.Factor)
		out = append(out, shifted...)
	}
	return out, nil
}

func shiftable(s Segment, cfg config) bool {
	if s.Len() < cfg.windowLength || s.Factor == 1 {
		return false
	}
	return s.Factor <= cfg.maxFactor && s.Factor >= 1/cfg.maxFactor
}
