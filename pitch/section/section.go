package section

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-pitch/pitch"
	"github.com/cwbudde/algo-pitch/pitch/note"
)

// Config controls section compression.
type Config struct {
	// PitchTolerance is the largest distance, in semitones, between an entry
	// and the running section pitch.
	PitchTolerance float64
	// OctaveTolerance is the largest distance, in semitones, from exactly one
	// octave above or below the running pitch.
	OctaveTolerance float64
	// DeviationRun is the number of consecutive deviating entries that opens
	// a new section.
	DeviationRun int
	// History is the number of most recent in-section estimates the running
	// pitch is the median of. Zero selects the default; a negative value
	// keeps every estimate of the section.
	History int
}

// DefaultConfig returns the default compression settings.
func DefaultConfig() Config {
	return Config{
		PitchTolerance:  0.25,
		OctaveTolerance: 0.25,
		DeviationRun:    3,
		History:         32,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.PitchTolerance <= 0 {
		c.PitchTolerance = d.PitchTolerance
	}
	if c.OctaveTolerance <= 0 {
		c.OctaveTolerance = d.OctaveTolerance
	}
	if c.DeviationRun <= 0 {
		c.DeviationRun = d.DeviationRun
	}
	if c.History == 0 {
		c.History = d.History
	}
	return c
}

// runningPitch is the median of the buffered frequencies. With an even
// count the oldest entry is left out so the median is an actual estimate.
func runningPitch(buf []float64) float64 {
	if len(buf)%2 == 0 {
		buf = buf[1:]
	}
	sorted := slices.Clone(buf)
	slices.Sort(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

// push appends freq to buf and drops the oldest entries beyond limit.
// A non-positive limit keeps everything.
func push(buf []float64, freq float64, limit int) []float64 {
	buf = append(buf, freq)
	if limit > 0 && len(buf) > limit {
		buf = slices.Delete(buf, 0, len(buf)-limit)
	}
	return buf
}

// classify reports whether freq matches ref directly or within an octave.
func classify(freq, ref float64, cfg Config) (direct, octave bool) {
	d := math.Abs(note.SemitoneDistance(freq, ref))
	if d <= cfg.PitchTolerance {
		return true, false
	}
	return false, math.Abs(d-12) <= cfg.OctaveTolerance
}

// Compress merges consecutive entries into stable sections. Each section
// carries the running median pitch at the time it was closed. The output
// covers exactly the input range.
func Compress(entries []pitch.Entry, cfg Config) []pitch.Entry {
	if len(entries) == 0 {
		return nil
	}
	cfg = cfg.withDefaults()

	var (
		out       []pitch.Entry
		cur       = pitch.Entry{Start: entries[0].Start, End: entries[0].End}
		buf       = []float64{entries[0].Freq}
		deviation []pitch.Entry
	)

	closeAt := func(end int) {
		cur.End = end
		cur.Freq = runningPitch(buf)
		out = append(out, cur)
	}

	for _, e := range entries[1:] {
		direct, octave := classify(e.Freq, runningPitch(buf), cfg)
		switch {
		case direct:
			buf = push(buf, e.Freq, cfg.History)
			deviation = deviation[:0]
		case octave:
			deviation = deviation[:0]
		default:
			deviation = append(deviation, e)
			if len(deviation) < cfg.DeviationRun {
				break
			}
			closeAt(deviation[0].Start)
			cur = pitch.Entry{Start: deviation[0].Start}
			buf = buf[:0]
			for _, d := range deviation {
				buf = push(buf, d.Freq, cfg.History)
			}
			deviation = deviation[:0]
		}
		cur.End = e.End
	}
	closeAt(cur.End)
	return out
}

// RemoveShortSections merges every section shorter than minLen samples into
// its predecessor until none remain short. A short first section is merged
// into its successor instead, which keeps the successor's pitch. A single
// remaining section may stay short when the whole input is.
func RemoveShortSections(sections []pitch.Entry, minLen int) []pitch.Entry {
	out := slices.Clone(sections)
	for len(out) > 1 {
		i := slices.IndexFunc(out, func(s pitch.Entry) bool { return s.Len() < minLen })
		if i < 0 {
			break
		}
		if i == 0 {
			out[1].Start = out[0].Start
		} else {
			out[i-1].End = out[i].End
		}
		out = slices.Delete(out, i, i+1)
	}
	return out
}
