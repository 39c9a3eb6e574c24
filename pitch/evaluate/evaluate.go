// Package evaluate scores pitch estimates against known frequencies.
package evaluate

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-pitch/pitch/detect"
	"github.com/cwbudde/algo-pitch/pitch/note"
)

// ErrNoResults is returned when summarising an empty result set.
var ErrNoResults = errors.New("evaluate: no results")

// Result scores one estimate.
type Result struct {
	Expected  float64
	Predicted float64
	// PercentError is |expected-predicted|/expected.
	PercentError float64
	// MIDIError is the absolute distance in semitones.
	MIDIError float64
	// Correct reports an estimate within half a semitone.
	Correct bool
	// CorrectOctave also accepts estimates half a semitone around one octave
	// off.
	CorrectOctave bool
}

// Score compares predicted with expected.
func Score(expected, predicted float64) Result {
	d := math.Abs(note.FreqToMIDI(expected) - note.FreqToMIDI(predicted))
	return Result{
		Expected:      expected,
		Predicted:     predicted,
		PercentError:  math.Abs(expected-predicted) / expected,
		MIDIError:     d,
		Correct:       d <= 0.5,
		CorrectOctave: d <= 0.5 || (d >= 11.5 && d <= 12.5),
	}
}

// Summary holds averages over many results. The two rates are fractions in
// [0, 1].
type Summary struct {
	Count         int
	PercentError  float64
	MIDIError     float64
	Correct       float64
	CorrectOctave float64
}

// String renders s on one line.
func (s Summary) String() string {
	return fmt.Sprintf("n=%d error=%.2f%% midi=%.3f correct=%.1f%% octave=%.1f%%",
		s.Count, 100*s.PercentError, s.MIDIError, 100*s.Correct, 100*s.CorrectOctave)
}

// Summarize averages results.
func Summarize(results []Result) (Summary, error) {
	if len(results) == 0 {
		return Summary{}, ErrNoResults
	}

	var (
		pct     = make([]float64, len(results))
		midi    = make([]float64, len(results))
		correct = make([]float64, len(results))
		octave  = make([]float64, len(results))
	)
	for i, r := range results {
		pct[i] = r.PercentError
		midi[i] = r.MIDIError
		correct[i] = boolToFloat(r.Correct)
		octave[i] = boolToFloat(r.CorrectOctave)
	}

	return Summary{
		Count:         len(results),
		PercentError:  stat.Mean(pct, nil),
		MIDIError:     stat.Mean(midi, nil),
		Correct:       stat.Mean(correct, nil),
		CorrectOctave: stat.Mean(octave, nil),
	}, nil
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Case is a block with a known fundamental.
type Case struct {
	Name       string
	Block      []float64
	SampleRate float64
	Freq       float64
}

// Run predicts every case with d and scores the estimates in order.
func Run(d detect.Detector, cases []Case) ([]Result, error) {
	out := make([]Result, len(cases))
	for i, c := range cases {
		f, err := d.Predict(c.Block, c.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("evaluate: case %q: %w", c.Name, err)
		}
		out[i] = Score(c.Freq, f)
	}
	return out, nil
}
