package config

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-pitch/dsp/fft"
	"github.com/cwbudde/algo-pitch/dsp/window"
	"github.com/cwbudde/algo-pitch/pitch"
	"github.com/cwbudde/algo-pitch/pitch/detect"
	"github.com/cwbudde/algo-pitch/pitch/match"
	"github.com/cwbudde/algo-pitch/pitch/profile"
	"github.com/cwbudde/algo-pitch/pitch/section"
	"github.com/cwbudde/algo-pitch/vocoder"
)

// Params converts the detector section into detect.Params.
func (d DetectorConfig) Params() (detect.Params, error) {
	s, err := fft.ParseStrategy(d.Strategy)
	if err != nil {
		return detect.Params{}, fmt.Errorf("config: %w", err)
	}
	return detect.Params{
		Range:          pitch.Range{Min: d.MinFreq, Max: d.MaxFreq},
		B:              d.B,
		Strategy:       s,
		PhaseRefine:    d.PhaseRefine,
		NumDownsamples: d.NumDownsamples,
		OctaveTrick:    d.OctaveTrick,
		Trim:           d.Trim,
	}, nil
}

// Detector builds the configured detector.
func (d DetectorConfig) Detector() (detect.Detector, error) {
	a, err := detect.ParseAlgorithm(d.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	p, err := d.Params()
	if err != nil {
		return nil, err
	}
	det, err := detect.New(a, p)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return det, nil
}

// envelope returns the named window of size n, or nil for a rectangular
// one.
func envelope(name string, n int) ([]float64, error) {
	t, err := window.ParseType(name)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if t == window.TypeRectangular {
		return nil, nil
	}
	w, err := window.Generate(t, n)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return w, nil
}

// Options converts the profile section into profile options. The logger
// may be nil.
func (p ProfileConfig) Options(logger *slog.Logger) ([]profile.Option, error) {
	opts := []profile.Option{
		profile.WithBlockSize(p.BlockSize),
		profile.WithOverlap(p.Overlap),
		profile.WithWorkers(p.Workers),
		profile.WithLogger(logger),
	}
	env, err := envelope(p.Window, p.BlockSize)
	if err != nil {
		return nil, err
	}
	if env != nil {
		opts = append(opts, profile.WithWindow(env))
	}
	if p.Instrument != "" {
		opts = append(opts, profile.WithInstrument(p.Instrument))
	}
	return opts, nil
}

// Envelope returns the vocoder analysis envelope, nil when rectangular.
func (v VocoderConfig) Envelope() ([]float64, error) {
	return envelope(v.Window, v.WindowLength)
}

// Options converts the vocoder section into vocoder options.
func (v VocoderConfig) Options(logger *slog.Logger) ([]vocoder.Option, error) {
	s, err := fft.ParseStrategy(v.Strategy)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return []vocoder.Option{
		vocoder.WithStrategy(s),
		vocoder.WithForceLength(v.ForceLength),
		vocoder.WithLogger(logger),
	}, nil
}

// Options converts the match section, together with the vocoder frame
// settings, into match options.
func (m MatchConfig) Options(v VocoderConfig, logger *slog.Logger) ([]match.Option, error) {
	s, err := fft.ParseStrategy(v.Strategy)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	opts := []match.Option{
		match.WithMinSectionLength(m.MinSectionLength),
		match.WithWindow(v.WindowLength, v.Overlap),
		match.WithSectionConfig(section.Config{
			PitchTolerance:  m.PitchTolerance,
			OctaveTolerance: m.OctaveTolerance,
			DeviationRun:    m.DeviationRun,
			History:         m.History,
		}),
		match.WithMaxFactor(m.MaxFactor),
		match.WithStrategy(s),
		match.WithLogger(logger),
	}

	env, err := v.Envelope()
	if err != nil {
		return nil, err
	}
	if env == nil {
		if env, err = window.Ones(v.WindowLength); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}
	return append(opts, match.WithEnvelope(env)), nil
}
