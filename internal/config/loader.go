package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-pitch/dsp/fft"
	"github.com/cwbudde/algo-pitch/dsp/window"
	"github.com/cwbudde/algo-pitch/pitch"
	"github.com/cwbudde/algo-pitch/pitch/detect"
	"github.com/cwbudde/algo-pitch/pitch/note"
)

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r over [Default] and validates
// the result. Unknown keys are an error.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	d := cfg.Detector
	if _, err := detect.ParseAlgorithm(d.Algorithm); err != nil {
		errs = append(errs, fmt.Errorf("detector.algorithm: %w", err))
	}
	if _, err := fft.ParseStrategy(d.Strategy); err != nil {
		errs = append(errs, fmt.Errorf("detector.strategy: %w", err))
	}
	if r := (pitch.Range{Min: d.MinFreq, Max: d.MaxFreq}); r != (pitch.Range{}) && !r.Valid() {
		errs = append(errs, fmt.Errorf("detector range %v is invalid", r))
	}
	if d.Trim < 0 || d.Trim > 1 {
		errs = append(errs, fmt.Errorf("detector.trim %.2f is out of range [0, 1]", d.Trim))
	}
	if d.NumDownsamples < 0 {
		errs = append(errs, fmt.Errorf("detector.num_downsamples %d must not be negative", d.NumDownsamples))
	}
	if d.B < 0 {
		errs = append(errs, fmt.Errorf("detector.b %.2f must not be negative", d.B))
	}

	p := cfg.Profile
	if p.BlockSize <= 0 {
		errs = append(errs, fmt.Errorf("profile.block_size %d must be positive", p.BlockSize))
	}
	if p.Overlap < 0 || (p.BlockSize > 0 && p.Overlap >= p.BlockSize) {
		errs = append(errs, fmt.Errorf("profile.overlap %d is out of range [0, %d)", p.Overlap, p.BlockSize))
	}
	if _, err := window.ParseType(p.Window); err != nil {
		errs = append(errs, fmt.Errorf("profile.window: %w", err))
	}
	if p.Instrument != "" {
		if _, err := note.InstrumentRange(p.Instrument); err != nil {
			errs = append(errs, fmt.Errorf("profile.instrument: %w", err))
		}
	}

	v := cfg.Vocoder
	if !fft.IsPowerOfTwo(v.WindowLength) {
		errs = append(errs, fmt.Errorf("vocoder.window_length %d must be a power of two", v.WindowLength))
	}
	if v.Overlap < 0 || v.Overlap >= v.WindowLength {
		errs = append(errs, fmt.Errorf("vocoder.overlap %d is out of range [0, %d)", v.Overlap, v.WindowLength))
	}
	if _, err := window.ParseType(v.Window); err != nil {
		errs = append(errs, fmt.Errorf("vocoder.window: %w", err))
	}
	if _, err := fft.ParseStrategy(v.Strategy); err != nil {
		errs = append(errs, fmt.Errorf("vocoder.strategy: %w", err))
	}

	m := cfg.Match
	if m.MinSectionLength < 0 {
		errs = append(errs, fmt.Errorf("match.min_section_length %d must not be negative", m.MinSectionLength))
	}
	if m.PitchTolerance < 0 || m.OctaveTolerance < 0 {
		errs = append(errs, errors.New("match tolerances must not be negative"))
	}
	if m.DeviationRun < 0 {
		errs = append(errs, fmt.Errorf("match.deviation_run %d must not be negative", m.DeviationRun))
	}
	if m.MaxFactor != 0 && m.MaxFactor <= 1 {
		errs = append(errs, fmt.Errorf("match.max_factor %.2f must be greater than 1", m.MaxFactor))
	}

	return errors.Join(errs...)
}
