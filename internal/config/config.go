// Package config provides the YAML run configuration of pitchctl and turns
// it into detectors and library options.
package config

import (
	"log/slog"

	"github.com/cwbudde/algo-pitch/pitch/detect"
	"github.com/cwbudde/algo-pitch/pitch/profile"
	"github.com/cwbudde/algo-pitch/pitch/section"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Level maps l to a slog level. Unknown levels map to info.
func (l LogLevel) Level() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Config is the root configuration. It is typically loaded from a YAML file
// using [Load] or [LoadFromReader]; fields left out keep their [Default]
// values.
type Config struct {
	LogLevel LogLevel       `yaml:"log_level"`
	Detector DetectorConfig `yaml:"detector"`
	Profile  ProfileConfig  `yaml:"profile"`
	Vocoder  VocoderConfig  `yaml:"vocoder"`
	Match    MatchConfig    `yaml:"match"`
	Cache    CacheConfig    `yaml:"cache"`
}

// DetectorConfig selects and parameterises the pitch detector.
type DetectorConfig struct {
	// Algorithm is a detector identifier, see detect.Algorithms.
	Algorithm string `yaml:"algorithm"`
	// Strategy is the FFT backend of the spectral detectors.
	Strategy string `yaml:"strategy"`
	// MinFreq and MaxFreq bound the expected fundamental in Hz.
	MinFreq float64 `yaml:"min_freq"`
	MaxFreq float64 `yaml:"max_freq"`
	// B is the AMDF difference exponent.
	B              float64 `yaml:"b"`
	PhaseRefine    bool    `yaml:"phase_refine"`
	NumDownsamples int     `yaml:"num_downsamples"`
	OctaveTrick    bool    `yaml:"octave_trick"`
	// Trim is the trimmed-mean proportion in [0, 1].
	Trim float64 `yaml:"trim"`
}

// ProfileConfig controls block analysis.
type ProfileConfig struct {
	BlockSize int `yaml:"block_size"`
	Overlap   int `yaml:"overlap"`
	// Window names the block envelope; "none" disables windowing.
	Window string `yaml:"window"`
	// Workers is the number of blocks analysed concurrently; <= 0 uses
	// every CPU.
	Workers int `yaml:"workers"`
	// Instrument narrows the detector range to a known instrument.
	Instrument string `yaml:"instrument"`
}

// VocoderConfig controls the phase vocoder.
type VocoderConfig struct {
	WindowLength int    `yaml:"window_length"`
	Overlap      int    `yaml:"overlap"`
	Window       string `yaml:"window"`
	Strategy     string `yaml:"strategy"`
	// ForceLength makes pitch shifts keep the exact input length.
	ForceLength bool `yaml:"force_length"`
}

// MatchConfig controls section compression and pitch matching.
type MatchConfig struct {
	// MinSectionLength is in samples; 0 selects two blocks plus one.
	MinSectionLength int     `yaml:"min_section_length"`
	PitchTolerance   float64 `yaml:"pitch_tolerance"`
	OctaveTolerance  float64 `yaml:"octave_tolerance"`
	DeviationRun     int     `yaml:"deviation_run"`
	// History bounds the running-median window; negative keeps a whole
	// section.
	History          int     `yaml:"history"`
	MaxFactor        float64 `yaml:"max_factor"`
}

// CacheConfig locates the analysed-profile cache.
type CacheConfig struct {
	// Path is the SQLite database file. Empty disables caching.
	Path string `yaml:"path"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	dp := detect.DefaultParams()
	sc := section.DefaultConfig()
	return &Config{
		LogLevel: LogInfo,
		Detector: DetectorConfig{
			Algorithm:      detect.AlgorithmMedian.String(),
			Strategy:       dp.Strategy.String(),
			MinFreq:        dp.Range.Min,
			MaxFreq:        dp.Range.Max,
			B:              dp.B,
			NumDownsamples: dp.NumDownsamples,
			Trim:           dp.Trim,
		},
		Profile: ProfileConfig{
			BlockSize: profile.DefaultBlockSize,
			Window:    "none",
			Workers:   1,
		},
		Vocoder: VocoderConfig{
			WindowLength: 1024,
			Overlap:      768,
			Window:       "hann",
			Strategy:     dp.Strategy.String(),
			ForceLength:  true,
		},
		Match: MatchConfig{
			PitchTolerance:  sc.PitchTolerance,
			OctaveTolerance: sc.OctaveTolerance,
			DeviationRun:    sc.DeviationRun,
			History:         sc.History,
			MaxFactor:       4,
		},
	}
}
