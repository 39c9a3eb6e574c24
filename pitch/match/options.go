package match

import (
	"log/slog"

	"github.com/cwbudde/algo-pitch/dsp/fft"
	"github.com/cwbudde/algo-pitch/pitch/section"
)

const (
	// DefaultWindowLength is the vocoder frame length used per segment.
	DefaultWindowLength = 1024
	// DefaultOverlap is the vocoder frame overlap used per segment.
	DefaultOverlap = 768
	// DefaultMaxFactor bounds the shift applied to a segment. Segments
	// needing more than two octaves either way are copied unshifted.
	DefaultMaxFactor = 4.0
)

type config struct {
	minLen       int
	windowLength int
	overlap      int
	envelope     []float64
	sections     section.Config
	maxFactor    float64
	strategy     fft.Strategy
	logger       *slog.Logger
}

func defaultConfig() config {
	return config{
		windowLength: DefaultWindowLength,
		overlap:      DefaultOverlap,
		sections:     section.DefaultConfig(),
		maxFactor:    DefaultMaxFactor,
		strategy:     fft.StrategyRecursive,
	}
}

// Option configures Match and Correct.
type Option func(*config)

// WithMinSectionLength sets the shortest section, in samples, kept after
// compression. The default is two blocks plus one sample of the original
// profile.
func WithMinSectionLength(n int) Option {
	return func(c *config) {
		c.minLen = n
	}
}

// WithWindow sets the vocoder frame length and overlap used to shift each
// segment.
func WithWindow(length, overlap int) Option {
	return func(c *config) {
		c.windowLength = length
		c.overlap = overlap
	}
}

// WithEnvelope sets the vocoder analysis envelope. Its length must equal
// the window length. The default is a Hann window.
func WithEnvelope(env []float64) Option {
	return func(c *config) {
		c.envelope = env
	}
}

// WithSectionConfig overrides the section compression settings.
func WithSectionConfig(s section.Config) Option {
	return func(c *config) {
		c.sections = s
	}
}

// WithMaxFactor bounds the per-segment shift to [1/f, f]. Values <= 1 keep
// the default.
func WithMaxFactor(f float64) Option {
	return func(c *config) {
		if f > 1 {
			c.maxFactor = f
		}
	}
}

// WithStrategy selects the FFT backend of the vocoder.
func WithStrategy(s fft.Strategy) Option {
	return func(c *config) {
		c.strategy = s
	}
}

// WithLogger sets the logger receiving one debug record per segment.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}
