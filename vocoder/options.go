package vocoder

import (
	"log/slog"

	"github.com/cwbudde/algo-pitch/dsp/fft"
	"github.com/cwbudde/algo-pitch/dsp/interp"
)

type config struct {
	strategy     fft.Strategy
	forceLength  bool
	resampleMode interp.Mode
	logger       *slog.Logger
}

func defaultConfig() config {
	return config{
		strategy:     fft.StrategyRecursive,
		resampleMode: interp.ModeLinear,
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	return cfg
}

// Option configures Stretch and PitchShift.
type Option func(*config)

// WithStrategy selects the FFT backend.
func WithStrategy(s fft.Strategy) Option {
	return func(c *config) {
		c.strategy = s
	}
}

// WithForceLength makes PitchShift return exactly as many samples as it was
// given.
func WithForceLength(force bool) Option {
	return func(c *config) {
		c.forceLength = force
	}
}

// WithResampleMode selects the interpolation kernel PitchShift resamples
// with. The default is linear.
func WithResampleMode(m interp.Mode) Option {
	return func(c *config) {
		c.resampleMode = m
	}
}

// WithLogger sets the logger for debug records. A nil logger discards.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}
