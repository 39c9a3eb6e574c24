package profile

import (
	"log/slog"

	"github.com/cwbudde/algo-pitch/pitch"
)

// DefaultBlockSize is the number of samples per analysis block.
const DefaultBlockSize = 2048

type config struct {
	name       string
	location   string
	blockSize  int
	overlap    int
	window     []float64
	workers    int
	instrument string
	expected   *pitch.Range
	logger     *slog.Logger
}

func defaultConfig() config {
	return config{
		blockSize: DefaultBlockSize,
		workers:   1,
	}
}

// Option configures a Profile.
type Option func(*config)

// WithName sets the display name used in the log summary and cache keys.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithLocation records where the signal came from, typically a file path.
// The name defaults to the last path element of the location.
func WithLocation(location string) Option {
	return func(c *config) {
		c.location = location
	}
}

// WithBlockSize sets the number of samples per block. Values <= 0 are
// rejected by New.
func WithBlockSize(n int) Option {
	return func(c *config) {
		c.blockSize = n
	}
}

// WithOverlap sets the number of samples consecutive blocks share.
func WithOverlap(n int) Option {
	return func(c *config) {
		c.overlap = n
	}
}

// WithWindow multiplies every block by env, which must have blockSize
// entries.
func WithWindow(env []float64) Option {
	return func(c *config) {
		c.window = append([]float64(nil), env...)
	}
}

// WithWorkers sets how many blocks are analysed concurrently. Values <= 0
// select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithInstrument restricts the detector to the padded fundamental range of
// a named instrument. It takes precedence over WithExpectedRange.
func WithInstrument(name string) Option {
	return func(c *config) {
		c.instrument = name
	}
}

// WithExpectedRange restricts the detector to r.
func WithExpectedRange(r pitch.Range) Option {
	return func(c *config) {
		c.expected = &r
	}
}

// WithLogger sets the logger for analysis records. A nil logger discards
// them.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}
