package note

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cwbudde/algo-pitch/pitch"
)

// ErrUnknownInstrument is returned by InstrumentRange for unlisted names.
var ErrUnknownInstrument = errors.New("note: unknown instrument")

// Fundamental ranges of common instruments, padded by 250 cents on either
// side to absorb bin-resolution error in the detectors.
var instrumentRanges = map[string]pitch.Range{
	"piano":       {Min: 23.8, Max: 4836.32},
	"guitar":      {Min: 71.33, Max: 1523.34},
	"cello":       {Min: 56.51, Max: 1016.71},
	"violin":      {Min: 169.64, Max: 4066.84},
	"voice":       {Min: 75.57, Max: 1016.71},
	"bass guitar": {Min: 35.66, Max: 761.67},
	"trumpet":     {Min: 160.12, Max: 1357.15},
}

// InstrumentRange returns the padded fundamental range of a named
// instrument. Names are case-insensitive; "bass-guitar" and "bass_guitar"
// are accepted as aliases.
func InstrumentRange(name string) (pitch.Range, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("-", " ", "_", " ").Replace(key)
	r, ok := instrumentRanges[key]
	if !ok {
		return pitch.Range{}, fmt.Errorf("%w: %q", ErrUnknownInstrument, name)
	}
	return r, nil
}

// Instruments returns the known instrument names in sorted order.
func Instruments() []string {
	out := make([]string, 0, len(instrumentRanges))
	for k := range instrumentRanges {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
