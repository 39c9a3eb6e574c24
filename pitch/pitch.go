// Package pitch holds the types shared by the pitch analysis, section
// compression and pitch matching packages.
package pitch

import (
	"fmt"
	"math"
)

// Entry is a frequency estimate covering the half-open sample range
// [Start, End). Consecutive entries of one analysis partition the signal
// with End[i] == Start[i+1].
type Entry struct {
	Start int
	End   int
	Freq  float64
}

// Len returns the number of samples covered by e.
func (e Entry) Len() int {
	return e.End - e.Start
}

// String renders e as "start-end: freqHz".
func (e Entry) String() string {
	return fmt.Sprintf("%d-%d: %.2fHz", e.Start, e.End, e.Freq)
}

// IsPartition reports whether entries cover [0, length) without gaps or
// overlaps.
func IsPartition(entries []Entry, length int) bool {
	if len(entries) == 0 {
		return length == 0
	}
	if entries[0].Start != 0 || entries[len(entries)-1].End != length {
		return false
	}
	for i, e := range entries {
		if e.End < e.Start {
			return false
		}
		if i > 0 && entries[i-1].End != e.Start {
			return false
		}
	}
	return true
}

// Range is an expected fundamental-frequency interval in Hz.
type Range struct {
	Min float64
	Max float64
}

// DefaultRange spans the audible band.
var DefaultRange = Range{Min: 20, Max: 20000}

// Valid reports whether r is a positive, finite, non-empty interval.
func (r Range) Valid() bool {
	return r.Min > 0 && r.Max >= r.Min && !math.IsInf(r.Max, 0) && !math.IsNaN(r.Min) && !math.IsNaN(r.Max)
}

// Contains reports whether freq lies in [Min, Max].
func (r Range) Contains(freq float64) bool {
	return freq >= r.Min && freq <= r.Max
}

// String renders r as "min-maxHz".
func (r Range) String() string {
	return fmt.Sprintf("%.2f-%.2fHz", r.Min, r.Max)
}
