package spectrum

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// BinRange returns the inclusive index range [first, last] of bins whose
// centre frequency i*sampleRate/fftSize lies in [minHz, maxHz], clamped to
// [0, bins-1]. ok is false when no bin qualifies.
func BinRange(bins, fftSize int, sampleRate, minHz, maxHz float64) (first, last int, ok bool) {
	if bins <= 0 || fftSize <= 0 || sampleRate <= 0 || maxHz < minHz {
		return 0, 0, false
	}

	step := sampleRate / float64(fftSize)
	first = max(int(math.Ceil(minHz/step)), 0)
	last = min(int(math.Floor(maxHz/step)), bins-1)

	if first > last {
		return 0, 0, false
	}
	return first, last, true
}

// ArgMax returns the index of the largest value in values[first:last+1].
// Ties resolve to the lowest index.
func ArgMax(values []float64, first, last int) int {
	return first + floats.MaxIdx(values[first:last+1])
}

// ArgMaxFinite is ArgMax restricted to finite values. ok is false when the
// range holds no finite value.
func ArgMaxFinite(values []float64, first, last int) (idx int, ok bool) {
	best := math.Inf(-1)
	idx = -1
	for i := first; i <= last; i++ {
		v := values[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if idx < 0 || v > best {
			best = v
			idx = i
		}
	}
	return idx, idx >= 0
}

// Peak is a local maximum of a spectrum-like array.
type Peak struct {
	Bin   int
	Value float64
}

// PeaksInRange returns the local maxima of values[first:last+1] sorted by
// descending value. Range endpoints count as peaks when they exceed their
// only in-range neighbour.
func PeaksInRange(values []float64, first, last int) []Peak {
	var peaks []Peak
	for i := first; i <= last; i++ {
		v := values[i]
		if i > first && values[i-1] >= v {
			continue
		}
		if i < last && values[i+1] > v {
			continue
		}
		peaks = append(peaks, Peak{Bin: i, Value: v})
	}

	sort.SliceStable(peaks, func(a, b int) bool { return peaks[a].Value > peaks[b].Value })
	return peaks
}
