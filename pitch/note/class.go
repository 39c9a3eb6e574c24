package note

import (
	"fmt"
	"math"
	"strings"
)

// PitchClass is a note name independent of octave, 0 = C through 11 = B.
type PitchClass int

// String returns the sharp spelling of p.
func (p PitchClass) String() string {
	return names[mod(int(p), 12)]
}

// Class returns the pitch class of the semitone nearest to freq.
func Class(freq float64) PitchClass {
	return PitchClass(mod(int(math.Round(FreqToMIDI(freq))), 12))
}

var letterClass = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// parseClassPrefix reads a letter with optional accidentals from the start of
// s and returns the remainder.
func parseClassPrefix(s string) (PitchClass, string, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, "", fmt.Errorf("%w: %q", ErrInvalidName, s)
	}
	base, ok := letterClass[strings.ToUpper(t[:1])[0]]
	if !ok {
		return 0, "", fmt.Errorf("%w: %q", ErrInvalidName, s)
	}

	i := 1
	for ; i < len(t); i++ {
		switch t[i] {
		case '#':
			base++
		case 'b':
			base--
		default:
			return PitchClass(base), t[i:], nil
		}
	}
	return PitchClass(base), t[i:], nil
}

// ParsePitchClass parses a name such as "C", "f#" or "Bb". Octave numbers
// are not allowed.
func ParsePitchClass(s string) (PitchClass, error) {
	pc, rest, err := parseClassPrefix(s)
	if err != nil {
		return 0, err
	}
	if rest != "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidName, s)
	}
	return PitchClass(mod(int(pc), 12)), nil
}

// ParsePitchClasses parses a comma-separated list such as "C,D,F#".
// An empty string yields an empty set.
func ParsePitchClasses(s string) ([]PitchClass, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	out := make([]PitchClass, 0, len(parts))
	for _, p := range parts {
		pc, err := ParsePitchClass(p)
		if err != nil {
			return nil, err
		}
		out = append(out, pc)
	}
	return out, nil
}

// NearestAllowed returns the frequency of the semitone closest to freq whose
// pitch class is in allowed, searching every octave. An empty allowed set
// falls back to Nearest. Ties resolve to the lower semitone.
func NearestAllowed(freq float64, allowed []PitchClass) float64 {
	if len(allowed) == 0 {
		return Nearest(freq)
	}

	m := FreqToMIDI(freq)
	base := math.Round(m)
	bestMIDI := 0.0
	bestDist := math.Inf(1)
	// Any pitch class occurs within six semitones of the nearest one.
	for off := -6.0; off <= 6; off++ {
		cand := base + off
		if !contains(allowed, PitchClass(mod(int(cand), 12))) {
			continue
		}
		if d := math.Abs(cand - m); d < bestDist {
			bestDist = d
			bestMIDI = cand
		}
	}
	return MIDIToFreq(bestMIDI)
}

func contains(set []PitchClass, p PitchClass) bool {
	for _, q := range set {
		if mod(int(q), 12) == int(p) {
			return true
		}
	}
	return false
}
