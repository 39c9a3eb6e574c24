package note

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

const (
	// A4 is the reference tuning frequency in Hz.
	A4 = 440.0
	// A4MIDI is the MIDI number of A4.
	A4MIDI = 69
)

// ErrInvalidName is returned when a note or pitch-class name cannot be parsed.
var ErrInvalidName = errors.New("note: invalid note name")

var names = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// FreqToMIDI returns the fractional MIDI note number of freq.
func FreqToMIDI(freq float64) float64 {
	return A4MIDI + 12*math.Log2(freq/A4)
}

// MIDIToFreq returns the frequency of a (possibly fractional) MIDI number.
func MIDIToFreq(midi float64) float64 {
	return A4 * math.Exp2((midi-A4MIDI)/12)
}

// SemitoneDistance returns the signed distance from b to a in semitones.
func SemitoneDistance(a, b float64) float64 {
	return 12 * math.Log2(a/b)
}

// Name returns the note name of the nearest semitone, e.g. "A4" or "C#3".
func Name(freq float64) string {
	return MIDIName(int(math.Round(FreqToMIDI(freq))))
}

// MIDIName returns the note name of an integer MIDI number.
func MIDIName(midi int) string {
	octave := floorDiv(midi, 12) - 1
	return names[mod(midi, 12)] + strconv.Itoa(octave)
}

// Cents returns the signed deviation of freq from its nearest semitone,
// rounded to whole cents, in [-50, 50].
func Cents(freq float64) int {
	m := FreqToMIDI(freq)
	return int(math.Round((m - math.Round(m)) * 100))
}

// Info renders freq as "440.00Hz - A4 + 0cents".
func Info(freq float64) string {
	c := Cents(freq)
	sign := "+"
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%.2fHz - %s %s %dcents", freq, Name(freq), sign, c)
}

// Nearest returns the frequency of the equal-tempered semitone closest to freq.
func Nearest(freq float64) float64 {
	return MIDIToFreq(math.Round(FreqToMIDI(freq)))
}

// ParseName parses a note name such as "A4", "c#3", "Bb2" or "F#-1" and
// returns its MIDI number.
func ParseName(s string) (int, error) {
	pc, rest, err := parseClassPrefix(s)
	if err != nil {
		return 0, err
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidName, s)
	}
	return (octave+1)*12 + int(pc), nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
