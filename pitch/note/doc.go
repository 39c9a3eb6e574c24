// Package note converts between frequencies, MIDI note numbers, note names
// and cents, and snaps frequencies to the nearest equal-tempered semitone.
//
// Tuning is A4 = 440 Hz (MIDI 69). Octave numbering follows scientific pitch
// notation, so middle C is C4 (MIDI 60).
package note
