package note

import (
	"errors"
	"math"
	"testing"
)

func TestFreqMIDIRoundTrip(t *testing.T) {
	if got := FreqToMIDI(440); got != 69 {
		t.Fatalf("FreqToMIDI(440) = %v, want 69", got)
	}
	if got := FreqToMIDI(880); math.Abs(got-81) > 1e-12 {
		t.Fatalf("FreqToMIDI(880) = %v, want 81", got)
	}
	for _, m := range []float64{21, 60, 60.5, 108} {
		if got := FreqToMIDI(MIDIToFreq(m)); math.Abs(got-m) > 1e-9 {
			t.Fatalf("round trip %v = %v", m, got)
		}
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		freq float64
		want string
	}{
		{440, "A4"},
		{261.63, "C4"},
		{277.18, "C#4"},
		{82.41, "E2"},
		{4186.01, "C8"},
		{27.5, "A0"},
		{450, "A4"},
	}
	for _, tt := range tests {
		if got := Name(tt.freq); got != tt.want {
			t.Fatalf("Name(%v) = %q, want %q", tt.freq, got, tt.want)
		}
	}
	if got := MIDIName(0); got != "C-1" {
		t.Fatalf("MIDIName(0) = %q, want C-1", got)
	}
}

func TestCentsAndInfo(t *testing.T) {
	if got := Cents(440); got != 0 {
		t.Fatalf("Cents(440) = %d, want 0", got)
	}
	sharp := MIDIToFreq(69.3)
	if got := Cents(sharp); got != 30 {
		t.Fatalf("Cents(+30) = %d, want 30", got)
	}
	flat := MIDIToFreq(68.8)
	if got := Cents(flat); got != -20 {
		t.Fatalf("Cents(-20) = %d, want -20", got)
	}

	if got := Info(440); got != "440.00Hz - A4 + 0cents" {
		t.Fatalf("Info(440) = %q", got)
	}
	if got := Info(flat); got != "434.95Hz - A4 - 20cents" {
		t.Fatalf("Info(flat) = %q", got)
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"A4", 69},
		{"F#2", 42},
		{"c4", 60},
		{"Bb3", 58},
		{"C-1", 0},
		{"B#3", 60},
	}
	for _, tt := range tests {
		got, err := ParseName(tt.in)
		if err != nil || got != tt.want {
			t.Fatalf("ParseName(%q) = %d, %v, want %d", tt.in, got, err, tt.want)
		}
	}

	for _, bad := range []string{"", "H2", "A", "A#x"} {
		if _, err := ParseName(bad); !errors.Is(err, ErrInvalidName) {
			t.Fatalf("ParseName(%q) error = %v, want ErrInvalidName", bad, err)
		}
	}
}

func TestParsePitchClasses(t *testing.T) {
	got, err := ParsePitchClasses("C, D ,F#,Bb")
	if err != nil {
		t.Fatal(err)
	}
	want := []PitchClass{0, 2, 6, 10}
	if len(got) != len(want) {
		t.Fatalf("ParsePitchClasses() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("class %d = %v, want %v", i, got[i], want[i])
		}
	}

	if set, err := ParsePitchClasses(""); err != nil || len(set) != 0 {
		t.Fatalf("ParsePitchClasses(\"\") = %v, %v", set, err)
	}
	if _, err := ParsePitchClasses("C,X"); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("error = %v, want ErrInvalidName", err)
	}
	if _, err := ParsePitchClass("C4"); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("ParsePitchClass(C4) error = %v, want ErrInvalidName", err)
	}
	if got := PitchClass(6).String(); got != "F#" {
		t.Fatalf("String() = %q, want F#", got)
	}
	if got := Class(440); got != 9 {
		t.Fatalf("Class(440) = %v, want A", got)
	}
}

func TestNearest(t *testing.T) {
	if got := Nearest(445); got != 440 {
		t.Fatalf("Nearest(445) = %v, want 440", got)
	}
	if got := Nearest(MIDIToFreq(69.6)); math.Abs(got-MIDIToFreq(70)) > 1e-9 {
		t.Fatalf("Nearest(69.6) = %v, want A#4", got)
	}
}

func TestNearestAllowed(t *testing.T) {
	cMajorTriad := []PitchClass{0, 4, 7}

	tests := []struct {
		name string
		midi float64
		want float64
	}{
		{name: "exact member", midi: 64, want: 64},
		{name: "between D and E", midi: 62.6, want: 64},
		{name: "below C", midi: 59.2, want: 60},
		{name: "across octave", midi: 70.8, want: 72},
		{name: "tie resolves low", midi: 62, want: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NearestAllowed(MIDIToFreq(tt.midi), cMajorTriad)
			if math.Abs(FreqToMIDI(got)-tt.want) > 1e-9 {
				t.Fatalf("NearestAllowed() = MIDI %v, want %v", FreqToMIDI(got), tt.want)
			}
		})
	}

	if got := NearestAllowed(445, nil); got != Nearest(445) {
		t.Fatalf("NearestAllowed(nil) = %v, want %v", got, Nearest(445))
	}
}

func TestInstrumentRange(t *testing.T) {
	r, err := InstrumentRange("Bass-Guitar")
	if err != nil {
		t.Fatal(err)
	}
	if r.Min != 35.66 || r.Max != 761.67 {
		t.Fatalf("InstrumentRange() = %v", r)
	}
	if _, err := InstrumentRange("kazoo"); !errors.Is(err, ErrUnknownInstrument) {
		t.Fatalf("error = %v, want ErrUnknownInstrument", err)
	}
	if got := len(Instruments()); got != 7 {
		t.Fatalf("len(Instruments()) = %d, want 7", got)
	}
}
