package pitch

import "testing"

func TestIsPartition(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		length  int
		want    bool
	}{
		{name: "empty", length: 0, want: true},
		{name: "empty nonzero", length: 5, want: false},
		{name: "contiguous", entries: []Entry{{0, 4, 1}, {4, 10, 2}}, length: 10, want: true},
		{name: "gap", entries: []Entry{{0, 4, 1}, {5, 10, 2}}, length: 10, want: false},
		{name: "short", entries: []Entry{{0, 4, 1}, {4, 9, 2}}, length: 10, want: false},
		{name: "late start", entries: []Entry{{1, 10, 1}}, length: 10, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPartition(tt.entries, tt.length); got != tt.want {
				t.Fatalf("IsPartition() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntryString(t *testing.T) {
	e := Entry{Start: 0, End: 2048, Freq: 440}
	if got := e.String(); got != "0-2048: 440.00Hz" {
		t.Fatalf("String() = %q", got)
	}
	if e.Len() != 2048 {
		t.Fatalf("Len() = %d, want 2048", e.Len())
	}
}
