package interp

import "testing"

func TestHermite4IdentityOnLinearRamp(t *testing.T) {
	xm1, x0, x1, x2 := -1.0, 0.0, 1.0, 2.0
	for _, tc := range []struct {
		t float64
		w float64
	}{
		{t: 0.0, w: 0.0},
		{t: 0.25, w: 0.25},
		{t: 0.5, w: 0.5},
		{t: 1.0, w: 1.0},
	} {
		got := Hermite4(tc.t, xm1, x0, x1, x2)
		if diff := got - tc.w; diff < -1e-12 || diff > 1e-12 {
			t.Fatalf("t=%v: got %v want %v", tc.t, got, tc.w)
		}
	}
}

func TestLinear(t *testing.T) {
	if got := Linear(0.25, 2, 4); got != 2.5 {
		t.Fatalf("Linear() = %v, want 2.5", got)
	}
}

func TestAt(t *testing.T) {
	ramp := []float64{0, 1, 2, 3, 4}

	tests := []struct {
		name string
		pos  float64
		mode Mode
		want float64
	}{
		{name: "linear on sample", pos: 2, mode: ModeLinear, want: 2},
		{name: "linear between", pos: 1.5, mode: ModeLinear, want: 1.5},
		{name: "hermite between", pos: 2.25, mode: ModeHermite, want: 2.25},
		{name: "clamped end", pos: 4, mode: ModeLinear, want: 4},
		{name: "clamped past end", pos: 10, mode: ModeHermite, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := At(ramp, tt.pos, tt.mode)
			if diff := got - tt.want; diff < -1e-12 || diff > 1e-12 {
				t.Fatalf("At(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}

	if got := At(nil, 1, ModeLinear); got != 0 {
		t.Fatalf("At(nil) = %v, want 0", got)
	}
}
