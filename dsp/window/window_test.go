package window

import (
	"errors"
	"math"
	"testing"
)

func TestGenerateAllTypes(t *testing.T) {
	for _, typ := range Types() {
		t.Run(typ.String(), func(t *testing.T) {
			w, err := Generate(typ, 64)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}

			for i, v := range w {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("coefficient[%d] invalid: %v", i, v)
				}
			}
			for i := range 32 {
				if !almostEqual(w[i], w[63-i], 1e-12) {
					t.Fatalf("window not symmetric at %d: %v vs %v", i, w[i], w[63-i])
				}
			}
		})
	}
}

func TestGenerateSizeOne(t *testing.T) {
	for _, typ := range Types() {
		w, err := Generate(typ, 1)
		if err != nil || len(w) != 1 || w[0] != 1 {
			t.Fatalf("Generate(%v, 1) = %v, %v, want [1]", typ, w, err)
		}
	}
}

func TestGoldenHann(t *testing.T) {
	w, err := Hann(5)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 0.5, 1, 0.5, 0}
	for i := range want {
		if !almostEqual(w[i], want[i], 1e-12) {
			t.Fatalf("Hann[%d] = %v, want %v", i, w[i], want[i])
		}
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"hann", TypeHann},
		{"HANNING", TypeHann},
		{"", TypeRectangular},
		{"none", TypeRectangular},
		{"Blackman", TypeBlackman},
		{"flattop", TypeFlatTop},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.in)
		if err != nil || got != tt.want {
			t.Fatalf("ParseType(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}

	if _, err := ParseType("kaiser"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("ParseType(kaiser) error = %v, want ErrUnknownType", err)
	}
}

func TestApplyCoefficientsHelpers(t *testing.T) {
	out, err := ApplyCoefficients([]float64{1, 2, 3}, []float64{0.5, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0.5, 2, 6}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("ApplyCoefficients[%d] = %v, want %v", i, out[i], want[i])
		}
	}

	if _, err := ApplyCoefficients([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected length mismatch error")
	}
	if err := ApplyCoefficientsInPlace([]float64{1}, nil); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestValidation(t *testing.T) {
	if _, err := Generate(TypeHann, 0); err == nil {
		t.Fatal("expected error for zero size")
	}
	if _, err := Generate(Type(99), 8); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("error = %v, want ErrUnknownType", err)
	}
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
