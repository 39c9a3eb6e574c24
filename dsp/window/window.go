package window

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-vecmath"
	dspwindow "github.com/mjibson/go-dsp/window"
)

// Type identifies a window function.
type Type int

const (
	// TypeRectangular leaves the block unweighted.
	TypeRectangular Type = iota
	// TypeHann is the raised cosine with zero endpoints.
	TypeHann
	// TypeHamming is the raised cosine with 0.08 endpoints.
	TypeHamming
	// TypeBlackman is the three-term Blackman window.
	TypeBlackman
	// TypeBartlett is the triangular window.
	TypeBartlett
	// TypeFlatTop is the five-term flat-top window.
	TypeFlatTop
)

var typeNames = map[Type]string{
	TypeRectangular: "rectangular",
	TypeHann:        "hann",
	TypeHamming:     "hamming",
	TypeBlackman:    "blackman",
	TypeBartlett:    "bartlett",
	TypeFlatTop:     "flattop",
}

// String returns the lower-case name of t.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("window(%d)", int(t))
}

// Types lists every supported window type in declaration order.
func Types() []Type {
	return []Type{TypeRectangular, TypeHann, TypeHamming, TypeBlackman, TypeBartlett, TypeFlatTop}
}

// ParseType resolves a case-insensitive window name. "none" and the empty
// string select the rectangular window.
func ParseType(name string) (Type, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "", "none", "rect":
		return TypeRectangular, nil
	case "hanning":
		return TypeHann, nil
	}
	for t, s := range typeNames {
		if s == n {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

func generator(t Type) (func(int) []float64, bool) {
	switch t {
	case TypeRectangular:
		return dspwindow.Rectangular, true
	case TypeHann:
		return dspwindow.Hann, true
	case TypeHamming:
		return dspwindow.Hamming, true
	case TypeBlackman:
		return dspwindow.Blackman, true
	case TypeBartlett:
		return dspwindow.Bartlett, true
	case TypeFlatTop:
		return dspwindow.FlatTop, true
	default:
		return nil, false
	}
}

// Generate returns the symmetric window of the given type and size.
// A size-1 window is always [1].
func Generate(t Type, size int) ([]float64, error) {
	if err := validateLength(size); err != nil {
		return nil, err
	}
	gen, ok := generator(t)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, int(t))
	}
	if size == 1 {
		return []float64{1}, nil
	}
	return gen(size), nil
}

// Hann returns a symmetric Hann window.
func Hann(size int) ([]float64, error) {
	return Generate(TypeHann, size)
}

// Ones returns the rectangular window of the given size.
func Ones(size int) ([]float64, error) {
	return Generate(TypeRectangular, size)
}

// ApplyCoefficients multiplies samples by coeffs into a new slice.
func ApplyCoefficients(samples, coeffs []float64) ([]float64, error) {
	if len(samples) != len(coeffs) {
		return nil, errMismatchedLength
	}

	out := make([]float64, len(samples))
	vecmath.MulBlock(out, samples, coeffs)
	return out, nil
}

// ApplyCoefficientsInPlace multiplies samples by coeffs in place.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)
	return nil
}
