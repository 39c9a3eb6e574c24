package interp

import "math"

// Mode selects the interpolation kernel used by At.
type Mode int

const (
	// ModeLinear is 2-point linear interpolation.
	ModeLinear Mode = iota
	// ModeHermite is 4-point cubic Hermite interpolation.
	ModeHermite
)

// String returns the kernel name.
func (m Mode) String() string {
	switch m {
	case ModeLinear:
		return "linear"
	case ModeHermite:
		return "hermite"
	default:
		return "unknown"
	}
}

// Linear interpolates between x0 and x1 at frac in [0,1].
func Linear(frac, x0, x1 float64) float64 {
	return x0 + frac*(x1-x0)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}

// At evaluates samples at fractional position pos. Neighbours outside the
// slice are clamped to the first or last sample. An empty slice yields 0.
func At(samples []float64, pos float64, mode Mode) float64 {
	n := len(samples)
	if n == 0 {
		return 0
	}

	i := int(math.Floor(pos))
	frac := pos - float64(i)
	at := func(k int) float64 {
		return samples[min(max(k, 0), n-1)]
	}

	if mode == ModeHermite {
		return Hermite4(frac, at(i-1), at(i), at(i+1), at(i+2))
	}
	return Linear(frac, at(i), at(i+1))
}
