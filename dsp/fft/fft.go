package fft

import (
	"errors"
	"fmt"
	"math/bits"
	"math/cmplx"
	"strings"
)

var (
	// ErrEmpty indicates a zero-length transform input.
	ErrEmpty = errors.New("fft: empty input")
	// ErrNotPowerOfTwo indicates an input length that is not a power of two.
	ErrNotPowerOfTwo = errors.New("fft: length is not a power of two")
	// ErrUnknownStrategy indicates an unrecognized backend.
	ErrUnknownStrategy = errors.New("fft: unknown strategy")
)

// Strategy selects the transform backend.
type Strategy int

const (
	// StrategyRecursive is the in-package radix-2 transform.
	StrategyRecursive Strategy = iota
	// StrategyAlgoFFT uses pooled algo-fft plans.
	StrategyAlgoFFT
	// StrategyGoDSP uses the go-dsp transform.
	StrategyGoDSP
	// StrategyGonum uses gonum's FFTPACK port.
	StrategyGonum
)

var strategyNames = map[Strategy]string{
	StrategyRecursive: "recursive",
	StrategyAlgoFFT:   "algofft",
	StrategyGoDSP:     "godsp",
	StrategyGonum:     "gonum",
}

// String returns the configuration name of s.
func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}

	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Strategies returns all known strategies in declaration order.
func Strategies() []Strategy {
	return []Strategy{StrategyRecursive, StrategyAlgoFFT, StrategyGoDSP, StrategyGonum}
}

// ParseStrategy resolves a configuration name. The empty string selects
// StrategyRecursive.
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return StrategyRecursive, nil
	}

	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Mode selects how many bins a forward transform returns.
type Mode int

const (
	// Half returns bins 0..N/2 (N/2+1 values), the conjugate-symmetric half
	// of a real signal's spectrum.
	Half Mode = iota
	// Full returns all N bins.
	Full
)

// Forward transforms x using strategy s. The input is not modified.
func Forward(x []complex128, s Strategy, mode Mode) ([]complex128, error) {
	if err := validateLength(len(x)); err != nil {
		return nil, err
	}

	var (
		out []complex128
		err error
	)

	switch s {
	case StrategyRecursive:
		out = recursive(x)
	case StrategyAlgoFFT:
		out, err = algoForward(x)
	case StrategyGoDSP:
		out = goDSPForward(x)
	case StrategyGonum:
		out = gonumForward(x)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}

	if err != nil {
		return nil, err
	}

	if mode == Half {
		out = out[:len(out)/2+1]
	}

	return out, nil
}

// ForwardReal transforms a real signal using strategy s.
func ForwardReal(x []float64, s Strategy, mode Mode) ([]complex128, error) {
	if err := validateLength(len(x)); err != nil {
		return nil, err
	}

	in := make([]complex128, len(x))
	for i, v := range x {
		in[i] = complex(v, 0)
	}

	return Forward(in, s, mode)
}

// Inverse returns the inverse transform of a full N-bin spectrum: the input
// is conjugated, forward transformed, conjugated again and divided by N.
func Inverse(bins []complex128, s Strategy) ([]complex128, error) {
	if err := validateLength(len(bins)); err != nil {
		return nil, err
	}

	conj := make([]complex128, len(bins))
	for i, b := range bins {
		conj[i] = cmplx.Conj(b)
	}

	out, err := Forward(conj, s, Full)
	if err != nil {
		return nil, err
	}

	n := complex(float64(len(bins)), 0)
	for i, v := range out {
		out[i] = cmplx.Conj(v) / n
	}

	return out, nil
}

// InverseReal inverts a half spectrum (N/2+1 bins) of a real signal of
// length n and returns the real part of the result.
func InverseReal(half []complex128, n int, s Strategy) ([]float64, error) {
	if err := validateLength(n); err != nil {
		return nil, err
	}

	if len(half) != n/2+1 {
		return nil, fmt.Errorf("fft: half spectrum has %d bins, want %d", len(half), n/2+1)
	}

	full := Mirror(half, n)

	out, err := Inverse(full, s)
	if err != nil {
		return nil, err
	}

	re := make([]float64, n)
	for i, v := range out {
		re[i] = real(v)
	}

	return re, nil
}

// Mirror expands a half spectrum into the full conjugate-symmetric spectrum
// of length n. DC and Nyquist bins are forced real.
func Mirror(half []complex128, n int) []complex128 {
	full := make([]complex128, n)
	copy(full, half)

	if n == 1 {
		return full
	}

	full[0] = complex(real(full[0]), 0)
	full[n/2] = complex(real(full[n/2]), 0)

	for k := 1; k < n/2; k++ {
		full[n-k] = cmplx.Conj(half[k])
	}

	return full
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// LargestPowerOfTwo returns the largest power of two <= n, or 0 for n < 1.
func LargestPowerOfTwo(n int) int {
	if n < 1 {
		return 0
	}

	return 1 << (bits.Len(uint(n)) - 1)
}

// NextPowerOfTwo returns the smallest power of two >= n.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}

	return 1 << bits.Len(uint(n-1))
}

// Truncate returns the largest power-of-two prefix of x. The result shares
// memory with x.
func Truncate(x []float64) []float64 {
	return x[:LargestPowerOfTwo(len(x))]
}

// Pad returns a copy of x zero-padded to the next power of two.
func Pad(x []float64) []float64 {
	out := make([]float64, NextPowerOfTwo(len(x)))
	copy(out, x)

	return out
}

func validateLength(n int) error {
	if n == 0 {
		return ErrEmpty
	}

	if !IsPowerOfTwo(n) {
		return fmt.Errorf("%w: %d", ErrNotPowerOfTwo, n)
	}

	return nil
}
