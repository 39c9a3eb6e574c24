package fft

import (
	"math"
	"math/cmplx"
)

// recursive computes the DFT of a power-of-two length input by splitting it
// into even and odd samples and combining the halves with twiddle factors
// e^{-2πik/N}. A length-1 input is its own transform.
func recursive(x []complex128) []complex128 {
	n := len(x)
	if n == 1 {
		return []complex128{x[0]}
	}

	half := n / 2
	even := make([]complex128, half)
	odd := make([]complex128, half)

	for i := range half {
		even[i] = x[2*i]
		odd[i] = x[2*i+1]
	}

	even = recursive(even)
	odd = recursive(odd)

	out := make([]complex128, n)
	for k := range half {
		t := cmplx.Rect(1, -2*math.Pi*float64(k)/float64(n)) * odd[k]
		out[k] = even[k] + t
		out[k+half] = even[k] - t
	}

	return out
}
