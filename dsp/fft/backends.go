package fft

import (
	"fmt"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	dspfft "github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// planPools caches algo-fft plans per transform size. A plan owns scratch
// memory, so each goroutine checks one out of the pool.
var planPools sync.Map // int -> *sync.Pool

func planPool(n int) *sync.Pool {
	if p, ok := planPools.Load(n); ok {
		return p.(*sync.Pool)
	}

	p, _ := planPools.LoadOrStore(n, &sync.Pool{})

	return p.(*sync.Pool)
}

func algoForward(x []complex128) ([]complex128, error) {
	pool := planPool(len(x))

	plan, _ := pool.Get().(*algofft.Plan[complex128])
	if plan == nil {
		var err error

		plan, err = algofft.NewPlan64(len(x))
		if err != nil {
			return nil, fmt.Errorf("fft: failed to create plan of size %d: %w", len(x), err)
		}
	}
	defer pool.Put(plan)

	out := make([]complex128, len(x))
	if err := plan.Forward(out, x); err != nil {
		return nil, fmt.Errorf("fft: forward transform failed: %w", err)
	}

	return out, nil
}

func goDSPForward(x []complex128) []complex128 {
	return dspfft.FFT(x)
}

func gonumForward(x []complex128) []complex128 {
	return fourier.NewCmplxFFT(len(x)).Coefficients(nil, x)
}
