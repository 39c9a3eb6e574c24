package spectrum

import (
	"math"
	"math/cmplx"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

func split(in []complex128) (re, im []float64, buf *scratchBuf) {
	re, im, buf = getScratch(len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return re, im, buf
}

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// Scratch buffers are pooled internally, so in steady state this allocates
// only the output slice.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := split(in)
	vecmath.Magnitude(out, re, im)
	putScratch(buf)
	return out
}

// Power returns |X[k]|^2 for each complex spectrum bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := split(in)
	vecmath.Power(out, re, im)
	putScratch(buf)
	return out
}

// Phase returns arg(X[k]) in radians for each complex spectrum bin.
func Phase(in []complex128) []float64 {
	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = cmplx.Phase(c)
	}
	return out
}

// LogMagnitude returns the natural log of each magnitude. Zero magnitudes map
// to -Inf instead of producing an error.
func LogMagnitude(mags []float64) []float64 {
	out := make([]float64, len(mags))
	for i, m := range mags {
		if m <= 0 {
			out[i] = math.Inf(-1)
			continue
		}
		out[i] = math.Log(m)
	}
	return out
}

// BinFrequencies returns the centre frequency i*sampleRate/fftSize of the
// first bins bins.
func BinFrequencies(bins, fftSize int, sampleRate float64) []float64 {
	out := make([]float64, bins)
	step := sampleRate / float64(fftSize)
	for i := range out {
		out[i] = float64(i) * step
	}
	return out
}

// WrapPhase maps x into [-π, π).
func WrapPhase(x float64) float64 {
	x = math.Mod(x+math.Pi, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}

	return x - math.Pi
}
