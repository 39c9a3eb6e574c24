package fft

import (
	"testing"

	"github.com/cwbudde/algo-pitch/internal/testutil"
)

func BenchmarkForwardReal2048(b *testing.B) {
	x := testutil.DeterministicNoise(1, 1, 2048)

	for _, s := range Strategies() {
		b.Run(s.String(), func(b *testing.B) {
			b.ReportAllocs()

			for range b.N {
				if _, err := ForwardReal(x, s, Half); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
