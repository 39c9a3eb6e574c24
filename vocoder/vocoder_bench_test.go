package vocoder

import (
	"testing"

	"github.com/cwbudde/algo-pitch/dsp/fft"
	"github.com/cwbudde/algo-pitch/dsp/window"
	"github.com/cwbudde/algo-pitch/internal/testutil"
)

func BenchmarkStretch(b *testing.B) {
	in := testutil.DeterministicSine(440, sampleRate, 0.5, 1<<15)
	env, err := window.Hann(1024)
	if err != nil {
		b.Fatal(err)
	}

	for _, s := range []fft.Strategy{fft.StrategyRecursive, fft.StrategyAlgoFFT} {
		b.Run(s.String(), func(b *testing.B) {
			for b.Loop() {
				if _, err := Stretch(in, sampleRate, 1.5, 1024, 768, env, WithStrategy(s)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
