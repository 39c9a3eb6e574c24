package detect

import (
	"testing"

	"github.com/cwbudde/algo-pitch/internal/testutil"
)

func BenchmarkDetectors(b *testing.B) {
	block := testutil.SineWithHarmonics(440, sampleRate, 0.8, 5, blockSize)

	for _, a := range Algorithms() {
		d, err := New(a, Params{Range: octaveAround(440)})
		if err != nil {
			b.Fatal(err)
		}
		b.Run(a.String(), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := d.Predict(block, sampleRate); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
