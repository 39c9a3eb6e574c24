package detect_test

import (
	"fmt"

	"github.com/cwbudde/algo-pitch/dsp/fft"
	"github.com/cwbudde/algo-pitch/internal/testutil"
	"github.com/cwbudde/algo-pitch/pitch"
	"github.com/cwbudde/algo-pitch/pitch/detect"
	"github.com/cwbudde/algo-pitch/pitch/note"
)

func ExampleNew() {
	d, _ := detect.New(detect.AlgorithmNaiveFT, detect.Params{
		Range:       pitch.Range{Min: 20, Max: 20000},
		Strategy:    fft.StrategyAlgoFFT,
		PhaseRefine: true,
	})

	block := testutil.DeterministicSine(440, 44100, 0.8, 2048)
	f, _ := d.Predict(block, 44100)
	fmt.Println(d.Algorithm(), note.Name(f))
	// Output:
	// naiveft A4
}

func ExampleTrimmedMean() {
	m, _ := detect.TrimmedMean([]float64{1, 2, 3, 4, 5, 6, 7, 8}, 0.25)
	fmt.Println(m)
	// Output:
	// 4.5
}
