package vocoder_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pitch/dsp/window"
	"github.com/cwbudde/algo-pitch/vocoder"
)

func ExampleStretch() {
	signal := make([]float64, 4096)
	for i := range signal {
		signal[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/44100)
	}
	env, _ := window.Hann(1024)

	out, err := vocoder.Stretch(signal, 44100, 1.5, 1024, 768, env)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(len(out))
	// Output: 6144
}

func ExamplePitchShift() {
	signal := make([]float64, 4096)
	for i := range signal {
		signal[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/44100)
	}
	env, _ := window.Hann(1024)

	// A fifth up, same number of samples.
	out, err := vocoder.PitchShift(signal, 44100, 1.5, 1024, 768, env, vocoder.WithForceLength(true))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(len(out))
	// Output: 4096
}
