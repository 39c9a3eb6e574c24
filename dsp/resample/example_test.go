package resample_test

import (
	"fmt"

	"github.com/cwbudde/algo-pitch/dsp/resample"
)

func ExampleResample() {
	in := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8}
	out, _ := resample.Resample(in, 2, 1)
	fmt.Println(out)
	// Output:
	// [0 2 4 6]
}
