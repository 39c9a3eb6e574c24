package section_test

import (
	"fmt"

	"github.com/cwbudde/algo-pitch/pitch"
	"github.com/cwbudde/algo-pitch/pitch/section"
)

func ExampleCompress() {
	var entries []pitch.Entry
	freqs := []float64{220, 221, 440, 220, 219, 330, 330, 331, 330, 330}
	for i, f := range freqs {
		entries = append(entries, pitch.Entry{Start: i * 1000, End: (i + 1) * 1000, Freq: f})
	}

	for _, s := range section.Compress(entries, section.DefaultConfig()) {
		fmt.Println(s)
	}
	// Output:
	// 0-5000: 220.00Hz
	// 5000-10000: 330.00Hz
}

func ExampleRemoveShortSections() {
	sections := []pitch.Entry{
		{Start: 0, End: 8000, Freq: 220},
		{Start: 8000, End: 9000, Freq: 247},
		{Start: 9000, End: 20000, Freq: 262},
	}
	for _, s := range section.RemoveShortSections(sections, 4097) {
		fmt.Println(s)
	}
	// Output:
	// 0-9000: 220.00Hz
	// 9000-20000: 262.00Hz
}
