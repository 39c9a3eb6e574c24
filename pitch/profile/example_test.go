package profile_test

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-pitch/internal/testutil"
	"github.com/cwbudde/algo-pitch/pitch/detect"
	"github.com/cwbudde/algo-pitch/pitch/note"
	"github.com/cwbudde/algo-pitch/pitch/profile"
)

func ExampleProfile_IndexedPitchData() {
	signal := testutil.Melody([]float64{261.63, 329.63}, 44100, 0.8, 4096)

	p, _ := profile.New(signal, 44100, detect.NewZeroCrossing(), profile.WithBlockSize(4096))
	_ = p.Analyse(context.Background())

	entries, _ := p.IndexedPitchData()
	for _, e := range entries {
		fmt.Println(e.Start, e.End, note.Name(e.Freq))
	}
	// Output:
	// 0 4096 C4
	// 4096 8192 E4
}
