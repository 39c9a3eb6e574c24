package profile

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-pitch/pitch/detect"
	"github.com/cwbudde/algo-pitch/pitch/note"
)

// SummaryTrim is the trimmed-mean proportion used for the average pitch.
const SummaryTrim = 0.4

// AveragePitch returns the trimmed mean of the estimates.
func (p *Profile) AveragePitch() (float64, error) {
	if !p.analysed {
		return 0, ErrNotAnalysed
	}
	return detect.TrimmedMean(p.estimates, SummaryTrim)
}

// Log returns a human-readable summary followed by one line per block.
func (p *Profile) Log() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Pitch Profile Log for '%s'\n", p.name)
	fmt.Fprintf(&b, "Location: %s\n", p.location)
	fmt.Fprintf(&b, "Pitch Detection Algorithm: %s\n", p.detector.Algorithm())
	fmt.Fprintf(&b, "    params: %s\n", p.detector.Params())
	fmt.Fprintf(&b, "Sample rate: %g\n", p.sampleRate)
	fmt.Fprintf(&b, "Block size: %d\n", p.blockSize)
	fmt.Fprintf(&b, "Overlap: %d\n", p.overlap)
	if p.instrument != "" {
		fmt.Fprintf(&b, "Instrument: %s\n", p.instrument)
	}
	b.WriteString("\n")

	entries, err := p.IndexedPitchData()
	if err != nil {
		b.WriteString("PITCH ANALYSIS - not analysed\n")
		return b.String()
	}

	avg, err := p.AveragePitch()
	if err != nil {
		fmt.Fprintf(&b, "PITCH ANALYSIS (took %s) - Average Pitch unavailable: %v\n", p.elapsed, err)
	} else {
		fmt.Fprintf(&b, "PITCH ANALYSIS (took %s) - Average Pitch = %.2fHz\n", p.elapsed, avg)
	}
	for _, e := range entries {
		fmt.Fprintf(&b, "%d-%d: %s\n", e.Start, e.End, note.Info(e.Freq))
	}
	return b.String()
}
