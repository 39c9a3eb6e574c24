package detect

// ZeroCrossing estimates pitch from the average spacing of sign changes.
// Samples > 0 count as positive. The estimate is independent of amplitude.
type ZeroCrossing struct{}

var _ Detector = (*ZeroCrossing)(nil)

// NewZeroCrossing returns a zero-crossing detector.
func NewZeroCrossing() *ZeroCrossing {
	return &ZeroCrossing{}
}

// Algorithm implements Detector.
func (z *ZeroCrossing) Algorithm() Algorithm { return AlgorithmZeroCross }

// Params implements Detector.
func (z *ZeroCrossing) Params() string { return "" }

// Predict returns sampleRate·(crossings−1) / (2·span), where span is the
// distance between the first and last crossing. Fewer than two crossings
// yield Epsilon.
func (z *ZeroCrossing) Predict(block []float64, sampleRate float64) (float64, error) {
	if err := validateBlock(block, sampleRate); err != nil {
		return 0, err
	}

	positive := block[0] > 0
	first, last, count := -1, -1, 0
	for i, s := range block {
		if (s > 0) == positive {
			continue
		}
		positive = !positive
		count++
		if first < 0 {
			first = i
		} else {
			last = i
		}
	}

	if count < 2 || last <= first {
		return Epsilon, nil
	}
	return sampleRate * 0.5 * float64(count-1) / float64(last-first), nil
}
