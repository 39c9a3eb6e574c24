// Package wavio decodes WAV files into mono float samples and encodes
// float samples back into PCM WAV files.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-pitch/dsp/gain"
)

// DefaultBitDepth is the PCM bit depth Write uses when none is given.
const DefaultBitDepth = 16

var (
	// ErrInvalidFile is returned for input that is not a WAV file.
	ErrInvalidFile = errors.New("wavio: invalid wav file")
	// ErrUnsupportedBitDepth is returned for bit depths other than 16, 24
	// and 32.
	ErrUnsupportedBitDepth = errors.New("wavio: unsupported bit depth")
	// ErrInvalidSampleRate is returned for a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("wavio: invalid sample rate")
)

// Audio is a decoded mono signal.
type Audio struct {
	Samples    []float64
	SampleRate int
	// BitDepth and Channels describe the source file.
	BitDepth int
	Channels int
}

func validBitDepth(bd int) bool {
	return bd == 16 || bd == 24 || bd == 32
}

func fullScale(bitDepth int) float64 {
	return float64(int64(1) << (bitDepth - 1))
}

// Read decodes r and averages all channels into one. Samples are
// normalised to [-1, 1).
func Read(r io.ReadSeeker) (*Audio, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidFile
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wavio: decode: %w", err)
	}

	bitDepth := int(dec.BitDepth)
	if !validBitDepth(bitDepth) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	channels := int(dec.NumChans)
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidFile, channels)
	}

	return &Audio{
		Samples:    mono(buf.Data, channels, fullScale(bitDepth)),
		SampleRate: int(dec.SampleRate),
		BitDepth:   bitDepth,
		Channels:   channels,
	}, nil
}

// mono averages interleaved frames and scales them by 1/scale. A trailing
// partial frame is dropped.
func mono(data []int, channels int, scale float64) []float64 {
	out := make([]float64, len(data)/channels)
	for i := range out {
		sum := 0
		for c := range channels {
			sum += data[i*channels+c]
		}
		out[i] = float64(sum) / float64(channels) / scale
	}
	return out
}

// ReadFile decodes the WAV file at path.
func ReadFile(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wavio: open %q: %w", path, err)
	}
	defer f.Close()

	a, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("wavio: read %q: %w", path, err)
	}
	return a, nil
}

// Write encodes samples as a mono PCM WAV stream. Samples are clamped to
// [-1, 1]. A bitDepth of 0 selects DefaultBitDepth.
func Write(w io.WriteSeeker, samples []float64, sampleRate, bitDepth int) error {
	if bitDepth == 0 {
		bitDepth = DefaultBitDepth
	}
	if !validBitDepth(bitDepth) {
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	if sampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}

	peak := fullScale(bitDepth) - 1
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(math.Round(gain.Clamp(s, -1, 1) * peak))
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavio: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavio: close encoder: %w", err)
	}
	return nil
}

// WriteFile encodes samples into a new file at path.
func WriteFile(path string, samples []float64, sampleRate, bitDepth int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavio: create %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("wavio: close %q: %w", path, cerr)
		}
	}()

	if err := Write(f, samples, sampleRate, bitDepth); err != nil {
		return fmt.Errorf("wavio: write %q: %w", path, err)
	}
	return nil
}
