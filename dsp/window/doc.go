// Package window generates the analysis envelopes used for block framing and
// phase-vocoder frames, and multiplies them into sample buffers.
package window
