// Package vocoder implements a phase-vocoder for offline time stretching and
// pitch shifting of whole in-memory buffers.
//
// [Stretch] analyses the signal in frames of windowLength samples spaced
// windowLength-overlap apart and resynthesises them with the hop scaled by
// the stretch factor. Magnitudes are carried through and each bin's phase is
// advanced at its estimated true frequency, so the duration changes while
// the pitch does not.
//
// [PitchShift] stretches by a factor and resamples the result back to about
// the original duration, which transposes the pitch by that factor.
//
// Frames depend on the phases of the previous frame, so a call is strictly
// sequential. Calls share no state.
package vocoder
