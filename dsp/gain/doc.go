// Package gain measures and repairs clipping in resynthesised buffers.
//
// Samples outside [-1, 1] are clipped. [Attenuate] scales the whole buffer
// by the smallest factor that brings its peak back to full scale and only
// falls back to per-sample hard clipping for values that remain out of range
// after scaling.
package gain
