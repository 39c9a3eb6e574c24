// Package interp provides fractional-position sample interpolation for the
// resampler: 2-point linear and 4-point cubic Hermite.
package interp
