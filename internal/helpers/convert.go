// Package helpers provides clamped integer conversions.
//
// Wire counts and lengths are 16-bit; these helpers saturate instead of
// wrapping when a Go length does not fit.
package helpers

import "math"

// clampInt restricts v to the range [lowerLimit, upperLimit].
func clampInt(v, lowerLimit, upperLimit int) int {
	if v < lowerLimit {
		return lowerLimit
	}
	if v > upperLimit {
		return upperLimit
	}
	return v
}

// ClampIntToUint16 converts v to uint16 with clamping.
// Values below 0 become 0; values above math.MaxUint16 become math.MaxUint16.
func ClampIntToUint16(v int) uint16 {
	return uint16(clampInt(v, 0, math.MaxUint16)) //nolint:gosec // clamped to valid range
}
