// SPDX-License-Identifier: EPL-2.0

package utils

// LinearInterpolate returns the point at fraction frac between y0 and y1.
// frac is normally in [0, 1); the arithmetic is done in float64 so the
// result is the same whichever side of the pair is larger.
func LinearInterpolate(y0, y1 float32, frac float64) float32 {
	a := float64(y0)
	return float32(a + (float64(y1)-a)*frac)
}
