// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 quantizes a sample in [-1, 1] to signed 16-bit PCM.
//
// Values outside the range saturate, so 1.0 and anything above it map to
// 32767 and -1.0 and below map to -32767. The scaled value is rounded half
// away from zero. NaN has no meaningful level and maps to silence.
func Float32ToInt16(x float32) int16 {
	if x != x { // NaN
		return 0
	}

	// Clamp
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return int16(math.Round(float64(x) * math.MaxInt16))
}

// Int16ToFloat32 normalizes a 16-bit PCM sample into [-1, 1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}
