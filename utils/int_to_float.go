// SPDX-License-Identifier: EPL-2.0

package utils

// IntToFloat32 normalizes a signed integer PCM sample of the given bit
// depth to [-1.0, 1.0). Unknown depths are treated as 16-bit.
func IntToFloat32(v, bitDepth int) float32 {
	var full float32
	switch bitDepth {
	case 8:
		full = 128.0
	case 24:
		full = 8388608.0
	case 32:
		full = 2147483648.0
	default:
		full = 32768.0
	}

	return float32(v) / full
}
