// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Mix derives targetChannels output channels from the first two of
// channels, which must all have the same length.
//
//	sources  target  result
//	1        1       left = ch0
//	1        2       left = right = ch0
//	2        1       left = (ch0 + ch1) / 2
//	2        2       left = ch0, right = ch1
//
// right is nil for a mono target. Any channel past the second is ignored.
// The inputs are never modified; a mono downmix gets a new slice.
func Mix(channels [][]float32, targetChannels int) (left, right []float32, err error) {
	if len(channels) == 0 {
		return nil, nil, ErrNoChannels
	}
	if targetChannels != 1 && targetChannels != 2 {
		return nil, nil, fmt.Errorf("%w: %d channels", ErrUnsupportedTarget, targetChannels)
	}

	if len(channels) == 1 {
		if targetChannels == 1 {
			return channels[0], nil, nil
		}
		return channels[0], channels[0], nil
	}

	if targetChannels == 2 {
		return channels[0], channels[1], nil
	}

	a, b := channels[0], channels[1]
	if len(a) != len(b) {
		return nil, nil, ErrChannelLengthMismatch
	}

	mono := make([]float32, len(a))
	for i := range mono {
		mono[i] = float32((float64(a[i]) + float64(b[i])) * 0.5)
	}

	return mono, nil, nil
}
