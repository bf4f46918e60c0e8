// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"

	"github.com/ik5/pcmexport/utils"
)

// TargetLength is the number of frames frames source frames occupy once
// resampled from srcRate to dstRate, rounded to the nearest frame.
func TargetLength(frames, srcRate, dstRate int) int {
	if frames <= 0 || srcRate <= 0 || dstRate <= 0 {
		return 0
	}

	return int(math.Round(float64(frames) * float64(dstRate) / float64(srcRate)))
}

// ResampleChannel resamples one channel from srcRate to dstRate using
// linear interpolation and returns exactly length samples.
//
// Output sample i reads the source at position i*srcRate/dstRate. Reads
// past the end of src hold the last value instead of extrapolating: the
// right neighbour of the final sample is the sample itself, and a position
// wholly past the end reads as 0. There is no anti-aliasing filter.
func ResampleChannel(src []float32, srcRate, dstRate, length int) []float32 {
	if length <= 0 {
		return []float32{}
	}

	dst := make([]float32, length)
	if srcRate <= 0 || dstRate <= 0 {
		return dst
	}

	if srcRate == dstRate && length == len(src) {
		copy(dst, src)
		return dst
	}

	ratio := float64(srcRate) / float64(dstRate)
	n := len(src)

	for i := range dst {
		pos := float64(i) * ratio
		idx := int(pos)
		frac := pos - float64(idx)

		var s0 float32
		if idx < n {
			s0 = src[idx]
		}
		s1 := s0
		if idx+1 < n {
			s1 = src[idx+1]
		}

		dst[i] = utils.LinearInterpolate(s0, s1, frac)
	}

	return dst
}
