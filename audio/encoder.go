// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"time"

	"github.com/ik5/pcmexport/utils"
)

// PCM is signed 16-bit audio, interleaved [L0, R0, L1, R1, ...] when
// stereo. len(Samples) == Frames * Channels.
type PCM struct {
	Samples    []int16
	Frames     int
	SampleRate int
	Channels   int
}

// ByteLen is the size of the samples once serialized as s16.
func (p *PCM) ByteLen() int {
	return len(p.Samples) * 2
}

// Duration is the playback length at SampleRate.
func (p *PCM) Duration() time.Duration {
	if p.SampleRate <= 0 {
		return 0
	}

	return time.Duration(p.Frames) * time.Second / time.Duration(p.SampleRate)
}

// Target is the format the samples are in.
func (p *PCM) Target() Target {
	return Target{SampleRate: p.SampleRate, Channels: p.Channels}
}

// Encode resamples buf to target, mixes it down or up to target.Channels
// and quantizes it to 16-bit PCM. Only the first two source channels are
// used.
//
// Encode fails with ErrNoChannels when buf has no channels and with
// ErrEmptyBuffer when buf holds no frames or resampling leaves none.
func Encode(buf *Buffer, target Target) (*PCM, error) {
	if target.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrUnsupportedTarget, target.SampleRate)
	}
	if target.Channels != 1 && target.Channels != 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedTarget, target.Channels)
	}
	if buf.NumChannels() == 0 {
		return nil, ErrNoChannels
	}
	if buf.Frames() == 0 {
		return nil, ErrEmptyBuffer
	}
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	length := TargetLength(buf.Frames(), buf.SampleRate, target.SampleRate)
	if length == 0 {
		return nil, ErrEmptyBuffer
	}

	used := buf.Channels[:min(len(buf.Channels), 2)]
	resampled := make([][]float32, len(used))
	for i, ch := range used {
		resampled[i] = ResampleChannel(ch, buf.SampleRate, target.SampleRate, length)
	}

	left, right, err := Mix(resampled, target.Channels)
	if err != nil {
		return nil, err
	}

	samples := make([]int16, length*target.Channels)
	if target.Channels == 1 {
		for i, v := range left {
			samples[i] = utils.Float32ToInt16(v)
		}
	} else {
		for i := range length {
			samples[i*2] = utils.Float32ToInt16(left[i])
			samples[i*2+1] = utils.Float32ToInt16(right[i])
		}
	}

	return &PCM{
		Samples:    samples,
		Frames:     length,
		SampleRate: target.SampleRate,
		Channels:   target.Channels,
	}, nil
}
