// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// maxEmptyReads bounds how many consecutive (0, nil) reads ReadBuffer
// tolerates before giving up on a source.
const maxEmptyReads = 100

// Buffer is a fully decoded piece of audio held in memory, one slice per
// channel. All channel slices have the same length.
type Buffer struct {
	SampleRate int
	Channels   [][]float32
}

// NewBuffer builds a Buffer from per-channel sample slices. The slices are
// not copied.
func NewBuffer(sampleRate int, channels ...[]float32) *Buffer {
	return &Buffer{
		SampleRate: sampleRate,
		Channels:   channels,
	}
}

// Frames is the number of samples per channel.
func (b *Buffer) Frames() int {
	if b == nil || len(b.Channels) == 0 {
		return 0
	}

	return len(b.Channels[0])
}

// NumChannels is the number of source channels, including any beyond the
// two the encoder uses.
func (b *Buffer) NumChannels() int {
	if b == nil {
		return 0
	}

	return len(b.Channels)
}

// Validate checks the sample rate and that every channel has the same length.
func (b *Buffer) Validate() error {
	if b == nil || len(b.Channels) == 0 {
		return ErrNoChannels
	}
	if b.SampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, b.SampleRate)
	}

	frames := len(b.Channels[0])
	for i, ch := range b.Channels[1:] {
		if len(ch) != frames {
			return fmt.Errorf("%w: channel %d has %d frames, channel 0 has %d",
				ErrChannelLengthMismatch, i+1, len(ch), frames)
		}
	}

	return nil
}

// ReadBuffer drains src into a Buffer, splitting the interleaved stream
// into channels. A trailing partial frame is dropped. src is not closed.
func ReadBuffer(src Source) (*Buffer, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrNoChannels
	}
	rate := src.SampleRate()
	if rate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, rate)
	}

	bufSize := src.BufSize()
	if bufSize < channels {
		bufSize = 4096
	}
	bufSize -= bufSize % channels

	buf := make([]float32, bufSize)
	var interleaved []float32
	empty := 0

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			interleaved = append(interleaved, buf[:n]...)
			empty = 0
		} else if err == nil {
			empty++
			if empty >= maxEmptyReads {
				return nil, io.ErrNoProgress
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}
	}

	frames := len(interleaved) / channels
	out := &Buffer{
		SampleRate: rate,
		Channels:   make([][]float32, channels),
	}
	for c := range channels {
		out.Channels[c] = make([]float32, frames)
	}

	if channels == 1 {
		copy(out.Channels[0], interleaved[:frames])
		return out, nil
	}

	for f := range frames {
		base := f * channels
		for c := range channels {
			out.Channels[c][f] = interleaved[base+c]
		}
	}

	return out, nil
}
