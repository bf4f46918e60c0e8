// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic audio for tests and examples.
package audiotest

import (
	"io"
	"math"
)

// Waveform yields the value of one sample of one channel.
type Waveform func(frame, channel int) float32

// Source is a generated audio source. It satisfies audio.Source without
// importing it.
type Source struct {
	sampleRate int
	channels   int
	frames     int
	bufSize    int
	pos        int
	wave       Waveform
}

// NewSource generates frames frames of wave at sampleRate.
func NewSource(sampleRate, channels, frames int, wave Waveform) *Source {
	return &Source{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		bufSize:    4096,
		wave:       wave,
	}
}

// NewSilentSource generates zeros.
func NewSilentSource(sampleRate, channels, frames int) *Source {
	return NewSource(sampleRate, channels, frames, Constant(0))
}

// NewSineSource generates the same sine tone on every channel.
func NewSineSource(sampleRate, channels, frames int, frequency float64) *Source {
	return NewSource(sampleRate, channels, frames, Sine(sampleRate, frequency))
}

// NewConstantSource generates value on every channel.
func NewConstantSource(sampleRate, channels, frames int, value float32) *Source {
	return NewSource(sampleRate, channels, frames, Constant(value))
}

// WithBufSize changes the read size hint reported by BufSize.
func (s *Source) WithBufSize(n int) *Source {
	s.bufSize = n
	return s
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return s.bufSize }
func (s *Source) Close() error    { return nil }

// Reset rewinds the source to its first frame.
func (s *Source) Reset() {
	s.pos = 0
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.pos >= s.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/s.channels, s.frames-s.pos)
	for f := range n {
		for ch := range s.channels {
			dst[f*s.channels+ch] = s.wave(s.pos+f, ch)
		}
	}

	s.pos += n
	if s.pos >= s.frames {
		return n * s.channels, io.EOF
	}

	return n * s.channels, nil
}

// Channels renders wave into per-channel slices, the layout used by
// audio.Buffer.
func Channels(channels, frames int, wave Waveform) [][]float32 {
	out := make([][]float32, channels)
	for ch := range out {
		out[ch] = make([]float32, frames)
		for f := range frames {
			out[ch][f] = wave(f, ch)
		}
	}

	return out
}

// Constant is a flat signal.
func Constant(value float32) Waveform {
	return func(int, int) float32 { return value }
}

// Sine is a tone of frequency Hz sampled at sampleRate.
func Sine(sampleRate int, frequency float64) Waveform {
	return func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	}
}

// Ramp rises linearly from -1 towards 1 over frames frames.
func Ramp(frames int) Waveform {
	return func(frame, _ int) float32 {
		if frames <= 1 {
			return 0
		}
		return float32(-1 + 2*float64(frame)/float64(frames-1))
	}
}

// Split puts left on channel 0 and right on every other channel.
func Split(left, right Waveform) Waveform {
	return func(frame, channel int) float32 {
		if channel == 0 {
			return left(frame, channel)
		}
		return right(frame, channel)
	}
}
