// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
)

// mockSource generates audio from a waveform function for testing.
// maxRead, when set, caps how many values a single ReadSamples returns so
// short reads can be exercised.
type mockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // Total samples to generate (per channel)
	generated    int // Samples generated so far (per channel)
	maxRead      int
	waveform     func(sample int, channel int) float32
}

func newMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *mockSource {
	return &mockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// newSilentSource creates a mock source that generates silence (all zeros).
func newSilentSource(sampleRate, channels, totalSamples int) *mockSource {
	return newMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return 0.0
	})
}

func (m *mockSource) SampleRate() int { return m.sampleRate }
func (m *mockSource) Channels() int   { return m.channels }
func (m *mockSource) BufSize() int    { return 4096 }
func (m *mockSource) Close() error    { return nil }

func (m *mockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	if m.maxRead > 0 && len(dst) > m.maxRead {
		dst = dst[:m.maxRead]
	}

	framesToWrite := min(len(dst)/m.channels, m.totalSamples-m.generated)
	for frame := range framesToWrite {
		sampleIndex := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(sampleIndex, ch)
		}
	}

	m.generated += framesToWrite
	samplesWritten := framesToWrite * m.channels

	if m.generated >= m.totalSamples {
		return samplesWritten, io.EOF
	}

	return samplesWritten, nil
}

// sliceSource replays a fixed interleaved slice, then returns err (io.EOF
// when nil).
type sliceSource struct {
	sampleRate int
	channels   int
	data       []float32
	err        error
}

func (s *sliceSource) SampleRate() int { return s.sampleRate }
func (s *sliceSource) Channels() int   { return s.channels }
func (s *sliceSource) BufSize() int    { return 3 }
func (s *sliceSource) Close() error    { return nil }

func (s *sliceSource) ReadSamples(dst []float32) (int, error) {
	if len(s.data) == 0 {
		if s.err != nil {
			return 0, s.err
		}
		return 0, io.EOF
	}

	n := copy(dst, s.data)
	s.data = s.data[n:]

	return n, nil
}

// stalledSource never produces data nor an error.
type stalledSource struct{}

func (stalledSource) SampleRate() int { return 8000 }
func (stalledSource) Channels() int   { return 1 }
func (stalledSource) BufSize() int    { return 16 }
func (stalledSource) Close() error    { return nil }

func (stalledSource) ReadSamples([]float32) (int, error) {
	return 0, nil
}
