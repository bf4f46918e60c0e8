// SPDX-License-Identifier: EPL-2.0

package raw

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/pcmexport/audio"
	"github.com/ik5/pcmexport/utils"
)

type source struct {
	r          io.Reader
	sampleRate int
	channels   int
	buf        []byte
	pending    []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 - 4096%s.channels }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	// An odd byte left over from the previous read starts this one.
	held := copy(s.buf, s.pending)
	s.pending = s.pending[:0]

	n, err := io.ReadAtLeast(s.r, s.buf[held:], 1)
	n += held
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	} else if err != nil {
		return 0, fmt.Errorf("reading pcm: %w", err)
	}

	samples := n / 2
	if n%2 == 1 && err == nil {
		s.pending = append(s.pending, s.buf[n-1])
	}

	for i := range samples {
		dst[i] = utils.Int16ToFloat32(int16(binary.LittleEndian.Uint16(s.buf[i*2:])))
	}

	return samples, err
}

// Decoder reads headerless little-endian signed 16-bit PCM. The stream
// carries no format information, so the caller supplies it.
type Decoder struct {
	SampleRate int
	Channels   int
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	if d.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", audio.ErrInvalidSampleRate, d.SampleRate)
	}
	if d.Channels <= 0 {
		return nil, audio.ErrNoChannels
	}

	return &source{
		r:          r,
		sampleRate: d.SampleRate,
		channels:   d.Channels,
		pending:    make([]byte, 0, 1),
	}, nil
}
