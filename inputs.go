// SPDX-License-Identifier: EPL-2.0

package pcmexport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/ik5/pcmexport/audio"
	"github.com/ik5/pcmexport/formats/aiff"
	"github.com/ik5/pcmexport/formats/ffmpeg"
	"github.com/ik5/pcmexport/formats/mp3"
	"github.com/ik5/pcmexport/formats/raw"
	"github.com/ik5/pcmexport/formats/vorbis"
	"github.com/ik5/pcmexport/formats/wav"
)

// Inputs decodes input files, choosing a decoder by file extension. Files
// no built-in decoder accepts go to ffmpeg when a fallback is set.
type Inputs struct {
	registry *audio.Registry
	fallback *ffmpeg.Decoder
}

// NewInputs registers the built-in decoders. fallback may be nil.
func NewInputs(fallback *ffmpeg.Decoder) *Inputs {
	reg := audio.NewRegistry()
	for _, ext := range []string{"wav", "wave"} {
		reg.Register(ext, wav.Decoder{})
	}
	reg.Register("mp3", mp3.Decoder{})
	for _, ext := range []string{"ogg", "oga"} {
		reg.Register(ext, vorbis.Decoder{})
	}
	for _, ext := range []string{"aiff", "aif"} {
		reg.Register(ext, aiff.Decoder{})
	}

	return &Inputs{
		registry: reg,
		fallback: fallback,
	}
}

// RegisterRaw accepts headerless s16le files (.pcm, .raw) with the given
// format.
func (in *Inputs) RegisterRaw(sampleRate, channels int) {
	d := raw.Decoder{SampleRate: sampleRate, Channels: channels}
	in.registry.Register("pcm", d)
	in.registry.Register("raw", d)
}

// Formats lists the extensions with a built-in decoder.
func (in *Inputs) Formats() []string {
	return in.registry.Formats()
}

// HasFallback reports whether ffmpeg is used for other inputs.
func (in *Inputs) HasFallback() bool {
	return in.fallback != nil
}

// Decode reads r, named name, fully into memory and decodes it.
func (in *Inputs) Decode(ctx context.Context, name string, r io.Reader) (*audio.Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	dec, ok := in.registry.ForFile(name)
	if ok {
		src, err := dec.Decode(bytes.NewReader(data))
		if err == nil {
			return drain(src)
		}
		if in.fallback == nil {
			return nil, fmt.Errorf("%w: %w", audio.ErrUnsupportedFormat, err)
		}
	} else if in.fallback == nil {
		return nil, fmt.Errorf("%w: %q", audio.ErrUnsupportedFormat, filepath.Ext(name))
	}

	src, err := in.fallback.DecodeContext(ctx, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	return drain(src)
}

func drain(src audio.Source) (*audio.Buffer, error) {
	defer src.Close()

	return audio.ReadBuffer(src)
}
