// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/pcmexport/audio"
	"github.com/ik5/pcmexport/formats/raw"
)

// Channels is the channel count of every decoded stream; go-mp3 upmixes
// mono files to stereo.
const Channels = 2

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("decoding mp3: %w", err)
	}

	// go-mp3 yields interleaved s16le, the raw layout.
	return raw.Decoder{SampleRate: dec.SampleRate(), Channels: Channels}.Decode(dec)
}
