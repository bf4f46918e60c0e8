// SPDX-License-Identifier: EPL-2.0

package raw

import (
	"encoding/binary"
	"fmt"
	"io"
)

// chunkSamples bounds the scratch buffer Write allocates.
const chunkSamples = 8192

// Write emits samples as little-endian signed 16-bit PCM, 2*len(samples)
// bytes in total, in the order given.
func Write(w io.Writer, samples []int16) error {
	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), chunkSamples)*2)

	for i := 0; i < len(samples); i += chunkSamples {
		chunk := samples[i:min(i+chunkSamples, len(samples))]
		out := buf[:len(chunk)*2]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(out[j*2:], uint16(s))
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("writing pcm: %w", err)
		}
	}

	return nil
}

// Encode returns samples as little-endian signed 16-bit PCM bytes.
func Encode(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}

	return out
}
