// SPDX-License-Identifier: EPL-2.0

package pcmexport

import (
	"fmt"

	"github.com/ik5/pcmexport/audio"
)

// ConvertSource drains src and encodes it to target. src is not closed.
func ConvertSource(src audio.Source, target audio.Target) (*audio.PCM, error) {
	buf, err := audio.ReadBuffer(src)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}

	return audio.Encode(buf, target)
}
