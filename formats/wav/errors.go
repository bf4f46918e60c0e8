// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	// ErrNotWavFile is returned when the input has no RIFF/WAVE header.
	ErrNotWavFile = errors.New("not a WAV file")

	// ErrOnlyPCMSupported is returned for compressed or floating point WAV.
	ErrOnlyPCMSupported = errors.New("only integer PCM WAV is supported")

	// ErrUnsupportedBitDepth is returned for depths other than 16, 24 and 32.
	ErrUnsupportedBitDepth = errors.New("unsupported WAV bit depth")

	// ErrUnsupportedWavLayout is returned when the fmt chunk is unusable.
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
)
