// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrNoChannels is returned when a buffer or source carries no channels.
	ErrNoChannels = errors.New("audio has no channels")

	// ErrEmptyBuffer is returned when encoding would produce no samples.
	ErrEmptyBuffer = errors.New("no audio produced")

	// ErrInvalidSampleRate is returned for a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("sample rate must be positive")

	// ErrChannelLengthMismatch is returned when channels differ in length.
	ErrChannelLengthMismatch = errors.New("channels have different lengths")

	// ErrUnsupportedTarget is returned for a sample rate or channel count
	// outside the supported set.
	ErrUnsupportedTarget = errors.New("unsupported target format")

	// ErrUnsupportedFormat is returned when no decoder handles an input.
	ErrUnsupportedFormat = errors.New("unsupported input format")
)
