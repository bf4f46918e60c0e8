// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files with github.com/go-audio/aiff.
//
// Only 16-bit PCM is accepted; any channel count and sample rate is passed
// through unchanged:
//
//	src, err := aiff.Decoder{}.Decode(file)
//	if errors.Is(err, aiff.ErrOnlyPCM16bitSupported) {
//	    // 8, 24 or 32-bit file
//	}
//
// go-audio needs to seek, so a reader that is not an io.ReadSeeker is read
// fully into memory first.
package aiff
