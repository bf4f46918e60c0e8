// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes WAV files.
//
// # Decoding
//
// Decoder uses github.com/go-audio/wav and accepts integer PCM at 16, 24 or
// 32 bits per sample, mono or multichannel, at any sample rate:
//
//	src, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrOnlyPCMSupported) {
//	    // float or compressed WAV
//	}
//
// Samples come out as float32 in [-1.0, 1.0). go-audio needs to seek, so a
// reader that is not an io.ReadSeeker is read fully into memory first.
//
// # Encoding
//
// WriteWAV16 writes a canonical 44-byte header followed by the samples as
// little-endian 16-bit PCM, the same bytes the raw package produces:
//
//	err := wav.WriteWAV16(file, pcm.SampleRate, pcm.Channels, pcm.Samples)
package wav
